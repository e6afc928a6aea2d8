package hotkey

import "testing"

func TestIsEscape(t *testing.T) {
	tests := []struct {
		name    string
		rawcode uint16
		want    bool
	}{
		{"Windows VK_ESCAPE", 27, true},
		{"X11 keysym", 65307, true},
		{"macOS keycode", 53, true},
		{"Letter key", 65, false},
		{"Zero", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isEscape(tt.rawcode); got != tt.want {
				t.Errorf("isEscape(%d) = %v, want %v", tt.rawcode, got, tt.want)
			}
		})
	}
}
