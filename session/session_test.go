package session

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"neocr/screenshot"
)

type recordingTarget struct {
	text string
	err  error
}

func (t *recordingTarget) OnSuccess(text string) error {
	t.text = text
	return t.err
}

func fakeCapture(region screenshot.Region) ([]byte, error) {
	return []byte("fake-png"), nil
}

func tempArtifacts(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TMPDIR", dir)
	return dir
}

func artifactCount(t *testing.T, dir string) int {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "neocr-*.png"))
	if err != nil {
		t.Fatal(err)
	}
	return len(matches)
}

func TestExecuteDeliversAndCleansUp(t *testing.T) {
	dir := tempArtifacts(t)

	var sawArtifact string
	target := &recordingTarget{}
	saved := false
	notified := ""

	text, err := Execute(context.Background(), Options{
		Region:  screenshot.Region{X: 100, Y: 100, Width: 300, Height: 200},
		Capture: fakeCapture,
		Recognize: func(ctx context.Context, path string) (string, error) {
			sawArtifact = path
			if _, err := os.Stat(path); err != nil {
				t.Errorf("Artifact missing during OCR: %v", err)
			}
			return "recognized", nil
		},
		Targets:   []ResultTarget{target},
		SaveModel: func() { saved = true },
		Notify:    func(text string) { notified = text },
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if text != "recognized" || target.text != "recognized" {
		t.Errorf("Expected recognized text delivered, got %q / %q", text, target.text)
	}
	if !saved {
		t.Error("Expected model to be persisted after success")
	}
	if notified != "recognized" {
		t.Errorf("Expected notification with result, got %q", notified)
	}
	if !strings.HasPrefix(filepath.Base(sawArtifact), "neocr-") {
		t.Errorf("Unexpected artifact name: %s", sawArtifact)
	}
	if n := artifactCount(t, dir); n != 0 {
		t.Errorf("Expected artifact removed after run, found %d", n)
	}
}

func TestExecuteRemovesArtifactOnOCRFailure(t *testing.T) {
	dir := tempArtifacts(t)

	target := &recordingTarget{}
	saved := false
	_, err := Execute(context.Background(), Options{
		Region:  screenshot.Region{X: 0, Y: 0, Width: 50, Height: 50},
		Capture: fakeCapture,
		Recognize: func(ctx context.Context, path string) (string, error) {
			return "", errors.New("model exploded")
		},
		Targets:   []ResultTarget{target},
		SaveModel: func() { saved = true },
	})
	if err == nil {
		t.Fatal("Expected OCR failure to propagate")
	}
	if target.text != "" {
		t.Error("Expected no delivery on OCR failure")
	}
	if saved {
		t.Error("Expected model not to be persisted on failure")
	}
	if n := artifactCount(t, dir); n != 0 {
		t.Errorf("Expected artifact removed despite failure, found %d", n)
	}
}

func TestExecuteDeliveryFailureIsHard(t *testing.T) {
	tempArtifacts(t)

	notified := false
	_, err := Execute(context.Background(), Options{
		Region:  screenshot.Region{X: 0, Y: 0, Width: 50, Height: 50},
		Capture: fakeCapture,
		Recognize: func(ctx context.Context, path string) (string, error) {
			return "text", nil
		},
		Targets: []ResultTarget{&recordingTarget{err: errors.New("clipboard gone")}},
		Notify:  func(string) { notified = true },
	})
	if err == nil {
		t.Fatal("Expected delivery failure to propagate")
	}
	if notified {
		t.Error("Expected no notification after delivery failure")
	}
}

func TestExecuteCaptureFailure(t *testing.T) {
	_, err := Execute(context.Background(), Options{
		Region: screenshot.Region{X: 0, Y: 0, Width: 50, Height: 50},
		Capture: func(screenshot.Region) ([]byte, error) {
			return nil, errors.New("capture device unavailable")
		},
		Recognize: func(ctx context.Context, path string) (string, error) {
			t.Error("OCR must not run when capture fails")
			return "", nil
		},
	})
	if err == nil {
		t.Fatal("Expected capture failure to propagate")
	}
}

func TestExecuteHonorsDeadline(t *testing.T) {
	tempArtifacts(t)

	_, err := Execute(context.Background(), Options{
		Region:   screenshot.Region{X: 0, Y: 0, Width: 50, Height: 50},
		Capture:  fakeCapture,
		Deadline: 10 * time.Millisecond,
		Recognize: func(ctx context.Context, path string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}
}

func TestExecuteRejectsInvalidRegion(t *testing.T) {
	_, err := Execute(context.Background(), Options{
		Region:    screenshot.Region{},
		Recognize: func(ctx context.Context, path string) (string, error) { return "", nil },
	})
	if err == nil {
		t.Error("Expected error for invalid region")
	}
}

func TestStdoutTarget(t *testing.T) {
	var buf bytes.Buffer
	if err := (StdoutTarget{Writer: &buf}).OnSuccess("hello"); err != nil {
		t.Fatalf("StdoutTarget failed: %v", err)
	}
	if buf.String() != "hello\n" {
		t.Errorf("Expected hello line, got %q", buf.String())
	}
}
