package ocr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"neocr/ollama"
)

func TestRecognizeFile(t *testing.T) {
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt string   `json:"prompt"`
			Images []string `json:"images"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		gotPrompt = req.Prompt
		if len(req.Images) != 1 {
			t.Errorf("Expected one image in request, got %d", len(req.Images))
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "extracted text"})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "region.png")
	if err := os.WriteFile(path, []byte("fake-png"), 0600); err != nil {
		t.Fatal(err)
	}

	p := New(ollama.New(srv.URL), "llava:13b", "English")
	text, err := p.RecognizeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("RecognizeFile failed: %v", err)
	}
	if text != "extracted text" {
		t.Errorf("Expected extracted text, got %q", text)
	}
	if !strings.Contains(gotPrompt, "only the text") {
		t.Errorf("Prompt missing fixed instruction: %q", gotPrompt)
	}
	if !strings.Contains(gotPrompt, "markdown") || !strings.Contains(gotPrompt, "English") {
		t.Errorf("Prompt missing format/language: %q", gotPrompt)
	}
}

func TestRecognizeFileMissingArtifact(t *testing.T) {
	p := New(ollama.New("http://localhost:11434"), "llava:13b", "")
	if _, err := p.RecognizeFile(context.Background(), filepath.Join(t.TempDir(), "gone.png")); err == nil {
		t.Error("Expected error for missing artifact")
	}
}
