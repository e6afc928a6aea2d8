package screenshot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// WriteArtifact stores encoded image bytes as a transient file in the
// system temp directory and returns its path. The caller owns the file
// and is expected to remove it when the run finishes, success or not.
func WriteArtifact(data []byte) (string, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("neocr-%s.png", uuid.NewString()))
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write capture artifact: %w", err)
	}
	return path, nil
}

// RemoveArtifact deletes a transient capture file. Removal is
// best-effort; a missing file is not an error.
func RemoveArtifact(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}
