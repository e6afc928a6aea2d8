// Package notification delivers the best-effort desktop notice with the
// OCR result preview. Nothing here may abort the pipeline: every
// failure is logged and swallowed.
package notification

import (
	"context"
	"log"
	"os/exec"
	"time"

	"github.com/gen2brain/beeep"
)

const (
	// maxPreview caps the notification body; longer text gets an
	// ellipsis marker appended.
	maxPreview = 200

	notifySendTimeout = 5 * time.Second

	title = "Neocr: text captured"
)

// Truncate limits text to maxPreview characters plus an ellipsis
// marker. Text at or under the cap passes through unchanged. The cap
// counts characters, not bytes, so multi-byte OCR output is never cut
// mid-rune.
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= maxPreview {
		return text
	}
	return string(runes[:maxPreview]) + "..."
}

// Send shows a desktop notification with a truncated preview of the
// result. notify-send is tried first to match the usual dunst setup; if
// the binary is missing or misbehaves, beeep takes over. Both paths are
// best-effort.
func Send(text string) {
	body := Truncate(text)

	if err := runNotifySend(body); err == nil {
		return
	} else {
		log.Printf("notify-send failed, trying fallback: %v", err)
	}

	if err := beeep.Notify(title, body, ""); err != nil {
		log.Printf("Notification fallback failed: %v", err)
	}
}

func runNotifySend(body string) error {
	ctx, cancel := context.WithTimeout(context.Background(), notifySendTimeout)
	defer cancel()
	return exec.CommandContext(ctx, "notify-send", title, body).Run()
}
