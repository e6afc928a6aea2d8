// Package session runs the capture-and-dispatch pipeline for one
// accepted region: capture, transient artifact, OCR, delivery.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"neocr/clipboard"
	"neocr/logutil"
	"neocr/screenshot"
)

// CaptureFunc grabs a region as encoded PNG bytes.
type CaptureFunc func(region screenshot.Region) ([]byte, error)

// RecognizeFunc performs OCR on a capture artifact.
type RecognizeFunc func(ctx context.Context, path string) (string, error)

// ResultTarget receives the recognized text. Delivery failure is a hard
// error for the run.
type ResultTarget interface {
	OnSuccess(text string) error
}

type Options struct {
	Region    screenshot.Region
	Deadline  time.Duration
	Capture   CaptureFunc   // defaults to screenshot.CaptureRegion
	Recognize RecognizeFunc // required
	Targets   []ResultTarget

	// SaveModel and Notify run after successful delivery; both are
	// best-effort and must not fail the run.
	SaveModel func()
	Notify    func(text string)
}

// Execute performs steps (a) through (g) of the dispatch contract. The
// capture artifact is removed unconditionally, OCR success or not.
func Execute(ctx context.Context, opts Options) (string, error) {
	if opts.Recognize == nil {
		return "", errors.New("Recognize is required")
	}
	if !opts.Region.Valid() {
		return "", fmt.Errorf("invalid region: %+v", opts.Region)
	}

	capture := opts.Capture
	if capture == nil {
		capture = screenshot.CaptureRegion
	}

	imageData, err := capture(opts.Region)
	if err != nil {
		return "", fmt.Errorf("failed to capture region: %w", err)
	}

	artifact, err := screenshot.WriteArtifact(imageData)
	if err != nil {
		return "", err
	}
	defer screenshot.RemoveArtifact(artifact)

	deadline := opts.Deadline
	if deadline <= 0 {
		deadline = 120 * time.Second
	}
	jobCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	text, err := opts.Recognize(jobCtx, artifact)
	if err != nil {
		return "", err
	}
	log.Printf("OCR extracted text (%d chars): %q", len(text), logutil.Sanitize(text))

	for _, target := range opts.Targets {
		if err := target.OnSuccess(text); err != nil {
			return "", fmt.Errorf("failed to deliver result: %w", err)
		}
	}

	if opts.SaveModel != nil {
		opts.SaveModel()
	}
	if opts.Notify != nil {
		opts.Notify(text)
	}

	return text, nil
}

// ClipboardTarget writes the result to the system clipboard.
type ClipboardTarget struct{}

func (ClipboardTarget) OnSuccess(text string) error {
	return clipboard.Write(text)
}

// StdoutTarget echoes the result, matching the tool's terminal output.
type StdoutTarget struct {
	Writer io.Writer
}

func (t StdoutTarget) OnSuccess(text string) error {
	w := t.Writer
	if w == nil {
		w = os.Stdout
	}
	_, err := fmt.Fprintln(w, text)
	return err
}
