// Package app drives the linear run: model choice, region selection,
// capture and dispatch, with a loop back to the model picker when the
// user asks to change model mid-selection.
package app

import (
	"context"
	"log"
	"time"

	"fyne.io/fyne/v2"

	"neocr/config"
	"neocr/hotkey"
	"neocr/modelui"
	"neocr/notification"
	"neocr/ocr"
	"neocr/ollama"
	"neocr/overlay"
	"neocr/screenshot"
	"neocr/session"
)

// Flow holds the three stages as swappable functions so tests can run
// the control loop without a display.
type Flow struct {
	Candidates []string

	LastModel func() string
	SaveModel func(name string)

	Pick         func(candidates []string, last string) (string, bool)
	SelectRegion func(model string) (overlay.Outcome, error)
	Dispatch     func(ctx context.Context, model string, region screenshot.Region) (string, error)
}

// New wires the real stages: fyne picker, fyne overlay with the global
// escape watcher, and the session pipeline against the Ollama backend.
func New(a fyne.App, cfg *config.Config, client *ollama.Client) *Flow {
	return &Flow{
		Candidates: ollama.DefaultVisionModels(),
		LastModel:  config.LastModel,
		SaveModel:  config.SaveLastModel,
		Pick: func(candidates []string, last string) (string, bool) {
			return modelui.Choose(a, client, candidates, last)
		},
		SelectRegion: func(model string) (overlay.Outcome, error) {
			escape, stop := hotkey.WatchEscape()
			defer stop()
			return overlay.Select(a, model, escape)
		},
		Dispatch: func(ctx context.Context, model string, region screenshot.Region) (string, error) {
			proc := ocr.New(client, model, cfg.Language)
			var notify func(string)
			if cfg.NotifyEnabled {
				notify = notification.Send
			}
			return session.Execute(ctx, session.Options{
				Region:    region,
				Deadline:  time.Duration(cfg.OCRDeadlineSec) * time.Second,
				Recognize: proc.RecognizeFile,
				Targets:   []session.ResultTarget{session.ClipboardTarget{}, session.StdoutTarget{}},
				SaveModel: func() { config.SaveLastModel(model) },
				Notify:    notify,
			})
		},
	}
}

// Run executes the flow once. A nil return with no dispatched text
// means the user cancelled; hard failures come back as errors for main
// to surface and exit non-zero.
func (f *Flow) Run(ctx context.Context) error {
	model := f.LastModel()

	for {
		name, ok := f.Pick(f.Candidates, model)
		if !ok {
			log.Printf("Model choice cancelled")
			return nil
		}
		model = name
		f.SaveModel(model)
		log.Printf("Using model: %s", model)

		outcome, err := f.SelectRegion(model)
		if err != nil {
			return err
		}
		switch outcome.Action {
		case overlay.ActionChangeModel:
			// Back to the picker; the selector restarts fresh after
			// a new choice.
			continue
		case overlay.ActionCancelled:
			log.Printf("Selection cancelled")
			return nil
		}

		log.Printf("Processing region: %+v", outcome.Region)
		text, err := f.Dispatch(ctx, model, outcome.Region)
		if err != nil {
			return err
		}
		log.Printf("Run completed, %d chars delivered", len(text))
		return nil
	}
}
