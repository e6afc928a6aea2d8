// Package modelui is the model-choice window: a list of vision-capable
// candidates with the last-used name pre-selected, a free-text override,
// and a live refresh that can never block confirmation.
package modelui

import (
	"context"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"neocr/ollama"
)

type choice struct {
	name string
	ok   bool
}

// Choose presents the candidates and blocks until the user confirms or
// cancels. It must be called from outside the fyne UI goroutine.
// Returns the chosen name and false on cancellation.
func Choose(a fyne.App, client *ollama.Client, candidates []string, last string) (string, bool) {
	if len(candidates) == 0 {
		candidates = ollama.DefaultVisionModels()
	}

	results := make(chan choice, 1)
	var once sync.Once
	deliver := func(c choice) {
		once.Do(func() { results <- c })
	}

	fyne.DoAndWait(func() {
		buildWindow(a, client, candidates, last, deliver).Show()
	})

	c := <-results
	return c.name, c.ok
}

func buildWindow(a fyne.App, client *ollama.Client, candidates []string, last string,
	deliver func(choice)) fyne.Window {

	w := a.NewWindow("Select Ollama Model")

	sel := widget.NewSelect(candidates, nil)
	sel.SetSelected(preselect(candidates, last))

	entry := widget.NewEntry()
	entry.SetPlaceHolder("custom model name")

	confirm := func() {
		name := strings.TrimSpace(entry.Text)
		if name == "" {
			name = sel.Selected
		}
		if name == "" {
			return
		}
		deliver(choice{name: name, ok: true})
		w.Close()
	}
	cancel := func() {
		deliver(choice{})
		w.Close()
	}

	refreshBtn := widget.NewButton("Refresh", nil)
	refreshBtn.OnTapped = func() {
		refreshBtn.Disable()
		go func() {
			// Fail-soft: VisionModels falls back to the built-in
			// list, so the select always keeps usable options.
			models := client.VisionModels(context.Background())
			fyne.Do(func() {
				current := sel.Selected
				sel.Options = models
				sel.SetSelected(preselect(models, current))
				sel.Refresh()
				refreshBtn.Enable()
			})
		}()
	}

	continueBtn := widget.NewButton("Continue", confirm)
	continueBtn.Importance = widget.HighImportance
	cancelBtn := widget.NewButton("Cancel", cancel)

	w.SetContent(container.NewVBox(
		widget.NewLabelWithStyle("Select Ollama Model", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, widget.NewLabel("Vision Model:"), refreshBtn),
		sel,
		widget.NewLabel("Or enter custom model:"),
		entry,
		container.NewHBox(layout.NewSpacer(), cancelBtn, continueBtn),
	))

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyReturn, fyne.KeyEnter:
			confirm()
		case fyne.KeyEscape:
			cancel()
		}
	})
	w.SetOnClosed(cancel)
	w.Resize(fyne.NewSize(520, 320))
	w.CenterOnScreen()
	w.Canvas().Focus(entry)
	return w
}

// preselect returns the previously-used name when it is still offered,
// otherwise the list's first entry.
func preselect(candidates []string, last string) string {
	if len(candidates) == 0 {
		return ""
	}
	for _, c := range candidates {
		if c == last {
			return last
		}
	}
	return candidates[0]
}
