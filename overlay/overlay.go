// Package overlay presents the fullscreen region-selection surface: a
// frozen screenshot backdrop, a live rubber-band rectangle, and the
// floating change-model / cancel controls, all inside a single fyne
// window so one event loop drives everything.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"neocr/screenshot"
	"neocr/selection"
)

// Action tells the caller how the selector surface ended.
type Action int

const (
	ActionCompleted Action = iota
	ActionCancelled
	ActionChangeModel
)

// Outcome is the result of one selector run.
type Outcome struct {
	Action Action
	Region screenshot.Region
}

var bandColor = color.NRGBA{R: 0x2d, G: 0xd4, B: 0xbf, A: 0xff}

// Select shows the overlay and blocks until the user completes a drag,
// cancels, or asks to change the model. It must be called from outside
// the fyne UI goroutine; UI work is marshalled with fyne.Do.
func Select(a fyne.App, model string, escape <-chan struct{}) (Outcome, error) {
	img, err := screenshot.Capture()
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to capture screen: %w", err)
	}
	virtual, err := screenshot.VirtualBounds()
	if err != nil {
		return Outcome{}, err
	}

	machine := selection.New()
	outcomes := make(chan Outcome, 1)
	var deliverOnce sync.Once
	deliver := func(o Outcome) {
		deliverOnce.Do(func() { outcomes <- o })
	}

	var w fyne.Window
	fyne.DoAndWait(func() {
		w = buildWindow(a, model, img, virtual, machine, deliver)
		w.Show()
	})

	// Forward global Escape presses into the UI loop; the machine's
	// idempotent Cancel absorbs duplicates from the local key handler.
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			case <-escape:
				fyne.Do(func() {
					if machine.Cancel() {
						deliver(Outcome{Action: ActionCancelled})
					}
				})
			}
		}
	}()

	outcome := <-outcomes
	fyne.DoAndWait(w.Close)
	log.Printf("Selector finished: action=%d region=%+v", outcome.Action, outcome.Region)
	return outcome, nil
}

func buildWindow(a fyne.App, model string, img image.Image, virtual image.Rectangle,
	machine *selection.Machine, deliver func(Outcome)) fyne.Window {

	w := a.NewWindow("neocr")
	w.SetPadded(false)

	backdrop := canvas.NewImageFromImage(img)
	backdrop.FillMode = canvas.ImageFillStretch

	band := canvas.NewRectangle(color.Transparent)
	band.StrokeColor = bandColor
	band.StrokeWidth = 3
	band.Hide()

	cancel := func() {
		if machine.Cancel() {
			deliver(Outcome{Action: ActionCancelled})
		}
	}

	area := newDragArea()
	area.onDown = func(p fyne.Position) {
		machine.PointerDown(int(p.X), int(p.Y))
		band.Show()
	}
	area.onMove = func(p fyne.Position) {
		machine.PointerMove(int(p.X), int(p.Y))
		refreshBand(machine, band)
	}
	area.onUp = func(p fyne.Position) {
		region, ok := machine.PointerUp(int(p.X), int(p.Y))
		if !ok {
			// Too small; back to Idle, drag again.
			band.Hide()
			refreshBand(machine, band)
			return
		}
		pixels := mapToPixels(region, w.Canvas().Size(), img.Bounds(), virtual.Min)
		deliver(Outcome{Action: ActionCompleted, Region: pixels})
	}

	hint := canvas.NewText("Click and drag to select a region. ESC cancels", bandColor)
	hint.TextSize = 14
	hint.Move(fyne.NewPos(16, 16))

	changeBtn := widget.NewButton(fmt.Sprintf("Change Model (current: %s)", model), func() {
		if machine.Cancel() {
			deliver(Outcome{Action: ActionChangeModel})
		}
	})
	cancelBtn := widget.NewButton("Cancel", cancel)

	bottomMargin := canvas.NewRectangle(color.Transparent)
	bottomMargin.SetMinSize(fyne.NewSize(0, 80))
	controls := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(container.NewHBox(changeBtn, cancelBtn)),
		bottomMargin,
	)

	w.SetContent(container.NewStack(
		backdrop,
		area,
		container.NewWithoutLayout(band, hint),
		controls,
	))

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			cancel()
		}
	})
	w.SetOnClosed(cancel)
	w.SetFullScreen(true)
	return w
}

func refreshBand(machine *selection.Machine, band *canvas.Rectangle) {
	x0, y0, x1, y1, ok := machine.Rubberband()
	if !ok {
		band.Hide()
		band.Refresh()
		return
	}
	band.Move(fyne.NewPos(float32(x0), float32(y0)))
	band.Resize(fyne.NewSize(float32(x1-x0), float32(y1-y0)))
	band.Refresh()
}

// mapToPixels converts a region in canvas points into screen pixel
// coordinates: scale from the stretched backdrop to the capture size,
// then shift by the virtual-screen origin.
func mapToPixels(r screenshot.Region, canvasSize fyne.Size, imgBounds image.Rectangle, origin image.Point) screenshot.Region {
	scaleX := float32(1)
	scaleY := float32(1)
	if canvasSize.Width > 0 {
		scaleX = float32(imgBounds.Dx()) / canvasSize.Width
	}
	if canvasSize.Height > 0 {
		scaleY = float32(imgBounds.Dy()) / canvasSize.Height
	}

	return screenshot.Region{
		X:      origin.X + round(float32(r.X)*scaleX),
		Y:      origin.Y + round(float32(r.Y)*scaleY),
		Width:  round(float32(r.Width) * scaleX),
		Height: round(float32(r.Height) * scaleY),
	}
}

func round(v float32) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
