package overlay

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// dragArea is a transparent widget stretched over the backdrop that
// feeds pointer events to the selection machine. It implements both the
// raw mouse interfaces and fyne's drag interface so movement keeps
// arriving while the primary button is held.
type dragArea struct {
	widget.BaseWidget

	onDown func(fyne.Position)
	onMove func(fyne.Position)
	onUp   func(fyne.Position)
}

var (
	_ desktop.Mouseable  = (*dragArea)(nil)
	_ desktop.Hoverable  = (*dragArea)(nil)
	_ desktop.Cursorable = (*dragArea)(nil)
	_ fyne.Draggable     = (*dragArea)(nil)
)

func newDragArea() *dragArea {
	a := &dragArea{}
	a.ExtendBaseWidget(a)
	return a
}

func (a *dragArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}

func (a *dragArea) Cursor() desktop.Cursor {
	return desktop.CrosshairCursor
}

func (a *dragArea) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button == desktop.MouseButtonPrimary && a.onDown != nil {
		a.onDown(ev.Position)
	}
}

func (a *dragArea) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button == desktop.MouseButtonPrimary && a.onUp != nil {
		a.onUp(ev.Position)
	}
}

func (a *dragArea) MouseIn(*desktop.MouseEvent) {}

func (a *dragArea) MouseMoved(ev *desktop.MouseEvent) {
	if a.onMove != nil {
		a.onMove(ev.Position)
	}
}

func (a *dragArea) MouseOut() {}

func (a *dragArea) Dragged(ev *fyne.DragEvent) {
	if a.onMove != nil {
		a.onMove(ev.Position)
	}
}

func (a *dragArea) DragEnd() {}
