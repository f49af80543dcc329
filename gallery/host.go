package gallery

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// WindowHost mounts a gallery below a viewer inside a fyne window.
//
// fyne only delivers a release to the object that was pressed; the viewer
// must call ReleasePointer from its own MouseUp and DragEnd so that listeners
// see releases anywhere in the window.
type WindowHost struct {
	window  fyne.Window
	viewer  fyne.CanvasObject
	content *fyne.Container
	slot    *fyne.Container

	listeners map[int]func(*fyne.PointEvent)
	nextID    int
}

// NewWindowHost sets the window content to viewer with an empty gallery slot below it.
func NewWindowHost(w fyne.Window, viewer fyne.CanvasObject) *WindowHost {
	h := &WindowHost{
		window:    w,
		viewer:    viewer,
		slot:      container.NewStack(),
		listeners: make(map[int]func(*fyne.PointEvent)),
	}
	h.content = container.NewBorder(nil, h.slot, nil, nil, viewer)
	w.SetContent(h.content)
	return h
}

func (h *WindowHost) ViewportSize() fyne.Size {
	return h.window.Canvas().Size()
}

func (h *WindowHost) OnPointerUp(fn func(*fyne.PointEvent)) (remove func()) {
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	return func() {
		delete(h.listeners, id)
	}
}

// ReleasePointer notifies every pointer-up listener.
func (h *WindowHost) ReleasePointer(e *fyne.PointEvent) {
	for _, fn := range h.listeners {
		fn(e)
	}
}

// Listeners reports how many pointer-up listeners are registered.
func (h *WindowHost) Listeners() int {
	return len(h.listeners)
}

func (h *WindowHost) Mount(obj fyne.CanvasObject) {
	h.slot.Add(obj)
}

func (h *WindowHost) Unmount(obj fyne.CanvasObject) {
	h.slot.Remove(obj)
}
