package gallery

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// wheelOverlay sits above the scroll container and claims wheel events only
// while active() holds. When it is not visible the wheel reaches the scroll
// container underneath.
type wheelOverlay struct {
	widget.BaseWidget
	active  func() bool
	onWheel func(delta float32)
}

func newWheelOverlay(active func() bool, onWheel func(delta float32)) *wheelOverlay {
	w := &wheelOverlay{active: active, onWheel: onWheel}
	w.ExtendBaseWidget(w)
	return w
}

func (w *wheelOverlay) Visible() bool {
	if !w.BaseWidget.Visible() {
		return false
	}
	return w.active()
}

// Scrolled forwards the wheel with wheel-down as a positive delta.
func (w *wheelOverlay) Scrolled(e *fyne.ScrollEvent) {
	if w.onWheel == nil {
		return
	}
	w.onWheel(-e.Scrolled.DY)
}

func (w *wheelOverlay) CreateRenderer() fyne.WidgetRenderer {
	return &wheelOverlayRenderer{}
}

var _ fyne.Scrollable = (*wheelOverlay)(nil)

type wheelOverlayRenderer struct{}

func (r *wheelOverlayRenderer) Layout(fyne.Size) {}
func (r *wheelOverlayRenderer) MinSize() fyne.Size {
	return fyne.NewSize(0, 0)
}
func (r *wheelOverlayRenderer) Refresh()                     {}
func (r *wheelOverlayRenderer) Objects() []fyne.CanvasObject { return nil }
func (r *wheelOverlayRenderer) Destroy()                     {}
