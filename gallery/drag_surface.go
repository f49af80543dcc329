package gallery

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// dragSurface wraps the tiles inside the scroll container and receives press,
// drag and release. It does not implement Tappable so taps reach the tiles.
type dragSurface struct {
	widget.BaseWidget
	content fyne.CanvasObject

	onPress   func(abs fyne.Position)
	onMove    func(abs, dragged fyne.Position)
	onRelease func(e *fyne.PointEvent)
}

func newDragSurface(content fyne.CanvasObject) *dragSurface {
	s := &dragSurface{content: content}
	s.ExtendBaseWidget(s)
	return s
}

func (s *dragSurface) CreateRenderer() fyne.WidgetRenderer {
	return &dragSurfaceRenderer{s: s}
}

func (s *dragSurface) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || s.onPress == nil {
		return
	}
	s.onPress(e.AbsolutePosition)
}

func (s *dragSurface) MouseUp(e *desktop.MouseEvent) {
	if s.onRelease != nil {
		s.onRelease(&e.PointEvent)
	}
}

func (s *dragSurface) Dragged(e *fyne.DragEvent) {
	if s.onMove != nil {
		s.onMove(e.AbsolutePosition, fyne.NewPos(e.Dragged.DX, e.Dragged.DY))
	}
}

func (s *dragSurface) DragEnd() {
	if s.onRelease != nil {
		s.onRelease(nil)
	}
}

var (
	_ fyne.Draggable    = (*dragSurface)(nil)
	_ desktop.Mouseable = (*dragSurface)(nil)
)

type dragSurfaceRenderer struct {
	s *dragSurface
}

func (r *dragSurfaceRenderer) Layout(size fyne.Size) {
	r.s.content.Resize(size)
	r.s.content.Move(fyne.NewPos(0, 0))
}

func (r *dragSurfaceRenderer) MinSize() fyne.Size {
	return r.s.content.MinSize()
}

func (r *dragSurfaceRenderer) Refresh() {
	r.s.content.Refresh()
}

func (r *dragSurfaceRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.s.content}
}

func (r *dragSurfaceRenderer) Destroy() {}
