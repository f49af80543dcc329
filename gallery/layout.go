package gallery

import (
	"fyne.io/fyne/v2"
)

// stripLayout places tiles in a single row or a single column, with spacing
// around and between them.
type stripLayout struct {
	horizontal func() bool
	spacing    float32
	tile       fyne.Size
}

func (l *stripLayout) Layout(objects []fyne.CanvasObject, _ fyne.Size) {
	horizontal := l.horizontal()
	pos := fyne.NewPos(l.spacing, l.spacing)
	for _, o := range objects {
		if !o.Visible() {
			continue
		}
		o.Resize(l.tile)
		o.Move(pos)
		if horizontal {
			pos.X += l.tile.Width + l.spacing
		} else {
			pos.Y += l.tile.Height + l.spacing
		}
	}
}

func (l *stripLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	n := 0
	for _, o := range objects {
		if o.Visible() {
			n++
		}
	}

	if l.horizontal() {
		return fyne.NewSize(l.spacing+float32(n)*(l.tile.Width+l.spacing), l.tile.Height+2*l.spacing)
	}
	return fyne.NewSize(l.tile.Width+2*l.spacing, l.spacing+float32(n)*(l.tile.Height+l.spacing))
}
