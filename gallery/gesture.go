package gallery

import (
	"math"

	"fyne.io/fyne/v2"
)

type axis int

const (
	axisHorizontal axis = iota
	axisVertical
)

func (a axis) coord(p fyne.Position) float32 {
	if a == axisHorizontal {
		return p.X
	}
	return p.Y
}

func (a axis) shift(p fyne.Position, d float32) fyne.Position {
	if a == axisHorizontal {
		return fyne.NewPos(p.X+d, p.Y)
	}
	return fyne.NewPos(p.X, p.Y+d)
}

// optional is a pointer coordinate that may be unset.
type optional struct {
	v   float32
	set bool
}

func some(v float32) optional { return optional{v: v, set: true} }

type visualState struct {
	visible     bool
	dragging    bool
	dragAnchor  optional
	lastPointer optional
	itemSpacing float32
	breakpoint  float32
}

// scrollSurface is the part of the scroll container the gestures drive.
type scrollSurface interface {
	scrollOffset() fyne.Position
	scrollTo(fyne.Position)
}

// gesture turns raw pointer input into scrolling and clicks. The axis is
// asked for on every event, so a resize during a drag switches it.
type gesture struct {
	state     *visualState
	axis      func() axis
	surface   scrollSurface
	tileWidth func() float32
}

func (g *gesture) pointerDown(p fyne.Position) {
	c := g.axis().coord(p)
	g.state.dragging = true
	g.state.dragAnchor = some(c)
	g.state.lastPointer = some(c)
}

func (g *gesture) pointerMove(p fyne.Position) {
	if !g.state.dragging {
		return
	}
	a := g.axis()
	c := a.coord(p)
	delta := g.state.lastPointer.v - c
	g.surface.scrollTo(a.shift(g.surface.scrollOffset(), delta))
	g.state.lastPointer = some(c)
}

func (g *gesture) pointerUp() {
	g.state.dragging = false
	g.state.lastPointer = optional{}
}

// wheel scrolls one tile per notch on the horizontal axis and reports whether
// it consumed the event. delta > 0 advances the strip.
func (g *gesture) wheel(delta float32) bool {
	if g.axis() != axisHorizontal {
		return false
	}
	if delta == 0 || math.IsNaN(float64(delta)) {
		return true
	}
	step := g.tileWidth() + g.state.itemSpacing
	if delta < 0 {
		step = -step
	}
	g.surface.scrollTo(axisHorizontal.shift(g.surface.scrollOffset(), step))
	return true
}

// click reports whether a click at p is a genuine click rather than the tail
// of a drag.
func (g *gesture) click(p fyne.Position) bool {
	anchor := g.state.dragAnchor
	g.state.dragAnchor = optional{}
	if !anchor.set {
		return true
	}
	d := anchor.v - g.axis().coord(p)
	if d < 0 {
		d = -d
	}
	return d < DragClickThreshold
}
