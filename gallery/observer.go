package gallery

import (
	"fyne.io/fyne/v2"
)

type intersection struct {
	target *thumbnail
	ratio  float32
}

// visibilityObserver reports how much of each observed tile lies inside the
// root rectangle. Only tiles whose ratio changed since the previous check are
// reported; a newly observed tile is always reported on the next check.
type visibilityObserver struct {
	root     func() (fyne.Position, fyne.Size)
	callback func([]intersection)

	targets []*thumbnail
	ratios  map[*thumbnail]float32
}

func newVisibilityObserver(root func() (fyne.Position, fyne.Size), callback func([]intersection)) *visibilityObserver {
	return &visibilityObserver{
		root:     root,
		callback: callback,
		ratios:   make(map[*thumbnail]float32),
	}
}

func (o *visibilityObserver) observe(t *thumbnail) {
	if _, ok := o.ratios[t]; ok {
		return
	}
	o.targets = append(o.targets, t)
	o.ratios[t] = -1
}

func (o *visibilityObserver) unobserve(t *thumbnail) {
	if _, ok := o.ratios[t]; !ok {
		return
	}
	delete(o.ratios, t)
	for i, target := range o.targets {
		if target == t {
			o.targets = append(o.targets[:i], o.targets[i+1:]...)
			break
		}
	}
}

func (o *visibilityObserver) disconnect() {
	o.targets = nil
	o.ratios = make(map[*thumbnail]float32)
}

func (o *visibilityObserver) observed() int {
	return len(o.targets)
}

func (o *visibilityObserver) check() {
	if len(o.targets) == 0 {
		return
	}

	pos, size := o.root()
	var entries []intersection
	for _, t := range o.targets {
		r := intersectionRatio(pos, size, t.Position(), t.Size())
		if r == o.ratios[t] {
			continue
		}
		o.ratios[t] = r
		entries = append(entries, intersection{target: t, ratio: r})
	}

	if len(entries) > 0 {
		o.callback(entries)
	}
}

// intersectionRatio is the share of the target's area covered by the root.
func intersectionRatio(rootPos fyne.Position, rootSize fyne.Size, pos fyne.Position, size fyne.Size) float32 {
	area := size.Width * size.Height
	if area <= 0 {
		return 0
	}

	x1 := max32(rootPos.X, pos.X)
	y1 := max32(rootPos.Y, pos.Y)
	x2 := min32(rootPos.X+rootSize.Width, pos.X+size.Width)
	y2 := min32(rootPos.Y+rootSize.Height, pos.Y+size.Height)
	if x2 <= x1 || y2 <= y1 {
		return 0
	}
	return (x2 - x1) * (y2 - y1) / area
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
