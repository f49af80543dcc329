package gallery

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

type loadState int

const (
	loadPending loadState = iota
	loadLoaded
)

// thumbnail is one tile of the strip.
type thumbnail struct {
	widget.BaseWidget
	owner *Gallery
	item  Item
	size  fyne.Size
	load  loadState

	active bool

	placeholder *canvas.Rectangle
	image       *canvas.Image
	label       *widget.Label
	marker      *canvas.Rectangle
}

func newThumbnail(g *Gallery, item Item, size fyne.Size) *thumbnail {
	t := &thumbnail{
		owner:       g,
		item:        item,
		size:        size,
		placeholder: canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground)),
		image:       canvas.NewImageFromImage(nil),
		label:       widget.NewLabel(item.Name),
		marker:      canvas.NewRectangle(color.Transparent),
	}
	if item.Thumbnail == "" {
		t.load = loadLoaded
	}

	t.image.FillMode = canvas.ImageFillContain
	t.image.Hide()
	t.label.Truncation = fyne.TextTruncateEllipsis
	t.label.Alignment = fyne.TextAlignCenter
	if item.Name == "" {
		t.label.Hide()
	}
	t.marker.StrokeColor = theme.Color(theme.ColorNamePrimary)
	t.marker.StrokeWidth = 3
	t.marker.Hide()
	t.ExtendBaseWidget(t)
	return t
}

func (t *thumbnail) CreateRenderer() fyne.WidgetRenderer {
	return &thumbnailRenderer{t: t}
}

func (t *thumbnail) pending() bool {
	return t.load == loadPending
}

// applyPending hands the thumbnail source to the loader. It runs at most once.
func (t *thumbnail) applyPending(loader ThumbnailLoader) {
	if t.load != loadPending {
		return
	}
	t.load = loadLoaded

	src := t.item.Thumbnail
	loader.Load(src, t.size, func(img image.Image) {
		fyne.Do(func() {
			if img == nil || t.owner.tileFor(t.item.ID) != t {
				return
			}
			t.image.Image = img
			t.image.Show()
			t.image.Refresh()
			t.placeholder.Hide()
		})
	})
}

func (t *thumbnail) setActive(active bool) {
	t.active = active
	if active {
		t.marker.Show()
	} else {
		t.marker.Hide()
	}
	t.marker.Refresh()
}

func (t *thumbnail) Tapped(e *fyne.PointEvent) {
	t.owner.tileTapped(t, e)
}

var _ fyne.Tappable = (*thumbnail)(nil)

type thumbnailRenderer struct {
	t *thumbnail
}

func (r *thumbnailRenderer) Layout(size fyne.Size) {
	r.t.placeholder.Resize(size)
	r.t.image.Resize(size)
	r.t.marker.Resize(size)

	labelHeight := r.t.label.MinSize().Height
	r.t.label.Resize(fyne.NewSize(size.Width, labelHeight))
	r.t.label.Move(fyne.NewPos(0, size.Height-labelHeight))
}

func (r *thumbnailRenderer) MinSize() fyne.Size {
	return r.t.size
}

func (r *thumbnailRenderer) Refresh() {
	r.t.placeholder.Refresh()
	r.t.image.Refresh()
	r.t.label.Refresh()
	r.t.marker.Refresh()
}

func (r *thumbnailRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.t.placeholder, r.t.image, r.t.label, r.t.marker}
}

func (r *thumbnailRenderer) Destroy() {}
