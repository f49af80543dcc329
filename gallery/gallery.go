// Package gallery provides a scrollable thumbnail strip for a panorama viewer.
package gallery

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Gallery is a strip of thumbnails. It scrolls horizontally when the viewport
// is wider than the breakpoint and vertically otherwise.
//
// All methods must be called on the fyne UI goroutine.
type Gallery struct {
	widget.BaseWidget

	owner  Owner
	host   Host
	loader ThumbnailLoader

	state    visualState
	gesture  *gesture
	observer *visibilityObserver

	thumbSize ThumbnailSize
	tiles     []*thumbnail

	strip    *stripLayout
	items    *fyne.Container
	surface  *dragSurface
	scroll   *container.Scroll
	wheel    *wheelOverlay
	closeBtn *widget.Button
	bg       *canvas.Rectangle

	removePointerUp func()
	destroyed       bool

	// pressless is set while the current drag was opened without a press,
	// as touch drivers do.
	pressless bool
}

// New creates a gallery reporting to owner and mounts it into host. The
// gallery starts hidden.
//
// Spacing and breakpoint are read once from the app theme, before mounting.
func New(owner Owner, host Host) *Gallery {
	g := &Gallery{
		owner: owner,
		host:  host,
		state: visualState{visible: true},
	}
	g.ExtendBaseWidget(g)
	g.state.itemSpacing, g.state.breakpoint = readMetrics(g.Theme())

	g.strip = &stripLayout{horizontal: g.aboveBreakpoint, spacing: g.state.itemSpacing}
	g.items = container.New(g.strip)

	g.surface = newDragSurface(g.items)
	g.surface.onPress = g.pointerPressed
	g.surface.onMove = g.pointerDragged
	g.surface.onRelease = g.pointerReleased

	g.scroll = container.NewScroll(g.surface)
	g.scroll.OnScrolled = func(fyne.Position) {
		g.checkVisibility()
	}

	g.wheel = newWheelOverlay(g.aboveBreakpoint, g.wheelScrolled)
	g.closeBtn = widget.NewButtonWithIcon("", theme.CancelIcon(), func() {
		g.owner.Hide()
	})
	g.closeBtn.Importance = widget.LowImportance
	g.bg = canvas.NewRectangle(theme.Color(theme.ColorNameOverlayBackground))

	g.observer = newVisibilityObserver(g.viewportRect, g.intersected)
	g.gesture = &gesture{
		state:   &g.state,
		axis:    g.axis,
		surface: g,
		tileWidth: func() float32 {
			return g.thumbSize.Width
		},
	}

	g.removePointerUp = host.OnPointerUp(g.pointerReleased)
	host.Mount(g)
	g.Hide()
	return g
}

// readMetrics returns the tile spacing and the breakpoint defined by th.
func readMetrics(th fyne.Theme) (spacing, breakpoint float32) {
	spacing = th.Size(SizeNameGallerySpacing)
	if spacing <= 0 {
		spacing = th.Size(theme.SizeNamePadding)
	}
	breakpoint = th.Size(SizeNameGalleryBreakpoint)
	if breakpoint <= 0 {
		breakpoint = DefaultBreakpoint
	}
	return spacing, breakpoint
}

func (g *Gallery) CreateRenderer() fyne.WidgetRenderer {
	return &galleryRenderer{g: g, horizontal: g.aboveBreakpoint()}
}

// SetItems replaces every tile with the given items, displayed at size.
func (g *Gallery) SetItems(items []Item, size ThumbnailSize) {
	g.thumbSize = size
	g.strip.tile = size.size()

	g.tiles = make([]*thumbnail, len(items))
	objects := make([]fyne.CanvasObject, len(items))
	for i, item := range items {
		t := newThumbnail(g, item, size.size())
		g.tiles[i] = t
		objects[i] = t
	}
	g.items.Objects = objects
	g.items.Refresh()
	g.surface.Resize(g.surface.MinSize().Max(g.scroll.Size()))
	g.scroll.Refresh()

	g.observer.disconnect()
	for _, t := range g.tiles {
		if t.pending() {
			g.observer.observe(t)
		}
	}
	g.checkVisibility()
}

// SetActive marks the item with the given id as active and centers it.
// An empty id or an id that is not displayed leaves no item active.
func (g *Gallery) SetActive(id ItemID) {
	for _, t := range g.tiles {
		if t.active {
			t.setActive(false)
			break
		}
	}

	if id == "" {
		return
	}
	next := g.tileFor(id)
	if next == nil {
		return
	}
	next.setActive(true)

	x := next.Position().X + next.Size().Width/2 - g.scroll.Size().Width/2
	g.scrollTo(fyne.NewPos(x, g.scroll.Offset.Y))
}

// Show opens the gallery.
func (g *Gallery) Show() {
	g.state.visible = true
	g.BaseWidget.Show()
	g.checkVisibility()
}

// Hide closes the gallery without discarding its tiles.
func (g *Gallery) Hide() {
	g.state.visible = false
	g.BaseWidget.Hide()
}

// Destroy releases the pointer listener and the visibility observer, then
// unmounts the gallery from its host. Further calls do nothing.
func (g *Gallery) Destroy() {
	if g.destroyed {
		return
	}
	g.destroyed = true

	if g.removePointerUp != nil {
		g.removePointerUp()
		g.removePointerUp = nil
	}
	g.observer.disconnect()
	g.scroll.OnScrolled = nil

	g.host.Unmount(g)
}

func (g *Gallery) tileFor(id ItemID) *thumbnail {
	for _, t := range g.tiles {
		if t.item.ID == id {
			return t
		}
	}
	return nil
}

func (g *Gallery) thumbnailLoader() ThumbnailLoader {
	if g.loader == nil {
		g.loader = GetThumbnailManager()
	}
	return g.loader
}

func (g *Gallery) aboveBreakpoint() bool {
	return g.host.ViewportSize().Width > g.state.breakpoint
}

func (g *Gallery) axis() axis {
	if g.aboveBreakpoint() {
		return axisHorizontal
	}
	return axisVertical
}

func (g *Gallery) scrollOffset() fyne.Position {
	return g.scroll.Offset
}

func (g *Gallery) scrollTo(p fyne.Position) {
	g.scroll.ScrollToOffset(p)
	g.checkVisibility()
}

func (g *Gallery) viewportRect() (fyne.Position, fyne.Size) {
	return g.scroll.Offset, g.scroll.Size()
}

func (g *Gallery) checkVisibility() {
	if !g.state.visible || g.destroyed {
		return
	}
	g.observer.check()
}

func (g *Gallery) intersected(entries []intersection) {
	for _, e := range entries {
		if e.ratio <= 0 {
			continue
		}
		e.target.applyPending(g.thumbnailLoader())
		g.observer.unobserve(e.target)
	}
}

func (g *Gallery) pointerPressed(abs fyne.Position) {
	if g.destroyed {
		return
	}
	g.pressless = false
	g.gesture.pointerDown(abs)
}

func (g *Gallery) pointerDragged(abs, dragged fyne.Position) {
	if g.destroyed {
		return
	}
	if !g.state.dragging {
		g.pressless = true
		g.gesture.pointerDown(abs.Subtract(dragged))
	}
	g.gesture.pointerMove(abs)
}

func (g *Gallery) pointerReleased(*fyne.PointEvent) {
	g.gesture.pointerUp()
	// No tap follows a touch drag, so its anchor would outlive it.
	if g.pressless {
		g.pressless = false
		g.state.dragAnchor = optional{}
	}
}

func (g *Gallery) wheelScrolled(delta float32) {
	if g.destroyed {
		return
	}
	g.gesture.wheel(delta)
}

func (g *Gallery) tileTapped(t *thumbnail, e *fyne.PointEvent) {
	if g.destroyed {
		return
	}
	if g.gesture.click(e.AbsolutePosition) {
		g.owner.ItemClicked(t.item.ID)
	}
}

type galleryRenderer struct {
	g          *Gallery
	horizontal bool
}

func (r *galleryRenderer) Layout(size fyne.Size) {
	g := r.g
	if h := g.aboveBreakpoint(); h != r.horizontal {
		r.horizontal = h
		g.items.Refresh()
	}

	g.bg.Resize(size)
	g.scroll.Resize(size)
	g.wheel.Resize(size)

	btn := g.closeBtn.MinSize()
	g.closeBtn.Resize(btn)
	g.closeBtn.Move(fyne.NewPos(size.Width-btn.Width, 0))

	g.checkVisibility()
}

func (r *galleryRenderer) MinSize() fyne.Size {
	s := r.g.state.itemSpacing * 2
	return fyne.NewSize(r.g.thumbSize.Width+s, r.g.thumbSize.Height+s)
}

func (r *galleryRenderer) Refresh() {
	r.g.bg.FillColor = theme.Color(theme.ColorNameOverlayBackground)
	r.g.bg.Refresh()
	r.g.scroll.Refresh()
	r.g.closeBtn.Refresh()
}

func (r *galleryRenderer) Objects() []fyne.CanvasObject {
	g := r.g
	return []fyne.CanvasObject{g.bg, g.scroll, g.wheel, g.closeBtn}
}

func (r *galleryRenderer) Destroy() {}
