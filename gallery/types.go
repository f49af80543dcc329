package gallery

import (
	"fyne.io/fyne/v2"
)

// ItemID identifies a gallery item. The empty ID means "no item".
type ItemID string

// Item is one entry of the gallery.
type Item struct {
	ID ItemID
	// Name is shown over the thumbnail, if set.
	Name string
	// Thumbnail is a path or URI of the thumbnail image.
	Thumbnail string
	// Panorama is passed back to the viewer when the item is selected.
	Panorama string
}

// ThumbnailSize is the display size of every tile.
type ThumbnailSize struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

func (s ThumbnailSize) size() fyne.Size {
	return fyne.NewSize(s.Width, s.Height)
}

const (
	// DragClickThreshold is the pointer travel, in pixels, from press to click
	// below which the click selects an item instead of ending a drag.
	DragClickThreshold float32 = 10

	// DefaultBreakpoint is used when the theme does not define SizeNameGalleryBreakpoint.
	DefaultBreakpoint float32 = 500

	// SizeNameGallerySpacing is the theme size for the gap between tiles.
	SizeNameGallerySpacing fyne.ThemeSizeName = "galleryItemSpacing"
	// SizeNameGalleryBreakpoint is the theme size for the viewport width above
	// which the gallery scrolls horizontally.
	SizeNameGalleryBreakpoint fyne.ThemeSizeName = "galleryBreakpoint"

	visibleKey = "xgallery:visible"
)

// Owner is the controller that feeds the gallery and reacts to clicks.
type Owner interface {
	ItemClicked(id ItemID)
	Hide()
}

// Host is the viewer the gallery is mounted in.
type Host interface {
	// ViewportSize reports the size of the area the viewer is displayed in.
	ViewportSize() fyne.Size
	// OnPointerUp registers fn for pointer releases anywhere in the viewer.
	OnPointerUp(fn func(*fyne.PointEvent)) (remove func())
	Mount(obj fyne.CanvasObject)
	Unmount(obj fyne.CanvasObject)
}
