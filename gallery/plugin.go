package gallery

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
)

var (
	ErrMissingID   = errors.New("gallery item has no id")
	ErrDuplicateID = errors.New("gallery item id is not unique")
)

// Plugin owns a Gallery: it keeps the item list, tracks the current item and
// turns clicks into selections.
type Plugin struct {
	config  Config
	gallery *Gallery

	items   []Item
	current ItemID
	loaded  bool

	// OnSelect is called when the user picks an item other than the current one.
	OnSelect func(item Item)
}

// NewPlugin creates the plugin and mounts its gallery into host.
func NewPlugin(host Host, config Config) *Plugin {
	p := &Plugin{config: config}
	p.gallery = New(p, host)
	return p
}

// SetItems replaces the gallery content. Every item needs a unique id.
func (p *Plugin) SetItems(items []Item) error {
	seen := make(map[ItemID]bool, len(items))
	for i, item := range items {
		if item.ID == "" {
			return fmt.Errorf("item %d: %w", i, ErrMissingID)
		}
		if seen[item.ID] {
			return fmt.Errorf("item %d (%s): %w", i, item.ID, ErrDuplicateID)
		}
		seen[item.ID] = true
	}

	p.items = append([]Item(nil), items...)
	p.gallery.SetItems(p.items, p.config.ThumbnailSize)
	p.gallery.SetActive(p.current)

	if len(items) > 0 && !p.loaded {
		p.loaded = true
		if p.config.VisibleOnLoad || fyne.CurrentApp().Preferences().Bool(visibleKey) {
			p.Show()
		}
	}
	return nil
}

// Items returns a copy of the displayed items.
func (p *Plugin) Items() []Item {
	return append([]Item(nil), p.items...)
}

// SetCurrent records id as the item shown by the viewer and highlights it.
func (p *Plugin) SetCurrent(id ItemID) {
	p.current = id
	p.gallery.SetActive(id)
}

// Current returns the id of the item shown by the viewer.
func (p *Plugin) Current() ItemID {
	return p.current
}

func (p *Plugin) ItemClicked(id ItemID) {
	if id == p.current {
		return
	}
	item, ok := p.item(id)
	if !ok {
		return
	}

	if p.OnSelect != nil {
		p.OnSelect(item)
	}
	p.SetCurrent(id)

	if p.config.HideOnClick {
		p.Hide()
	}
}

func (p *Plugin) Show() {
	p.gallery.Show()
	fyne.CurrentApp().Preferences().SetBool(visibleKey, true)
}

func (p *Plugin) Hide() {
	p.gallery.Hide()
	fyne.CurrentApp().Preferences().SetBool(visibleKey, false)
}

func (p *Plugin) Toggle() {
	if p.Visible() {
		p.Hide()
	} else {
		p.Show()
	}
}

func (p *Plugin) Visible() bool {
	return p.gallery.state.visible
}

// Destroy tears down the gallery.
func (p *Plugin) Destroy() {
	p.gallery.Destroy()
}

func (p *Plugin) item(id ItemID) (Item, bool) {
	for _, item := range p.items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}
