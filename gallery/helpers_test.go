package gallery

import (
	"fmt"
	"image"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
)

type fakeHost struct {
	viewport  fyne.Size
	listeners map[int]func(*fyne.PointEvent)
	nextID    int

	mounted   []fyne.CanvasObject
	events    []string
	onUnmount func()
}

func newFakeHost(width, height float32) *fakeHost {
	return &fakeHost{
		viewport:  fyne.NewSize(width, height),
		listeners: make(map[int]func(*fyne.PointEvent)),
	}
}

func (h *fakeHost) ViewportSize() fyne.Size { return h.viewport }

func (h *fakeHost) OnPointerUp(fn func(*fyne.PointEvent)) func() {
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	return func() {
		delete(h.listeners, id)
		h.events = append(h.events, "remove-listener")
	}
}

func (h *fakeHost) release() {
	for _, fn := range h.listeners {
		fn(&fyne.PointEvent{})
	}
}

func (h *fakeHost) Mount(obj fyne.CanvasObject) {
	h.mounted = append(h.mounted, obj)
	h.events = append(h.events, "mount")
}

func (h *fakeHost) Unmount(obj fyne.CanvasObject) {
	if h.onUnmount != nil {
		h.onUnmount()
	}
	for i, o := range h.mounted {
		if o == obj {
			h.mounted = append(h.mounted[:i], h.mounted[i+1:]...)
			break
		}
	}
	h.events = append(h.events, "unmount")
}

type recordingOwner struct {
	clicked []ItemID
	hidden  int
}

func (o *recordingOwner) ItemClicked(id ItemID) { o.clicked = append(o.clicked, id) }
func (o *recordingOwner) Hide()                 { o.hidden++ }

type countingLoader struct {
	calls map[string]int
}

func newCountingLoader() *countingLoader {
	return &countingLoader{calls: make(map[string]int)}
}

func (l *countingLoader) Load(src string, size fyne.Size, callback func(image.Image)) {
	l.calls[src]++
}

func (l *countingLoader) total() int {
	n := 0
	for _, c := range l.calls {
		n += c
	}
	return n
}

const (
	testSpacing    = 8
	testBreakpoint = 500
)

var testThumb = ThumbnailSize{Width: 100, Height: 50}

func makeItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{
			ID:        ItemID(fmt.Sprintf("item-%02d", i)),
			Name:      fmt.Sprintf("Item %d", i),
			Thumbnail: fmt.Sprintf("/tmp/thumb-%02d.jpg", i),
		}
	}
	return items
}

// newTestGallery builds a visible gallery inside a test window of the given
// size. The host viewport has the same size as the window.
func newTestGallery(t *testing.T, width, height float32) (*Gallery, *fakeHost, *recordingOwner, *countingLoader) {
	t.Helper()
	a := test.NewApp()
	a.Settings().SetTheme(WithMetrics(theme.DefaultTheme(), testSpacing, testBreakpoint))

	host := newFakeHost(width, height)
	owner := &recordingOwner{}
	loader := newCountingLoader()

	g := New(owner, host)
	g.loader = loader
	g.Show()

	win := test.NewTempWindow(t, g)
	win.Resize(fyne.NewSize(width, height))
	return g, host, owner, loader
}

// deferredLoader keeps callbacks so a test decides when a thumbnail arrives.
type deferredLoader struct {
	callbacks map[string]func(image.Image)
}

func newDeferredLoader() *deferredLoader {
	return &deferredLoader{callbacks: make(map[string]func(image.Image))}
}

func (l *deferredLoader) Load(src string, size fyne.Size, callback func(image.Image)) {
	l.callbacks[src] = callback
}

func (l *deferredLoader) deliver(src string) bool {
	cb, ok := l.callbacks[src]
	if ok {
		cb(image.NewRGBA(image.Rect(0, 0, 4, 2)))
	}
	return ok
}
