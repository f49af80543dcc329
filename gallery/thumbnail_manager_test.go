package gallery

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
)

func writeTestPNG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestThumbnailManager_ProcessScalesAndCaches(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "wide.png")
	writeTestPNG(t, src, 400, 100, color.RGBA{R: 255, A: 255})

	m := newThumbnailManager(filepath.Join(tmpDir, "cache"))
	_ = os.MkdirAll(m.cacheDir, 0755)
	size := fyne.NewSize(100, 50)

	var result image.Image
	m.process(thumbnailRequest{src: src, size: size, callback: func(img image.Image) {
		result = img
	}})

	if result == nil {
		t.Fatal("Thumbnail generation failed")
	}
	bounds := result.Bounds()
	if bounds.Dx() != 200 || bounds.Dy() != 100 {
		t.Fatalf("Expected 200x100 thumbnail, got %dx%d", bounds.Dx(), bounds.Dy())
	}

	// 4:1 into 2:1 leaves black bars above and below.
	r, g, b, _ := result.At(100, 5).RGBA()
	if r > 1000 || g > 1000 || b > 1000 {
		t.Errorf("Expected black top bar, got R:%d G:%d B:%d", r, g, b)
	}
	r, g, b, _ = result.At(100, 50).RGBA()
	if r < 50000 || g > 10000 || b > 10000 {
		t.Errorf("Expected red center, got R:%d G:%d B:%d", r, g, b)
	}

	if m.LoadMemoryOnly(src, size) == nil {
		t.Error("Expected thumbnail in memory cache")
	}
	if m.LoadMemoryOnly(src, fyne.NewSize(80, 40)) != nil {
		t.Error("Expected memory cache to be keyed by size")
	}

	// A fresh manager on the same directory finds the disk copy.
	fresh := newThumbnailManager(m.cacheDir)
	var fromDisk image.Image
	fresh.Load(src, size, func(img image.Image) { fromDisk = img })
	if fromDisk == nil {
		t.Fatal("Expected thumbnail from disk cache")
	}
	if fresh.LoadMemoryOnly(src, size) == nil {
		t.Error("Expected disk hit to populate memory cache")
	}
}

func TestThumbnailManager_FileURISource(t *testing.T) {
	test.NewApp()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "square.png")
	writeTestPNG(t, path, 64, 64, color.White)

	uri := storage.NewFileURI(path).String()
	if p, ok := localPath(uri); !ok || p != path {
		t.Fatalf("expected %s to resolve to %s, got %q %v", uri, path, p, ok)
	}

	m := newThumbnailManager("")
	var result image.Image
	m.process(thumbnailRequest{src: uri, size: fyne.NewSize(32, 32), callback: func(img image.Image) {
		result = img
	}})
	if result == nil || result.Bounds().Dx() != 64 {
		t.Fatalf("expected a 64px thumbnail, got %v", result)
	}
}

func TestThumbnailManager_MissingSourceSkipsCallback(t *testing.T) {
	m := newThumbnailManager("")
	called := false
	m.process(thumbnailRequest{src: filepath.Join(t.TempDir(), "missing.png"), size: fyne.NewSize(10, 10), callback: func(image.Image) {
		called = true
	}})
	if called {
		t.Fatal("expected no callback for a missing source")
	}
}

func TestThumbnailManager_QueueDropsOldest(t *testing.T) {
	m := newThumbnailManager("")
	for i := 0; i < maxPendingRequests+5; i++ {
		m.Load(filepath.Join("/nonexistent", string(rune('a'+i%26)), "x.png"), fyne.NewSize(float32(i+1), 1), func(image.Image) {})
	}
	if len(m.requests) != maxPendingRequests {
		t.Fatalf("expected %d queued requests, got %d", maxPendingRequests, len(m.requests))
	}
	if m.requests[0].size.Width != 6 {
		t.Fatalf("expected the 5 oldest requests to be dropped, first has width %v", m.requests[0].size.Width)
	}
}

func TestLetterbox_Portrait(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 50, 100))
	dst := letterbox(src, 100, 100)
	if dst == nil || dst.Bounds().Dx() != 100 || dst.Bounds().Dy() != 100 {
		t.Fatalf("expected 100x100 canvas, got %v", dst)
	}
	if letterbox(image.NewRGBA(image.Rect(0, 0, 0, 10)), 10, 10) != nil {
		t.Fatal("expected nil for an empty source")
	}
}

func TestThumbnailManager_GenerateCacheKey(t *testing.T) {
	tm := &ThumbnailManager{}
	size := fyne.NewSize(200, 100)

	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "pano.jpg")
	_ = os.WriteFile(filePath, make([]byte, 100*1024), 0644)

	key1, err := tm.generateCacheKey(filePath, size)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}

	key2, err := tm.generateCacheKey(filePath, size)
	if err != nil {
		t.Fatalf("Failed to generate key2: %v", err)
	}
	if key1 != key2 {
		t.Errorf("Keys should be identical for same file: %s != %s", key1, key2)
	}

	other, _ := tm.generateCacheKey(filePath, fyne.NewSize(100, 50))
	if other == key1 {
		t.Error("Key should change with the thumbnail size")
	}

	time.Sleep(10 * time.Millisecond)
	now := time.Now()
	_ = os.Chtimes(filePath, now, now)

	key3, err := tm.generateCacheKey(filePath, size)
	if err != nil {
		t.Fatalf("Failed to generate key3: %v", err)
	}
	if key3 == key1 {
		t.Error("Key should change when modification time changes")
	}

	f, _ := os.OpenFile(filePath, os.O_WRONLY, 0644)
	f.Write([]byte("change"))
	f.Close()
	_ = os.Chtimes(filePath, now, now)

	key4, err := tm.generateCacheKey(filePath, size)
	if err != nil {
		t.Fatalf("Failed to generate key4: %v", err)
	}
	if key4 == key3 {
		t.Error("Key should change when first 32KB content changes")
	}
}

func TestThumbnailManager_CleanupCache(t *testing.T) {
	tmpDir := t.TempDir()
	tm := &ThumbnailManager{
		cacheDir: tmpDir,
	}

	oldSize := MaxCacheSize
	oldFiles := MaxCacheFiles
	MaxCacheSize = 100
	MaxCacheFiles = 5
	defer func() {
		MaxCacheSize = oldSize
		MaxCacheFiles = oldFiles
	}()

	for i := 0; i < 10; i++ {
		path := filepath.Join(tmpDir, string(rune('a'+i))+".jpg")
		_ = os.WriteFile(path, []byte("fake image data"), 0644)
		mtime := time.Now().Add(time.Duration(i-100) * time.Minute)
		_ = os.Chtimes(path, mtime, mtime)
	}

	tm.cleanupCache()

	// 80% of MaxCacheFiles is 4
	files, _ := os.ReadDir(tmpDir)
	if len(files) > 4 {
		t.Errorf("Cleanup failed to evict enough files. Got %d, expected <= 4", len(files))
	}
	for _, f := range files {
		if f.Name() < "g.jpg" {
			t.Errorf("Cleanup deleted newest file or kept oldest: %s", f.Name())
		}
	}
}
