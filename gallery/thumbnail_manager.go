package gallery

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"golang.org/x/image/draw"
)

// ThumbnailLoader resolves a thumbnail source into an image of the given
// display size. The callback may run on any goroutine and is not called when
// the source cannot be loaded.
type ThumbnailLoader interface {
	Load(src string, size fyne.Size, callback func(image.Image))
}

type thumbnailRequest struct {
	src      string
	size     fyne.Size
	callback func(image.Image)
}

// ThumbnailManager loads, scales and caches thumbnails on a small worker pool.
// The newest request is served first.
type ThumbnailManager struct {
	cache    sync.Map // map[string]image.Image
	requests []thumbnailRequest
	reqLock  sync.Mutex
	reqCond  *sync.Cond
	cacheDir string
}

var (
	MaxCacheSize  int64 = 200 * 1024 * 1024 // 200MB
	MaxCacheFiles int   = 5000
)

const (
	maxPendingRequests = 100
	thumbnailWorkers   = 4
	// thumbnailDensity renders thumbnails at twice their display size for
	// high density screens.
	thumbnailDensity = 2
)

var (
	instance *ThumbnailManager
	once     sync.Once
)

// GetThumbnailManager returns the shared manager, starting its workers on first use.
func GetThumbnailManager() *ThumbnailManager {
	once.Do(func() {
		instance = newThumbnailManager("")
		if userCache, err := os.UserCacheDir(); err == nil {
			instance.cacheDir = filepath.Join(userCache, "xgallery")
			if err := os.MkdirAll(instance.cacheDir, 0755); err != nil {
				fyne.LogError("could not create thumbnail cache", err)
				instance.cacheDir = ""
			} else {
				go instance.cleanupCache()
			}
		}

		for i := 0; i < thumbnailWorkers; i++ {
			go instance.worker()
		}
	})
	return instance
}

func newThumbnailManager(cacheDir string) *ThumbnailManager {
	m := &ThumbnailManager{
		requests: make([]thumbnailRequest, 0, maxPendingRequests),
		cacheDir: cacheDir,
	}
	m.reqCond = sync.NewCond(&m.reqLock)
	return m
}

func memoryKey(src string, size fyne.Size) string {
	return fmt.Sprintf("%s|%gx%g", src, size.Width, size.Height)
}

// LoadMemoryOnly returns a thumbnail from the memory cache, or nil.
func (m *ThumbnailManager) LoadMemoryOnly(src string, size fyne.Size) image.Image {
	if cached, ok := m.cache.Load(memoryKey(src, size)); ok {
		return cached.(image.Image)
	}
	return nil
}

func (m *ThumbnailManager) Load(src string, size fyne.Size, callback func(image.Image)) {
	if src == "" {
		return
	}

	if img := m.LoadMemoryOnly(src, size); img != nil {
		callback(img)
		return
	}
	if img := m.loadFromDisk(src, size); img != nil {
		callback(img)
		return
	}

	m.reqLock.Lock()
	// Drop the oldest request when the queue is full
	if len(m.requests) >= maxPendingRequests {
		m.requests = m.requests[1:]
	}
	m.requests = append(m.requests, thumbnailRequest{src: src, size: size, callback: callback})
	m.reqCond.Signal()
	m.reqLock.Unlock()
}

// PrewarmSources loads disk-cached thumbnails into memory in the background.
func (m *ThumbnailManager) PrewarmSources(srcs []string, size fyne.Size) {
	if m.cacheDir == "" {
		return
	}

	go func() {
		for _, src := range srcs {
			if src == "" || m.LoadMemoryOnly(src, size) != nil {
				continue
			}
			m.loadFromDisk(src, size)
			// Small sleep to avoid I/O spikes
			time.Sleep(5 * time.Millisecond)
		}
	}()
}

func (m *ThumbnailManager) loadFromDisk(src string, size fyne.Size) image.Image {
	if m.cacheDir == "" {
		return nil
	}
	path, ok := localPath(src)
	if !ok {
		return nil
	}
	key, err := m.generateCacheKey(path, size)
	if err != nil {
		return nil
	}

	img, err := loadImageFile(filepath.Join(m.cacheDir, key+".jpg"))
	if err != nil {
		return nil
	}
	m.cache.Store(memoryKey(src, size), img)
	return img
}

func (m *ThumbnailManager) worker() {
	for {
		m.reqLock.Lock()
		for len(m.requests) == 0 {
			m.reqCond.Wait()
		}
		lastIdx := len(m.requests) - 1
		req := m.requests[lastIdx]
		m.requests = m.requests[:lastIdx]
		m.reqLock.Unlock()

		m.process(req)
	}
}

func (m *ThumbnailManager) process(req thumbnailRequest) {
	if img := m.LoadMemoryOnly(req.src, req.size); img != nil {
		req.callback(img)
		return
	}

	img, err := decodeSource(req.src)
	if err != nil {
		fyne.LogError("could not load thumbnail "+req.src, err)
		return
	}

	dst := letterbox(img, int(req.size.Width*thumbnailDensity), int(req.size.Height*thumbnailDensity))
	if dst == nil {
		return
	}
	m.cache.Store(memoryKey(req.src, req.size), dst)
	m.saveToDisk(req.src, req.size, dst)

	req.callback(dst)
}

func (m *ThumbnailManager) saveToDisk(src string, size fyne.Size, img image.Image) {
	if m.cacheDir == "" {
		return
	}
	path, ok := localPath(src)
	if !ok {
		return
	}
	key, err := m.generateCacheKey(path, size)
	if err != nil {
		return
	}

	f, err := os.Create(filepath.Join(m.cacheDir, key+".jpg"))
	if err != nil {
		fyne.LogError("could not write thumbnail cache", err)
		return
	}
	defer f.Close()
	_ = jpeg.Encode(f, img, &jpeg.Options{Quality: 85})
}

// letterbox scales img to fit a w×h black canvas, keeping its aspect ratio.
func letterbox(img image.Image, w, h int) *image.RGBA {
	srcBounds := img.Bounds()
	srcW, srcH := srcBounds.Dx(), srcBounds.Dy()
	if srcW == 0 || srcH == 0 || w <= 0 || h <= 0 {
		return nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{image.Black}, image.Point{}, draw.Src)

	scaledW, scaledH := w, h
	srcRatio := float64(srcW) / float64(srcH)
	dstRatio := float64(w) / float64(h)
	if srcRatio > dstRatio {
		scaledH = int(float64(w) / srcRatio)
	} else {
		scaledW = int(float64(h) * srcRatio)
	}

	xBase := (w - scaledW) / 2
	yBase := (h - scaledH) / 2
	targetRect := image.Rect(xBase, yBase, xBase+scaledW, yBase+scaledH)

	draw.ApproxBiLinear.Scale(dst, targetRect, img, srcBounds, draw.Over, nil)
	return dst
}

// localPath returns the filesystem path of src if it names a local file.
func localPath(src string) (string, bool) {
	if !strings.Contains(src, "://") {
		return src, true
	}
	u, err := storage.ParseURI(src)
	if err != nil || u.Scheme() != "file" {
		return "", false
	}
	return u.Path(), true
}

func decodeSource(src string) (image.Image, error) {
	if path, ok := localPath(src); ok {
		return loadImageFile(path)
	}

	u, err := storage.ParseURI(src)
	if err != nil {
		return nil, fmt.Errorf("parse thumbnail uri: %w", err)
	}
	r, err := storage.Reader(u)
	if err != nil {
		return nil, fmt.Errorf("open thumbnail: %w", err)
	}
	defer r.Close()
	return decodeImage(r)
}

func loadImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeImage(f)
}

func decodeImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	return img, err
}

func (m *ThumbnailManager) generateCacheKey(path string, size fyne.Size) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	h.Write([]byte(absPath))
	h.Write([]byte(info.ModTime().String()))
	h.Write([]byte(fmt.Sprintf("%d|%gx%g", info.Size(), size.Width, size.Height)))

	// Partial content (32KB)
	f, err := os.Open(absPath)
	if err == nil {
		defer f.Close()
		buf := make([]byte, 32*1024)
		n, _ := f.Read(buf)
		h.Write(buf[:n])
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

func (m *ThumbnailManager) cleanupCache() {
	if m.cacheDir == "" {
		return
	}

	files, err := os.ReadDir(m.cacheDir)
	if err != nil {
		return
	}

	type fileInfo struct {
		name string
		size int64
		time time.Time
	}

	var cachedFiles []fileInfo
	var totalSize int64

	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".jpg" {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		cachedFiles = append(cachedFiles, fileInfo{
			name: f.Name(),
			size: info.Size(),
			time: info.ModTime(),
		})
		totalSize += info.Size()
	}

	if totalSize <= MaxCacheSize && len(cachedFiles) <= MaxCacheFiles {
		return
	}

	// Oldest first
	sort.Slice(cachedFiles, func(i, j int) bool {
		return cachedFiles[i].time.Before(cachedFiles[j].time)
	})

	for len(cachedFiles) > 0 {
		if totalSize <= int64(float64(MaxCacheSize)*0.8) && len(cachedFiles) <= int(float64(MaxCacheFiles)*0.8) {
			break
		}
		f := cachedFiles[0]
		_ = os.Remove(filepath.Join(m.cacheDir, f.name))
		totalSize -= f.size
		cachedFiles = cachedFiles[1:]
	}
}
