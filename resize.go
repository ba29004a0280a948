package braille

import (
	"fmt"
	"image"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nfnt/resize"
	xdraw "golang.org/x/image/draw"
)

// DefaultCacheSize is the number of resized rasters a ResizeCache keeps
const DefaultCacheSize = 16

// Resizer resamples a raster to exactly width x height pixels. The result may
// be src itself when no resampling is needed, so callers treat it as read-only.
type Resizer interface {
	Resize(src image.Image, width, height int) image.Image
}

// ResizerFunc adapts a plain function to the Resizer interface
type ResizerFunc func(src image.Image, width, height int) image.Image

// Resize calls f(src, width, height)
func (f ResizerFunc) Resize(src image.Image, width, height int) image.Image {
	return f(src, width, height)
}

// scaler resamples with a golang.org/x/image/draw interpolator
type scaler struct {
	interp xdraw.Interpolator
}

func (s scaler) Resize(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	s.interp.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// nfntResizer resamples with github.com/nfnt/resize
type nfntResizer struct {
	interp resize.InterpolationFunction
}

func (n nfntResizer) Resize(src image.Image, width, height int) image.Image {
	return resize.Resize(uint(width), uint(height), src, n.interp)
}

var (
	// Bilinear is a single-pass approximate bilinear resize. It is the default.
	Bilinear Resizer = scaler{interp: xdraw.ApproxBiLinear}
	// CatmullRom is slower and sharper than Bilinear
	CatmullRom Resizer = scaler{interp: xdraw.CatmullRom}
	// Nearest picks the closest source pixel; fastest, blocky on upscale
	Nearest Resizer = nfntResizer{interp: resize.NearestNeighbor}
	// Lanczos uses a 3-lobe Lanczos kernel
	Lanczos Resizer = nfntResizer{interp: resize.Lanczos3}
)

var resizers = map[string]Resizer{
	"bilinear":   Bilinear,
	"catmullrom": CatmullRom,
	"nearest":    Nearest,
	"lanczos":    Lanczos,
}

// ResizerNames lists the names accepted by ResizerByName
func ResizerNames() []string {
	names := make([]string, 0, len(resizers))
	for name := range resizers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResizerByName looks up a built-in resizer, case-insensitively
func ResizerByName(name string) (Resizer, error) {
	if r, ok := resizers[strings.ToLower(strings.TrimSpace(name))]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("unknown resize filter %q (want one of %s)", name, strings.Join(ResizerNames(), ", "))
}

// ResizeCache memoizes another Resizer. It is meant for interactive use,
// where the same source is resampled repeatedly while only the threshold or
// invert flag changes. Entries are keyed on source identity, so a source
// must not be modified after it has been resized through the cache.
type ResizeCache struct {
	next        Resizer
	cache       map[cacheKey]*cacheEntry
	accessOrder []cacheKey // most recently used first
	mutex       sync.Mutex
	maxSize     int

	hits, misses int
}

type cacheKey struct {
	src           uintptr
	width, height int
}

type cacheEntry struct {
	src      image.Image
	image    image.Image
	lastUsed time.Time
}

// NewResizeCache wraps next with an LRU cache of at most size entries.
// size <= 0 uses DefaultCacheSize.
func NewResizeCache(next Resizer, size int) *ResizeCache {
	if next == nil {
		next = Bilinear
	}
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &ResizeCache{
		next:        next,
		cache:       make(map[cacheKey]*cacheEntry),
		accessOrder: make([]cacheKey, 0, size),
		maxSize:     size,
	}
}

// Resize returns a cached result when the same source was already resized to
// width x height, and resizes through the wrapped Resizer otherwise.
func (rc *ResizeCache) Resize(src image.Image, width, height int) image.Image {
	key, ok := newCacheKey(src, width, height)
	if !ok {
		// value-typed images have no stable identity
		return rc.next.Resize(src, width, height)
	}

	rc.mutex.Lock()
	if entry, exists := rc.cache[key]; exists && entry.src == src {
		entry.lastUsed = time.Now()
		rc.touch(key)
		rc.hits++
		rc.mutex.Unlock()
		return entry.image
	}
	rc.misses++
	rc.mutex.Unlock()

	resized := rc.next.Resize(src, width, height)

	rc.mutex.Lock()
	defer rc.mutex.Unlock()
	rc.set(key, src, resized)
	return resized
}

// Len returns the number of cached rasters
func (rc *ResizeCache) Len() int {
	rc.mutex.Lock()
	defer rc.mutex.Unlock()
	return len(rc.cache)
}

// Stats returns the hit and miss counts since creation or the last Clear
func (rc *ResizeCache) Stats() (hits, misses int) {
	rc.mutex.Lock()
	defer rc.mutex.Unlock()
	return rc.hits, rc.misses
}

// Clear drops every cached raster
func (rc *ResizeCache) Clear() {
	rc.mutex.Lock()
	defer rc.mutex.Unlock()
	rc.cache = make(map[cacheKey]*cacheEntry)
	rc.accessOrder = rc.accessOrder[:0]
	rc.hits, rc.misses = 0, 0
}

func newCacheKey(src image.Image, width, height int) (cacheKey, bool) {
	v := reflect.ValueOf(src)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return cacheKey{}, false
	}
	return cacheKey{src: v.Pointer(), width: width, height: height}, true
}

// touch moves key to the front of the access order. Caller holds the mutex.
func (rc *ResizeCache) touch(key cacheKey) {
	for i, k := range rc.accessOrder {
		if k == key {
			rc.accessOrder = append(rc.accessOrder[:i], rc.accessOrder[i+1:]...)
			break
		}
	}
	rc.accessOrder = append([]cacheKey{key}, rc.accessOrder...)
}

// set adds or replaces an entry, evicting the least recently used entries
// when full. Caller holds the mutex.
func (rc *ResizeCache) set(key cacheKey, src, img image.Image) {
	if entry, exists := rc.cache[key]; exists {
		entry.src = src
		entry.image = img
		entry.lastUsed = time.Now()
		rc.touch(key)
		return
	}

	for len(rc.cache) >= rc.maxSize {
		rc.evictLRU()
	}

	rc.cache[key] = &cacheEntry{
		src:      src,
		image:    img,
		lastUsed: time.Now(),
	}
	rc.accessOrder = append([]cacheKey{key}, rc.accessOrder...)
}

// evictLRU removes the least recently used entry. Caller holds the mutex.
func (rc *ResizeCache) evictLRU() {
	if len(rc.accessOrder) == 0 {
		return
	}
	lruKey := rc.accessOrder[len(rc.accessOrder)-1]
	rc.accessOrder = rc.accessOrder[:len(rc.accessOrder)-1]
	delete(rc.cache, lruKey)
}
