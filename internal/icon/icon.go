// Package icon loads project icons off the caller's goroutine. A project
// without an icon, or with one that fails to decode, simply has no image;
// neither case is an error anywhere in the app.
package icon

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/nothingTVatYT/Seed/internal/cachemanager"
	"github.com/nothingTVatYT/Seed/internal/log"
)

// Decoder turns an icon file into an image.
type Decoder interface {
	Decode(path string) (image.Image, error)
}

// PNGDecoder decodes icon.png files.
type PNGDecoder struct{}

func (PNGDecoder) Decode(path string) (image.Image, error) {
	// #nosec G304 -- path is derived from the project record
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening icon %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding icon %s: %w", path, err)
	}
	return img, nil
}

// Result is the completion of one icon load. Image is nil when the project
// has no icon or the file could not be decoded.
type Result struct {
	Path  string
	Image image.Image
}

// Loader runs icon loads asynchronously and caches decoded images by path
// with a TTL, so redraws of an unchanged project list stay cheap.
type Loader struct {
	decoder Decoder
	ttl     time.Duration
	manager cachemanager.CacheManager[string, image.Image]
	cache   *cachemanager.ReadThroughCache[string, image.Image, string]
}

// NewLoader creates a loader around the decoder. A non-positive ttl disables
// caching entirely.
func NewLoader(decoder Decoder, ttl time.Duration) *Loader {
	manager := cachemanager.NewInMemoryCacheManager[string, image.Image](
		"icon", ttl, cachemanager.DefaultCleanupInterval)
	l := &Loader{
		decoder: decoder,
		ttl:     ttl,
		manager: manager,
	}
	l.cache = cachemanager.NewReadThroughCache[string, image.Image, string](
		manager,
		func(_ context.Context, path string) (image.Image, error) {
			return decoder.Decode(path)
		},
		ttl <= 0,
	)
	return l
}

// Load starts an asynchronous load of the icon at iconPath and returns the
// channel its Result arrives on. The channel is buffered and closed after
// the single send, so the caller may drop it without leaking the goroutine.
// Concurrent loads of the same path are allowed.
func (l *Loader) Load(ctx context.Context, iconPath string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		res := Result{Path: iconPath}

		// A missing icon is the normal case; the decoder never sees it.
		if _, err := os.Stat(iconPath); err != nil {
			ch <- res
			return
		}

		img, err := l.cache.GetWithRefresh(ctx, iconPath, iconPath, l.ttl)
		if err != nil {
			log.Warn(log.CatIcon, "icon decode failed", "path", iconPath, "err", err.Error())
			ch <- res
			return
		}
		res.Image = img
		ch <- res
	}()
	return ch
}

// Invalidate drops cached images for the given icon paths, forcing the next
// load to re-read the file.
func (l *Loader) Invalidate(ctx context.Context, iconPaths ...string) {
	_ = l.manager.Delete(ctx, iconPaths...)
}
