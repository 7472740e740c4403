package icon_test

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nothingTVatYT/Seed/internal/icon"
)

func writeIcon(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			img.Set(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 60), B: 128, A: 255})
		}
	}
	path := filepath.Join(dir, "icon.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func receive(t *testing.T, ch <-chan icon.Result) icon.Result {
	t.Helper()
	select {
	case res := <-ch:
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for icon result")
		return icon.Result{}
	}
}

type countingDecoder struct {
	mu    sync.Mutex
	inner icon.PNGDecoder
	calls int
}

func (d *countingDecoder) Decode(path string) (image.Image, error) {
	d.mu.Lock()
	d.calls++
	d.mu.Unlock()
	return d.inner.Decode(path)
}

func (d *countingDecoder) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

func TestLoader_LoadDecodesExistingIcon(t *testing.T) {
	path := writeIcon(t, t.TempDir())
	loader := icon.NewLoader(icon.PNGDecoder{}, time.Minute)

	res := receive(t, loader.Load(context.Background(), path))

	require.Equal(t, path, res.Path)
	require.NotNil(t, res.Image)
	require.Equal(t, image.Rect(0, 0, 4, 4), res.Image.Bounds())
}

func TestLoader_MissingIconCompletesEmpty(t *testing.T) {
	decoder := &countingDecoder{}
	loader := icon.NewLoader(decoder, time.Minute)

	res := receive(t, loader.Load(context.Background(), filepath.Join(t.TempDir(), "icon.png")))

	require.Nil(t, res.Image)
	require.Zero(t, decoder.count(), "the decoder never sees missing files")
}

func TestLoader_CorruptIconCompletesEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icon.png")
	require.NoError(t, os.WriteFile(path, []byte("not a png"), 0o644))
	loader := icon.NewLoader(icon.PNGDecoder{}, time.Minute)

	res := receive(t, loader.Load(context.Background(), path))

	require.Nil(t, res.Image, "a broken icon behaves like no icon")
}

func TestLoader_CachesByPath(t *testing.T) {
	path := writeIcon(t, t.TempDir())
	decoder := &countingDecoder{}
	loader := icon.NewLoader(decoder, time.Minute)
	ctx := context.Background()

	for range 3 {
		res := receive(t, loader.Load(ctx, path))
		require.NotNil(t, res.Image)
	}

	require.Equal(t, 1, decoder.count())
}

func TestLoader_ZeroTTLDisablesCache(t *testing.T) {
	path := writeIcon(t, t.TempDir())
	decoder := &countingDecoder{}
	loader := icon.NewLoader(decoder, 0)
	ctx := context.Background()

	receive(t, loader.Load(ctx, path))
	receive(t, loader.Load(ctx, path))

	require.Equal(t, 2, decoder.count())
}

func TestLoader_InvalidateForcesReload(t *testing.T) {
	path := writeIcon(t, t.TempDir())
	decoder := &countingDecoder{}
	loader := icon.NewLoader(decoder, time.Minute)
	ctx := context.Background()

	receive(t, loader.Load(ctx, path))
	loader.Invalidate(ctx, path)
	receive(t, loader.Load(ctx, path))

	require.Equal(t, 2, decoder.count())
}

func TestLoader_ConcurrentLoads(t *testing.T) {
	path := writeIcon(t, t.TempDir())
	loader := icon.NewLoader(icon.PNGDecoder{}, time.Minute)
	ctx := context.Background()

	channels := make([]<-chan icon.Result, 8)
	for i := range channels {
		channels[i] = loader.Load(ctx, path)
	}
	for _, ch := range channels {
		res := receive(t, ch)
		require.NotNil(t, res.Image)
	}
}
