// Package snapshot captures a scene's offscreen image to PNG at display size,
// scaled the same way the scene presents it.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	xdraw "golang.org/x/image/draw"

	"fractal-explorer/renderer"
)

// ErrNoFramebuffer is returned when the source has nothing rendered yet.
var ErrNoFramebuffer = errors.New("snapshot: no offscreen framebuffer")

// Source is a scene that renders offscreen and blits to the display.
type Source interface {
	Framebuffers() *renderer.FramebufferManager
	BlitFilter() renderer.Filter
}

// Scaler returns the image scaler matching a blit filter.
func Scaler(f renderer.Filter) xdraw.Scaler {
	if f == renderer.FilterNearest {
		return xdraw.NearestNeighbor
	}
	return xdraw.ApproxBiLinear
}

// Capture reads src's offscreen framebuffer and scales it to size. The read
// framebuffer binding is restored before returning. Must run on the
// goroutine that owns ctx.
func Capture(ctx renderer.Context, src Source, size renderer.Size) (*image.RGBA, error) {
	fbm := src.Framebuffers()
	if fbm == nil || !fbm.Valid() {
		return nil, ErrNoFramebuffer
	}
	if size.Empty() {
		return nil, fmt.Errorf("snapshot %v: %w", size, renderer.ErrInvalidSize)
	}
	fb := fbm.Framebuffer()

	origRead := ctx.Integer(renderer.BindingReadFramebuffer)
	ctx.BindFramebuffer(renderer.TargetReadFramebuffer, fb.ID)
	pix := ctx.ReadPixels(fb.Size)
	ctx.BindFramebuffer(renderer.TargetReadFramebuffer, origRead)

	raw := flip(pix, fb.Size)
	if fb.Size == size {
		return raw, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	Scaler(src.BlitFilter()).Scale(out, out.Bounds(), raw, raw.Bounds(), xdraw.Src, nil)
	return out, nil
}

// flip turns bottom-up GL rows into a top-down image.
func flip(pix []byte, size renderer.Size) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	stride := size.Width * 4
	for y := 0; y < size.Height; y++ {
		src := pix[(size.Height-1-y)*stride : (size.Height-y)*stride]
		copy(img.Pix[y*img.Stride:], src)
	}
	return img
}

// FileName is the snapshot name used for a capture taken at t.
func FileName(scene string, t time.Time) string {
	return fmt.Sprintf("%s-%s.png", scene, t.Format("20060102-150405.000"))
}

// SavePNG encodes img into dir and returns the written path.
func SavePNG(dir, name string, img image.Image) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create png: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return path, nil
}
