package snapshot

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fractal-explorer/internal/gltest"
	"fractal-explorer/renderer"
)

type source struct {
	fbm    *renderer.FramebufferManager
	filter renderer.Filter
}

func (s source) Framebuffers() *renderer.FramebufferManager { return s.fbm }
func (s source) BlitFilter() renderer.Filter                { return s.filter }

func newSource(t *testing.T, ctx *gltest.Context, w, h int, f renderer.Filter) source {
	t.Helper()
	fbm := renderer.NewFramebufferManager(ctx)
	if err := fbm.EnsureSize(w, h); err != nil {
		t.Fatalf("EnsureSize: %v", err)
	}
	return source{fbm: fbm, filter: f}
}

func TestCaptureFlipsRows(t *testing.T) {
	ctx := gltest.New()
	src := newSource(t, ctx, 4, 3, renderer.FilterNearest)
	ctx.ReadFramebuffer = 9

	img, err := Capture(ctx, src, renderer.Size{Width: 4, Height: 3})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	// the fake fills GL row y with value y, bottom row first
	if got := img.RGBAAt(0, 0).R; got != 2 {
		t.Errorf("top row: expected 2, got %d", got)
	}
	if got := img.RGBAAt(3, 2).R; got != 0 {
		t.Errorf("bottom row: expected 0, got %d", got)
	}
	if ctx.ReadFramebuffer != 9 {
		t.Errorf("read binding: expected 9 restored, got %d", ctx.ReadFramebuffer)
	}
}

func TestCaptureScalesNearest(t *testing.T) {
	ctx := gltest.New()
	src := newSource(t, ctx, 2, 2, renderer.FilterNearest)

	img, err := Capture(ctx, src, renderer.Size{Width: 8, Height: 8})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Fatalf("bounds: expected 8x8, got %v", b)
	}
	for y := 0; y < 8; y++ {
		want := uint8(1)
		if y >= 4 {
			want = 0
		}
		if got := img.RGBAAt(5, y).R; got != want {
			t.Errorf("row %d: expected %d, got %d", y, want, got)
		}
	}
}

func TestCaptureWithoutFramebuffer(t *testing.T) {
	ctx := gltest.New()
	src := source{fbm: renderer.NewFramebufferManager(ctx)}
	if _, err := Capture(ctx, src, renderer.Size{Width: 1, Height: 1}); !errors.Is(err, ErrNoFramebuffer) {
		t.Errorf("Capture: expected ErrNoFramebuffer, got %v", err)
	}
}

func TestSavePNG(t *testing.T) {
	ctx := gltest.New()
	src := newSource(t, ctx, 6, 4, renderer.FilterLinear)
	img, err := Capture(ctx, src, renderer.Size{Width: 12, Height: 8})
	if err != nil {
		t.Fatal(err)
	}

	dir := filepath.Join(t.TempDir(), "shots")
	name := FileName("menger", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	if !strings.HasPrefix(name, "menger-20260102-030405") || !strings.HasSuffix(name, ".png") {
		t.Errorf("FileName: unexpected %q", name)
	}
	path, err := SavePNG(dir, name, img)
	if err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.Width != 12 || cfg.Height != 8 {
		t.Errorf("png size: expected 12x8, got %dx%d", cfg.Width, cfg.Height)
	}
}
