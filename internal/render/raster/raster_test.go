package raster

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/targetlines/internal/render"
)

var _ render.DrawList = (*Canvas)(nil)

func solidImage(c color.NRGBA, size int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func channels(img image.Image, x, y int) (r, g, b uint32) {
	r, g, b, _ = img.At(x, y).RGBA()
	return r >> 8, g >> 8, b >> 8
}

func TestStrokeCoversCurve(t *testing.T) {
	c := NewCanvas(64, 64)
	defer c.Close()
	c.Clear(color.White)

	black := color.NRGBA{A: 255}
	c.AddBezierQuadratic(mgl64.Vec2{4, 32}, mgl64.Vec2{32, 32}, mgl64.Vec2{60, 32}, black, 6)

	if r, _, _ := channels(c.Image(), 32, 32); r > 64 {
		t.Errorf("Expected a dark pixel on the curve, got red %d", r)
	}
	if r, _, _ := channels(c.Image(), 32, 4); r < 192 {
		t.Errorf("Expected background away from the curve, got red %d", r)
	}
}

func TestInvisibleStrokesAreSkipped(t *testing.T) {
	c := NewCanvas(32, 32)
	defer c.Close()
	c.Clear(color.White)

	c.AddBezierCubic(mgl64.Vec2{0, 16}, mgl64.Vec2{10, 16}, mgl64.Vec2{20, 16}, mgl64.Vec2{32, 16}, color.NRGBA{}, 8)
	c.AddBezierCubic(mgl64.Vec2{0, 16}, mgl64.Vec2{10, 16}, mgl64.Vec2{20, 16}, mgl64.Vec2{32, 16}, color.NRGBA{A: 255}, 0)

	if r, _, _ := channels(c.Image(), 16, 16); r < 250 {
		t.Errorf("Expected nothing drawn, got red %d", r)
	}
}

func TestImageQuadSamplesTexture(t *testing.T) {
	c := NewCanvas(40, 40)
	defer c.Close()
	c.Clear(color.White)

	tex := NewTexture(solidImage(color.NRGBA{R: 255, A: 255}, 4))
	if w, h := tex.Size(); w != 4 || h != 4 {
		t.Fatalf("Expected a 4x4 texture, got %dx%d", w, h)
	}

	quad := [4]mgl64.Vec2{{10, 10}, {30, 10}, {30, 30}, {10, 30}}
	uv := [4]mgl64.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	c.AddImageQuad(tex, quad, uv, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	if r, g, _ := channels(c.Image(), 20, 20); r < 200 || g > 64 {
		t.Errorf("Expected red inside the quad, got r=%d g=%d", r, g)
	}
	if r, g, _ := channels(c.Image(), 2, 2); r < 250 || g < 250 {
		t.Errorf("Expected white outside the quad, got r=%d g=%d", r, g)
	}
}

func TestQuadPatternMapsCorners(t *testing.T) {
	tex := NewTexture(solidImage(color.NRGBA{R: 255, G: 255, B: 255, A: 255}, 2))
	quad := [4]mgl64.Vec2{{0, 0}, {10, 0}, {10, 20}, {0, 20}}
	uv := [4]mgl64.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	p, ok := newQuadPattern(tex, quad, uv, color.NRGBA{R: 255, B: 255, A: 128})
	if !ok {
		t.Fatal("Expected a valid pattern")
	}

	got := p.ColorAt(5, 10)
	if got.R != 1 || got.G != 0 || got.B != 1 {
		t.Errorf("Expected the texel tinted magenta, got %+v", got)
	}
	if got.A < 0.5 || got.A > 0.51 {
		t.Errorf("Expected half alpha, got %v", got.A)
	}

	flat := [4]mgl64.Vec2{{0, 0}, {10, 0}, {20, 0}, {30, 0}}
	if _, ok := newQuadPattern(tex, flat, uv, color.NRGBA{A: 255}); ok {
		t.Error("Expected a degenerate quad to be rejected")
	}
}

func TestForeignTextureIsSkipped(t *testing.T) {
	c := NewCanvas(16, 16)
	defer c.Close()
	c.Clear(color.White)

	var foreign render.TextureSet
	tex, _ := foreign.Texture(render.TextureLine)
	c.AddImageQuad(tex, [4]mgl64.Vec2{{0, 0}, {16, 0}, {16, 16}, {0, 16}}, [4]mgl64.Vec2{}, color.NRGBA{A: 255})
	if r, _, _ := channels(c.Image(), 8, 8); r < 250 {
		t.Errorf("Expected nothing drawn for a missing texture, got red %d", r)
	}
}

func TestSavePNGAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.png")

	c := NewCanvas(24, 24)
	defer c.Close()
	c.Clear(color.NRGBA{G: 255, A: 255})
	if err := c.SavePNG(path); err != nil {
		t.Fatalf("Expected save to succeed, got %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Expected the file to exist, got %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Expected a valid PNG, got %v", err)
	}
	if img.Bounds().Dx() != 24 {
		t.Errorf("Expected width 24, got %d", img.Bounds().Dx())
	}

	tex, err := Loader{}.LoadTexture(path)
	if err != nil {
		t.Fatalf("Expected the PNG to load as a texture, got %v", err)
	}
	if w, _ := tex.Size(); w != 24 {
		t.Errorf("Expected texture width 24, got %d", w)
	}

	if _, err := (Loader{}).LoadTexture(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
