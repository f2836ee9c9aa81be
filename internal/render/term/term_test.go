package term

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/targetlines/internal/render"
)

var _ render.DrawList = (*Canvas)(nil)

func TestStrokeMarksCells(t *testing.T) {
	c := NewCanvas(10, 5, 8, 16)
	c.AddBezierQuadratic(mgl64.Vec2{4, 40}, mgl64.Vec2{40, 40}, mgl64.Vec2{76, 40}, color.NRGBA{R: 255, A: 255}, 2)

	for x := 0; x < 10; x++ {
		cell := c.Cell(x, 2)
		if cell.Rune != '█' {
			t.Errorf("Expected a full block at column %d, got %q", x, cell.Rune)
		}
		if cell.Color.R != 255 || cell.Color.G != 0 {
			t.Errorf("Expected red at column %d, got %+v", x, cell.Color)
		}
	}
	if c.Cell(5, 0).Rune != 0 {
		t.Errorf("Expected an empty cell away from the curve, got %q", c.Cell(5, 0).Rune)
	}
}

func TestStrokeAlphaShading(t *testing.T) {
	c := NewCanvas(10, 1, 8, 16)
	c.AddBezierCubic(mgl64.Vec2{0, 8}, mgl64.Vec2{20, 8}, mgl64.Vec2{40, 8}, mgl64.Vec2{60, 8}, color.NRGBA{G: 200, A: 128}, 2)

	cell := c.Cell(3, 0)
	if cell.Rune != '▓' {
		t.Errorf("Expected a dense shade for half alpha, got %q", cell.Rune)
	}
	if cell.Color.G < 99 || cell.Color.G > 101 {
		t.Errorf("Expected green darkened by alpha, got %d", cell.Color.G)
	}
}

func TestFaintStrokesAreSkipped(t *testing.T) {
	c := NewCanvas(10, 1, 8, 16)
	c.AddBezierQuadratic(mgl64.Vec2{0, 8}, mgl64.Vec2{40, 8}, mgl64.Vec2{80, 8}, color.NRGBA{R: 255, A: 10}, 4)
	c.AddBezierQuadratic(mgl64.Vec2{0, 8}, mgl64.Vec2{40, 8}, mgl64.Vec2{80, 8}, color.NRGBA{R: 255, A: 255}, 0)

	for x := 0; x < 10; x++ {
		if r := c.Cell(x, 0).Rune; r != 0 {
			t.Errorf("Expected nothing drawn at column %d, got %q", x, r)
		}
	}
}

func TestImageQuadUsesGlyph(t *testing.T) {
	c := NewCanvas(10, 10, 8, 16)
	glyphs := DefaultGlyphs()
	tex, ok := glyphs.Texture(render.TextureEdge)
	if !ok {
		t.Fatal("Expected an edge glyph")
	}

	quad := [4]mgl64.Vec2{{16, 32}, {48, 32}, {48, 96}, {16, 96}}
	c.AddImageQuad(tex, quad, [4]mgl64.Vec2{}, color.NRGBA{B: 255, A: 255})

	if r := c.Cell(3, 3).Rune; r != '●' {
		t.Errorf("Expected the edge glyph inside the quad, got %q", r)
	}
	if r := c.Cell(0, 0).Rune; r != 0 {
		t.Errorf("Expected an empty cell outside the quad, got %q", r)
	}
	if r := c.Cell(7, 3).Rune; r != 0 {
		t.Errorf("Expected an empty cell right of the quad, got %q", r)
	}
}

func TestImageQuadSkipsMissingTexture(t *testing.T) {
	c := NewCanvas(4, 4, 8, 16)
	c.AddImageQuad(nil, [4]mgl64.Vec2{{0, 0}, {32, 0}, {32, 64}, {0, 64}}, [4]mgl64.Vec2{}, color.NRGBA{A: 255})
	if r := c.Cell(1, 1).Rune; r != 0 {
		t.Errorf("Expected nothing drawn, got %q", r)
	}
}

func TestInsideEitherWinding(t *testing.T) {
	cw := [4]mgl64.Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	ccw := [4]mgl64.Vec2{{0, 0}, {0, 10}, {10, 10}, {10, 0}}
	for _, q := range [][4]mgl64.Vec2{cw, ccw} {
		if !inside(q, mgl64.Vec2{5, 5}) {
			t.Errorf("Expected the centre inside %v", q)
		}
		if inside(q, mgl64.Vec2{15, 5}) {
			t.Errorf("Expected a far point outside %v", q)
		}
	}
}

func TestTextAndFlush(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Expected the simulation screen to init, got %v", err)
	}
	defer screen.Fini()
	screen.SetSize(20, 4)

	c := NewCanvas(20, 4, 8, 16)
	c.AddText(mgl64.Vec2{16, 16}, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, "Tank")
	c.Flush(screen)
	screen.Show()

	for i, want := range "Tank" {
		got, _, _, _ := screen.GetContent(2+i, 1)
		if got != want {
			t.Errorf("Expected %q at column %d, got %q", want, 2+i, got)
		}
	}

	c.Clear()
	if r := c.Cell(2, 1).Rune; r != 0 {
		t.Errorf("Expected clear to empty the grid, got %q", r)
	}
}

func TestResize(t *testing.T) {
	c := NewCanvas(4, 4, 8, 16)
	c.AddText(mgl64.Vec2{0, 0}, color.NRGBA{A: 255}, "x")
	c.Resize(6, 2)
	if cols, rows := c.Size(); cols != 6 || rows != 2 {
		t.Errorf("Expected 6x2, got %dx%d", cols, rows)
	}
	if r := c.Cell(0, 0).Rune; r != 0 {
		t.Errorf("Expected resize to clear, got %q", r)
	}
	if r := c.Cell(10, 10).Rune; r != 0 {
		t.Errorf("Expected out of range cells to be empty, got %q", r)
	}
}
