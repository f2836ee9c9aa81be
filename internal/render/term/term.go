// Package term previews target lines in a terminal. Screen pixels are mapped
// onto a grid of character cells which is then flushed to a tcell screen.
package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/targetlines/internal/render"
)

// minAlpha is the alpha below which nothing is drawn into a cell.
const minAlpha = 24

// Glyph is a texture that paints every covered cell with one rune.
type Glyph rune

// Size implements render.Texture.
func (Glyph) Size() (int, int) { return 1, 1 }

// DefaultGlyphs returns the runes used for each line material.
func DefaultGlyphs() render.TextureSet {
	return render.TextureSet{
		render.TextureLine:    Glyph('█'),
		render.TextureOutline: Glyph('░'),
		render.TextureEdge:    Glyph('●'),
	}
}

// Cell is one character of the preview.
type Cell struct {
	Rune  rune
	Color color.NRGBA
}

// Canvas is a render.DrawList over a grid of cells.
type Canvas struct {
	cols, rows   int
	cellW, cellH float64 // Screen pixels per cell
	cells        []Cell
}

// NewCanvas returns an empty grid. Each cell covers cellW x cellH pixels.
func NewCanvas(cols, rows int, cellW, cellH float64) *Canvas {
	return &Canvas{
		cols:  cols,
		rows:  rows,
		cellW: cellW,
		cellH: cellH,
		cells: make([]Cell, cols*rows),
	}
}

// Size returns the grid size in cells.
func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

// Resize changes the grid size and clears it.
func (c *Canvas) Resize(cols, rows int) {
	c.cols, c.rows = cols, rows
	c.cells = make([]Cell, cols*rows)
}

// Clear empties every cell.
func (c *Canvas) Clear() {
	clear(c.cells)
}

// Cell returns the cell at column x, row y.
func (c *Canvas) Cell(x, y int) Cell {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return Cell{}
	}
	return c.cells[y*c.cols+x]
}

// Flush copies the non-empty cells to s. The caller shows the screen.
func (c *Canvas) Flush(s tcell.Screen) {
	for y := 0; y < c.rows; y++ {
		for x := 0; x < c.cols; x++ {
			cell := c.cells[y*c.cols+x]
			if cell.Rune == 0 {
				continue
			}
			fg := tcell.NewRGBColor(int32(cell.Color.R), int32(cell.Color.G), int32(cell.Color.B))
			s.SetContent(x, y, cell.Rune, nil, tcell.StyleDefault.Foreground(fg))
		}
	}
}

// cellOf returns the cell containing screen point p.
func (c *Canvas) cellOf(p mgl64.Vec2) (int, int) {
	return int(math.Floor(p[0] / c.cellW)), int(math.Floor(p[1] / c.cellH))
}

// center returns the screen position of a cell's centre.
func (c *Canvas) center(x, y int) mgl64.Vec2 {
	return mgl64.Vec2{(float64(x) + 0.5) * c.cellW, (float64(y) + 0.5) * c.cellH}
}

func (c *Canvas) put(x, y int, r rune, clr color.NRGBA) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return
	}
	c.cells[y*c.cols+x] = Cell{Rune: r, Color: shade(clr)}
}

// shade darkens clr by its alpha, as if blended over a black terminal.
func shade(clr color.NRGBA) color.NRGBA {
	a := float64(clr.A) / 255
	return color.NRGBA{
		R: uint8(float64(clr.R) * a),
		G: uint8(float64(clr.G) * a),
		B: uint8(float64(clr.B) * a),
		A: 255,
	}
}

// strokeRune picks a block density for a stroke's alpha.
func strokeRune(a uint8) rune {
	switch {
	case a >= 192:
		return '█'
	case a >= 96:
		return '▓'
	default:
		return '▒'
	}
}

// AddBezierQuadratic implements render.DrawList.
func (c *Canvas) AddBezierQuadratic(p0, p1, p2 mgl64.Vec2, clr color.NRGBA, thickness float64) {
	c.stroke([]mgl64.Vec2{p0, p1, p2}, clr, thickness)
}

// AddBezierCubic implements render.DrawList.
func (c *Canvas) AddBezierCubic(p0, p1, p2, p3 mgl64.Vec2, clr color.NRGBA, thickness float64) {
	c.stroke([]mgl64.Vec2{p0, p1, p2, p3}, clr, thickness)
}

func (c *Canvas) stroke(ctrl []mgl64.Vec2, clr color.NRGBA, thickness float64) {
	if thickness <= 0 || clr.A < minAlpha {
		return
	}

	// Enough steps that consecutive points are at most half a cell apart
	var length float64
	for i := 1; i < len(ctrl); i++ {
		length += ctrl[i].Sub(ctrl[i-1]).Len()
	}
	steps := max(1, int(math.Ceil(2*length/math.Min(c.cellW, c.cellH))))

	rx := int(math.Floor(thickness / 2 / c.cellW))
	ry := int(math.Floor(thickness / 2 / c.cellH))
	r := strokeRune(clr.A)
	for _, p := range render.FlattenBezier(ctrl, steps) {
		cx, cy := c.cellOf(p)
		for y := cy - ry; y <= cy+ry; y++ {
			for x := cx - rx; x <= cx+rx; x++ {
				c.put(x, y, r, clr)
			}
		}
	}
}

// AddImageQuad implements render.DrawList. A Glyph texture paints its rune
// into every cell whose centre lies inside the quad; other textures paint a
// full block.
func (c *Canvas) AddImageQuad(tex render.Texture, quad [4]mgl64.Vec2, uv [4]mgl64.Vec2, clr color.NRGBA) {
	if tex == nil || clr.A < minAlpha {
		return
	}
	r := '█'
	if g, ok := tex.(Glyph); ok {
		r = rune(g)
	}

	lo, hi := quad[0], quad[0]
	for _, p := range quad[1:] {
		lo = mgl64.Vec2{math.Min(lo[0], p[0]), math.Min(lo[1], p[1])}
		hi = mgl64.Vec2{math.Max(hi[0], p[0]), math.Max(hi[1], p[1])}
	}
	x0, y0 := c.cellOf(lo)
	x1, y1 := c.cellOf(hi)
	for y := max(y0, 0); y <= min(y1, c.rows-1); y++ {
		for x := max(x0, 0); x <= min(x1, c.cols-1); x++ {
			if inside(quad, c.center(x, y)) {
				c.put(x, y, r, clr)
			}
		}
	}
}

// AddText implements render.DrawList.
func (c *Canvas) AddText(pos mgl64.Vec2, clr color.NRGBA, label string) {
	x, y := c.cellOf(pos)
	for _, r := range label {
		c.put(x, y, r, color.NRGBA{R: clr.R, G: clr.G, B: clr.B, A: 255})
		x++
	}
}

// inside reports whether p lies in the convex quad, in either winding.
func inside(quad [4]mgl64.Vec2, p mgl64.Vec2) bool {
	var pos, neg bool
	for i := range quad {
		a, b := quad[i], quad[(i+1)%len(quad)]
		e := b.Sub(a)
		d := p.Sub(a)
		side := e[0]*d[1] - e[1]*d[0]
		if side > 0 {
			pos = true
		} else if side < 0 {
			neg = true
		}
	}
	return !(pos && neg)
}
