package render

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// DrawList is the immediate-mode sink target lines are emitted into. Every
// backend (live window, PNG snapshot, terminal) implements it. Positions are
// screen pixels.
type DrawList interface {
	// AddBezierQuadratic strokes the quadratic curve p0, p1, p2.
	AddBezierQuadratic(p0, p1, p2 mgl64.Vec2, clr color.NRGBA, thickness float64)

	// AddBezierCubic strokes the cubic curve p0, p1, p2, p3.
	AddBezierCubic(p0, p1, p2, p3 mgl64.Vec2, clr color.NRGBA, thickness float64)

	// AddImageQuad draws tex mapped onto the quad. Corners are listed in
	// winding order with uv giving normalized texture coordinates for each.
	AddImageQuad(tex Texture, quad [4]mgl64.Vec2, uv [4]mgl64.Vec2, clr color.NRGBA)

	// AddText draws a single line of text with its top-left corner at pos.
	AddText(pos mgl64.Vec2, clr color.NRGBA, text string)
}

// Texture is a read-only image handle owned by the backend.
type Texture interface {
	Size() (width, height int)
}

// TextureKind names the materials a target line is drawn with.
type TextureKind int

const (
	TextureLine TextureKind = iota
	TextureOutline
	TextureEdge
)

func (k TextureKind) String() string {
	switch k {
	case TextureLine:
		return "line"
	case TextureOutline:
		return "outline"
	case TextureEdge:
		return "edge"
	default:
		return "unknown"
	}
}

// TextureKinds lists every kind in file order.
var TextureKinds = []TextureKind{TextureLine, TextureOutline, TextureEdge}

// TextureProvider hands out texture handles. A missing or not yet loaded
// texture reports false, and the caller skips the draw that needed it.
type TextureProvider interface {
	Texture(kind TextureKind) (Texture, bool)
}

// Renderer creates backend resources. This allows swapping rendering
// backends without changing line logic.
type Renderer interface {
	// NewImage creates a blank render target.
	NewImage(width, height int) Image

	// NewTexture uploads a decoded image as a texture.
	NewTexture(img image.Image) Texture

	// DrawList returns a sink that draws onto dst.
	DrawList(dst Image) DrawList
}

// Image represents a renderable surface.
type Image interface {
	Bounds() image.Rectangle
	Size() (width, height int)

	Fill(clr color.Color)
	Clear()

	// DrawTriangles draws textured triangles. Vertex source coordinates are
	// in texture pixels.
	DrawTriangles(vertices []Vertex, indices []uint16, tex Texture, opts *DrawTrianglesOptions)

	Dispose()
}

// DrawTrianglesOptions contains options for drawing triangles.
type DrawTrianglesOptions struct {
	AntiAlias bool
}

// Vertex represents a vertex for triangle rendering.
type Vertex struct {
	DstX   float32
	DstY   float32
	SrcX   float32
	SrcY   float32
	ColorR float32
	ColorG float32
	ColorB float32
	ColorA float32
}

// InputManager handles input from the user.
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
}

// Key represents a keyboard key.
type Key int

// Key constants for the demo controls
const (
	KeyF     Key = iota // First person toggle
	KeyS                // Solid colour toggle
	KeyD                // Debug overlay toggle
	KeyO                // Occlusion culling toggle
	KeyUp               // More entities
	KeyDown             // Fewer entities
	KeySpace            // Sheathe toggle
	KeyP                // Pause
	KeyH                // Help toggle
	KeyEscape
)

// ResourceLoader handles loading resources like textures from disk.
type ResourceLoader interface {
	LoadTexture(path string) (Texture, error)
}

// Game represents the loop callbacks the engine drives.
type Game interface {
	// Update advances the simulation. It is called every tick (typically 60 times per second).
	Update() error

	// Draw draws the screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the engine that manages the loop and window.
type Engine interface {
	SetWindowSize(width, height int)
	SetWindowTitle(title string)
	SetWindowResizable(resizable bool)

	// RunGame runs the loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}
