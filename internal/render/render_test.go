package render

import (
	"errors"
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type fakeTexture struct{ w, h int }

func (f fakeTexture) Size() (int, int) { return f.w, f.h }

type fakeLoader struct {
	missing string
	loaded  []string
}

func (l *fakeLoader) LoadTexture(path string) (Texture, error) {
	l.loaded = append(l.loaded, path)
	if filepath.Base(path) == l.missing {
		return nil, errors.New("not found")
	}
	return fakeTexture{w: 4, h: 8}, nil
}

func TestQuadMeshScalesUVToPixels(t *testing.T) {
	quad := [4]mgl64.Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	uv := [4]mgl64.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	vertices, indices := QuadMesh(fakeTexture{w: 16, h: 32}, quad, uv, color.NRGBA{R: 255, A: 51})

	if len(vertices) != 4 || len(indices) != 6 {
		t.Fatalf("Expected 4 vertices and 6 indices, got %d and %d", len(vertices), len(indices))
	}
	if vertices[2].SrcX != 16 || vertices[2].SrcY != 32 {
		t.Errorf("Expected corner uv (16,32), got (%v,%v)", vertices[2].SrcX, vertices[2].SrcY)
	}
	if vertices[1].DstX != 10 || vertices[1].DstY != 0 {
		t.Errorf("Expected destination (10,0), got (%v,%v)", vertices[1].DstX, vertices[1].DstY)
	}
	if vertices[0].ColorR != 1 || math.Abs(float64(vertices[0].ColorA)-0.2) > 1e-6 {
		t.Errorf("Expected colour (1,_,_,0.2), got (%v,_,_,%v)", vertices[0].ColorR, vertices[0].ColorA)
	}
}

func TestFlattenBezierEndpoints(t *testing.T) {
	ctrl := []mgl64.Vec2{{0, 0}, {5, 10}, {10, 0}}
	points := FlattenBezier(ctrl, 4)
	if len(points) != 5 {
		t.Fatalf("Expected 5 points, got %d", len(points))
	}
	if !points[0].ApproxEqual(ctrl[0]) || !points[4].ApproxEqual(ctrl[2]) {
		t.Errorf("Expected endpoints to match controls, got %v and %v", points[0], points[4])
	}
	// Quadratic peak is half the control height.
	if !points[2].ApproxEqual(mgl64.Vec2{5, 5}) {
		t.Errorf("Expected midpoint (5,5), got %v", points[2])
	}

	cubic := FlattenBezier([]mgl64.Vec2{{0, 0}, {0, 4}, {4, 4}, {4, 0}}, 2)
	if !cubic[1].ApproxEqual(mgl64.Vec2{2, 3}) {
		t.Errorf("Expected cubic midpoint (2,3), got %v", cubic[1])
	}
}

func TestTextureSet(t *testing.T) {
	set := TextureSet{TextureLine: fakeTexture{1, 1}, TextureEdge: nil}
	if _, ok := set.Texture(TextureLine); !ok {
		t.Error("Expected line texture")
	}
	if _, ok := set.Texture(TextureEdge); ok {
		t.Error("Expected nil edge texture to be reported missing")
	}
	if _, ok := set.Texture(TextureOutline); ok {
		t.Error("Expected absent outline texture to be reported missing")
	}
}

func TestLoadTextureSetPartial(t *testing.T) {
	loader := &fakeLoader{missing: "outline.png"}
	set, err := LoadTextureSet(loader, "textures")
	if err == nil {
		t.Error("Expected an error for the missing outline texture")
	}
	if len(loader.loaded) != len(TextureKinds) {
		t.Errorf("Expected %d load attempts, got %d", len(TextureKinds), len(loader.loaded))
	}
	if _, ok := set.Texture(TextureLine); !ok {
		t.Error("Expected line texture to load despite the failure")
	}
	if _, ok := set.Texture(TextureOutline); ok {
		t.Error("Expected outline texture to be missing")
	}
}
