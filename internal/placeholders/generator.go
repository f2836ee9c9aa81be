// Package placeholders generates the default line textures, so the engine can
// draw fancy lines without any art on disk.
package placeholders

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"chosenoffset.com/targetlines/internal/render"
)

// TextureSize is the edge length of each generated texture
const TextureSize = 64

// Palette holds the base colors of the generated textures. Textures are
// tinted by the line color when drawn, so these stay close to white.
var Palette = struct {
	Core    color.NRGBA
	Glow    color.NRGBA
	Outline color.NRGBA
	Cap     color.NRGBA
}{
	Core:    color.NRGBA{255, 255, 255, 255},
	Glow:    color.NRGBA{235, 240, 255, 255},
	Outline: color.NRGBA{255, 255, 255, 255},
	Cap:     color.NRGBA{255, 255, 255, 255},
}

func blank() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, TextureSize, TextureSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.NRGBA{}}, image.Point{}, draw.Src)
	return img
}

// across returns the distance of column x from the centre line, 0 in the
// middle and 1 at the edge.
func across(x int) float64 {
	half := float64(TextureSize) / 2
	return math.Abs(float64(x)+0.5-half) / half
}

// withAlpha returns c with its alpha scaled by a.
func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * max(0, min(a, 1))))
	return c
}

// CreateLine creates the fill texture. u runs across the line: a solid core
// fading into a soft glow at both edges. Every row is the same.
func CreateLine() *image.NRGBA {
	img := blank()
	for x := 0; x < TextureSize; x++ {
		d := across(x)
		var c color.NRGBA
		switch {
		case d <= 0.4:
			c = Palette.Core
		default:
			t := (d - 0.4) / 0.6
			c = withAlpha(Palette.Glow, 1-t*t)
		}
		for y := 0; y < TextureSize; y++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// CreateOutline creates the outline texture: opaque with a one pixel
// antialiased border across u.
func CreateOutline() *image.NRGBA {
	img := blank()
	for x := 0; x < TextureSize; x++ {
		edge := float64(TextureSize)/2 - across(x)*float64(TextureSize)/2
		c := withAlpha(Palette.Outline, edge)
		for y := 0; y < TextureSize; y++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// CreateCap creates the end cap texture, a filled disc with a soft rim.
func CreateCap() *image.NRGBA {
	img := blank()

	center := float64(TextureSize) / 2
	radius := center - 2

	for y := 0; y < TextureSize; y++ {
		for x := 0; x < TextureSize; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			dist := math.Sqrt(dx*dx + dy*dy)

			if dist <= radius {
				img.SetNRGBA(x, y, Palette.Cap)
			} else if dist <= radius+2 {
				img.SetNRGBA(x, y, withAlpha(Palette.Cap, (radius+2-dist)/2))
			}
		}
	}

	return img
}

// Generate returns every texture kind's image.
func Generate() map[render.TextureKind]image.Image {
	return map[render.TextureKind]image.Image{
		render.TextureLine:    CreateLine(),
		render.TextureOutline: CreateOutline(),
		render.TextureEdge:    CreateCap(),
	}
}

// Textures uploads the generated images through upload, which is usually a
// backend's texture constructor.
func Textures(upload func(image.Image) render.Texture) render.TextureSet {
	set := make(render.TextureSet, len(render.TextureKinds))
	for kind, img := range Generate() {
		set[kind] = upload(img)
	}
	return set
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// GenerateAndSave writes every texture into dir under the name
// render.LoadTextureSet expects.
func GenerateAndSave(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	images := Generate()
	var written []string
	for _, kind := range render.TextureKinds {
		path := filepath.Join(dir, render.TextureFile(kind))
		if err := SavePNG(images[kind], path); err != nil {
			return written, fmt.Errorf("failed to save %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
