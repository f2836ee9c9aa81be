package style

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color is a straight-alpha RGBA colour that encodes as "#rrggbbaa" in
// presets and configuration files.
type Color color.NRGBA

// RGBA builds a Color from 8-bit channels.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// NRGBA returns c as a standard library colour.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA(c)
}

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Hex formats c as "#rrggbbaa".
func (c Color) Hex() string {
	rgb := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	return fmt.Sprintf("%s%02x", rgb.Hex(), c.A)
}

// ParseColor accepts "#rgb", "#rrggbb", "#rrggbbaa" or a CSS colour name.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return Color{R: named.R, G: named.G, B: named.B, A: named.A}, nil
	}
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("invalid colour %q", s)
	}

	alpha := uint8(255)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha in colour %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	if len(s) != 4 && len(s) != 7 {
		return Color{}, fmt.Errorf("invalid colour length %q", s)
	}

	rgb, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b := rgb.RGB255()
	return Color{R: r, G: g, B: b, A: alpha}, nil
}

// MarshalJSON encodes c as a hex string.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Hex())
}

// UnmarshalJSON decodes any form accepted by ParseColor.
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("colour must be a string: %w", err)
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
