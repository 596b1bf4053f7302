package render

import (
	"fmt"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// RGBA is an RGB fill with straight (non-premultiplied) alpha in [0, 1]
type RGBA struct {
	R, G, B uint8
	A       float64
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
	RGBRed   = RGB{255, 0, 0}
	RGBGreen = RGB{0, 128, 0}

	// RGBGridLine is the light gray used for grid lines
	RGBGridLine = RGB{0xdd, 0xdd, 0xdd}
	// RGBBackground is the default scene clear color
	RGBBackground = RGB{0x22, 0x22, 0x22}
)

// WithAlpha promotes c to an RGBA fill
func (c RGB) WithAlpha(a float64) RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// Opaque returns c as a fully opaque fill
func (c RGB) Opaque() RGBA {
	return c.WithAlpha(1)
}

// RGB drops the alpha channel
func (c RGBA) RGB() RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// String renders the CSS rgba() form, e.g. "rgba(28,252,252, 0.5)"
func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d, %s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'g', -1, 64))
}

// ParseHex parses "#rgb" or "#rrggbb"
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, err
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// Hex formats c as "#rrggbb"
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// clamp converts float to uint8 with saturation
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// Blend performs source-over alpha compositing of src onto c
// If alpha is 1.0 or 0.0, we return early to save math
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}

	inv := 1.0 - alpha

	return RGB{
		R: clamp(float64(src.R)*alpha + float64(c.R)*inv + 0.5),
		G: clamp(float64(src.G)*alpha + float64(c.G)*inv + 0.5),
		B: clamp(float64(src.B)*alpha + float64(c.B)*inv + 0.5),
	}
}
