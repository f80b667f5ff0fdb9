package imaging

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
//
// Each component ranges from 0 to 255, where:
//   - 0 represents no intensity (black for all components)
//   - 255 represents full intensity (white for all components)
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

var (
	// White is pure white, the only non-ink color.
	White = RGBColor{R: 255, G: 255, B: 255}
	// Black is pure black.
	Black = RGBColor{}
)

// RGBFromColor converts a color.Color to 8-bit RGB, composited onto white.
// A fully transparent pixel is therefore paper, not ink.
func RGBFromColor(c color.Color) RGBColor {
	r, g, b, a := c.RGBA()
	paper := 0xffff - a
	return RGBColor{R: uint8((r + paper) >> 8), G: uint8((g + paper) >> 8), B: uint8((b + paper) >> 8)}
}

// Gray returns the equal-RGB gray of intensity v.
func Gray(v uint8) RGBColor {
	return RGBColor{R: v, G: v, B: v}
}

// RGBA implements color.Color, so an RGBColor can be drawn directly.
func (c RGBColor) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Hex formats the color as "#RRGGBB".
func (c RGBColor) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c RGBColor) toColorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
}

// Brightness returns the HSL lightness of c, (max+min)/2, in the range [0, 1].
// On gray pixels this equals the HSV value.
func Brightness(c RGBColor) float64 {
	_, _, l := c.toColorful().Hsl()
	return l
}

// Predicate selects pixels by color.
type Predicate func(RGBColor) bool

// Equals matches exactly one color.
func Equals(target RGBColor) Predicate {
	return func(c RGBColor) bool { return c == target }
}

// BrighterThan matches pixels whose Brightness exceeds limit.
func BrighterThan(limit float64) Predicate {
	return func(c RGBColor) bool { return Brightness(c) > limit }
}

// BlueBand matches pixels whose blue channel is below maxBlue, except pure
// black. With maxBlue = 16 this selects the yellow watermark line of the
// scanned source lines: any pixel whose blue component has a zero high nibble.
func BlueBand(maxBlue uint8) Predicate {
	return func(c RGBColor) bool {
		if c == Black {
			return false
		}
		return c.B < maxBlue
	}
}

// HueBand matches saturated pixels whose HSV hue falls in [MinHue, MaxHue]
// degrees. A band with MinHue > MaxHue wraps through 0 (for reds).
type HueBand struct {
	MinHue        float64 `json:"min_hue"`
	MaxHue        float64 `json:"max_hue"`
	MinSaturation float64 `json:"min_saturation"`
}

// Match reports whether c belongs to the band.
func (b HueBand) Match(c RGBColor) bool {
	h, s, _ := c.toColorful().Hsv()
	if s < b.MinSaturation || math.IsNaN(h) {
		return false
	}
	if b.MinHue <= b.MaxHue {
		return h >= b.MinHue && h <= b.MaxHue
	}
	return h >= b.MinHue || h <= b.MaxHue
}

// Predicate adapts the band to a Predicate.
func (b HueBand) Predicate() Predicate {
	return b.Match
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// HSL returns c in integer HSL form.
func (c RGBColor) HSL() HSLColor {
	h, s, l := c.toColorful().Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)}
}

// ColorFrequency is a color and the share of pixels that carry it.
type ColorFrequency struct {
	Hex        string   `json:"hex"`
	Percentage float64  `json:"percentage"`
	RGB        RGBColor `json:"rgb"`
	HSL        HSLColor `json:"hsl"`
}

// Palette counts the distinct colors of g, in first-seen order. It helps pick
// a watermark predicate for a new source.
func Palette(g Grid) []ColorFrequency {
	if g.Empty() {
		return nil
	}
	counts := make(map[RGBColor]int)
	for _, c := range g.Pix {
		counts[c]++
	}
	colors := g.Colors()
	out := make([]ColorFrequency, 0, len(colors))
	for _, c := range colors {
		out = append(out, ColorFrequency{
			Hex:        c.Hex(),
			Percentage: math.Round(float64(counts[c])/float64(len(g.Pix))*10000) / 100,
			RGB:        c,
			HSL:        c.HSL(),
		})
	}
	return out
}
