package vid2ascii

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB represents a color in the RGB color space with 8-bit channels,
// where each channel ranges from 0 to 255.
type RGB struct {
	R, G, B uint8
}

// Fixed-point BT.601 luminance weights, scaled by 256 so the weighted
// sum can be normalized with a single right shift. The weights sum to
// exactly 256, which keeps the luminance of pure white at 255 and makes
// the computation reproducible bit-for-bit across platforms. If the
// perceptual weights are ever changed, lumaShift must be re-derived so
// the maximum weighted sum still normalizes to the 8-bit range.
const (
	lumaRed   = 77  // round(0.299 * 256)
	lumaGreen = 150 // round(0.587 * 256)
	lumaBlue  = 29  // round(0.114 * 256)
	lumaShift = 8
)

// Luminance returns the perceptual brightness of an RGB triple in the
// range [0, 255], computed in fixed-point integer arithmetic.
func Luminance(r, g, b uint8) int {
	return (lumaRed*int(r) + lumaGreen*int(g) + lumaBlue*int(b)) >> lumaShift
}

// Luminance returns the perceptual brightness of the color.
func (c RGB) Luminance() int {
	return Luminance(c.R, c.G, c.B)
}

// Invert returns the channel-wise inverse of the color.
func (c RGB) Invert() RGB {
	return RGB{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B}
}

// GlyphIndex maps a luminance value in [0, 255] to an index into an
// atlas of n glyphs. The multiply-and-shift is an integer substitute for
// a floating division by 256: index = luminance * n >> 8 spans [0, n)
// for full-range luminance. The result is clamped to guard against
// rounding overshoot at the extremes.
func GlyphIndex(luminance, n int) int {
	idx := luminance * n >> lumaShift
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// ParseRGB parses a color in "R,G,B" form with each channel in [0, 255].
func ParseRGB(s string) (RGB, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return RGB{}, fmt.Errorf("invalid color %q: expected R,G,B", s)
	}
	var channels [3]uint8
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v < 0 || v > 255 {
			return RGB{}, fmt.Errorf("invalid color %q: channel %q out of range", s, part)
		}
		channels[i] = uint8(v)
	}
	return RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}
