package vid2ascii

import (
	"image"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// GlyphMask is a single character's anti-aliased coverage bitmap at the
// rasterizer's font size, before any cropping. Values are normalized
// ink coverage in [0, 1], row-major, 1.0 meaning fully inked. Coverage
// is background-independent: the same mask serves both polarities.
type GlyphMask struct {
	Alpha  []float32
	Width  int
	Height int
}

// At returns the coverage at (x, y).
func (m *GlyphMask) At(x, y int) float32 {
	return m.Alpha[y*m.Width+x]
}

// FontRasterizer renders individual characters of a TrueType font into
// coverage masks. Masks are cached per rune; the cache is populated
// during atlas construction and is read-only afterwards, so a single
// rasterizer can be shared across frame workers without locking.
// Rasterize itself is not safe for concurrent use.
type FontRasterizer struct {
	font     *truetype.Font
	face     font.Face
	size     int
	boldness int
	masks    map[rune]*GlyphMask
}

// NewFontRasterizer loads a TrueType font from path and prepares it for
// glyph rendering at the given size and boldness. An empty path selects
// the embedded Go Mono face. Boldness is applied as a square dilation
// of the coverage mask, the bitmap equivalent of a stroke width.
func NewFontRasterizer(path string, size, boldness int) (*FontRasterizer, error) {
	fontBytes := gomono.TTF
	if path != "" {
		var err error
		fontBytes, err = os.ReadFile(path)
		if err != nil {
			return nil, &SourceError{Path: path, Err: err}
		}
	}

	ttf, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}

	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})

	return &FontRasterizer{
		font:     ttf,
		face:     face,
		size:     size,
		boldness: boldness,
		masks:    make(map[rune]*GlyphMask),
	}, nil
}

// Close releases the font face.
func (fr *FontRasterizer) Close() error {
	return fr.face.Close()
}

// Rasterize renders a single character into a coverage mask sized by
// the glyph's advance width and the face's line height. The glyph is
// drawn with a vertical offset of -(fontSize / 6) pixels to counter the
// rendering library's clipping offset; the constant is reproduced
// exactly for visual parity with prior renderers.
func (fr *FontRasterizer) Rasterize(r rune) (*GlyphMask, error) {
	if mask, ok := fr.masks[r]; ok {
		return mask, nil
	}

	advance, ok := fr.face.GlyphAdvance(r)
	if !ok {
		return nil, &RenderError{Char: r, Reason: "no glyph in font"}
	}
	metrics := fr.face.Metrics()

	width := advance.Ceil()
	height := (metrics.Ascent + metrics.Descent).Ceil()
	if width <= 0 || height <= 0 {
		return nil, &RenderError{Char: r, Reason: "glyph has zero dimensions"}
	}

	// Alpha rendering gives ink coverage directly, which equals the
	// polarity-corrected luminance of drawing 255-bg ink on a bg canvas.
	img := image.NewAlpha(image.Rect(0, 0, width, height))

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(fr.font)
	ctx.SetFontSize(float64(fr.size))
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	baseline := metrics.Ascent.Ceil() - fr.size/6
	if _, err := ctx.DrawString(string(r), freetype.Pt(0, baseline)); err != nil {
		return nil, &RenderError{Char: r, Reason: err.Error()}
	}

	alpha := make([]float32, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			alpha[y*width+x] = float32(img.AlphaAt(x, y).A) / 255
		}
	}
	if fr.boldness > 0 {
		alpha = dilate(alpha, width, height, fr.boldness)
	}

	mask := &GlyphMask{Alpha: alpha, Width: width, Height: height}
	fr.masks[r] = mask
	return mask, nil
}

// Mask returns the cached coverage mask for a character rasterized
// earlier, or nil if the character was never rasterized.
func (fr *FontRasterizer) Mask(r rune) *GlyphMask {
	return fr.masks[r]
}

// dilate grows inked regions by radius pixels using a square maximum
// filter. This approximates a stroke width for a rasterizer that cannot
// stroke outlines directly.
func dilate(alpha []float32, width, height, radius int) []float32 {
	out := make([]float32, len(alpha))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var peak float32
			for dy := -radius; dy <= radius; dy++ {
				ny := y + dy
				if ny < 0 || ny >= height {
					continue
				}
				for dx := -radius; dx <= radius; dx++ {
					nx := x + dx
					if nx < 0 || nx >= width {
						continue
					}
					if v := alpha[ny*width+nx]; v > peak {
						peak = v
					}
				}
			}
			out[y*width+x] = peak
		}
	}
	return out
}
