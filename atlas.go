package vid2ascii

import "sort"

// Glyph is a single character's cropped, normalized ink-density bitmap
// within an atlas. All glyphs in one atlas share the same dimensions.
type Glyph struct {
	Char    rune
	Bitmap  []float32
	Width   int
	Height  int
	density float32
}

// At returns the ink density at (x, y).
func (g *Glyph) At(x, y int) float32 {
	return g.Bitmap[y*g.Width+x]
}

// GlyphAtlas is the ordered set of glyphs for one render configuration,
// sorted by descending summed ink density so that a luminance value
// maps directly to an atlas index by linear scaling: dark input selects
// the densest glyph. The atlas is built once per run and is strictly
// read-only afterwards, so it can be shared across workers without
// synchronization.
type GlyphAtlas struct {
	Glyphs     []Glyph
	CellWidth  int
	CellHeight int
}

// Len returns the number of glyphs in the atlas.
func (a *GlyphAtlas) Len() int {
	return len(a.Glyphs)
}

// BuildAtlas rasterizes every character of the charset and assembles
// the glyph atlas. Each rendered mask is cropped to the minimum width
// and height observed across the whole set, which makes the atlas
// rectangular and uniform as required by block tiling. The crop loses
// descender detail for characters like g, j, p, q, y; that is an
// accepted approximation of the tiling path.
//
// The resulting order is deterministic for a fixed charset and font:
// glyphs are sorted stably by descending density, with ties broken by
// charset position.
func BuildAtlas(charset string, fr *FontRasterizer) (*GlyphAtlas, error) {
	if len(charset) == 0 {
		return nil, &ConfigError{Field: "charset", Reason: "empty character set"}
	}

	chars := []rune(charset)
	masks := make([]*GlyphMask, len(chars))
	minWidth, minHeight := 0, 0
	for i, r := range chars {
		mask, err := fr.Rasterize(r)
		if err != nil {
			return nil, err
		}
		masks[i] = mask
		if i == 0 || mask.Width < minWidth {
			minWidth = mask.Width
		}
		if i == 0 || mask.Height < minHeight {
			minHeight = mask.Height
		}
	}

	glyphs := make([]Glyph, len(chars))
	for i, mask := range masks {
		bitmap := make([]float32, minWidth*minHeight)
		var sum float32
		for y := 0; y < minHeight; y++ {
			for x := 0; x < minWidth; x++ {
				v := mask.At(x, y)
				bitmap[y*minWidth+x] = v
				sum += v
			}
		}
		glyphs[i] = Glyph{
			Char:    chars[i],
			Bitmap:  bitmap,
			Width:   minWidth,
			Height:  minHeight,
			density: sum,
		}
	}

	sort.SliceStable(glyphs, func(i, j int) bool {
		return glyphs[i].density > glyphs[j].density
	})

	return &GlyphAtlas{
		Glyphs:     glyphs,
		CellWidth:  minWidth,
		CellHeight: minHeight,
	}, nil
}
