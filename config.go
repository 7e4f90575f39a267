// Package vid2ascii converts raster images and video frame sequences
// into ASCII renderings. Each cell-sized block of the source is replaced
// by a character glyph chosen from a luminance-sorted atlas, colored
// from the source pixel or a fixed monochrome tint.
package vid2ascii

import "fmt"

// MasterCharset is the full character ordering used when no subset is
// requested, densest glyphs first. A user-supplied subset filters this
// string while preserving its order, which keeps the atlas input order
// deterministic for any charset.
const MasterCharset = "BEHWNQMA@KFGPRdb%D8Xe#SOap9Ufq6gh5mkZ4sxTL23YnCzw=IourV$0tv&cyJli1j7+*?<>\"():;-_!~/\\'|,.` "

// Policy selects the drawing algorithm. The two policies are alternate
// algorithms, not runtime-polymorphic implementations: the choice is
// made once at configuration time and dispatched with a switch in the
// per-frame path.
type Policy int

const (
	// PolicyVectorized down-samples the frame at the glyph cell size,
	// maps the whole grid to glyph indices at once, and reassembles the
	// output by tiling pre-rendered bitmaps. Roughly 100x faster than
	// PolicyExact.
	PolicyVectorized Policy = iota

	// PolicyExact draws every cell's character individually through the
	// font rasterizer. Slower, but renders descenders correctly.
	PolicyExact
)

func (p Policy) String() string {
	switch p {
	case PolicyVectorized:
		return "vectorized"
	case PolicyExact:
		return "exact"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// RenderConfig holds the per-run configuration. It is constructed once,
// validated before any frame work begins, and consumed read-only by all
// components, so it can be shared freely across workers.
type RenderConfig struct {
	// Charset is the ordered set of characters available to the atlas.
	Charset string

	// FontPath is a TrueType font file. Empty selects the embedded
	// Go Mono face.
	FontPath string

	// FontSize in points. Must be positive.
	FontSize int

	// Boldness is the stroke dilation radius in pixels. Recommended
	// boldness is a tenth of the font size.
	Boldness int

	// Background must be 0 (black) or 255 (white).
	Background uint8

	// Mono, when non-nil, colors every glyph with a fixed tint instead
	// of the source pixel.
	Mono *RGB

	// Clip truncates output so no partial glyph cells are drawn.
	Clip bool

	// Policy selects the drawing algorithm for sequential processing.
	// Parallel batches always run PolicyExact.
	Policy Policy

	// Workers is the parallelism degree for video processing. Values
	// below 2 select sequential processing.
	Workers int
}

// DefaultConfig returns the default render configuration: the full
// master charset, 20pt embedded font, boldness 2, white background,
// vectorized drawing with clipping, sequential processing.
func DefaultConfig() RenderConfig {
	return RenderConfig{
		Charset:    MasterCharset,
		FontSize:   20,
		Boldness:   2,
		Background: 255,
		Clip:       true,
		Policy:     PolicyVectorized,
	}
}

// FilterCharset returns the characters of the master ordering that also
// occur in subset, in master order. An empty subset selects the whole
// master set. Duplicates in subset collapse naturally since each master
// character appears once.
func FilterCharset(subset string) string {
	if subset == "" {
		return MasterCharset
	}
	allowed := make(map[rune]bool, len(subset))
	for _, r := range subset {
		allowed[r] = true
	}
	out := make([]rune, 0, len(subset))
	for _, r := range MasterCharset {
		if allowed[r] {
			out = append(out, r)
		}
	}
	return string(out)
}

// Validate checks the configuration and returns a ConfigError naming
// the first invalid field. It must be called before building the atlas.
func (c *RenderConfig) Validate() error {
	if len(c.Charset) == 0 {
		return &ConfigError{Field: "charset", Reason: "empty character set"}
	}
	if c.FontSize <= 0 {
		return &ConfigError{
			Field:  "fontsize",
			Reason: fmt.Sprintf("must be positive, got %d", c.FontSize),
		}
	}
	if c.Boldness < 0 {
		return &ConfigError{
			Field:  "boldness",
			Reason: fmt.Sprintf("must be non-negative, got %d", c.Boldness),
		}
	}
	if c.Background != 0 && c.Background != 255 {
		return &ConfigError{
			Field:  "background",
			Reason: fmt.Sprintf("must be 0 or 255, got %d", c.Background),
		}
	}
	if c.Workers < 0 {
		return &ConfigError{
			Field:  "workers",
			Reason: fmt.Sprintf("must be non-negative, got %d", c.Workers),
		}
	}
	return nil
}
