package vid2ascii

import (
	"github.com/wbrown/vid2ascii/imageutil"
)

// Compositor converts frames into ASCII rasters using a shared glyph
// atlas. The atlas and rasterizer caches are read-only after
// construction, so one Compositor may be used concurrently from
// multiple workers.
type Compositor struct {
	atlas *GlyphAtlas
	fr    *FontRasterizer
	cfg   RenderConfig
}

// NewCompositor creates a compositor over a built atlas. The rasterizer
// must be the one the atlas was built with: the exact policy stamps its
// cached, uncropped glyph masks.
func NewCompositor(atlas *GlyphAtlas, fr *FontRasterizer, cfg RenderConfig) *Compositor {
	return &Compositor{atlas: atlas, fr: fr, cfg: cfg}
}

// Atlas returns the compositor's glyph atlas.
func (c *Compositor) Atlas() *GlyphAtlas {
	return c.atlas
}

// Render composites a frame using the configured policy.
func (c *Compositor) Render(frame *imageutil.Frame) (*imageutil.Frame, error) {
	return c.RenderPolicy(frame, c.cfg.Policy)
}

// RenderPolicy composites a frame with an explicit policy, overriding
// the configured one. The parallel pipeline uses this to force the
// exact policy on worker batches.
func (c *Compositor) RenderPolicy(frame *imageutil.Frame, policy Policy) (*imageutil.Frame, error) {
	if policy == PolicyExact {
		return c.renderExact(frame)
	}
	return c.renderVectorized(frame), nil
}

// OutputSize returns the output dimensions produced for an input of the
// given size under the given policy. The two policies clip differently:
// the exact policy truncates the canvas to whole cells with one extra
// cell of margin trimmed, while the vectorized policy composites a full
// tiled grid and then cuts it back to the input dimensions.
func (c *Compositor) OutputSize(width, height int, policy Policy) (int, int) {
	cw, ch := c.atlas.CellWidth, c.atlas.CellHeight
	if policy == PolicyExact {
		if !c.cfg.Clip {
			return width, height
		}
		w := (width/cw)*cw - cw
		h := (height/ch)*ch - ch
		if w < 0 {
			w = 0
		}
		if h < 0 {
			h = 0
		}
		return w, h
	}
	if c.cfg.Clip {
		return width, height
	}
	gridW := (width + cw - 1) / cw
	gridH := (height + ch - 1) / ch
	return gridW * cw, gridH * ch
}

// IndexMap down-samples the frame by striding at the glyph cell size
// (one pixel per cell, intentionally not averaged) and maps every cell
// to its atlas index. It returns the row-major index grid and its
// dimensions. Glyph selection depends only on luminance, never on the
// color layer, so the same map drives both monochrome and colored
// output.
func (c *Compositor) IndexMap(frame *imageutil.Frame) ([]int, int, int) {
	cw, ch := c.atlas.CellWidth, c.atlas.CellHeight
	gridW := (frame.Width + cw - 1) / cw
	gridH := (frame.Height + ch - 1) / ch
	n := c.atlas.Len()

	indices := make([]int, gridW*gridH)
	for gy := 0; gy < gridH; gy++ {
		for gx := 0; gx < gridW; gx++ {
			px := frame.RGBAt(gx*cw, gy*ch)
			indices[gy*gridW+gx] = GlyphIndex(Luminance(px.R, px.G, px.B), n)
		}
	}
	return indices, gridW, gridH
}

// renderExact draws each cell's character individually onto a canvas of
// the background color. The cell's luminance is sampled from its
// top-left pixel only, a deliberate speed-over-accuracy simplification
// kept for output parity. Glyphs are stamped from the rasterizer's
// uncropped masks, so descenders render fully and may overlap the next
// cell row, exactly as a sequential text renderer would draw them.
func (c *Compositor) renderExact(frame *imageutil.Frame) (*imageutil.Frame, error) {
	cw, ch := c.atlas.CellWidth, c.atlas.CellHeight
	outW, outH := c.OutputSize(frame.Width, frame.Height, PolicyExact)

	out := imageutil.NewFrame(outW, outH)
	out.Fill(c.cfg.Background)
	n := c.atlas.Len()

	for row := 0; row < outH; row += ch {
		for col := 0; col < outW; col += cw {
			px := frame.RGBAt(col, row)
			idx := GlyphIndex(Luminance(px.R, px.G, px.B), n)
			glyph := &c.atlas.Glyphs[idx]

			mask := c.fr.Mask(glyph.Char)
			if mask == nil {
				return nil, &RenderError{Char: glyph.Char, Reason: "glyph not rasterized"}
			}

			fill := imageutil.RGB{R: px.R, G: px.G, B: px.B}
			if c.cfg.Mono != nil {
				fill = imageutil.RGB{R: c.cfg.Mono.R, G: c.cfg.Mono.G, B: c.cfg.Mono.B}
			}
			stampMask(out, mask, col, row, fill)
		}
	}
	return out, nil
}

// stampMask alpha-blends a glyph coverage mask onto the canvas at
// (x0, y0), clipped to the canvas bounds.
func stampMask(out *imageutil.Frame, mask *GlyphMask, x0, y0 int, fill imageutil.RGB) {
	for y := 0; y < mask.Height; y++ {
		oy := y0 + y
		if oy >= out.Height {
			break
		}
		for x := 0; x < mask.Width; x++ {
			ox := x0 + x
			if ox >= out.Width {
				break
			}
			a := mask.At(x, y)
			if a == 0 {
				continue
			}
			i := (oy*out.Width + ox) * 3
			out.Pix[i] = blend(out.Pix[i], fill.R, a)
			out.Pix[i+1] = blend(out.Pix[i+1], fill.G, a)
			out.Pix[i+2] = blend(out.Pix[i+2], fill.B, a)
		}
	}
}

func blend(dst, src uint8, a float32) uint8 {
	return uint8(float32(dst)*(1-a) + float32(src)*a + 0.5)
}

// renderVectorized is the performance-critical path. It maps the whole
// down-sampled grid to glyph indices, tiles the cropped atlas bitmaps
// into a full-resolution intensity raster, and applies color with a
// single element-wise multiply against the expanded color layer. Color
// modulation happens on the not-yet-inverted intensity; the final
// inversion for white backgrounds comes last, after the multiply, or
// the colors would come out wrong.
func (c *Compositor) renderVectorized(frame *imageutil.Frame) *imageutil.Frame {
	cw, ch := c.atlas.CellWidth, c.atlas.CellHeight
	indices, gridW, gridH := c.IndexMap(frame)
	tiledW := gridW * cw

	// Tile each cell's glyph bitmap into its footprint.
	intensity := make([]float32, tiledW*gridH*ch)
	for gy := 0; gy < gridH; gy++ {
		for gx := 0; gx < gridW; gx++ {
			glyph := &c.atlas.Glyphs[indices[gy*gridW+gx]]
			for y := 0; y < ch; y++ {
				dst := intensity[(gy*ch+y)*tiledW+gx*cw:]
				copy(dst[:cw], glyph.Bitmap[y*cw:(y+1)*cw])
			}
		}
	}

	outW, outH := c.OutputSize(frame.Width, frame.Height, PolicyVectorized)
	out := imageutil.NewFrame(outW, outH)
	bgWhite := c.cfg.Background == 255

	if c.cfg.Mono != nil {
		tint := *c.cfg.Mono
		if bgWhite {
			tint = tint.Invert()
		}
		for y := 0; y < outH; y++ {
			for x := 0; x < outW; x++ {
				a := intensity[y*tiledW+x]
				r := uint8(a * float32(tint.R))
				g := uint8(a * float32(tint.G))
				b := uint8(a * float32(tint.B))
				if bgWhite {
					r, g, b = 255-r, 255-g, 255-b
				}
				i := (y*outW + x) * 3
				out.Pix[i] = r
				out.Pix[i+1] = g
				out.Pix[i+2] = b
			}
		}
		return out
	}

	// The color layer is the nearest-neighbor expansion of the strided
	// sample grid: pixel (x, y) takes the color of the source pixel its
	// cell was sampled from.
	for y := 0; y < outH; y++ {
		srcY := (y / ch) * ch
		for x := 0; x < outW; x++ {
			srcX := (x / cw) * cw
			px := frame.RGBAt(srcX, srcY)
			cr, cg, cb := px.R, px.G, px.B
			if bgWhite {
				cr, cg, cb = 255-cr, 255-cg, 255-cb
			}
			a := intensity[y*tiledW+x]
			r := uint8(a * float32(cr))
			g := uint8(a * float32(cg))
			b := uint8(a * float32(cb))
			if bgWhite {
				r, g, b = 255-r, 255-g, 255-b
			}
			i := (y*outW + x) * 3
			out.Pix[i] = r
			out.Pix[i+1] = g
			out.Pix[i+2] = b
		}
	}
	return out
}
