// Package imageutil provides the packed RGB frame type shared by all
// pipeline stages, plus pure Go image I/O and resizing helpers.
package imageutil

import (
	"image"
	"image/color"
)

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// ToColor converts RGB to color.RGBA for use with the standard library.
func (rgb RGB) ToColor() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// Frame is a raster of RGB byte triples, height x width x 3, origin
// top-left. A frame is owned exclusively by the pipeline stage that is
// processing it and is never mutated once index computation begins.
type Frame struct {
	Pix    []uint8
	Width  int
	Height int
}

// NewFrame allocates a zeroed frame of the given dimensions.
func NewFrame(width, height int) *Frame {
	return &Frame{
		Pix:    make([]uint8, width*height*3),
		Width:  width,
		Height: height,
	}
}

// RGBAt returns the pixel at (x, y).
func (f *Frame) RGBAt(x, y int) RGB {
	i := (y*f.Width + x) * 3
	return RGB{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2]}
}

// SetRGB sets the pixel at (x, y).
func (f *Frame) SetRGB(x, y int, c RGB) {
	i := (y*f.Width + x) * 3
	f.Pix[i] = c.R
	f.Pix[i+1] = c.G
	f.Pix[i+2] = c.B
}

// Fill sets every channel of every pixel to v.
func (f *Frame) Fill(v uint8) {
	for i := range f.Pix {
		f.Pix[i] = v
	}
}

// Clone creates a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	clone := NewFrame(f.Width, f.Height)
	copy(clone.Pix, f.Pix)
	return clone
}

// ToImage converts the frame to an image.RGBA.
func (f *Frame) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		src := f.Pix[y*f.Width*3 : (y+1)*f.Width*3]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < f.Width; x++ {
			dst[x*4] = src[x*3]
			dst[x*4+1] = src[x*3+1]
			dst[x*4+2] = src[x*3+2]
			dst[x*4+3] = 255
		}
	}
	return img
}

// FrameFromImage converts any image.Image to a Frame, dropping alpha.
func FrameFromImage(img image.Image) *Frame {
	bounds := img.Bounds()
	frame := NewFrame(bounds.Dx(), bounds.Dy())

	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < frame.Height; y++ {
			src := rgba.Pix[y*rgba.Stride:]
			dst := frame.Pix[y*frame.Width*3:]
			for x := 0; x < frame.Width; x++ {
				dst[x*3] = src[x*4]
				dst[x*3+1] = src[x*4+1]
				dst[x*3+2] = src[x*4+2]
			}
		}
		return frame
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			frame.SetRGB(x-bounds.Min.X, y-bounds.Min.Y, RGB{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(b >> 8),
			})
		}
	}
	return frame
}
