package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom, a good fit for downscaling
	// photographic input before conversion.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest but lowest quality.
	InterpolationNearest
)

func (i Interpolation) scaler() draw.Scaler {
	switch i {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// Resize resizes a frame to the specified dimensions using the given
// interpolation method.
func Resize(frame *Frame, width, height int, interp Interpolation) *Frame {
	src := frame.ToImage()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	interp.scaler().Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return FrameFromImage(dst)
}

// ResizeToWidth resizes a frame to the specified width while keeping
// the aspect ratio.
func ResizeToWidth(frame *Frame, width int, interp Interpolation) *Frame {
	aspectRatio := float64(frame.Width) / float64(frame.Height)
	height := int(float64(width) / aspectRatio)
	if height < 1 {
		height = 1
	}
	return Resize(frame, width, height, interp)
}
