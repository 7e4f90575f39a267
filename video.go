package vid2ascii

import (
	"fmt"
	"io"

	"gocv.io/x/gocv"

	"github.com/wbrown/vid2ascii/imageutil"
)

// VideoSource decodes frames from a video file through OpenCV. Mats are
// BGR; pixels are swapped into RGB frames at the boundary so the rest
// of the pipeline never sees channel order.
type VideoSource struct {
	capture *gocv.VideoCapture
	mat     gocv.Mat
	meta    SourceMeta
	path    string
}

// OpenVideoSource opens a video file and reads its metadata.
func OpenVideoSource(path string) (*VideoSource, error) {
	capture, err := gocv.OpenVideoCapture(path)
	if err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, &SourceError{Path: path}
	}

	meta := SourceMeta{
		Width:  int(capture.Get(gocv.VideoCaptureFrameWidth)),
		Height: int(capture.Get(gocv.VideoCaptureFrameHeight)),
		FPS:    capture.Get(gocv.VideoCaptureFPS),
		Frames: int(capture.Get(gocv.VideoCaptureFrameCount)),
	}

	return &VideoSource{
		capture: capture,
		mat:     gocv.NewMat(),
		meta:    meta,
		path:    path,
	}, nil
}

// Meta returns the decoded stream metadata.
func (s *VideoSource) Meta() SourceMeta {
	return s.meta
}

// Next decodes the next frame, returning io.EOF at stream end.
func (s *VideoSource) Next() (*imageutil.Frame, error) {
	if !s.capture.Read(&s.mat) || s.mat.Empty() {
		return nil, io.EOF
	}
	return frameFromMat(s.mat), nil
}

// Close releases the decoder.
func (s *VideoSource) Close() error {
	if err := s.mat.Close(); err != nil {
		return err
	}
	return s.capture.Close()
}

// VideoSink encodes frames to a video file through OpenCV. The output
// dimensions are fixed at creation; every written frame must match.
type VideoSink struct {
	writer *gocv.VideoWriter
	width  int
	height int
}

// NewVideoSink creates an mp4v-encoded video writer of the given
// dimensions and frame rate.
func NewVideoSink(path string, width, height int, fps float64) (*VideoSink, error) {
	writer, err := gocv.VideoWriterFile(path, "mp4v", fps, width, height, true)
	if err != nil {
		return nil, fmt.Errorf("failed to open video writer %s: %w", path, err)
	}
	return &VideoSink{writer: writer, width: width, height: height}, nil
}

// Write appends a frame to the output video.
func (s *VideoSink) Write(frame *imageutil.Frame) error {
	if frame.Width != s.width || frame.Height != s.height {
		return fmt.Errorf("frame size %dx%d does not match sink size %dx%d",
			frame.Width, frame.Height, s.width, s.height)
	}
	mat, err := matFromFrame(frame)
	if err != nil {
		return err
	}
	defer mat.Close()
	return s.writer.Write(mat)
}

// Close finalizes the output file.
func (s *VideoSink) Close() error {
	return s.writer.Close()
}

// frameFromMat converts a BGR Mat to an RGB frame.
func frameFromMat(mat gocv.Mat) *imageutil.Frame {
	rows, cols := mat.Rows(), mat.Cols()
	frame := imageutil.NewFrame(cols, rows)
	data := mat.ToBytes()
	for i := 0; i+2 < len(data) && i+2 < len(frame.Pix); i += 3 {
		frame.Pix[i] = data[i+2]
		frame.Pix[i+1] = data[i+1]
		frame.Pix[i+2] = data[i]
	}
	return frame
}

// matFromFrame converts an RGB frame to a BGR Mat.
func matFromFrame(frame *imageutil.Frame) (gocv.Mat, error) {
	data := make([]uint8, len(frame.Pix))
	for i := 0; i+2 < len(frame.Pix); i += 3 {
		data[i] = frame.Pix[i+2]
		data[i+1] = frame.Pix[i+1]
		data[i+2] = frame.Pix[i]
	}
	return gocv.NewMatFromBytes(frame.Height, frame.Width, gocv.MatTypeCV8UC3, data)
}
