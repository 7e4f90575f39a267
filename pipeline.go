package vid2ascii

import (
	"io"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/wbrown/vid2ascii/imageutil"
)

// SourceMeta describes a frame source. Frames is the expected total
// frame count, used only for advisory progress reporting; the actual
// stream may be shorter or longer without affecting correctness.
type SourceMeta struct {
	Width  int
	Height int
	FPS    float64
	Frames int
}

// FrameSource yields RGB frames in decode order. Next returns io.EOF
// when the stream is exhausted.
type FrameSource interface {
	Meta() SourceMeta
	Next() (*imageutil.Frame, error)
	Close() error
}

// FrameSink consumes composited frames. Frames must be written in the
// same order they were decoded.
type FrameSink interface {
	Write(frame *imageutil.Frame) error
	Close() error
}

// ProgressFunc receives advisory progress updates. total comes from the
// source metadata estimate and may disagree with the actual count.
type ProgressFunc func(done, total int)

// Pipeline drives a Compositor over a frame stream. With workers <= 1
// frames are processed strictly one at a time in stream order, bounding
// memory to a single frame in flight. With workers > 1 frames are
// pulled in fixed-size batches and converted in parallel with the exact
// policy; the vectorized policy stays sequential because it is already
// fast enough single-threaded. Output order always matches decode
// order.
type Pipeline struct {
	comp    *Compositor
	workers int

	// Progress, when set, is called after each frame reaches the sink.
	Progress ProgressFunc
}

// NewPipeline creates a pipeline over a compositor with the given
// parallelism degree.
func NewPipeline(comp *Compositor, workers int) *Pipeline {
	return &Pipeline{comp: comp, workers: workers}
}

// Run converts every frame of the source and writes the results to the
// sink in decode order. A failed frame conversion aborts the whole run:
// silently dropping a frame would break the ordering and completeness
// guarantee.
func (p *Pipeline) Run(src FrameSource, sink FrameSink) error {
	total := src.Meta().Frames
	done := 0
	emit := func(frame *imageutil.Frame) error {
		if err := sink.Write(frame); err != nil {
			return err
		}
		done++
		if p.Progress != nil {
			p.Progress(done, total)
		}
		return nil
	}

	if p.workers <= 1 {
		for {
			frame, err := src.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			out, err := p.comp.Render(frame)
			if err != nil {
				return err
			}
			if err := emit(out); err != nil {
				return err
			}
		}
	}

	batch := make([]*imageutil.Frame, 0, p.workers)
	for {
		batch = batch[:0]
		for len(batch) < p.workers {
			frame, err := src.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
			batch = append(batch, frame)
		}
		if len(batch) == 0 {
			return nil
		}

		// Index-aligned parallel map over the batch; the pool is sized
		// to the batch, so a short final batch spawns fewer workers.
		results := make([]*imageutil.Frame, len(batch))
		var g errgroup.Group
		g.SetLimit(len(batch))
		for i, frame := range batch {
			g.Go(func() error {
				out, err := p.comp.RenderPolicy(frame, PolicyExact)
				if err != nil {
					return err
				}
				results[i] = out
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		for _, out := range results {
			if err := emit(out); err != nil {
				return err
			}
		}
		if len(batch) < p.workers {
			return nil
		}
	}
}

// RunImage converts a single still image file. scaleWidth, when
// positive, pre-resizes the input to that width before conversion.
func (p *Pipeline) RunImage(inputPath, outputPath string, scaleWidth int) error {
	frame, err := imageutil.LoadFrame(inputPath)
	if err != nil {
		return &SourceError{Path: inputPath, Err: err}
	}
	if scaleWidth > 0 && scaleWidth != frame.Width {
		frame = imageutil.ResizeToWidth(frame, scaleWidth, imageutil.InterpolationArea)
	}
	out, err := p.comp.Render(frame)
	if err != nil {
		return err
	}
	return imageutil.SaveFrame(out, outputPath)
}

// NoiseSource generates uniformly random RGB frames. It bypasses media
// decoding entirely and exists for benchmarking and testing the
// pipeline without real input.
type NoiseSource struct {
	meta      SourceMeta
	remaining int
	rng       *rand.Rand
}

// NewNoiseSource creates a synthetic source of int(fps*duration + 0.5)
// random frames at the given size.
func NewNoiseSource(width, height int, fps, duration float64, seed int64) *NoiseSource {
	frames := int(fps*duration + 0.5)
	return &NoiseSource{
		meta: SourceMeta{
			Width:  width,
			Height: height,
			FPS:    fps,
			Frames: frames,
		},
		remaining: frames,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Meta returns the source metadata.
func (s *NoiseSource) Meta() SourceMeta {
	return s.meta
}

// Next returns the next random frame, or io.EOF after the configured
// frame count.
func (s *NoiseSource) Next() (*imageutil.Frame, error) {
	if s.remaining <= 0 {
		return nil, io.EOF
	}
	s.remaining--
	frame := imageutil.NewFrame(s.meta.Width, s.meta.Height)
	s.rng.Read(frame.Pix)
	return frame, nil
}

// Close is a no-op for the synthetic source.
func (s *NoiseSource) Close() error {
	return nil
}
