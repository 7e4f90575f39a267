package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/wbrown/vid2ascii"
	"github.com/wbrown/vid2ascii/imageutil"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: asciify [options] input output\n\n")
	fmt.Fprintf(os.Stderr, "Converts images and videos into ASCII renderings.\n\n")
	flag.PrintDefaults()
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	chars := flag.String("chars", "",
		"ASCII characters to use in the output (subset of the built-in set)")
	fontPath := flag.String("font", "",
		"Path to a TrueType font file (default: embedded Go Mono)")
	fontSize := flag.Int("f", 20,
		"Font size")
	boldness := flag.Int("b", 2,
		"Boldness of characters; recommended boldness is a tenth of the font size")
	background := flag.Int("bg", 255,
		"Background color, 255 for white or 0 for black")
	mono := flag.String("m", "",
		"Color for monochromatic output in \"R,G,B\" format")
	clip := flag.Bool("c", true,
		"Clip characters so they do not extend outside the output bounds")
	exact := flag.Bool("d", false,
		"Use the exact drawing algorithm over the vectorized one")
	cores := flag.Int("cores", 0,
		"CPU cores to use for parallel video processing")
	random := flag.Bool("r", false,
		"Generate random noise frames instead of decoding the input")
	randWidth := flag.Int("width", 1920,
		"Width of random media")
	randHeight := flag.Int("height", 1080,
		"Height of random media")
	randFPS := flag.Float64("fps", 30,
		"Frames per second of random video")
	randDur := flag.Float64("dur", 10,
		"Duration in seconds of random video")
	scale := flag.Int("scale", 0,
		"Resize still-image input to this width before conversion (0 = off)")

	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		os.Exit(1)
	}
	input, output := flag.Arg(0), flag.Arg(1)

	if *background != 0 && *background != 255 {
		fatal("invalid background %d: must be 0 or 255", *background)
	}

	cfg := vid2ascii.DefaultConfig()
	cfg.Charset = vid2ascii.FilterCharset(*chars)
	cfg.FontPath = *fontPath
	cfg.FontSize = *fontSize
	cfg.Boldness = *boldness
	cfg.Background = uint8(*background)
	cfg.Clip = *clip
	if *exact {
		cfg.Policy = vid2ascii.PolicyExact
	}
	workers := *cores
	if workers > runtime.NumCPU() {
		workers = runtime.NumCPU()
	}
	cfg.Workers = workers

	if *mono != "" {
		tint, err := vid2ascii.ParseRGB(*mono)
		if err != nil {
			fatal("%v", err)
		}
		cfg.Mono = &tint
	}

	if err := cfg.Validate(); err != nil {
		fatal("%v", err)
	}

	beginInit := time.Now()
	rasterizer, err := vid2ascii.NewFontRasterizer(cfg.FontPath, cfg.FontSize, cfg.Boldness)
	if err != nil {
		fatal("error loading font: %v", err)
	}
	defer rasterizer.Close()

	atlas, err := vid2ascii.BuildAtlas(cfg.Charset, rasterizer)
	if err != nil {
		fatal("error building glyph atlas: %v", err)
	}

	comp := vid2ascii.NewCompositor(atlas, rasterizer, cfg)
	pipeline := vid2ascii.NewPipeline(comp, cfg.Workers)
	pipeline.Progress = func(done, total int) {
		fmt.Fprintf(os.Stderr, "\rframe %d/%d", done, total)
	}
	fmt.Printf("atlas: %d glyphs, %dx%d cells\n",
		atlas.Len(), atlas.CellWidth, atlas.CellHeight)
	fmt.Printf("initialization time: %v\n", time.Since(beginInit))
	beginRun := time.Now()

	imageMode := imageutil.IsImageFile(input) || imageutil.IsImageFile(output)
	switch {
	case imageMode && *random:
		src := vid2ascii.NewNoiseSource(*randWidth, *randHeight, 1, 1,
			time.Now().UnixNano())
		frame, err := src.Next()
		if err != nil {
			fatal("error generating random frame: %v", err)
		}
		out, err := comp.Render(frame)
		if err != nil {
			fatal("error converting image: %v", err)
		}
		if err := imageutil.SaveFrame(out, output); err != nil {
			fatal("error writing %s: %v", output, err)
		}
	case imageMode:
		if err := pipeline.RunImage(input, output, *scale); err != nil {
			fatal("error converting image: %v", err)
		}
	default:
		if err := runVideo(pipeline, comp, cfg, input, output, *random,
			*randWidth, *randHeight, *randFPS, *randDur); err != nil {
			fatal("error converting video: %v", err)
		}
		fmt.Fprintln(os.Stderr)
	}

	fmt.Printf("computation time: %v\n", time.Since(beginRun))
	fmt.Printf("output written to %s\n", output)
}

// runVideo wires a decoded or synthetic frame source to a video sink
// sized for the compositor's output. Parallel batches always run the
// exact policy, so sizing has to account for the effective policy, not
// just the configured one.
func runVideo(
	pipeline *vid2ascii.Pipeline,
	comp *vid2ascii.Compositor,
	cfg vid2ascii.RenderConfig,
	input, output string,
	random bool,
	width, height int,
	fps, duration float64,
) error {
	var src vid2ascii.FrameSource
	if random {
		src = vid2ascii.NewNoiseSource(width, height, fps, duration,
			time.Now().UnixNano())
	} else {
		videoSrc, err := vid2ascii.OpenVideoSource(input)
		if err != nil {
			return err
		}
		src = videoSrc
	}
	defer src.Close()

	policy := cfg.Policy
	if cfg.Workers > 1 {
		policy = vid2ascii.PolicyExact
	}
	meta := src.Meta()
	outWidth, outHeight := comp.OutputSize(meta.Width, meta.Height, policy)

	sink, err := vid2ascii.NewVideoSink(output, outWidth, outHeight, meta.FPS)
	if err != nil {
		return err
	}

	if err := pipeline.Run(src, sink); err != nil {
		sink.Close()
		return err
	}
	return sink.Close()
}
