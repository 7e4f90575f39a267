package imageutil

import (
	"path/filepath"
	"testing"
)

func TestIsImageFile(t *testing.T) {
	t.Parallel()

	images := []string{"a.png", "b.JPG", "c.jpeg", "d.gif", "e.bmp", "f.tiff", "g.webp", "dir/h.PNG"}
	for _, path := range images {
		if !IsImageFile(path) {
			t.Errorf("IsImageFile(%q) = false, want true", path)
		}
	}

	videos := []string{"a.mp4", "b.avi", "c.mkv", "d.mov", "noext", "e.png.mp4"}
	for _, path := range videos {
		if IsImageFile(path) {
			t.Errorf("IsImageFile(%q) = true, want false", path)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	f := NewFrame(8, 6)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			f.SetRGB(x, y, RGB{R: uint8(x * 30), G: uint8(y * 40), B: 128})
		}
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := SaveFrame(f, path); err != nil {
		t.Fatalf("SaveFrame failed: %v", err)
	}

	loaded, err := LoadFrame(path)
	if err != nil {
		t.Fatalf("LoadFrame failed: %v", err)
	}
	if loaded.Width != f.Width || loaded.Height != f.Height {
		t.Fatalf("round trip changed dimensions to %dx%d", loaded.Width, loaded.Height)
	}
	// PNG is lossless, so pixels must survive exactly.
	for i := range f.Pix {
		if f.Pix[i] != loaded.Pix[i] {
			t.Fatalf("round trip changed pixel byte %d", i)
		}
	}
}

func TestLoadFrameMissing(t *testing.T) {
	t.Parallel()

	if _, err := LoadFrame(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("loading a missing file should fail")
	}
}

func TestResizeDimensions(t *testing.T) {
	t.Parallel()

	f := NewFrame(100, 50)
	out := Resize(f, 40, 30, InterpolationArea)
	if out.Width != 40 || out.Height != 30 {
		t.Errorf("Resize produced %dx%d, want 40x30", out.Width, out.Height)
	}

	out = ResizeToWidth(f, 60, InterpolationNearest)
	if out.Width != 60 || out.Height != 30 {
		t.Errorf("ResizeToWidth produced %dx%d, want 60x30", out.Width, out.Height)
	}
}

func TestResizeNearestPreservesSolid(t *testing.T) {
	t.Parallel()

	f := NewFrame(16, 16)
	f.Fill(200)
	out := Resize(f, 8, 8, InterpolationNearest)
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			if got := out.RGBAt(x, y); got != (RGB{R: 200, G: 200, B: 200}) {
				t.Fatalf("pixel (%d, %d) = %+v, want solid 200", x, y, got)
			}
		}
	}
}
