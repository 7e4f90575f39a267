package vid2ascii

import "testing"

func TestLuminanceExtremes(t *testing.T) {
	t.Parallel()

	if got := Luminance(0, 0, 0); got != 0 {
		t.Errorf("Luminance(black) = %d, want 0", got)
	}
	if got := Luminance(255, 255, 255); got != 255 {
		t.Errorf("Luminance(white) = %d, want 255", got)
	}

	// Green dominates perceptual brightness.
	green := Luminance(0, 255, 0)
	red := Luminance(255, 0, 0)
	blue := Luminance(0, 0, 255)
	if !(green > red && red > blue) {
		t.Errorf("expected green > red > blue, got %d, %d, %d", green, red, blue)
	}
}

func TestGlyphIndexRange(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 3, 16, 90, 256} {
		for luma := 0; luma <= 255; luma++ {
			idx := GlyphIndex(luma, n)
			if idx < 0 || idx >= n {
				t.Fatalf("GlyphIndex(%d, %d) = %d, out of [0, %d)", luma, n, idx, n)
			}
		}
		if got := GlyphIndex(0, n); got != 0 {
			t.Errorf("GlyphIndex(0, %d) = %d, want 0", n, got)
		}
		if got := GlyphIndex(255, n); got != n-1 {
			t.Errorf("GlyphIndex(255, %d) = %d, want %d", n, got, n-1)
		}
	}
}

func TestGlyphIndexMonotonic(t *testing.T) {
	t.Parallel()

	prev := 0
	for luma := 0; luma <= 255; luma++ {
		idx := GlyphIndex(luma, 90)
		if idx < prev {
			t.Fatalf("GlyphIndex not monotonic at luminance %d: %d < %d", luma, idx, prev)
		}
		prev = idx
	}
}

func TestParseRGB(t *testing.T) {
	t.Parallel()

	c, err := ParseRGB("255, 128,0")
	if err != nil {
		t.Fatalf("ParseRGB failed: %v", err)
	}
	if c != (RGB{R: 255, G: 128, B: 0}) {
		t.Errorf("ParseRGB = %+v, want {255 128 0}", c)
	}

	for _, bad := range []string{"", "1,2", "1,2,3,4", "256,0,0", "-1,0,0", "a,b,c"} {
		if _, err := ParseRGB(bad); err == nil {
			t.Errorf("ParseRGB(%q) should fail", bad)
		}
	}
}

func TestRGBInvert(t *testing.T) {
	t.Parallel()

	c := RGB{R: 10, G: 200, B: 255}
	if got := c.Invert(); got != (RGB{R: 245, G: 55, B: 0}) {
		t.Errorf("Invert = %+v", got)
	}
}
