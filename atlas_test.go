package vid2ascii

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func newTestRasterizer(t *testing.T, size, boldness int) *FontRasterizer {
	t.Helper()
	fr, err := NewFontRasterizer("", size, boldness)
	if err != nil {
		t.Fatalf("NewFontRasterizer failed: %v", err)
	}
	t.Cleanup(func() { fr.Close() })
	return fr
}

func TestAtlasUniformity(t *testing.T) {
	t.Parallel()

	fr := newTestRasterizer(t, 16, 0)
	atlas, err := BuildAtlas("# .iW", fr)
	if err != nil {
		t.Fatalf("BuildAtlas failed: %v", err)
	}

	if atlas.Len() != 5 {
		t.Fatalf("atlas has %d glyphs, want 5", atlas.Len())
	}
	for i, g := range atlas.Glyphs {
		if g.Width != atlas.CellWidth || g.Height != atlas.CellHeight {
			t.Errorf("glyph %d (%q) is %dx%d, want cell size %dx%d",
				i, g.Char, g.Width, g.Height, atlas.CellWidth, atlas.CellHeight)
		}
		if len(g.Bitmap) != g.Width*g.Height {
			t.Errorf("glyph %q bitmap length %d, want %d",
				g.Char, len(g.Bitmap), g.Width*g.Height)
		}
	}
	if atlas.CellWidth <= 0 || atlas.CellHeight <= 0 {
		t.Errorf("cell size %dx%d must be positive", atlas.CellWidth, atlas.CellHeight)
	}
}

func TestAtlasDensityOrdering(t *testing.T) {
	t.Parallel()

	fr := newTestRasterizer(t, 16, 0)
	atlas, err := BuildAtlas("W#=. ", fr)
	if err != nil {
		t.Fatalf("BuildAtlas failed: %v", err)
	}

	for i := 1; i < atlas.Len(); i++ {
		if atlas.Glyphs[i-1].density < atlas.Glyphs[i].density {
			t.Errorf("glyphs not sorted by descending density: %q (%f) before %q (%f)",
				atlas.Glyphs[i-1].Char, atlas.Glyphs[i-1].density,
				atlas.Glyphs[i].Char, atlas.Glyphs[i].density)
		}
	}

	// Space carries no ink and must sort last.
	last := atlas.Glyphs[atlas.Len()-1]
	if last.Char != ' ' {
		t.Errorf("emptiest glyph is %q, want space", last.Char)
	}
	if last.density != 0 {
		t.Errorf("space density = %f, want 0", last.density)
	}
}

func TestAtlasDeterminism(t *testing.T) {
	t.Parallel()

	const charset = "#XO=-. "
	first, err := BuildAtlas(charset, newTestRasterizer(t, 14, 1))
	if err != nil {
		t.Fatalf("first BuildAtlas failed: %v", err)
	}
	second, err := BuildAtlas(charset, newTestRasterizer(t, 14, 1))
	if err != nil {
		t.Fatalf("second BuildAtlas failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("rebuilding the atlas with identical configuration changed glyph order or bitmaps")
	}
}

func TestAtlasEmptyCharset(t *testing.T) {
	t.Parallel()

	fr := newTestRasterizer(t, 16, 0)
	_, err := BuildAtlas("", fr)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("BuildAtlas(\"\") = %v, want ConfigError", err)
	}
	if cfgErr.Field != "charset" {
		t.Errorf("ConfigError field = %q, want charset", cfgErr.Field)
	}
}

func TestAtlasBoldnessAddsInk(t *testing.T) {
	t.Parallel()

	thin, err := BuildAtlas(".", newTestRasterizer(t, 20, 0))
	if err != nil {
		t.Fatalf("BuildAtlas failed: %v", err)
	}
	bold, err := BuildAtlas(".", newTestRasterizer(t, 20, 2))
	if err != nil {
		t.Fatalf("BuildAtlas failed: %v", err)
	}

	if bold.Glyphs[0].density <= thin.Glyphs[0].density {
		t.Errorf("boldness 2 density %f not greater than boldness 0 density %f",
			bold.Glyphs[0].density, thin.Glyphs[0].density)
	}
}

func TestFilterCharset(t *testing.T) {
	t.Parallel()

	if got := FilterCharset(""); got != MasterCharset {
		t.Error("empty subset should select the full master charset")
	}

	// Order must follow the master string, not the subset.
	if got := FilterCharset(" .#@"); got != "@#. " {
		t.Errorf("FilterCharset(\" .#@\") = %q, want \"@#. \"", got)
	}

	// Duplicates in the subset must not duplicate output characters.
	if got := FilterCharset("##.."); got != "#." {
		t.Errorf("FilterCharset(\"##..\") = %q, want \"#.\"", got)
	}

	// Characters outside the master set are dropped entirely.
	if got := FilterCharset("\t\n#"); got != "#" {
		t.Errorf("FilterCharset with foreign characters = %q, want \"#\"", got)
	}

	if strings.ContainsRune(FilterCharset("abc"), 'd') {
		t.Error("filtered charset leaked characters not in the subset")
	}
}

func TestValidateConfig(t *testing.T) {
	t.Parallel()

	valid := DefaultConfig()
	if err := valid.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*RenderConfig)
		field  string
	}{
		{"empty charset", func(c *RenderConfig) { c.Charset = "" }, "charset"},
		{"zero font size", func(c *RenderConfig) { c.FontSize = 0 }, "fontsize"},
		{"negative font size", func(c *RenderConfig) { c.FontSize = -3 }, "fontsize"},
		{"negative boldness", func(c *RenderConfig) { c.Boldness = -1 }, "boldness"},
		{"bad background", func(c *RenderConfig) { c.Background = 128 }, "background"},
		{"negative workers", func(c *RenderConfig) { c.Workers = -2 }, "workers"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() = %v, want ConfigError", err)
			}
			if cfgErr.Field != tc.field {
				t.Errorf("ConfigError field = %q, want %q", cfgErr.Field, tc.field)
			}
		})
	}
}
