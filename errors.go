package vid2ascii

import "fmt"

// ConfigError reports an invalid configuration value. Configuration is
// validated eagerly, before the atlas is built or any frame is touched,
// so a ConfigError always refers to user input rather than runtime state.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// SourceError reports unreadable or corrupt input media. It wraps the
// underlying decode error when one exists.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unreadable source %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("unreadable source %s", e.Path)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// RenderError reports a character that could not be rasterized during
// atlas construction. A missing glyph would silently corrupt the
// luminance index mapping, so this is fatal and never retried.
type RenderError struct {
	Char   rune
	Reason string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("cannot rasterize %q: %s", e.Char, e.Reason)
}
