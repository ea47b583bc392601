package mdterm

// Options is the configuration record of spec §6: width, color-enable,
// strip-HTML, use-hyperlinks, theme.
type Options struct {
	// Width is the target wrap width. Zero or negative defaults to 80.
	Width int
	// EnableColors controls whether the formatter and state machine emit
	// any SGR sequence at all.
	EnableColors bool
	// Theme is the style palette. A zero Theme passed to NewRenderer is
	// replaced by DefaultTheme.
	Theme Theme
	// StripHTML elides unescaped inline `<...>` runs when true.
	StripHTML bool
	// UseHyperlinks emits OSC-8 wrapping for links instead of "text (url)".
	UseHyperlinks bool
}

func (o Options) maxWidth() int {
	if o.Width <= 0 {
		return 80
	}
	return o.Width
}

// RenderOption configures a Renderer via the functional-options pattern,
// matching the teacher's render_options.go shape generalized to every
// Options field.
type RenderOption func(*Options)

// WithWidth overrides the wrap width.
func WithWidth(width int) RenderOption {
	return func(o *Options) { o.Width = width }
}

// WithColors enables or disables ANSI SGR emission.
func WithColors(enabled bool) RenderOption {
	return func(o *Options) { o.EnableColors = enabled }
}

// WithTheme sets the style palette.
func WithTheme(theme Theme) RenderOption {
	return func(o *Options) { o.Theme = theme }
}

// WithStripHTML enables or disables inline HTML stripping.
func WithStripHTML(enabled bool) RenderOption {
	return func(o *Options) { o.StripHTML = enabled }
}

// WithHyperlinks enables or disables OSC-8 hyperlink emission.
func WithHyperlinks(enabled bool) RenderOption {
	return func(o *Options) { o.UseHyperlinks = enabled }
}

// DefaultOptions returns sensible defaults: width 80, colors enabled, the
// default theme, HTML stripped, hyperlinks off.
func DefaultOptions() Options {
	return Options{
		Width:         80,
		EnableColors:  true,
		Theme:         DefaultTheme(),
		StripHTML:     true,
		UseHyperlinks: false,
	}
}

func applyOptions(base Options, opts []RenderOption) Options {
	for _, opt := range opts {
		if opt != nil {
			opt(&base)
		}
	}
	return base
}
