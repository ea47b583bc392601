// Command mdterm renders Markdown files (or stdin) to ANSI for a terminal.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/inkterm/mdterm"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var (
	flagWidth       = pflag.IntP("width", "w", 0, "wrap width (0 = detect terminal width, fallback 80)")
	flagTheme       = pflag.String("theme", "default", "style theme: "+strings.Join(mdterm.AvailableThemes(), ", "))
	flagColor       = pflag.String("color", "auto", "color mode: auto, always, never")
	flagHyperlinks  = pflag.String("hyperlinks", "auto", "OSC-8 hyperlink mode: auto, always, never")
	flagStripHTML   = pflag.Bool("strip-html", true, "strip inline HTML tags")
	flagListThemes  = pflag.Bool("list-themes", false, "print available theme names and exit")
	flagSimulateMs  = pflag.Int("simulate-delay-ms", 0, "if set, feed input in small chunks with this delay between them")
	flagChunkBytes  = pflag.Int("simulate-chunk-bytes", 8, "chunk size in bytes for --simulate-delay-ms")
	flagConfig      = pflag.String("config", "", "path to a config file (default: $HOME/.config/mdterm/config.yaml)")
	flagVerbose     = pflag.Bool("verbose", false, "log renderer diagnostics to stderr")
)

func main() {
	pflag.Parse()

	if *flagListThemes {
		for _, name := range mdterm.AvailableThemes() {
			fmt.Println(name)
		}
		return
	}

	loadConfig()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if *flagVerbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	if err := run(logger); err != nil {
		fmt.Fprintln(os.Stderr, "mdterm:", err)
		os.Exit(1)
	}
}

// loadConfig binds a viper config file's values as pflag defaults, letting
// a user's ~/.config/mdterm/config.yaml set width/theme/color/hyperlinks
// without repeating flags on every invocation. Explicit flags on the
// command line still win.
func loadConfig() {
	v := viper.New()
	v.SetConfigType("yaml")
	if *flagConfig != "" {
		v.SetConfigFile(*flagConfig)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		v.AddConfigPath(filepath.Join(home, ".config", "mdterm"))
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		return
	}
	if !pflag.CommandLine.Changed("width") && v.IsSet("width") {
		*flagWidth = v.GetInt("width")
	}
	if !pflag.CommandLine.Changed("theme") && v.IsSet("theme") {
		*flagTheme = v.GetString("theme")
	}
	if !pflag.CommandLine.Changed("color") && v.IsSet("color") {
		*flagColor = v.GetString("color")
	}
	if !pflag.CommandLine.Changed("hyperlinks") && v.IsSet("hyperlinks") {
		*flagHyperlinks = v.GetString("hyperlinks")
	}
	if !pflag.CommandLine.Changed("strip-html") && v.IsSet("strip_html") {
		*flagStripHTML = v.GetBool("strip_html")
	}
}

func run(logger *slog.Logger) error {
	theme, ok := mdterm.ThemeByName(*flagTheme)
	if !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", *flagTheme, strings.Join(mdterm.AvailableThemes(), ", "))
	}

	opts := []mdterm.RenderOption{
		mdterm.WithWidth(resolveWidth(*flagWidth)),
		mdterm.WithColors(resolveColor(*flagColor)),
		mdterm.WithTheme(theme),
		mdterm.WithStripHTML(*flagStripHTML),
		mdterm.WithHyperlinks(resolveHyperlinks(*flagHyperlinks)),
	}

	r := mdterm.NewRenderer(os.Stdout, mdterm.DefaultOptions(), logger, opts...)

	src, err := openInputs(pflag.Args())
	if err != nil {
		return err
	}
	defer src.Close()

	if *flagSimulateMs > 0 {
		return simulateStream(r, src)
	}

	buf := make([]byte, 4096)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := r.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	return r.Complete()
}

func simulateStream(r *mdterm.Renderer, src io.Reader) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}
	chunked := mdterm.NewChunkedReader(data, *flagChunkBytes)
	buf := make([]byte, *flagChunkBytes)
	for {
		n, err := chunked.Read(buf)
		if n > 0 {
			if _, werr := r.Write(buf[:n]); werr != nil {
				return werr
			}
			if ferr := r.Flush(); ferr != nil {
				return ferr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		time.Sleep(time.Duration(*flagSimulateMs) * time.Millisecond)
	}
	return r.Complete()
}

func resolveWidth(flagVal int) int {
	if flagVal > 0 {
		return flagVal
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

func resolveColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		return termenv.NewOutput(os.Stdout).ColorProfile() != termenv.Ascii
	}
}

func resolveHyperlinks(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return mdterm.DetectOSC8Support()
	}
}

// multiInputReader concatenates one or more named files (or stdin, when
// paths is empty) into a single io.ReadCloser, grounded on the teacher's
// multiInputReader (cmd/mdf/main.go).
type multiInputReader struct {
	files []*os.File
	idx   int
}

func openInputs(paths []string) (io.ReadCloser, error) {
	if len(paths) == 0 {
		return io.NopCloser(os.Stdin), nil
	}
	m := &multiInputReader{}
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			m.Close()
			return nil, err
		}
		m.files = append(m.files, f)
	}
	return m, nil
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for m.idx < len(m.files) {
		n, err := m.files[m.idx].Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			m.idx++
			continue
		}
		if err != nil {
			return 0, err
		}
	}
	return 0, io.EOF
}

func (m *multiInputReader) Close() error {
	var first error
	for _, f := range m.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
