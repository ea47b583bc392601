package mdterm

import "strings"

// styleTag identifies an open emphasis span on the inline formatter's style
// stack. The stack holds tags, not escape strings, so the emitter can
// translate a tag to a theme-parameterized "off" sequence instead of a
// generic reset — this is what lets a monochrome theme make every style
// emission a no-op by construction.
type styleTag uint8

const (
	styleBold styleTag = iota
	styleItalic
	styleBoldItalic
	styleStrikethrough
)

// Style is a single ANSI SGR "on" prefix. The matching "off" code is
// derived from the styleTag that pushed it, not stored alongside the
// prefix.
type Style struct {
	Prefix string
}

func style(prefixes ...string) Style {
	var b strings.Builder
	for _, p := range prefixes {
		b.WriteString(p)
	}
	return Style{Prefix: b.String()}
}

// Styles groups every semantic style the block state machine and inline
// formatter consult while emitting a block or inline span.
type Styles struct {
	Heading       [3]Style // ATX heading level 1..3
	ListBullet    Style
	Blockquote    Style
	CodeBlock     Style
	LinkText      Style
	LinkURL       Style
	Bold          Style
	Italic        Style
	BoldItalic    Style
	Strikethrough Style
	ImageAlt      Style
}

// Theme is the passive style palette consumed by the renderer (spec §6).
// It never mutates once constructed.
type Theme struct {
	Name   string
	Styles Styles

	ListBulletUnordered string
	ListOrderedFormat   string // contains a single "%d" placeholder
	BlockquotePrefix    string
	ImagePrefix         string
	ImageSuffix         string
	TaskUnchecked       string
	TaskChecked         string
	HorizontalRule      rune
}

// DefaultTheme is the colored built-in theme.
func DefaultTheme() Theme {
	return Theme{
		Name: "default",
		Styles: Styles{
			Heading: [3]Style{
				style(ansiBold, sgrFgStandard(96)),
				style(ansiBold, sgrFgStandard(95)),
				style(ansiBold, sgrFgStandard(94)),
			},
			ListBullet:    style(sgrFgStandard(93)),
			Blockquote:    style(sgrFgStandard(90)),
			CodeBlock:     style(sgrFgStandard(92)),
			LinkText:      style(ansiUnderline, sgrFgStandard(94)),
			LinkURL:       style(sgrFgStandard(36)),
			Bold:          style(ansiBold),
			Italic:        style(ansiItalic),
			BoldItalic:    style(ansiBold, ansiItalic),
			Strikethrough: style(ansiStrikeOn),
			ImageAlt:      style(ansiItalic, sgrFgStandard(35)),
		},
		ListBulletUnordered: "•",
		ListOrderedFormat:   "%d.",
		BlockquotePrefix:    "│ ",
		ImagePrefix:         "[image: ",
		ImageSuffix:         "]",
		TaskUnchecked:       "[ ]",
		TaskChecked:         "[x]",
		HorizontalRule:      '─',
	}
}

// MonochromeTheme is the built-in theme in which every style field is
// empty and every color field is absent, per spec §6. Pairing it with
// Options.EnableColors = false guarantees output contains no byte in the
// range 0x1B (spec §8, "Monochrome equivalence").
func MonochromeTheme() Theme {
	return Theme{
		Name:                "monochrome",
		Styles:              Styles{},
		ListBulletUnordered: "-",
		ListOrderedFormat:   "%d.",
		BlockquotePrefix:    "> ",
		ImagePrefix:         "[image: ",
		ImageSuffix:         "]",
		TaskUnchecked:       "[ ]",
		TaskChecked:         "[x]",
		HorizontalRule:      '-',
	}
}

var builtinThemes = map[string]func() Theme{
	"default":    DefaultTheme,
	"monochrome": MonochromeTheme,
}

// ThemeByName returns a built-in theme by name, matching the teacher's
// ThemeByName/AvailableThemes surface (theme.go).
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return DefaultTheme(), true
	}
	factory, ok := builtinThemes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Theme{}, false
	}
	return factory(), true
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	return []string{"default", "monochrome"}
}
