package mdterm

import (
	"io"
	"log/slog"
	"strings"
)

// blockKind is the tagged variant of spec §3's BlockKind.
type blockKind uint8

const (
	blockNone blockKind = iota
	blockParagraph
	blockHeading
	blockUnorderedList
	blockOrderedList
	blockCodeBlock
	blockBlockquote
	blockLinkDefinition
	blockTable
)

type cellAlign uint8

const (
	alignLeft cellAlign = iota
	alignCenter
	alignRight
)

type linkDef struct {
	url   string
	title string
}

// tableState is the buffering sub-state of spec §4.I. header/separator/
// alignments are either all absent (awaiting the first two lines) or all
// present with equal length — spec §3 invariant 4.
type tableState struct {
	headerCells    []string
	separatorCells []string
	alignments     []cellAlign
	rows           [][]string
}

// Renderer is the single mutable record of spec §3's RendererState. It
// drives the streaming Markdown-to-ANSI block state machine.
//
// A Renderer is single-threaded and cooperative (spec §5): every method
// runs to completion before returning and the instance is not safe for
// concurrent use.
type Renderer struct {
	sink   Sink
	opts   Options
	logger *slog.Logger

	currentBlock                blockKind
	lastFinalizedBlock          blockKind
	lastFinalizedProducedOutput bool
	lastFinalizedWasList        bool

	paragraphBuf strings.Builder
	rawLine      strings.Builder // component D's line accumulator
	pendingCRFlag bool

	orderedCounter int
	styleStack     []styleTag

	linkDefs map[string]linkDef

	table              *tableState
	pendingTableHeader []string

	maxWidth int

	listIndent int // leading-space count of the active list item's marker line

	closed bool
}

// NewRenderer creates a Renderer writing to sink, configured by opts and
// any RenderOptions, with an optional diagnostic logger (spec §3
// Lifecycle). A nil logger disables diagnostics.
func NewRenderer(sink io.Writer, opts Options, logger *slog.Logger, roOpts ...RenderOption) *Renderer {
	if opts.Theme.Name == "" && opts.Theme.Styles == (Styles{}) {
		opts.Theme = DefaultTheme()
	}
	opts = applyOptions(opts, roOpts)
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Renderer{
		sink:     asSink(sink),
		opts:     opts,
		logger:   logger,
		linkDefs: make(map[string]linkDef),
		maxWidth: opts.maxWidth(),
	}
}

func (r *Renderer) styleOf(s Style) string {
	if !r.opts.EnableColors {
		return ""
	}
	return s.Prefix
}

func (r *Renderer) write(s string) error {
	if s == "" {
		return nil
	}
	_, err := io.WriteString(r.sink, s)
	return err
}

// closeAllStyles pops every open span in reverse order and returns their
// "off" codes for the caller to append at the end of the fragment, per spec
// §4.G's end-of-fragment rule and §3 invariant 3 (active_styles empty at
// every block boundary).
func (r *Renderer) closeAllStyles() string {
	var b strings.Builder
	for len(r.styleStack) > 0 {
		tag := r.styleStack[len(r.styleStack)-1]
		r.styleStack = r.styleStack[:len(r.styleStack)-1]
		if r.opts.EnableColors {
			b.WriteString(emphasisOffCode(tag))
		}
	}
	return b.String()
}
