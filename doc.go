// Package mdterm renders Markdown to ANSI for terminal display.
//
// The renderer is line-oriented and single-pass: callers push characters,
// strings, or whole lines as they arrive and formatted output is written to
// a sink as early as the grammar allows, without ever building a full
// document tree. The only blocks that buffer more than the current
// in-progress line are a paragraph, held until it ends so it can be
// wrapped, and a table, which must see its separator row before it can be
// laid out.
//
// Example:
//
//	r := mdterm.NewRenderer(os.Stdout, mdterm.Options{Width: 80}, nil)
//	_ = r.WriteString("# Hello\n\nMarkdown in, ANSI out.\n")
//	_ = r.Complete()
//
// Batch callers that already have the whole document in memory can use
// RenderString/RenderBytes/RenderReader instead of driving a Renderer by
// hand.
package mdterm
