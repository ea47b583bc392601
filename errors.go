package mdterm

import "errors"

// ErrClosed is returned by the Write*, Write and Flush methods of a Renderer
// called after Complete has run, per spec §4.J category 4 ("use after
// completion / disposal"). A repeated Complete returns nil.
var ErrClosed = errors.New("mdterm: renderer is closed")

// tableRenderErrorPlaceholder is the visible marker emitted in place of a
// malformed table, per spec §4.J category 3. It is not an error value —
// rendering continues with the next block.
const tableRenderErrorPlaceholder = "[Table Render Error]"
