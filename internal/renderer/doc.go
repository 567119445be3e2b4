// Package renderer draws the editor to a terminal backend.
//
// Each frame shows the current buffer with an optional line-number gutter,
// the visual selection in reverse video, and a status line on the last
// row. Columns are laid out per grapheme cluster, so wide characters take
// two cells and tabs expand to the editor's tab stop. The screen scrolls
// to keep the cursor visible.
//
//	term, _ := backend.NewTerminal()
//	r := renderer.New(term, renderer.DefaultOptions())
//	r.Render(ed)
package renderer
