package tui

import (
	"strings"

	"github.com/simon/remmux/internal/proto"
)

// Editor is the modal line-editor buffer for one remote file. The lines
// slice is never empty: a new or empty file holds a single empty line.
type Editor struct {
	FileName string

	lines  []string
	line   int // cursor line
	col    int // cursor column, in runes
	scroll int // first visible line
}

// NewEditor seeds a buffer from a server nano response. The new-file
// sentinel and an empty response both yield one empty line; otherwise the
// content is split on newlines after trimming the final one, mirroring
// how the save path joins them back.
func NewEditor(fileName, response string) *Editor {
	e := &Editor{FileName: fileName}
	if response == proto.NewFileSentinel || response == "" {
		e.lines = []string{""}
		return e
	}
	e.lines = strings.Split(strings.TrimSuffix(response, "\n"), "\n")
	if len(e.lines) == 0 {
		e.lines = []string{""}
	}
	return e
}

// Lines exposes the buffer for rendering.
func (e *Editor) Lines() []string { return e.lines }

// Cursor returns the cursor line and column.
func (e *Editor) Cursor() (line, col int) { return e.line, e.col }

// ScrollOffset returns the first visible line after the last ScrollTo.
func (e *Editor) ScrollOffset() int { return e.scroll }

// ScrollTo keeps the cursor inside a window of visible lines.
func (e *Editor) ScrollTo(visible int) {
	if visible <= 0 {
		return
	}
	if e.line < e.scroll {
		e.scroll = e.line
	}
	if e.line >= e.scroll+visible {
		e.scroll = e.line - visible + 1
	}
}

func (e *Editor) lineLen(i int) int {
	return len([]rune(e.lines[i]))
}

// CursorUp moves up one line, clamping the column to the new line.
func (e *Editor) CursorUp() {
	if e.line == 0 {
		return
	}
	e.line--
	if l := e.lineLen(e.line); e.col > l {
		e.col = l
	}
}

// CursorDown moves down one line, clamping the column to the new line.
func (e *Editor) CursorDown() {
	if e.line >= len(e.lines)-1 {
		return
	}
	e.line++
	if l := e.lineLen(e.line); e.col > l {
		e.col = l
	}
}

// CursorLeft moves left; at column 0 it lands on the end of the previous
// line.
func (e *Editor) CursorLeft() {
	if e.col > 0 {
		e.col--
		return
	}
	if e.line > 0 {
		e.line--
		e.col = e.lineLen(e.line)
	}
}

// CursorRight moves right; past end-of-line it lands on column 0 of the
// next line.
func (e *Editor) CursorRight() {
	if e.col < e.lineLen(e.line) {
		e.col++
		return
	}
	if e.line < len(e.lines)-1 {
		e.line++
		e.col = 0
	}
}

// Insert puts a printable character at the cursor and advances it.
func (e *Editor) Insert(r rune) {
	runes := []rune(e.lines[e.line])
	out := make([]rune, 0, len(runes)+1)
	out = append(out, runes[:e.col]...)
	out = append(out, r)
	out = append(out, runes[e.col:]...)
	e.lines[e.line] = string(out)
	e.col++
}

// Enter splits the current line at the cursor, inserting the tail as a
// new line below; the cursor lands at its column 0.
func (e *Editor) Enter() {
	runes := []rune(e.lines[e.line])
	head, tail := string(runes[:e.col]), string(runes[e.col:])

	e.lines[e.line] = head
	e.lines = append(e.lines, "")
	copy(e.lines[e.line+2:], e.lines[e.line+1:])
	e.lines[e.line+1] = tail

	e.line++
	e.col = 0
}

// Backspace deletes the character left of the cursor; at column 0 it
// merges the current line into the previous one, the cursor landing on
// the old boundary. At line 0 column 0 it does nothing.
func (e *Editor) Backspace() {
	if e.col > 0 {
		runes := []rune(e.lines[e.line])
		e.lines[e.line] = string(append(runes[:e.col-1:e.col-1], runes[e.col:]...))
		e.col--
		return
	}
	if e.line == 0 {
		return
	}
	prevLen := e.lineLen(e.line - 1)
	e.lines[e.line-1] += e.lines[e.line]
	e.lines = append(e.lines[:e.line], e.lines[e.line+1:]...)
	e.line--
	e.col = prevLen
}

// Content serializes the buffer: lines joined by newline with a final
// newline, so content already ending in one newline round-trips
// byte-identically through a no-op edit.
func (e *Editor) Content() string {
	return strings.Join(e.lines, "\n") + "\n"
}
