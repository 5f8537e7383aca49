package tui

import (
	"strings"

	"github.com/simon/remmux/internal/client"
)

// SplitTag records the split direction a pane was created with; the
// layout function uses it to pick the tiling arrangement.
type SplitTag int

const (
	SplitNone SplitTag = iota
	SplitHorizontal
	SplitVertical
)

const maxPanes = 4

// Pane is one terminal view bound to its own remote session: bounded
// scrollback, an input line with a character cursor, and command history.
// The default (no-pane) session is itself a Pane that never joins the
// PaneSet.
type Pane struct {
	id      int
	split   SplitTag
	session client.Session

	scrollback    []string
	scrollbackCap int
	scrollOff     int // lines scrolled up from the bottom

	input  string
	cursor int // rune offset into the typed portion

	history    []string
	historyIdx int // -1 = no entry selected

	busy    bool // a send is in flight
	closing bool // farewell shown, close pending
}

func newPane(id int, split SplitTag, session client.Session, scrollbackCap int) *Pane {
	return &Pane{
		id:            id,
		split:         split,
		session:       session,
		scrollbackCap: scrollbackCap,
		historyIdx:    -1,
	}
}

// AppendLine adds one line to the scrollback, evicting the oldest lines
// beyond the cap. Trailing whitespace is trimmed; all-whitespace lines
// are dropped. Appending snaps the view back to the bottom.
func (p *Pane) AppendLine(line string) {
	line = strings.TrimRight(line, " \t")
	if line == "" {
		return
	}
	p.scrollback = append(p.scrollback, line)
	if excess := len(p.scrollback) - p.scrollbackCap; excess > 0 {
		p.scrollback = p.scrollback[excess:]
	}
	p.scrollOff = 0
}

// AppendResponse splits a server response into lines and appends each
// non-empty one.
func (p *Pane) AppendResponse(response string) {
	for _, line := range strings.Split(response, "\n") {
		if strings.TrimSpace(line) != "" {
			p.AppendLine(line)
		}
	}
}

// Prompt is the rendered prompt prefix for this pane.
func (p *Pane) Prompt() string {
	return p.session.Path() + "> "
}

// ResetInput clears the input line and cursor.
func (p *Pane) ResetInput() {
	p.input = ""
	p.cursor = 0
}

// InsertRune inserts a printable character at the cursor.
func (p *Pane) InsertRune(r rune) {
	runes := []rune(p.input)
	if p.cursor > len(runes) {
		p.cursor = len(runes)
	}
	out := make([]rune, 0, len(runes)+1)
	out = append(out, runes[:p.cursor]...)
	out = append(out, r)
	out = append(out, runes[p.cursor:]...)
	p.input = string(out)
	p.cursor++
}

// Backspace deletes the character before the cursor.
func (p *Pane) Backspace() {
	runes := []rune(p.input)
	if p.cursor == 0 || len(runes) == 0 {
		return
	}
	if p.cursor > len(runes) {
		p.cursor = len(runes)
	}
	p.input = string(append(runes[:p.cursor-1:p.cursor-1], runes[p.cursor:]...))
	p.cursor--
}

// MoveCursor shifts the cursor by d, clamped to the typed portion.
func (p *Pane) MoveCursor(d int) {
	p.cursor += d
	if p.cursor < 0 {
		p.cursor = 0
	}
	if n := len([]rune(p.input)); p.cursor > n {
		p.cursor = n
	}
}

// HistoryUp walks toward older entries: from no selection it picks the
// most recent, then steps back, stopping at the oldest.
func (p *Pane) HistoryUp() {
	if len(p.history) == 0 {
		return
	}
	if p.historyIdx == -1 {
		p.historyIdx = len(p.history) - 1
	} else if p.historyIdx > 0 {
		p.historyIdx--
	}
	p.input = p.history[p.historyIdx]
	p.cursor = len([]rune(p.input))
}

// HistoryDown walks toward newer entries; stepping past the most recent
// clears the selection and empties the input.
func (p *Pane) HistoryDown() {
	if len(p.history) == 0 || p.historyIdx == -1 {
		return
	}
	if p.historyIdx < len(p.history)-1 {
		p.historyIdx++
		p.input = p.history[p.historyIdx]
		p.cursor = len([]rune(p.input))
		return
	}
	p.historyIdx = -1
	p.ResetInput()
}

// PushHistory records a submitted command and clears the selection.
func (p *Pane) PushHistory(cmd string) {
	p.history = append(p.history, cmd)
	p.historyIdx = -1
}

// Scroll moves the view by d lines (positive = toward older lines),
// clamped to the scrollback size.
func (p *Pane) Scroll(d int) {
	p.scrollOff += d
	if p.scrollOff < 0 {
		p.scrollOff = 0
	}
	maxOff := len(p.scrollback) - 1
	if maxOff < 0 {
		maxOff = 0
	}
	if p.scrollOff > maxOff {
		p.scrollOff = maxOff
	}
}

// VisibleLines returns the n scrollback lines ending scrollOff lines
// above the bottom.
func (p *Pane) VisibleLines(n int) []string {
	if n <= 0 || len(p.scrollback) == 0 {
		return nil
	}
	end := len(p.scrollback) - p.scrollOff
	if end < 0 {
		end = 0
	}
	start := end - n
	if start < 0 {
		start = 0
	}
	return p.scrollback[start:end]
}

// Clear empties the scrollback and resets the view, the client-local
// "clear" command.
func (p *Pane) Clear() {
	p.scrollback = nil
	p.scrollOff = 0
}

// PaneSet owns up to four panes and the active index, which is always
// valid while the set is non-empty.
type PaneSet struct {
	panes  []*Pane
	active int
}

func (ps *PaneSet) Empty() bool { return len(ps.panes) == 0 }
func (ps *PaneSet) Len() int    { return len(ps.panes) }

// Active returns the active pane, or nil when the set is empty.
func (ps *PaneSet) Active() *Pane {
	if len(ps.panes) == 0 {
		return nil
	}
	return ps.panes[ps.active]
}

// Add appends a pane and makes it active. It reports false, changing
// nothing, when the set is already at capacity.
func (ps *PaneSet) Add(p *Pane) bool {
	if len(ps.panes) >= maxPanes {
		return false
	}
	ps.panes = append(ps.panes, p)
	ps.active = len(ps.panes) - 1
	return true
}

// Switch moves the active index by d, wrapping around.
func (ps *PaneSet) Switch(d int) {
	n := len(ps.panes)
	if n == 0 {
		return
	}
	ps.active = ((ps.active+d)%n + n) % n
}

// Remove deletes the pane with the given id and clamps the active index.
// It returns the removed pane, or nil if no pane has that id.
func (ps *PaneSet) Remove(id int) *Pane {
	for i, p := range ps.panes {
		if p.id == id {
			ps.panes = append(ps.panes[:i], ps.panes[i+1:]...)
			if ps.active >= len(ps.panes) && ps.active > 0 {
				ps.active = len(ps.panes) - 1
			}
			return p
		}
	}
	return nil
}

// Find returns the pane with the given id, or nil.
func (ps *PaneSet) Find(id int) *Pane {
	for _, p := range ps.panes {
		if p.id == id {
			return p
		}
	}
	return nil
}

// Tags returns each pane's split tag in order, the layout input.
func (ps *PaneSet) Tags() []SplitTag {
	tags := make([]SplitTag, len(ps.panes))
	for i, p := range ps.panes {
		tags[i] = p.split
	}
	return tags
}
