package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	paneBorder = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "240", Dark: "240"})

	activePaneBorder = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.AdaptiveColor{Light: "63", Dark: "117"})

	titleStyle = lipgloss.NewStyle().Bold(true)

	cursorStyle = lipgloss.NewStyle().Reverse(true)

	busyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "243", Dark: "246"}).
			Italic(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "243", Dark: "246"})

	statusStyle = lipgloss.NewStyle().Bold(true)
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.mode == ModeEditing {
		return m.viewEditor()
	}
	if m.panes.Empty() {
		return m.renderPane(m.def, m.width, m.height, true, "remmux "+m.addr)
	}

	rects := Layout(m.width, m.height, m.panes.Tags())
	boxes := make([]string, len(rects))
	for i, r := range rects {
		// Titles follow the pane's position in the set, not its creation
		// order, so closing a pane never leaves numbering gaps.
		title := fmt.Sprintf("pane %d", i+1)
		boxes[i] = m.renderPane(m.panes.panes[i], r.W, r.H, i == m.panes.active, title)
	}

	firstHorizontal := m.panes.panes[0].split == SplitHorizontal
	switch len(boxes) {
	case 1:
		return boxes[0]
	case 2:
		if firstHorizontal {
			return lipgloss.JoinVertical(lipgloss.Left, boxes[0], boxes[1])
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, boxes[0], boxes[1])
	case 3:
		if firstHorizontal {
			rest := lipgloss.JoinHorizontal(lipgloss.Top, boxes[1], boxes[2])
			return lipgloss.JoinVertical(lipgloss.Left, boxes[0], rest)
		}
		rest := lipgloss.JoinVertical(lipgloss.Left, boxes[1], boxes[2])
		return lipgloss.JoinHorizontal(lipgloss.Top, boxes[0], rest)
	default:
		top := lipgloss.JoinHorizontal(lipgloss.Top, boxes[0], boxes[1])
		bottom := lipgloss.JoinHorizontal(lipgloss.Top, boxes[2], boxes[3])
		return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
	}
}

// renderPane draws one pane box: a title row, the visible scrollback
// window, and the prompt line with the input cursor.
func (m Model) renderPane(p *Pane, w, h int, active bool, title string) string {
	style := paneBorder
	if active {
		style = activePaneBorder
	}
	innerW := w - 2
	innerH := h - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 3 {
		innerH = 3
	}

	contentH := innerH - 2 // title + prompt rows
	lines := p.VisibleLines(contentH)
	body := make([]string, 0, innerH)
	body = append(body, titleStyle.Render(truncate(title, innerW)))
	for i := 0; i < contentH; i++ {
		if i < len(lines) {
			body = append(body, truncate(lines[i], innerW))
		} else {
			body = append(body, "")
		}
	}
	body = append(body, m.renderPromptLine(p, innerW))

	return style.Width(innerW).Height(innerH).Render(strings.Join(body, "\n"))
}

func (m Model) renderPromptLine(p *Pane, w int) string {
	if p.closing {
		return busyStyle.Render("session closed")
	}
	if p.busy {
		return busyStyle.Render(truncate(p.Prompt()+"...", w))
	}
	prompt := p.Prompt()
	runes := []rune(p.input)
	if p.cursor >= len(runes) {
		return truncate(prompt+string(runes), w-1) + cursorStyle.Render(" ")
	}
	return prompt + string(runes[:p.cursor]) +
		cursorStyle.Render(string(runes[p.cursor])) +
		string(runes[p.cursor+1:])
}

func (m Model) viewEditor() string {
	e := m.editor
	visible := m.height - 3 // header, footer, status rows
	if visible < 1 {
		visible = 1
	}
	e.ScrollTo(visible)

	var b strings.Builder
	b.WriteString(titleStyle.Render("nano: " + e.FileName))
	b.WriteByte('\n')

	curLine, curCol := e.Cursor()
	lines := e.Lines()
	for i := e.ScrollOffset(); i < e.ScrollOffset()+visible; i++ {
		if i >= len(lines) {
			b.WriteByte('\n')
			continue
		}
		if i == curLine {
			b.WriteString(renderCursorLine(lines[i], curCol, m.width))
		} else {
			b.WriteString(truncate(lines[i], m.width))
		}
		b.WriteByte('\n')
	}

	b.WriteString(footerStyle.Render("^O Save   ^X Exit"))
	b.WriteByte('\n')
	if m.status != "" {
		b.WriteString(statusStyle.Render(truncate(m.status, m.width)))
	}
	return b.String()
}

func renderCursorLine(line string, col, w int) string {
	runes := []rune(line)
	if col >= len(runes) {
		return truncate(string(runes), w-1) + cursorStyle.Render(" ")
	}
	return string(runes[:col]) +
		cursorStyle.Render(string(runes[col])) +
		string(runes[col+1:])
}

func truncate(s string, w int) string {
	if w < 0 {
		w = 0
	}
	runes := []rune(s)
	if len(runes) <= w {
		return s
	}
	return string(runes[:w])
}
