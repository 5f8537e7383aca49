// Package tui implements the remmux client: a bubbletea program that
// multiplexes up to four remote panes plus a modal line editor. All
// session I/O runs inside tea.Cmd closures and re-enters the model as
// typed messages, so pane state is only ever mutated on the UI goroutine.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"

	"github.com/simon/remmux/internal/client"
	"github.com/simon/remmux/internal/config"
	"github.com/simon/remmux/internal/proto"
	"github.com/simon/remmux/internal/state"
)

// closeDelay is how long the farewell stays visible before an exiting
// pane (or the whole client) closes.
const closeDelay = 700 * time.Millisecond

// Mode is the global UI mode: NORMAL owns the active pane (or the
// default session); EDITING owns exactly one editor buffer.
type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
)

// DialFunc opens a new session; injectable so tests can supply fakes.
type DialFunc func(addr string) (client.Session, error)

// Options configures a Model.
type Options struct {
	Addr       string
	StartPath  string
	Scrollback int
	Dial       DialFunc
	Log        *slog.Logger // file-backed; never stdout, it would corrupt the display
	Store      *state.Store // optional persistent history
	History    []string     // preloaded history, oldest first
}

// commandResultMsg carries one command's response back from its send
// goroutine to the owning pane.
type commandResultMsg struct {
	paneID   int
	cmd      proto.Command
	response string
	err      error
}

// paneCloseMsg fires after the farewell delay for an exiting pane.
type paneCloseMsg struct {
	paneID int
}

// saveResultMsg carries the outcome of an editor save.
type saveResultMsg struct {
	response string
	err      error
}

// pathSyncMsg carries the result of an internally issued cd that realigns
// a session's server-side directory with the path the prompt shows. It is
// applied silently: no scrollback echo on success.
type pathSyncMsg struct {
	paneID   int
	response string
	err      error
}

type Model struct {
	addr          string
	startPath     string
	scrollbackCap int
	dial          DialFunc
	log           *slog.Logger
	store         *state.Store

	mode       Mode
	def        *Pane // the implicit single session behind the NoPanes state
	panes      PaneSet
	editor     *Editor
	editorPane *Pane // pane whose session fetched the buffer

	width, height int
	status        string
	quitting      bool
	paneSeq       int
}

// NewModel dials the default session and builds the initial NoPanes
// state.
func NewModel(opts Options) (Model, error) {
	if opts.Log == nil {
		opts.Log = slog.New(slog.DiscardHandler)
	}
	if opts.Dial == nil {
		log := opts.Log
		opts.Dial = func(addr string) (client.Session, error) {
			return client.Dial(log, addr)
		}
	}
	if opts.Scrollback <= 0 {
		opts.Scrollback = config.DefaultScrollback
	}

	sess, err := opts.Dial(opts.Addr)
	if err != nil {
		return Model{}, fmt.Errorf("cannot reach server: %w", err)
	}
	sess.SetPath(opts.StartPath)
	opts.Log.Info("connected", "addr", opts.Addr, "path", opts.StartPath)

	m := Model{
		addr:          opts.Addr,
		startPath:     opts.StartPath,
		scrollbackCap: opts.Scrollback,
		dial:          opts.Dial,
		log:           opts.Log,
		store:         opts.Store,
		width:         80,
		height:        24,
	}
	m.def = newPane(m.nextPaneID(), SplitNone, sess, opts.Scrollback)
	m.def.history = append(m.def.history, opts.History...)
	return m, nil
}

func (m *Model) nextPaneID() int {
	id := m.paneSeq
	m.paneSeq++
	return id
}

// activePane is the pane receiving input: the active set member, or the
// default session when no panes exist.
func (m *Model) activePane() *Pane {
	if p := m.panes.Active(); p != nil {
		return p
	}
	return m.def
}

func (m *Model) findPane(id int) *Pane {
	if m.def.id == id {
		return m.def
	}
	return m.panes.Find(id)
}

// Close tears down every live session. The default pane has no session
// of its own while panes exist (pane 0 owns its connection then).
func (m *Model) Close() {
	if m.def.session != nil {
		m.def.session.Close()
	}
	for _, p := range m.panes.panes {
		p.session.Close()
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case commandResultMsg:
		return m.handleCommandResult(msg)

	case paneCloseMsg:
		return m.handlePaneClose(msg.paneID)

	case pathSyncMsg:
		return m.handlePathSync(msg)

	case saveResultMsg:
		if msg.err != nil {
			m.log.Error("save failed", "err", msg.err)
			m.status = "Error: " + msg.err.Error()
		} else {
			m.status = msg.response
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.CtrlC) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.mode == ModeEditing {
			return m.handleEditorKey(msg)
		}
		return m.handleNormalKey(msg)
	}

	return m, nil
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.SplitH):
		m.split(SplitHorizontal)
		return m, nil
	case key.Matches(msg, keys.SplitV):
		m.split(SplitVertical)
		return m, nil
	case key.Matches(msg, keys.NextPane):
		m.panes.Switch(1)
		return m, nil
	case key.Matches(msg, keys.PrevPane):
		m.panes.Switch(-1)
		return m, nil
	case key.Matches(msg, keys.ClosePane):
		return m.closeActivePane()
	case key.Matches(msg, keys.Up):
		m.activePane().HistoryUp()
		return m, nil
	case key.Matches(msg, keys.Down):
		m.activePane().HistoryDown()
		return m, nil
	case key.Matches(msg, keys.Left):
		m.activePane().MoveCursor(-1)
		return m, nil
	case key.Matches(msg, keys.Right):
		m.activePane().MoveCursor(1)
		return m, nil
	case key.Matches(msg, keys.Backspace):
		m.activePane().Backspace()
		return m, nil
	case key.Matches(msg, keys.PageUp):
		m.activePane().Scroll(1)
		return m, nil
	case key.Matches(msg, keys.PageDown):
		m.activePane().Scroll(-1)
		return m, nil
	case key.Matches(msg, keys.Enter):
		return m.submit()
	}

	switch msg.Type {
	case tea.KeyRunes:
		p := m.activePane()
		for _, r := range msg.Runes {
			p.InsertRune(r)
		}
	case tea.KeySpace:
		m.activePane().InsertRune(' ')
	}
	return m, nil
}

// submit sends the typed portion of the active pane's input as one
// command. The pane is marked busy until its result message arrives, so
// a slow server stalls only this pane.
func (m Model) submit() (tea.Model, tea.Cmd) {
	p := m.activePane()
	if p.busy || p.closing {
		return m, nil
	}

	text := strings.TrimSpace(p.input)
	if text == "" {
		p.AppendLine(p.Prompt())
		p.ResetInput()
		return m, nil
	}

	p.AppendLine(p.Prompt() + text)
	p.PushHistory(text)
	if m.store != nil {
		_ = m.store.Append(m.addr, text)
	}
	p.ResetInput()

	// clear is client-local and never reaches the server.
	if text == "clear" {
		p.Clear()
		return m, nil
	}

	p.busy = true
	cmd := proto.Classify(text)
	sess, id := p.session, p.id
	return m, func() tea.Msg {
		resp, err := sess.Send(text)
		return commandResultMsg{paneID: id, cmd: cmd, response: resp, err: err}
	}
}

func (m Model) handleCommandResult(msg commandResultMsg) (tea.Model, tea.Cmd) {
	p := m.findPane(msg.paneID)
	if p == nil {
		return m, nil
	}
	p.busy = false

	if msg.err != nil {
		// Too-long commands never touched the wire and the session
		// survives; anything else is a transport failure. Either way the
		// pane shows one error line.
		m.log.Error("command failed", "pane", msg.paneID, "err", msg.err)
		p.AppendLine("Error: " + msg.err.Error())
		return m, nil
	}

	switch msg.cmd.Kind {
	case proto.KindChangeDir:
		if proto.IsFailure(msg.response) {
			p.AppendResponse(msg.response)
			return m, nil
		}
		newPath := proto.PathFromResponse(msg.response)
		p.session.SetPath(newPath)
		p.AppendLine("Changed directory to: " + newPath)
		return m, nil

	case proto.KindEdit:
		if proto.IsFailure(msg.response) {
			p.AppendResponse(msg.response)
			return m, nil
		}
		m.editor = NewEditor(msg.cmd.Arg, msg.response)
		m.editorPane = p
		m.mode = ModeEditing
		m.status = ""
		return m, nil

	case proto.KindTerminate:
		m.log.Info("session exiting", "pane", p.id)
		p.AppendLine(msg.response)
		p.closing = true
		id := p.id
		return m, tea.Tick(closeDelay, func(time.Time) tea.Msg {
			return paneCloseMsg{paneID: id}
		})

	default:
		p.AppendResponse(msg.response)
		return m, nil
	}
}

// handlePaneClose runs after the farewell delay: an exiting default
// session quits the client, an exiting pane is removed from the set.
func (m Model) handlePaneClose(id int) (tea.Model, tea.Cmd) {
	if id == m.def.id {
		m.quitting = true
		return m, tea.Quit
	}
	return m, m.removePane(id)
}

func (m Model) closeActivePane() (tea.Model, tea.Cmd) {
	p := m.panes.Active()
	if p == nil {
		return m, nil
	}
	return m, m.removePane(p.id)
}

// removePane closes a pane. When the last pane goes, its connection is
// handed back to the default pane (the default has had no session of its
// own since the first split) and re-pointed at the start directory with
// an internal cd, so the server-side directory matches the restored
// prompt instead of lingering wherever the closed pane had cd'd.
func (m *Model) removePane(id int) tea.Cmd {
	p := m.panes.Remove(id)
	if p == nil {
		return nil
	}
	if !m.panes.Empty() {
		m.log.Info("pane closed", "pane", p.id)
		p.session.Close()
		return nil
	}

	m.log.Info("last pane closed, collapsing", "pane", p.id)
	m.def.session = p.session
	m.def.Clear()
	m.def.ResetInput()
	m.def.busy = true
	sess, defID, target := m.def.session, m.def.id, m.startPath
	return func() tea.Msg {
		resp, err := sess.Send("cd " + target)
		return pathSyncMsg{paneID: defID, response: resp, err: err}
	}
}

// handlePathSync applies the result of an internal directory realignment.
// Success updates only the cached path; failures surface like any other
// command error.
func (m Model) handlePathSync(msg pathSyncMsg) (tea.Model, tea.Cmd) {
	p := m.findPane(msg.paneID)
	if p == nil {
		return m, nil
	}
	p.busy = false
	if msg.err != nil {
		m.log.Error("path sync failed", "pane", msg.paneID, "err", msg.err)
		p.AppendLine("Error: " + msg.err.Error())
		return m, nil
	}
	if proto.IsFailure(msg.response) {
		m.log.Error("path sync rejected", "pane", msg.paneID, "response", msg.response)
		p.AppendResponse(msg.response)
		return m, nil
	}
	p.session.SetPath(proto.PathFromResponse(msg.response))
	return m, nil
}

// split adds a pane. From NoPanes the default session is materialized as
// pane 0 by moving its live connection into the new pane along with the
// scrollback and history, so the pane keeps both its prompt path and the
// matching server-side working directory. The appended pane gets a fresh
// connection, whose server-side session starts in the start directory,
// consistent with the start path its prompt shows.
func (m *Model) split(tag SplitTag) {
	if m.panes.Len() >= maxPanes {
		m.log.Warn("split rejected, pane limit reached")
		m.activePane().AppendLine("Maximum panes (4) reached!")
		return
	}

	sess, err := m.dial(m.addr)
	if err != nil {
		m.log.Error("pane dial failed", "err", err)
		m.activePane().AppendLine("Pane creation error: " + err.Error())
		return
	}

	if m.panes.Empty() {
		p0 := newPane(m.nextPaneID(), tag, m.def.session, m.scrollbackCap)
		p0.scrollback = append([]string(nil), m.def.scrollback...)
		p0.history = append([]string(nil), m.def.history...)
		m.def.session = nil
		m.panes.Add(p0)
	}

	sess.SetPath(m.startPath)
	p := newPane(m.nextPaneID(), tag, sess, m.scrollbackCap)
	m.panes.Add(p)
	m.log.Info("pane created", "pane", p.id, "panes", m.panes.Len())
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.ExitEdit):
		m.mode = ModeNormal
		m.editor = nil
		m.editorPane = nil
		m.status = ""
		return m, nil

	case key.Matches(msg, keys.Save):
		wire := proto.SaveCommand(m.editor.FileName, m.editor.Content())
		sess := m.editorPane.session
		return m, func() tea.Msg {
			resp, err := sess.Send(wire)
			return saveResultMsg{response: resp, err: err}
		}

	case key.Matches(msg, keys.Up):
		m.editor.CursorUp()
	case key.Matches(msg, keys.Down):
		m.editor.CursorDown()
	case key.Matches(msg, keys.Left):
		m.editor.CursorLeft()
	case key.Matches(msg, keys.Right):
		m.editor.CursorRight()
	case key.Matches(msg, keys.Enter):
		m.editor.Enter()
	case key.Matches(msg, keys.Backspace):
		m.editor.Backspace()
	default:
		switch msg.Type {
		case tea.KeyRunes:
			for _, r := range msg.Runes {
				m.editor.Insert(r)
			}
		case tea.KeySpace:
			m.editor.Insert(' ')
		case tea.KeyTab:
			m.editor.Insert('\t')
		}
	}

	// Any edit or movement clears the last save status.
	m.status = ""
	return m, nil
}
