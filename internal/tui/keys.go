package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	SplitH    key.Binding
	SplitV    key.Binding
	NextPane  key.Binding
	PrevPane  key.Binding
	ClosePane key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Enter     key.Binding
	Backspace key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Save      key.Binding
	ExitEdit  key.Binding
	CtrlC     key.Binding
}

var keys = keyMap{
	SplitH: key.NewBinding(
		key.WithKeys("alt+h"),
	),
	SplitV: key.NewBinding(
		key.WithKeys("alt+v"),
	),
	NextPane: key.NewBinding(
		key.WithKeys("alt+right", "alt+]"),
	),
	PrevPane: key.NewBinding(
		key.WithKeys("alt+left", "alt+["),
	),
	ClosePane: key.NewBinding(
		key.WithKeys("alt+w"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
	),
	Backspace: key.NewBinding(
		key.WithKeys("backspace"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+o"),
	),
	ExitEdit: key.NewBinding(
		key.WithKeys("ctrl+x"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}
