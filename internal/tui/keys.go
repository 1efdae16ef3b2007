package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global key bindings. Anything else goes to the focused field.
type KeyMap struct {
	SwitchField key.Binding
	CycleSource key.Binding
	CycleTarget key.Binding
	Swap        key.Binding
	Copy        key.Binding
	Dismiss     key.Binding
	Quit        key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		SwitchField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "text/context"),
		),
		CycleSource: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "source lang"),
		),
		CycleTarget: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "target lang"),
		),
		Swap: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "swap"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchField, k.CycleSource, k.CycleTarget, k.Swap, k.Copy, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SwitchField, k.CycleSource, k.CycleTarget},
		{k.Swap, k.Copy, k.Dismiss, k.Quit},
	}
}
