package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the player's key bindings.
type KeyMap struct {
	Quit     key.Binding
	Help     key.Binding
	Down     key.Binding
	Up       key.Binding
	PageDown key.Binding
	PageUp   key.Binding
	NextStep key.Binding
	PrevStep key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Replay   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", " ", "f"),
			key.WithHelp("pgdn", "page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup", "page up"),
		),
		NextStep: key.NewBinding(
			key.WithKeys("n", "tab"),
			key.WithHelp("n", "next step"),
		),
		PrevStep: key.NewBinding(
			key.WithKeys("p", "shift+tab"),
			key.WithHelp("p", "previous step"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
		Replay: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
	}
}

// ShortHelp lists the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.NextStep, k.PrevStep, k.Help, k.Quit}
}

// FullHelp lists every binding.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.PageDown, k.PageUp},
		{k.NextStep, k.PrevStep, k.Top, k.Bottom},
		{k.Replay, k.Help, k.Quit},
	}
}
