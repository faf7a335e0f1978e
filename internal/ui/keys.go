package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Toggle   key.Binding
	PrevDay  key.Binding
	NextDay  key.Binding
	PrevWeek key.Binding
	NextWeek key.Binding
	Now      key.Binding
	Date     key.Binding
	Stars    key.Binding
	Arc      key.Binding
	Help     key.Binding
	Quit     key.Binding

	// Active only while typing a date.
	Accept key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("t", " "),
			key.WithHelp("t/space", "toggle zodiac"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "-1 day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "+1 day"),
		),
		PrevWeek: key.NewBinding(
			key.WithKeys("H", "shift+left"),
			key.WithHelp("H", "-7 days"),
		),
		NextWeek: key.NewBinding(
			key.WithKeys("L", "shift+right"),
			key.WithHelp("L", "+7 days"),
		),
		Now: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "now"),
		),
		Date: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "enter date"),
		),
		Stars: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "fixed stars"),
		),
		Arc: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "evening sky"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "go to date"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.PrevDay, k.NextDay, k.Date, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Stars, k.Arc},
		{k.PrevDay, k.NextDay, k.PrevWeek, k.NextWeek},
		{k.Now, k.Date, k.Help, k.Quit},
	}
}

// dateInputKeys is the help shown while the date prompt is open.
type dateInputKeys struct {
	accept, cancel key.Binding
}

func (k dateInputKeys) ShortHelp() []key.Binding   { return []key.Binding{k.accept, k.cancel} }
func (k dateInputKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
