package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the global bindings
type KeyMap struct {
	Home    key.Binding
	Results key.Binding
	Picker  key.Binding
	Compare key.Binding
	Help    key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the standard global bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Home:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "home")),
		Results: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "results")),
		Picker:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pick")),
		Compare: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compare")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Home, k.Results, k.Picker, k.Compare, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Home, k.Results, k.Picker, k.Compare},
		{k.Help, k.Back, k.Quit},
	}
}
