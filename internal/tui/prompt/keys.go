package prompt

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines keybindings for the prompt
type KeyMap struct {
	Quit    key.Binding
	Submit  key.Binding
	Newline key.Binding

	// Dropdown, only while it is open
	Up     key.Binding
	Down   key.Binding
	Accept key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Newline: key.NewBinding(
			key.WithKeys("ctrl+j", "alt+enter"),
			key.WithHelp("ctrl+j", "newline"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "next"),
		),
		Accept: key.NewBinding(
			key.WithKeys("tab", "enter"),
			key.WithHelp("tab", "complete"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
	}
}

// completionKey maps a key press to the controller's navigation key name.
func (k KeyMap) completionKey(msg tea.KeyMsg) (string, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return "up", true
	case key.Matches(msg, k.Down):
		return "down", true
	case key.Matches(msg, k.Accept):
		return "tab", true
	case key.Matches(msg, k.Cancel):
		return "escape", true
	}
	return "", false
}
