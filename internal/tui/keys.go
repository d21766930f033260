package tui

import "github.com/charmbracelet/bubbles/key"

// MenuKeys navigate and activate menu items.
type MenuKeys struct {
	Up       key.Binding
	Down     key.Binding
	Activate key.Binding
	Expand   key.Binding
	Collapse key.Binding
	Quit     key.Binding
}

var menuKeys = MenuKeys{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("j/k", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/k", "navigate"),
	),
	Activate: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("Enter", "select"),
	),
	Expand: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("l", "open"),
	),
	Collapse: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("h", "close"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("Ctrl+c", "detach"),
	),
}

// hintKeys are shown in the status bar, in order.
func hintKeys() []key.Binding {
	return []key.Binding{menuKeys.Down, menuKeys.Activate, menuKeys.Expand, menuKeys.Collapse, menuKeys.Quit}
}
