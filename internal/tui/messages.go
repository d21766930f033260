package tui

import "github.com/goaltray/goaltray/internal/daemon/menu"

// menuInstalledMsg replaces the displayed menu.
type menuInstalledMsg struct {
	menu *menu.Menu
}

// startedMsg signals that the host's start hook has run.
type startedMsg struct{}

// clickedMsg reports that an item click was handed to the router.
type clickedMsg struct {
	id string
}
