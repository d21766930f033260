package bridge

import (
	"encoding/json"

	"github.com/goaltray/goaltray/internal/models"
)

// Frame types.
const (
	FrameHello          = "hello"
	FrameWelcome        = "welcome"
	FrameInvoke         = "invoke"
	FrameResult         = "result"
	FrameEvent          = "event"
	FrameCloseRequested = "close_requested"
)

// Commands the front-end can invoke.
const (
	CmdUpdateTrayMenu = "update_tray_menu"
	CmdToggleGoal     = "toggle_goal"
	CmdClick          = "click"
)

// Window visibility events, sent alongside the router's goal events.
const (
	EventWindowShow = "window_show"
	EventWindowHide = "window_hide"
)

// MainLabel is the label the main window registers with.
const MainLabel = "main"

// Frame is one JSON message on the bridge, in either direction.
type Frame struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Label   string          `json:"label,omitempty"`
	Cmd     string          `json:"cmd,omitempty"`
	Args    json.RawMessage `json:"args,omitempty"`
	Event   string          `json:"event,omitempty"`
	Payload string          `json:"payload,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// UpdateTrayMenuArgs are the arguments of update_tray_menu.
type UpdateTrayMenuArgs struct {
	Goals []models.Goal `json:"goals"`
}

// ToggleGoalArgs are the arguments of toggle_goal.
type ToggleGoalArgs struct {
	ID    string        `json:"id"`
	Goals []models.Goal `json:"goals"`
}

// ClickArgs are the arguments of click.
type ClickArgs struct {
	Identifier string `json:"identifier"`
}
