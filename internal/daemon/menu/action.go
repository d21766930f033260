package menu

import "fmt"

// ActionKind is what a menu item does when clicked.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionQuit
	ActionShow
	ActionNewGoal
	ActionComplete
	ActionUncomplete
	// ActionToggle is the simple variant goal leaf. It emits toggle_goal where
	// a bare raw id would otherwise be a no-op, so simple menus stay usable.
	ActionToggle
	ActionAddImpediment
	ActionRemoveImpediment
)

var actionNames = map[ActionKind]string{
	ActionNone:             "none",
	ActionQuit:             "quit",
	ActionShow:             "show",
	ActionNewGoal:          "new_goal",
	ActionComplete:         "complete",
	ActionUncomplete:       "uncomplete",
	ActionToggle:           "toggle",
	ActionAddImpediment:    "add_impediment",
	ActionRemoveImpediment: "remove_impediment",
}

func (k ActionKind) String() string {
	if s, ok := actionNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// TargetsGoal reports whether actions of this kind carry a goal id.
func (k ActionKind) TargetsGoal() bool {
	switch k {
	case ActionComplete, ActionUncomplete, ActionToggle, ActionAddImpediment, ActionRemoveImpediment:
		return true
	}
	return false
}

// Action is the routing decision attached to a menu item at build time.
type Action struct {
	Kind   ActionKind
	GoalID string
}

func (a Action) String() string {
	if a.Kind.TargetsGoal() {
		return a.Kind.String() + "(" + a.GoalID + ")"
	}
	return a.Kind.String()
}

// Fixed identifiers.
const (
	IDQuit           = "quit"
	IDShow           = "show"
	IDAddGoal        = "add_goal"
	IDPendingLabel   = "pending_label"
	IDCompletedLabel = "completed_label"
)

// Composite identifier prefixes.
const (
	PrefixComplete         = "complete_"
	PrefixUncomplete       = "uncomplete_"
	PrefixRemoveImpediment = "remove_impediment_"
	PrefixAddImpediment    = "add_impediment_"
)

// reserved identifiers can never be claimed by a raw goal id.
var reserved = map[string]struct{}{
	IDQuit:           {},
	IDShow:           {},
	IDAddGoal:        {},
	IDPendingLabel:   {},
	IDCompletedLabel: {},
}

// IsReserved reports whether id is one of the fixed identifiers.
func IsReserved(id string) bool {
	_, ok := reserved[id]
	return ok
}
