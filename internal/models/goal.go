package models

import (
	"fmt"
	"strings"
)

// Priority is the front-end's goal priority. It is carried, not rendered.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Goal is a single goal record as owned by the window front-end.
// The front-end sends goals as JSON; the CLI reads them from YAML or JSON files.
type Goal struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Completed   bool     `yaml:"completed" json:"completed"`
	Impediments *string  `yaml:"impediments,omitempty" json:"impediments,omitempty"` // nil = not blocked
	Priority    Priority `yaml:"priority,omitempty" json:"priority,omitempty"`
	CreatedAt   string   `yaml:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// NewGoal creates a pending goal with medium priority.
func NewGoal(id, title string) Goal {
	return Goal{
		ID:       id,
		Title:    title,
		Priority: PriorityMedium,
	}
}

// Blocked reports whether the goal carries an impediment.
func (g Goal) Blocked() bool {
	return g.Impediments != nil
}

// Impediment returns the impediment text, or "" when the goal isn't blocked.
func (g Goal) Impediment() string {
	if g.Impediments == nil {
		return ""
	}
	return *g.Impediments
}

// EffectivePriority returns the priority, defaulting to medium for legacy records.
func (g Goal) EffectivePriority() Priority {
	if g.Priority == "" {
		return PriorityMedium
	}
	return g.Priority
}

// WithImpediment returns a copy of g blocked by text. An empty text clears it.
func (g Goal) WithImpediment(text string) Goal {
	if text == "" {
		g.Impediments = nil
		return g
	}
	g.Impediments = &text
	return g
}

// GoalList is an ordered snapshot of goals.
type GoalList []Goal

// Partition splits the list into pending and completed goals, keeping input order.
func (l GoalList) Partition() (pending, completed []Goal) {
	for _, g := range l {
		if g.Completed {
			completed = append(completed, g)
		} else {
			pending = append(pending, g)
		}
	}
	return pending, completed
}

// Validate reports empty or duplicate ids.
func (l GoalList) Validate() error {
	seen := make(map[string]struct{}, len(l))
	var problems []string
	for i, g := range l {
		if g.ID == "" {
			problems = append(problems, fmt.Sprintf("goal %d has an empty id", i))
			continue
		}
		if _, ok := seen[g.ID]; ok {
			problems = append(problems, fmt.Sprintf("duplicate goal id %q", g.ID))
			continue
		}
		seen[g.ID] = struct{}{}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid goal list: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Clone returns a copy that shares no impediment pointers with l.
func (l GoalList) Clone() GoalList {
	if l == nil {
		return nil
	}
	out := make(GoalList, len(l))
	for i, g := range l {
		if g.Impediments != nil {
			imp := *g.Impediments
			g.Impediments = &imp
		}
		out[i] = g
	}
	return out
}
