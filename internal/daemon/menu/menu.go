// Package menu builds the tray menu description from a goal list.
//
// Build is pure: the same goals and options always produce the same items.
// Alongside the items it returns a side table from item identifier to
// Action, so click routing is a lookup and never parses identifiers.
package menu

import (
	"fmt"

	"github.com/goaltray/goaltray/internal/models"
)

// Kind is the kind of a menu item.
type Kind int

const (
	KindAction Kind = iota
	KindLabel
	KindSeparator
	KindSubmenu
)

func (k Kind) String() string {
	switch k {
	case KindAction:
		return "action"
	case KindLabel:
		return "label"
	case KindSeparator:
		return "separator"
	case KindSubmenu:
		return "submenu"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Item is one entry of a menu. Labels are always disabled; submenus carry Children.
type Item struct {
	Kind     Kind
	ID       string
	Label    string
	Disabled bool
	Children []Item
}

// Menu is a built tray menu.
type Menu struct {
	Items   []Item
	Actions map[string]Action
}

// Options selects the menu variant and label set.
type Options struct {
	Variant string // models.VariantRich or models.VariantSimple
	Labels  Labels
}

// DefaultOptions returns the rich variant with Portuguese labels.
func DefaultOptions() Options {
	return Options{Variant: models.VariantRich, Labels: PortugueseLabels}
}

// OptionsFromSettings maps tray settings to builder options.
func OptionsFromSettings(s *models.Settings) Options {
	return Options{Variant: s.Tray.Variant, Labels: LabelsFor(s.Tray.Labels)}
}

func (o Options) rich() bool {
	return o.Variant != models.VariantSimple
}

// Lookup returns the action for an identifier.
func (m *Menu) Lookup(id string) (Action, bool) {
	if m == nil {
		return Action{}, false
	}
	a, ok := m.Actions[id]
	return a, ok
}

// Walk calls fn for every item depth first. depth is 0 for top-level items.
func (m *Menu) Walk(fn func(item Item, depth int)) {
	if m == nil {
		return
	}
	walk(m.Items, 0, fn)
}

func walk(items []Item, depth int, fn func(Item, int)) {
	for _, it := range items {
		fn(it, depth)
		if it.Kind == KindSubmenu {
			walk(it.Children, depth+1, fn)
		}
	}
}

// Build returns the menu for goals.
func Build(goals []models.Goal, opts Options) *Menu {
	b := &builder{
		opts: opts,
		m:    &Menu{Actions: make(map[string]Action)},
	}
	b.build(goals)
	return b.m
}

type builder struct {
	opts Options
	m    *Menu
}

func (b *builder) build(goals []models.Goal) {
	pending, completed := models.GoalList(goals).Partition()
	l := b.opts.Labels

	if len(pending) > 0 {
		b.m.Items = append(b.m.Items, label(IDPendingLabel, l.Pending))
		for _, g := range pending {
			b.m.Items = append(b.m.Items, b.pendingItem(g))
		}
	}

	if len(completed) > 0 {
		if len(pending) > 0 {
			b.m.Items = append(b.m.Items, separator())
		}
		b.m.Items = append(b.m.Items, label(IDCompletedLabel, l.Completed))
		for _, g := range completed {
			b.m.Items = append(b.m.Items, b.completedItem(g))
		}
	}

	b.m.Items = append(b.m.Items, separator())
	if b.opts.rich() {
		b.m.Items = append(b.m.Items, b.leaf(IDAddGoal, l.NewGoal, Action{Kind: ActionNewGoal}))
	}
	b.m.Items = append(b.m.Items,
		b.leaf(IDShow, l.Manage, Action{Kind: ActionShow}),
		separator(),
		b.leaf(IDQuit, l.Quit, Action{Kind: ActionQuit}),
	)
}

func (b *builder) pendingItem(g models.Goal) Item {
	l := b.opts.Labels
	if !b.opts.rich() {
		return b.goalLeaf(g, g.Title)
	}

	children := []Item{
		b.leaf(PrefixComplete+g.ID, l.MarkComplete, Action{Kind: ActionComplete, GoalID: g.ID}),
	}
	if g.Blocked() {
		children = append(children,
			b.leaf(PrefixRemoveImpediment+g.ID, l.RemoveImpediment, Action{Kind: ActionRemoveImpediment, GoalID: g.ID}))
	} else {
		children = append(children,
			b.leaf(PrefixAddImpediment+g.ID, l.AddImpediment, Action{Kind: ActionAddImpediment, GoalID: g.ID}))
	}

	title := g.Title
	if g.Blocked() {
		title = fmt.Sprintf(l.BlockedFormat, g.Title, g.Impediment())
	}
	return Item{Kind: KindSubmenu, ID: g.ID, Label: title, Children: children}
}

func (b *builder) completedItem(g models.Goal) Item {
	l := b.opts.Labels
	title := fmt.Sprintf(l.DoneFormat, g.Title)
	if !b.opts.rich() {
		return b.goalLeaf(g, title)
	}
	children := []Item{
		b.leaf(PrefixUncomplete+g.ID, l.Undo, Action{Kind: ActionUncomplete, GoalID: g.ID}),
	}
	return Item{Kind: KindSubmenu, ID: g.ID, Label: title, Children: children}
}

// goalLeaf is the simple variant's item: the identifier is the raw goal id.
// A reserved id would click through to the fixed item, so it renders disabled.
func (b *builder) goalLeaf(g models.Goal, title string) Item {
	if IsReserved(g.ID) {
		return Item{Kind: KindAction, ID: g.ID, Label: title, Disabled: true}
	}
	return b.leaf(g.ID, title, Action{Kind: ActionToggle, GoalID: g.ID})
}

// leaf registers the action under id unless the id is already taken.
// First registration wins, so a duplicate goal id never redirects an earlier item.
func (b *builder) leaf(id, title string, a Action) Item {
	if _, taken := b.m.Actions[id]; !taken {
		b.m.Actions[id] = a
	}
	return Item{Kind: KindAction, ID: id, Label: title}
}

func label(id, title string) Item {
	return Item{Kind: KindLabel, ID: id, Label: title, Disabled: true}
}

func separator() Item {
	return Item{Kind: KindSeparator}
}
