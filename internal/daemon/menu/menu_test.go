package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goaltray/goaltray/internal/models"
)

func strp(s string) *string { return &s }

func simpleOptions() Options {
	return Options{Variant: models.VariantSimple, Labels: EnglishLabels}
}

func richOptions() Options {
	return Options{Variant: models.VariantRich, Labels: EnglishLabels}
}

// ids returns the identifiers of top-level items; separators show as "-".
func ids(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.Kind == KindSeparator {
			out = append(out, "-")
			continue
		}
		out = append(out, it.ID)
	}
	return out
}

func TestBuildEmpty(t *testing.T) {
	m := Build(nil, richOptions())

	assert.Equal(t, []string{"-", IDAddGoal, IDShow, "-", IDQuit}, ids(m.Items))
	assert.Len(t, m.Actions, 3)
	for _, it := range m.Items {
		assert.NotEqual(t, KindLabel, it.Kind)
	}
}

func TestBuildEmptySimple(t *testing.T) {
	m := Build([]models.Goal{}, simpleOptions())
	assert.Equal(t, []string{"-", IDShow, "-", IDQuit}, ids(m.Items))
}

func TestBuildScenario(t *testing.T) {
	goals := []models.Goal{
		{ID: "a", Title: "Write report"},
		{ID: "b", Title: "Ship", Completed: true},
	}

	m := Build(goals, richOptions())

	require.Equal(t,
		[]string{IDPendingLabel, "a", "-", IDCompletedLabel, "b", "-", IDAddGoal, IDShow, "-", IDQuit},
		ids(m.Items))

	pendingLabel := m.Items[0]
	assert.Equal(t, KindLabel, pendingLabel.Kind)
	assert.Equal(t, "📝 Pending", pendingLabel.Label)
	assert.True(t, pendingLabel.Disabled)

	a := m.Items[1]
	assert.Equal(t, KindSubmenu, a.Kind)
	assert.Equal(t, "Write report", a.Label)
	require.Len(t, a.Children, 2)
	assert.Equal(t, "complete_a", a.Children[0].ID)
	assert.Equal(t, "✓ Mark as complete", a.Children[0].Label)
	assert.Equal(t, "add_impediment_a", a.Children[1].ID)

	completedLabel := m.Items[3]
	assert.Equal(t, "✅ Completed", completedLabel.Label)
	assert.True(t, completedLabel.Disabled)

	b := m.Items[4]
	assert.Equal(t, KindSubmenu, b.Kind)
	assert.Equal(t, "✓ Ship", b.Label)
	require.Len(t, b.Children, 1)
	assert.Equal(t, "uncomplete_b", b.Children[0].ID)
	assert.Equal(t, "↩️ Undo completion", b.Children[0].Label)

	assert.Equal(t, IDQuit, m.Items[len(m.Items)-1].ID)
}

func TestBuildNoSeparatorBeforeCompletedWithoutPending(t *testing.T) {
	goals := []models.Goal{{ID: "b", Title: "Ship", Completed: true}}
	m := Build(goals, richOptions())
	assert.Equal(t, []string{IDCompletedLabel, "b", "-", IDAddGoal, IDShow, "-", IDQuit}, ids(m.Items))
}

func TestBuildImpedimentToggle(t *testing.T) {
	tests := []struct {
		name        string
		impediments *string
		wantChild   string
		notChild    string
		wantLabel   string
	}{
		{
			name:      "no impediment offers add",
			wantChild: "add_impediment_g",
			notChild:  "remove_impediment_g",
			wantLabel: "Goal",
		},
		{
			name:        "impediment offers remove",
			impediments: strp("waiting on legal"),
			wantChild:   "remove_impediment_g",
			notChild:    "add_impediment_g",
			wantLabel:   "🚫 Goal (Blocked: waiting on legal)",
		},
		{
			name:        "empty impediment still counts as set",
			impediments: strp(""),
			wantChild:   "remove_impediment_g",
			notChild:    "add_impediment_g",
			wantLabel:   "🚫 Goal (Blocked: )",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Build([]models.Goal{{ID: "g", Title: "Goal", Impediments: tt.impediments}}, richOptions())
			sub := m.Items[1]
			assert.Equal(t, tt.wantLabel, sub.Label)

			var childIDs []string
			for _, c := range sub.Children {
				childIDs = append(childIDs, c.ID)
			}
			assert.Contains(t, childIDs, tt.wantChild)
			assert.NotContains(t, childIDs, tt.notChild)
			_, ok := m.Lookup(tt.notChild)
			assert.False(t, ok)
		})
	}
}

func TestBuildPreservesOrderWithinPartitions(t *testing.T) {
	goals := []models.Goal{
		{ID: "3", Title: "c"},
		{ID: "1", Title: "a", Completed: true},
		{ID: "2", Title: "b"},
		{ID: "0", Title: "z", Completed: true},
	}
	m := Build(goals, richOptions())
	assert.Equal(t,
		[]string{IDPendingLabel, "3", "2", "-", IDCompletedLabel, "1", "0", "-", IDAddGoal, IDShow, "-", IDQuit},
		ids(m.Items))
}

func TestBuildIsDeterministic(t *testing.T) {
	goals := []models.Goal{
		{ID: "a", Title: "A", Impediments: strp("x")},
		{ID: "b", Title: "B", Completed: true},
		{ID: "c", Title: "C"},
	}
	assert.Equal(t, Build(goals, richOptions()), Build(goals, richOptions()))
	assert.Equal(t, Build(goals, simpleOptions()), Build(goals, simpleOptions()))
}

func TestBuildActions(t *testing.T) {
	goals := []models.Goal{
		{ID: "a", Title: "A"},
		{ID: "b", Title: "B", Impediments: strp("x")},
		{ID: "c", Title: "C", Completed: true},
	}
	m := Build(goals, richOptions())

	want := map[string]Action{
		"complete_a":          {Kind: ActionComplete, GoalID: "a"},
		"add_impediment_a":    {Kind: ActionAddImpediment, GoalID: "a"},
		"complete_b":          {Kind: ActionComplete, GoalID: "b"},
		"remove_impediment_b": {Kind: ActionRemoveImpediment, GoalID: "b"},
		"uncomplete_c":        {Kind: ActionUncomplete, GoalID: "c"},
		IDAddGoal:             {Kind: ActionNewGoal},
		IDShow:                {Kind: ActionShow},
		IDQuit:                {Kind: ActionQuit},
	}
	assert.Equal(t, want, m.Actions)

	_, ok := m.Lookup(IDPendingLabel)
	assert.False(t, ok, "labels are never routable")
	_, ok = m.Lookup(IDCompletedLabel)
	assert.False(t, ok)
}

func TestBuildPrefixLikeIDsRouteToOwnGoal(t *testing.T) {
	// A goal whose id looks like another token must not be confused with it.
	goals := []models.Goal{
		{ID: "complete_x", Title: "Tricky"},
		{ID: "x", Title: "Plain"},
	}
	m := Build(goals, richOptions())

	a, ok := m.Lookup("complete_complete_x")
	require.True(t, ok)
	assert.Equal(t, Action{Kind: ActionComplete, GoalID: "complete_x"}, a)

	a, ok = m.Lookup("add_impediment_complete_x")
	require.True(t, ok)
	assert.Equal(t, Action{Kind: ActionAddImpediment, GoalID: "complete_x"}, a)

	a, ok = m.Lookup("complete_x")
	require.True(t, ok)
	assert.Equal(t, Action{Kind: ActionComplete, GoalID: "x"}, a)
}

func TestBuildSimpleVariant(t *testing.T) {
	goals := []models.Goal{
		{ID: "a", Title: "Write report"},
		{ID: "b", Title: "Ship", Completed: true},
	}
	m := Build(goals, simpleOptions())

	require.Equal(t,
		[]string{IDPendingLabel, "a", "-", IDCompletedLabel, "b", "-", IDShow, "-", IDQuit},
		ids(m.Items))
	assert.Equal(t, KindAction, m.Items[1].Kind)
	assert.Equal(t, "Write report", m.Items[1].Label)
	assert.Equal(t, "✓ Ship", m.Items[4].Label)

	a, ok := m.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, Action{Kind: ActionToggle, GoalID: "a"}, a)
	_, ok = m.Lookup(IDAddGoal)
	assert.False(t, ok)
}

func TestBuildSimpleReservedIDIsInert(t *testing.T) {
	m := Build([]models.Goal{{ID: "quit", Title: "Quit smoking"}}, simpleOptions())

	a, ok := m.Lookup("quit")
	require.True(t, ok)
	assert.Equal(t, ActionQuit, a.Kind, "the trailing quit item keeps its identifier")
	assert.Equal(t, "Quit smoking", m.Items[1].Label)
	assert.True(t, m.Items[1].Disabled, "goal leaf must not click through to quit")
}

func TestBuildSimpleDuplicateIDFirstWins(t *testing.T) {
	goals := []models.Goal{
		{ID: "a", Title: "first"},
		{ID: "a", Title: "second", Completed: true},
	}
	m := Build(goals, simpleOptions())
	a, ok := m.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, Action{Kind: ActionToggle, GoalID: "a"}, a)
}

func TestBuildPortugueseLabels(t *testing.T) {
	goals := []models.Goal{{ID: "a", Title: "Meta", Impediments: strp("chuva")}}
	m := Build(goals, DefaultOptions())

	assert.Equal(t, "📝 Pendentes", m.Items[0].Label)
	assert.Equal(t, "🚫 Meta (Bloqueado: chuva)", m.Items[1].Label)
	assert.Equal(t, "Sair", m.Items[len(m.Items)-1].Label)
}

func TestWalkVisitsChildren(t *testing.T) {
	goals := []models.Goal{{ID: "a", Title: "A"}}
	m := Build(goals, richOptions())

	var visited []string
	var depths []int
	m.Walk(func(it Item, depth int) {
		if it.Kind == KindSeparator {
			return
		}
		visited = append(visited, it.ID)
		depths = append(depths, depth)
	})

	assert.Equal(t, []string{IDPendingLabel, "a", "complete_a", "add_impediment_a", IDAddGoal, IDShow, IDQuit}, visited)
	assert.Equal(t, []int{0, 0, 1, 1, 0, 0, 0}, depths)
}

func TestLabelsFor(t *testing.T) {
	assert.Equal(t, EnglishLabels, LabelsFor(models.LabelsEN))
	assert.Equal(t, PortugueseLabels, LabelsFor(models.LabelsPT))
	assert.Equal(t, PortugueseLabels, LabelsFor("klingon"))
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "complete(a)", Action{Kind: ActionComplete, GoalID: "a"}.String())
	assert.Equal(t, "quit", Action{Kind: ActionQuit}.String())
	assert.Equal(t, "ActionKind(99)", ActionKind(99).String())
}
