package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPartitionKeepsOrder(t *testing.T) {
	list := GoalList{
		{ID: "a", Completed: false},
		{ID: "b", Completed: true},
		{ID: "c", Completed: false},
		{ID: "d", Completed: true},
	}

	pending, completed := list.Partition()

	require.Len(t, pending, 2)
	require.Len(t, completed, 2)
	assert.Equal(t, "a", pending[0].ID)
	assert.Equal(t, "c", pending[1].ID)
	assert.Equal(t, "b", completed[0].ID)
	assert.Equal(t, "d", completed[1].ID)
}

func TestPartitionEmpty(t *testing.T) {
	pending, completed := GoalList(nil).Partition()
	assert.Empty(t, pending)
	assert.Empty(t, completed)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		list    GoalList
		wantErr string
	}{
		{name: "empty list", list: nil},
		{name: "unique ids", list: GoalList{{ID: "a"}, {ID: "b"}}},
		{name: "duplicate id", list: GoalList{{ID: "a"}, {ID: "a"}}, wantErr: `duplicate goal id "a"`},
		{name: "empty id", list: GoalList{{ID: ""}}, wantErr: "goal 0 has an empty id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.list.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWithImpediment(t *testing.T) {
	g := NewGoal("a", "Write report")
	assert.False(t, g.Blocked())

	blocked := g.WithImpediment("waiting on review")
	assert.True(t, blocked.Blocked())
	assert.Equal(t, "waiting on review", blocked.Impediment())
	assert.False(t, g.Blocked(), "original goal must not change")

	cleared := blocked.WithImpediment("")
	assert.False(t, cleared.Blocked())
	assert.Equal(t, "", cleared.Impediment())
}

func TestEffectivePriority(t *testing.T) {
	assert.Equal(t, PriorityMedium, Goal{}.EffectivePriority())
	assert.Equal(t, PriorityHigh, Goal{Priority: PriorityHigh}.EffectivePriority())
}

func TestDecodeFrontendJSON(t *testing.T) {
	// The front-end store writes goals.json; YAML decoding accepts it as-is.
	data := []byte(`[
  {"id": "a", "title": "Write report", "completed": false, "createdAt": "2024-01-02T03:04:05Z", "priority": "high"},
  {"id": "b", "title": "Ship", "completed": true, "impediments": "CI is red"}
]`)

	var list GoalList
	require.NoError(t, yaml.Unmarshal(data, &list))
	require.Len(t, list, 2)
	assert.Equal(t, PriorityHigh, list[0].Priority)
	assert.Equal(t, "2024-01-02T03:04:05Z", list[0].CreatedAt)
	assert.False(t, list[0].Blocked())
	assert.True(t, list[1].Completed)
	assert.Equal(t, "CI is red", list[1].Impediment())
}

func TestCloneDoesNotShareImpediments(t *testing.T) {
	orig := GoalList{NewGoal("a", "x").WithImpediment("blocked")}
	clone := orig.Clone()
	*clone[0].Impediments = "changed"
	assert.Equal(t, "blocked", orig[0].Impediment())
}
