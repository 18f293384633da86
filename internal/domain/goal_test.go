package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validGoal() Goal {
	return Goal{
		Text:     "Squat bodyweight for 5 reps",
		Category: GoalStrength,
		Status:   GoalInProgress,
		Priority: PriorityHigh,
		Progress: GoalProgress{Current: 40, Target: 80, Unit: "kg"},
	}
}

func TestGoalValidate(t *testing.T) {
	g := validGoal()
	assert.NoError(t, g.Validate())

	g = validGoal()
	g.Text = ""
	assert.Error(t, g.Validate())

	g = validGoal()
	g.Category = "Esports"
	assert.Error(t, g.Validate())

	g = validGoal()
	g.Progress.Target = 0
	assert.Error(t, g.Validate())

	g = validGoal()
	g.Progress.Unit = ""
	assert.Error(t, g.Validate())
}

func TestGoalApplyProgress(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	g := validGoal()
	g.ApplyProgress(60, now)
	assert.Equal(t, 60.0, g.Progress.Current)
	assert.False(t, g.Completed)
	assert.Nil(t, g.CompletedAt)

	g.ApplyProgress(80, now)
	assert.True(t, g.Completed)
	assert.Equal(t, GoalCompleted, g.Status)
	require.NotNil(t, g.CompletedAt)
	assert.Equal(t, now, *g.CompletedAt)
}
