package schedule

import (
	"testing"

	"fittrack/fitness-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestions_StrengthHighYieldsTwoInFixedOrder(t *testing.T) {
	suggestions := Suggestions(domain.WorkoutStrength, domain.IntensityHigh)

	require.Len(t, suggestions, 2)
	assert.Equal(t, "Allow 48 hours between strength sessions for recovery", suggestions[0])
	assert.Equal(t, "Consider adding a recovery day after each session", suggestions[1])
}

func TestSuggestions_Deterministic(t *testing.T) {
	first := Suggestions(domain.WorkoutHIIT, domain.IntensityHigh)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Suggestions(domain.WorkoutHIIT, domain.IntensityHigh))
	}
}

func TestSuggestions_Table(t *testing.T) {
	tests := []struct {
		name      string
		workout   domain.WorkoutType
		intensity domain.Intensity
		want      int
	}{
		{"strength light", domain.WorkoutStrength, domain.IntensityLight, 1},
		{"strength medium", domain.WorkoutStrength, domain.IntensityMedium, 1},
		{"strength high", domain.WorkoutStrength, domain.IntensityHigh, 2},
		{"hiit light", domain.WorkoutHIIT, domain.IntensityLight, 1},
		{"hiit high", domain.WorkoutHIIT, domain.IntensityHigh, 2},
		{"cardio high", domain.WorkoutCardio, domain.IntensityHigh, 0},
		{"yoga medium", domain.WorkoutYoga, domain.IntensityMedium, 0},
		{"recovery light", domain.WorkoutRecovery, domain.IntensityLight, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Suggestions(tt.workout, tt.intensity), tt.want)
		})
	}
}

func TestAggregateSuggestions_DedupesAcrossSessions(t *testing.T) {
	s1 := makeSession(t, "07:00", domain.Monday)
	s1.Type = domain.WorkoutStrength
	s1.Intensity = domain.IntensityHigh
	s2 := makeSession(t, "08:00", domain.Tuesday)
	s2.Type = domain.WorkoutStrength
	s2.Intensity = domain.IntensityMedium
	s3 := makeSession(t, "09:00", domain.Wednesday)
	s3.Type = domain.WorkoutHIIT
	s3.Intensity = domain.IntensityLight

	aggregated := AggregateSuggestions([]domain.Session{s1, s2, s3})

	// The strength recovery advisory appears once despite two strength
	// sessions; order follows first occurrence.
	require.Len(t, aggregated, 3)
	assert.Equal(t, "Allow 48 hours between strength sessions for recovery", aggregated[0])
	assert.Equal(t, "Consider adding a recovery day after each session", aggregated[1])
	assert.Equal(t, "Limit HIIT sessions to 2-3 times per week", aggregated[2])
}

func TestAggregateSuggestions_EmptyForQuietSchedule(t *testing.T) {
	s := makeSession(t, "07:00", domain.Monday)
	s.Type = domain.WorkoutYoga

	assert.Empty(t, AggregateSuggestions([]domain.Session{s}))
	assert.Empty(t, AggregateSuggestions(nil))
}
