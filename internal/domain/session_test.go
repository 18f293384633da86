package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSession() Session {
	return Session{
		Type:          WorkoutStrength,
		Duration:      60,
		PreferredTime: "09:00",
		Frequency:     FrequencyWeekly,
		Intensity:     IntensityMedium,
		Equipment:     EquipmentMinimal,
		Days:          []Weekday{Monday, Wednesday, Friday},
	}
}

func TestSessionValidate_Valid(t *testing.T) {
	s := validSession()
	assert.NoError(t, s.Validate())
}

func TestSessionValidate_Table(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Session)
		problem string
	}{
		{"empty days", func(s *Session) { s.Days = nil }, "at least one day"},
		{"unknown day", func(s *Session) { s.Days = []Weekday{"Funday"} }, "invalid day"},
		{"duplicate day", func(s *Session) { s.Days = []Weekday{Monday, Monday} }, "duplicate day"},
		{"duration too short", func(s *Session) { s.Duration = 10 }, "duration"},
		{"duration too long", func(s *Session) { s.Duration = 200 }, "duration"},
		{"bad time", func(s *Session) { s.PreferredTime = "25:00" }, "preferred time"},
		{"time missing minutes", func(s *Session) { s.PreferredTime = "9am" }, "preferred time"},
		{"bad type", func(s *Session) { s.Type = "Swimming" }, "workout type"},
		{"bad intensity", func(s *Session) { s.Intensity = "extreme" }, "intensity"},
		{"bad equipment", func(s *Session) { s.Equipment = "barbell" }, "equipment"},
		{"bad frequency", func(s *Session) { s.Frequency = "hourly" }, "frequency"},
		{"notes too long", func(s *Session) { s.Notes = strings.Repeat("x", MaxNotesLength+1) }, "notes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSession()
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, err.Error(), tt.problem)
		})
	}
}

func TestSessionValidate_ReportsAllProblems(t *testing.T) {
	s := validSession()
	s.Days = nil
	s.Duration = 5
	s.PreferredTime = "noon"

	err := s.Validate()
	require.Error(t, err)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Problems, 3)
}

func TestSessionValidate_DurationBounds(t *testing.T) {
	s := validSession()
	s.Duration = MinSessionDuration
	assert.NoError(t, s.Validate())
	s.Duration = MaxSessionDuration
	assert.NoError(t, s.Validate())
}

func TestValidateCompletion(t *testing.T) {
	rec := CompletionRecord{Date: time.Now(), Performance: PerformanceGood}
	assert.NoError(t, ValidateCompletion(rec))

	assert.Error(t, ValidateCompletion(CompletionRecord{Performance: PerformanceGood}))
	assert.Error(t, ValidateCompletion(CompletionRecord{Date: time.Now(), Performance: "legendary"}))

	// Performance is optional.
	assert.NoError(t, ValidateCompletion(CompletionRecord{Date: time.Now()}))
}

func TestParseTimeOfDay(t *testing.T) {
	minutes, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9*60+30, minutes)

	_, err = ParseTimeOfDay("24:00")
	assert.Error(t, err)
	_, err = ParseTimeOfDay("")
	assert.Error(t, err)
}
