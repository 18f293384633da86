package domain

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutType classifies a scheduled training session.
type WorkoutType string

const (
	WorkoutStrength WorkoutType = "Strength"
	WorkoutCardio   WorkoutType = "Cardio"
	WorkoutHIIT     WorkoutType = "HIIT"
	WorkoutYoga     WorkoutType = "Yoga"
	WorkoutRecovery WorkoutType = "Recovery"
)

// Intensity describes the effort level of a session.
type Intensity string

const (
	IntensityLight  Intensity = "light"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// Equipment describes what a session requires.
type Equipment string

const (
	EquipmentMinimal  Equipment = "minimal"
	EquipmentModerate Equipment = "moderate"
	EquipmentFullGym  Equipment = "full-gym"
)

// Frequency records the intended recurrence cadence of a session.
// It is informational only; conflict checks operate on day-of-week + time.
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// Weekday is a day-of-week label as stored on a session ("Monday".."Sunday").
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Performance rates a completed session.
type Performance string

const (
	PerformancePoor      Performance = "poor"
	PerformanceFair      Performance = "fair"
	PerformanceGood      Performance = "good"
	PerformanceExcellent Performance = "excellent"
)

// Session duration bounds in minutes.
const (
	MinSessionDuration = 15
	MaxSessionDuration = 180
)

// MaxNotesLength bounds the free-text notes field.
const MaxNotesLength = 500

// CompletionRecord is one entry in a session's append-only completion log.
type CompletionRecord struct {
	Date        time.Time   `bson:"date" json:"date"`
	Notes       string      `bson:"notes,omitempty" json:"notes,omitempty"`
	Performance Performance `bson:"performance,omitempty" json:"performance,omitempty"`
}

// Session is a recurring weekly workout slot owned by a single user.
// The same session repeats on every day listed in Days at PreferredTime.
type Session struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID       primitive.ObjectID `bson:"user" json:"ownerId"`
	Type          WorkoutType        `bson:"type" json:"type"`
	Duration      int                `bson:"duration" json:"durationMinutes"` // minutes
	PreferredTime string             `bson:"preferredTime" json:"preferredTime"`
	Frequency     Frequency          `bson:"frequency" json:"frequency"`
	Intensity     Intensity          `bson:"intensity" json:"intensity"`
	Equipment     Equipment          `bson:"equipment" json:"equipment"`
	Days          []Weekday          `bson:"days" json:"days"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Completed     []CompletionRecord `bson:"completed" json:"completed"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ValidationError reports every session field that failed validation.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

func validWorkoutType(t WorkoutType) bool {
	switch t {
	case WorkoutStrength, WorkoutCardio, WorkoutHIIT, WorkoutYoga, WorkoutRecovery:
		return true
	}
	return false
}

func validIntensity(i Intensity) bool {
	switch i {
	case IntensityLight, IntensityMedium, IntensityHigh:
		return true
	}
	return false
}

func validEquipment(e Equipment) bool {
	switch e {
	case EquipmentMinimal, EquipmentModerate, EquipmentFullGym:
		return true
	}
	return false
}

func validFrequency(f Frequency) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return true
	}
	return false
}

func validWeekday(d Weekday) bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

func validPerformance(p Performance) bool {
	switch p {
	case PerformancePoor, PerformanceFair, PerformanceGood, PerformanceExcellent:
		return true
	}
	return false
}

// ValidateCompletion checks a completion record before it is appended.
func ValidateCompletion(rec CompletionRecord) error {
	var problems []string
	if rec.Date.IsZero() {
		problems = append(problems, "completion date is required")
	}
	if rec.Performance != "" && !validPerformance(rec.Performance) {
		problems = append(problems, fmt.Sprintf("invalid performance rating %q", rec.Performance))
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Validate checks all session invariants and returns a *ValidationError
// listing every violation, or nil if the session is valid.
func (s *Session) Validate() error {
	var problems []string

	if !validWorkoutType(s.Type) {
		problems = append(problems, fmt.Sprintf("invalid workout type %q", s.Type))
	}
	if !validIntensity(s.Intensity) {
		problems = append(problems, fmt.Sprintf("invalid intensity %q", s.Intensity))
	}
	if !validEquipment(s.Equipment) {
		problems = append(problems, fmt.Sprintf("invalid equipment %q", s.Equipment))
	}
	if s.Frequency != "" && !validFrequency(s.Frequency) {
		problems = append(problems, fmt.Sprintf("invalid frequency %q", s.Frequency))
	}
	if s.Duration < MinSessionDuration || s.Duration > MaxSessionDuration {
		problems = append(problems, fmt.Sprintf("duration must be between %d and %d minutes", MinSessionDuration, MaxSessionDuration))
	}
	if _, err := ParseTimeOfDay(s.PreferredTime); err != nil {
		problems = append(problems, fmt.Sprintf("invalid preferred time %q (expected HH:MM)", s.PreferredTime))
	}
	if len(s.Days) == 0 {
		problems = append(problems, "at least one day must be selected")
	}
	seen := make(map[Weekday]bool, len(s.Days))
	for _, d := range s.Days {
		if !validWeekday(d) {
			problems = append(problems, fmt.Sprintf("invalid day %q", d))
			continue
		}
		if seen[d] {
			problems = append(problems, fmt.Sprintf("duplicate day %q", d))
		}
		seen[d] = true
	}
	if len(s.Notes) > MaxNotesLength {
		problems = append(problems, fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength))
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// HasCompletedSessions reports whether any completion has been logged.
func (s *Session) HasCompletedSessions() bool {
	return len(s.Completed) > 0
}

// ParseTimeOfDay parses a wall-clock "HH:MM" value and returns it as
// minutes since midnight.
func ParseTimeOfDay(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
