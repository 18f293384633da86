package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FitnessLevel is the user's self-declared experience level.
type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "Beginner"
	LevelIntermediate FitnessLevel = "Intermediate"
	LevelAdvanced     FitnessLevel = "Advanced"
)

// MeasurementUnit selects how body metrics are displayed.
type MeasurementUnit string

const (
	UnitMetric   MeasurementUnit = "Metric"
	UnitImperial MeasurementUnit = "Imperial"
)

// Preferences holds per-user display and reminder settings.
type Preferences struct {
	MeasurementUnit      MeasurementUnit `bson:"measurementUnit" json:"measurementUnit"`
	WorkoutReminders     bool            `bson:"workoutReminders" json:"workoutReminders"`
	PreferredWorkoutTime string          `bson:"preferredWorkoutTime" json:"preferredWorkoutTime"`
}

// DefaultPreferences returns the preferences assigned at registration.
func DefaultPreferences() Preferences {
	return Preferences{
		MeasurementUnit:      UnitMetric,
		WorkoutReminders:     true,
		PreferredWorkoutTime: "morning",
	}
}

// User represents an account. Every session and goal belongs to exactly
// one user; all schedule conflict checks are scoped to a single user.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"` // Should be unique
	FullName     string             `bson:"fullName" json:"fullName"`
	Age          int                `bson:"age" json:"age"`
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	ProfilePic   string             `bson:"profilePic,omitempty" json:"-"` // S3 object key - internal use
	HeightCm     float64            `bson:"height,omitempty" json:"height,omitempty"`
	WeightKg     float64            `bson:"weight,omitempty" json:"weight,omitempty"`
	FitnessLevel FitnessLevel       `bson:"fitnessLevel" json:"fitnessLevel"`
	Preferences  Preferences        `bson:"preferences" json:"preferences"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func validFitnessLevel(l FitnessLevel) bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

func validMeasurementUnit(u MeasurementUnit) bool {
	switch u {
	case UnitMetric, UnitImperial:
		return true
	}
	return false
}

// ValidateProfile checks the mutable profile fields.
func (u *User) ValidateProfile() error {
	var problems []string
	if u.FullName == "" {
		problems = append(problems, "full name is required")
	}
	if u.Age <= 0 {
		problems = append(problems, "age must be positive")
	}
	if !validFitnessLevel(u.FitnessLevel) {
		problems = append(problems, "invalid fitness level")
	}
	if !validMeasurementUnit(u.Preferences.MeasurementUnit) {
		problems = append(problems, "invalid measurement unit")
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
