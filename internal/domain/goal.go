package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalCategory classifies a fitness goal.
type GoalCategory string

const (
	GoalStrength    GoalCategory = "Strength"
	GoalCardio      GoalCategory = "Cardio"
	GoalNutrition   GoalCategory = "Nutrition"
	GoalFlexibility GoalCategory = "Flexibility"
)

// GoalStatus tracks a goal through its lifecycle.
type GoalStatus string

const (
	GoalNotStarted GoalStatus = "Not Started"
	GoalInProgress GoalStatus = "In Progress"
	GoalCompleted  GoalStatus = "Completed"
	GoalArchived   GoalStatus = "Archived"
)

// GoalPriority orders goals for display.
type GoalPriority string

const (
	PriorityLow    GoalPriority = "Low"
	PriorityMedium GoalPriority = "Medium"
	PriorityHigh   GoalPriority = "High"
)

// GoalProgress tracks measurable progress toward a goal target.
type GoalProgress struct {
	Current float64 `bson:"current" json:"current"`
	Target  float64 `bson:"target" json:"target"`
	Unit    string  `bson:"unit" json:"unit"`
}

// Reminder is a scheduled nudge attached to a goal.
type Reminder struct {
	Date    time.Time `bson:"date" json:"date"`
	Message string    `bson:"message,omitempty" json:"message,omitempty"`
	IsRead  bool      `bson:"isRead" json:"isRead"`
}

// Goal is a user-defined fitness objective with measurable progress.
type Goal struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID `bson:"userId" json:"ownerId"`
	Text        string             `bson:"text" json:"text"`
	Category    GoalCategory       `bson:"category" json:"category"`
	TargetDate  *time.Time         `bson:"targetDate,omitempty" json:"targetDate,omitempty"`
	Completed   bool               `bson:"completed" json:"completed"`
	CompletedAt *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	Status      GoalStatus         `bson:"status" json:"status"`
	Priority    GoalPriority       `bson:"priority" json:"priority"`
	Progress    GoalProgress       `bson:"progress" json:"progress"`
	Reminders   []Reminder         `bson:"reminders,omitempty" json:"reminders,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func validGoalCategory(c GoalCategory) bool {
	switch c {
	case GoalStrength, GoalCardio, GoalNutrition, GoalFlexibility:
		return true
	}
	return false
}

func validGoalStatus(s GoalStatus) bool {
	switch s {
	case GoalNotStarted, GoalInProgress, GoalCompleted, GoalArchived:
		return true
	}
	return false
}

func validGoalPriority(p GoalPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Validate checks goal invariants and returns a *ValidationError listing
// every violation, or nil if the goal is valid.
func (g *Goal) Validate() error {
	var problems []string
	if g.Text == "" {
		problems = append(problems, "goal text is required")
	}
	if !validGoalCategory(g.Category) {
		problems = append(problems, fmt.Sprintf("invalid category %q", g.Category))
	}
	if g.Status != "" && !validGoalStatus(g.Status) {
		problems = append(problems, fmt.Sprintf("invalid status %q", g.Status))
	}
	if g.Priority != "" && !validGoalPriority(g.Priority) {
		problems = append(problems, fmt.Sprintf("invalid priority %q", g.Priority))
	}
	if g.Progress.Target <= 0 {
		problems = append(problems, "progress target must be positive")
	}
	if g.Progress.Unit == "" {
		problems = append(problems, "progress unit is required")
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// ApplyProgress sets the current progress value and, when the target is
// reached, marks the goal completed.
func (g *Goal) ApplyProgress(current float64, now time.Time) {
	g.Progress.Current = current
	if g.Progress.Current >= g.Progress.Target {
		g.Completed = true
		g.Status = GoalCompleted
		completedAt := now
		g.CompletedAt = &completedAt
	}
}
