package domain

// TypeCount is the number of scheduled sessions of one workout type.
type TypeCount struct {
	Type  WorkoutType `bson:"_id" json:"type"`
	Count int         `bson:"count" json:"count"`
}

// TypeCompletionRate is the completion percentage for one workout type.
type TypeCompletionRate struct {
	Type           WorkoutType `bson:"_id" json:"type"`
	CompletionRate float64     `bson:"completionRate" json:"completionRate"`
}

// WorkoutStats summarises an owner's schedule and completion history.
type WorkoutStats struct {
	WorkoutsByType         []TypeCount          `json:"workoutsByType"`
	TotalCompletedSessions int                  `json:"totalCompletedSessions"`
	CompletionRates        []TypeCompletionRate `json:"completionRates"`
}
