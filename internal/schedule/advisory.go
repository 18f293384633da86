package schedule

import "fittrack/fitness-tracker/internal/domain"

// Training-safety advisories keyed by workout type and intensity. The
// rules are static and deterministic: the same (type, intensity) pair
// always produces the same suggestions in the same order.
const (
	adviceStrengthRecovery    = "Allow 48 hours between strength sessions for recovery"
	adviceStrengthRecoveryDay = "Consider adding a recovery day after each session"
	adviceHIITFrequency       = "Limit HIIT sessions to 2-3 times per week"
	adviceHIITSpacing         = "Space HIIT sessions at least 48 hours apart"
)

// Suggestions returns the ordered advisory list for a workout type and
// intensity. Cardio, Yoga and Recovery sessions carry no advisories.
func Suggestions(workoutType domain.WorkoutType, intensity domain.Intensity) []string {
	var suggestions []string

	if workoutType == domain.WorkoutStrength {
		suggestions = append(suggestions, adviceStrengthRecovery)
		if intensity == domain.IntensityHigh {
			suggestions = append(suggestions, adviceStrengthRecoveryDay)
		}
	}

	if workoutType == domain.WorkoutHIIT {
		suggestions = append(suggestions, adviceHIITFrequency)
		if intensity == domain.IntensityHigh {
			suggestions = append(suggestions, adviceHIITSpacing)
		}
	}

	return suggestions
}

// AggregateSuggestions collects advisories across all of an owner's
// sessions, deduplicated in first-seen order. Deduplication across
// sessions belongs here with the caller, not in Suggestions itself.
func AggregateSuggestions(sessions []domain.Session) []string {
	var aggregated []string
	seen := make(map[string]bool)
	for _, s := range sessions {
		for _, suggestion := range Suggestions(s.Type, s.Intensity) {
			if seen[suggestion] {
				continue
			}
			seen[suggestion] = true
			aggregated = append(aggregated, suggestion)
		}
	}
	return aggregated
}
