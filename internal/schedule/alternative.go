package schedule

import (
	"errors"

	"fittrack/fitness-tracker/internal/domain"
)

// alternativeTimes is the fixed pool of slots offered when a conflict is
// detected: early-morning and after-work hours.
var alternativeTimes = []string{
	"06:00", "07:00", "08:00", "09:00",
	"16:00", "17:00", "18:00", "19:00",
}

// AlternativePolicy selects which slot from the pool is proposed.
// The original behaviour was a uniform-random pick, which made conflict
// resolution non-reproducible; both policies here are deterministic.
type AlternativePolicy int

const (
	// PolicyClosest proposes the pool slot nearest in wall-clock minutes
	// to the conflicting time, preferring the earlier slot on a tie.
	PolicyClosest AlternativePolicy = iota
	// PolicyFirstAvailable proposes the first pool slot that is not the
	// conflicting time.
	PolicyFirstAvailable
)

// ErrNoAlternative is returned when the pool holds no usable slot.
var ErrNoAlternative = errors.New("no alternative time available")

// SuggestAlternative proposes a different time-of-day for a conflicting
// session, drawn from the fixed pool and never equal to conflictTime.
func SuggestAlternative(conflictTime string, policy AlternativePolicy) (string, error) {
	available := make([]string, 0, len(alternativeTimes))
	for _, t := range alternativeTimes {
		if t != conflictTime {
			available = append(available, t)
		}
	}
	if len(available) == 0 {
		return "", ErrNoAlternative
	}

	if policy == PolicyFirstAvailable {
		return available[0], nil
	}

	target, err := domain.ParseTimeOfDay(conflictTime)
	if err != nil {
		// Unparseable conflict time: fall back to the first slot rather
		// than failing the whole suggestion.
		return available[0], nil
	}

	best := available[0]
	bestDist := -1
	for _, t := range available {
		minutes, err := domain.ParseTimeOfDay(t)
		if err != nil {
			continue
		}
		dist := minutes - target
		if dist < 0 {
			dist = -dist
		}
		if bestDist == -1 || dist < bestDist {
			best = t
			bestDist = dist
		}
	}
	return best, nil
}
