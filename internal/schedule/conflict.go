// Package schedule contains the pure scheduling logic of the application:
// conflict detection between recurring weekly sessions, training-safety
// advisories, and alternative-time suggestions. Nothing here performs I/O
// or holds state; all functions operate on read-only copies of sessions.
package schedule

import (
	"fittrack/fitness-tracker/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conflict records a single day/time collision between two sessions of
// the same owner. A pair sharing several days yields one Conflict per
// shared day.
type Conflict struct {
	Day      domain.Weekday `json:"day"`
	Time     string         `json:"time"`
	SessionA domain.Session `json:"sessionA"`
	SessionB domain.Session `json:"sessionB"`
}

// commonDays returns the days present in both sessions, in a's day order.
func commonDays(a, b domain.Session) []domain.Weekday {
	inB := make(map[domain.Weekday]bool, len(b.Days))
	for _, d := range b.Days {
		inB[d] = true
	}
	var common []domain.Weekday
	for _, d := range a.Days {
		if inB[d] {
			common = append(common, d)
		}
	}
	return common
}

// collide appends one conflict record per day shared by a and b when their
// preferred times match exactly. Duration is deliberately not considered:
// only two sessions starting at the same minute on the same weekday count
// as a conflict.
func collide(conflicts []Conflict, a, b domain.Session) []Conflict {
	if a.PreferredTime != b.PreferredTime {
		return conflicts
	}
	for _, day := range commonDays(a, b) {
		conflicts = append(conflicts, Conflict{
			Day:      day,
			Time:     a.PreferredTime,
			SessionA: a,
			SessionB: b,
		})
	}
	return conflicts
}

// CheckCandidate compares a candidate session against the owner's existing
// sessions and returns every collision, in the iteration order of existing.
// excludeID names the session being replaced during an update so that a
// session cannot conflict with its own pre-update state; pass
// primitive.NilObjectID for create operations.
func CheckCandidate(existing []domain.Session, candidate domain.Session, excludeID primitive.ObjectID) []Conflict {
	var conflicts []Conflict
	for _, s := range existing {
		if excludeID != primitive.NilObjectID && s.ID == excludeID {
			continue
		}
		if s.ID != primitive.NilObjectID && s.ID == candidate.ID {
			continue
		}
		conflicts = collide(conflicts, s, candidate)
	}
	return conflicts
}

// FindConflicts runs an all-pairs check over a full session set and returns
// one record per colliding pair per shared day, ordered by the insertion
// order of sessions with the outer index preceding the inner index. O(n²),
// which is fine for the few dozen weekly sessions a single owner holds.
func FindConflicts(sessions []domain.Session) []Conflict {
	var conflicts []Conflict
	for i := 0; i < len(sessions); i++ {
		for j := i + 1; j < len(sessions); j++ {
			conflicts = collide(conflicts, sessions[i], sessions[j])
		}
	}
	return conflicts
}
