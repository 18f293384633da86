package schedule

import (
	"testing"

	"fittrack/fitness-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func makeSession(t *testing.T, timeOfDay string, days ...domain.Weekday) domain.Session {
	t.Helper()
	return domain.Session{
		ID:            primitive.NewObjectID(),
		Type:          domain.WorkoutStrength,
		Duration:      60,
		PreferredTime: timeOfDay,
		Intensity:     domain.IntensityMedium,
		Equipment:     domain.EquipmentMinimal,
		Days:          days,
	}
}

func TestCheckCandidate_DisjointDaysNeverConflict(t *testing.T) {
	existing := []domain.Session{
		makeSession(t, "09:00", domain.Monday, domain.Wednesday),
	}
	candidate := makeSession(t, "09:00", domain.Tuesday, domain.Thursday)

	conflicts := CheckCandidate(existing, candidate, primitive.NilObjectID)
	assert.Empty(t, conflicts)
}

func TestCheckCandidate_SharedDaySameTime(t *testing.T) {
	s1 := makeSession(t, "09:00", domain.Monday, domain.Wednesday)
	s1.Type = domain.WorkoutStrength
	s2 := makeSession(t, "09:00", domain.Wednesday, domain.Friday)
	s2.Type = domain.WorkoutCardio

	conflicts := CheckCandidate([]domain.Session{s1}, s2, primitive.NilObjectID)

	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.Wednesday, conflicts[0].Day)
	assert.Equal(t, "09:00", conflicts[0].Time)
	assert.Equal(t, s1.ID, conflicts[0].SessionA.ID)
	assert.Equal(t, s2.ID, conflicts[0].SessionB.ID)
}

func TestCheckCandidate_OneRecordPerSharedDay(t *testing.T) {
	s1 := makeSession(t, "07:00", domain.Monday, domain.Wednesday, domain.Friday)
	s2 := makeSession(t, "07:00", domain.Monday, domain.Wednesday, domain.Saturday)

	conflicts := CheckCandidate([]domain.Session{s1}, s2, primitive.NilObjectID)

	require.Len(t, conflicts, 2)
	assert.Equal(t, domain.Monday, conflicts[0].Day)
	assert.Equal(t, domain.Wednesday, conflicts[1].Day)
}

// Two sessions on the same day at different start times never conflict,
// even when their durations overlap: the rule compares start times only.
func TestCheckCandidate_DifferentTimeSameDayDoesNotConflict(t *testing.T) {
	s1 := makeSession(t, "09:00", domain.Monday)
	s1.Duration = 180
	s2 := makeSession(t, "10:00", domain.Monday)

	conflicts := CheckCandidate([]domain.Session{s1}, s2, primitive.NilObjectID)
	assert.Empty(t, conflicts)
}

func TestCheckCandidate_ExcludeIDSkipsPreUpdateSelf(t *testing.T) {
	s1 := makeSession(t, "09:00", domain.Monday)

	// Updating s1 without changing its slot: the stored copy must not be
	// treated as a collision with the incoming version of itself.
	updated := s1
	updated.Notes = "lighter weights this week"

	conflicts := CheckCandidate([]domain.Session{s1}, updated, s1.ID)
	assert.Empty(t, conflicts)

	// Without the exclusion the same comparison does collide.
	updated.ID = primitive.NewObjectID()
	conflicts = CheckCandidate([]domain.Session{s1}, updated, primitive.NilObjectID)
	assert.Len(t, conflicts, 1)
}

func TestCheckCandidate_IterationOrderFollowsExisting(t *testing.T) {
	s1 := makeSession(t, "18:00", domain.Tuesday)
	s2 := makeSession(t, "18:00", domain.Thursday)
	s3 := makeSession(t, "18:00", domain.Tuesday, domain.Thursday)

	conflicts := CheckCandidate([]domain.Session{s1, s2}, s3, primitive.NilObjectID)

	require.Len(t, conflicts, 2)
	assert.Equal(t, s1.ID, conflicts[0].SessionA.ID)
	assert.Equal(t, s2.ID, conflicts[1].SessionA.ID)
}

func TestFindConflicts_AllPairsOrderedOuterBeforeInner(t *testing.T) {
	s1 := makeSession(t, "06:00", domain.Monday)
	s2 := makeSession(t, "06:00", domain.Monday)
	s3 := makeSession(t, "06:00", domain.Monday)

	conflicts := FindConflicts([]domain.Session{s1, s2, s3})

	// One record per unordered pair: (s1,s2), (s1,s3), (s2,s3).
	require.Len(t, conflicts, 3)
	assert.Equal(t, s1.ID, conflicts[0].SessionA.ID)
	assert.Equal(t, s2.ID, conflicts[0].SessionB.ID)
	assert.Equal(t, s1.ID, conflicts[1].SessionA.ID)
	assert.Equal(t, s3.ID, conflicts[1].SessionB.ID)
	assert.Equal(t, s2.ID, conflicts[2].SessionA.ID)
	assert.Equal(t, s3.ID, conflicts[2].SessionB.ID)
}

func TestFindConflicts_NoDuplicateMirroredRecords(t *testing.T) {
	s1 := makeSession(t, "16:00", domain.Sunday)
	s2 := makeSession(t, "16:00", domain.Sunday)

	conflicts := FindConflicts([]domain.Session{s1, s2})
	assert.Len(t, conflicts, 1)
}

func TestFindConflicts_EmptyAndSingle(t *testing.T) {
	assert.Empty(t, FindConflicts(nil))
	assert.Empty(t, FindConflicts([]domain.Session{makeSession(t, "08:00", domain.Friday)}))
}
