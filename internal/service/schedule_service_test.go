package service

import (
	"context"
	"testing"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
	"fittrack/fitness-tracker/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeSessionRepo is an in-memory SessionRepository for service tests.
type fakeSessionRepo struct {
	sessions []domain.Session

	// When set, the next Create returns repository.ErrDuplicate, emulating
	// the unique index catching a write race.
	failNextCreateWithDuplicate bool
}

func (f *fakeSessionRepo) Create(_ context.Context, session *domain.Session) (primitive.ObjectID, error) {
	if f.failNextCreateWithDuplicate {
		f.failNextCreateWithDuplicate = false
		return primitive.NilObjectID, repository.ErrDuplicate
	}
	session.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now
	if session.Completed == nil {
		session.Completed = []domain.CompletionRecord{}
	}
	f.sessions = append(f.sessions, *session)
	return session.ID, nil
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id, ownerID primitive.ObjectID) (*domain.Session, error) {
	for _, s := range f.sessions {
		if s.ID == id && s.OwnerID == ownerID {
			copied := s
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeSessionRepo) ListByOwner(_ context.Context, ownerID primitive.ObjectID) ([]domain.Session, error) {
	var result []domain.Session
	for _, s := range f.sessions {
		if s.OwnerID == ownerID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (f *fakeSessionRepo) Update(_ context.Context, session *domain.Session) error {
	for i, s := range f.sessions {
		if s.ID == session.ID && s.OwnerID == session.OwnerID {
			updated := *session
			updated.Completed = s.Completed
			updated.CreatedAt = s.CreatedAt
			updated.UpdatedAt = time.Now().UTC()
			f.sessions[i] = updated
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeSessionRepo) Delete(_ context.Context, id, ownerID primitive.ObjectID) error {
	for i, s := range f.sessions {
		if s.ID == id && s.OwnerID == ownerID {
			f.sessions = append(f.sessions[:i], f.sessions[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeSessionRepo) AppendCompletion(_ context.Context, id, ownerID primitive.ObjectID, rec domain.CompletionRecord) (*domain.Session, error) {
	for i, s := range f.sessions {
		if s.ID == id && s.OwnerID == ownerID {
			f.sessions[i].Completed = append(f.sessions[i].Completed, rec)
			copied := f.sessions[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeSessionRepo) StatsByOwner(_ context.Context, ownerID primitive.ObjectID) (*domain.WorkoutStats, error) {
	stats := &domain.WorkoutStats{
		WorkoutsByType:  []domain.TypeCount{},
		CompletionRates: []domain.TypeCompletionRate{},
	}
	counts := make(map[domain.WorkoutType]int)
	for _, s := range f.sessions {
		if s.OwnerID != ownerID {
			continue
		}
		counts[s.Type]++
		stats.TotalCompletedSessions += len(s.Completed)
	}
	for workoutType, count := range counts {
		stats.WorkoutsByType = append(stats.WorkoutsByType, domain.TypeCount{Type: workoutType, Count: count})
	}
	return stats, nil
}

func newTestScheduleService() (ScheduleService, *fakeSessionRepo) {
	repo := &fakeSessionRepo{}
	return NewScheduleService(repo, schedule.PolicyClosest), repo
}

func strengthSession(timeOfDay string, days ...domain.Weekday) domain.Session {
	return domain.Session{
		Type:          domain.WorkoutStrength,
		Duration:      60,
		PreferredTime: timeOfDay,
		Intensity:     domain.IntensityMedium,
		Equipment:     domain.EquipmentMinimal,
		Days:          days,
	}
}

func TestCreateSession_RoundTrip(t *testing.T) {
	svc, _ := newTestScheduleService()
	ownerID := primitive.NewObjectID()
	ctx := context.Background()

	created, err := svc.CreateSession(ctx, ownerID, strengthSession("09:00", domain.Monday, domain.Wednesday))
	require.NoError(t, err)
	require.NotEqual(t, primitive.NilObjectID, created.ID)
	assert.Equal(t, domain.FrequencyWeekly, created.Frequency) // default applied

	listed, err := svc.ListSessions(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
	assert.Equal(t, created.Type, listed[0].Type)
	assert.Equal(t, created.PreferredTime, listed[0].PreferredTime)
	assert.Equal(t, created.Days, listed[0].Days)
	assert.Equal(t, created.Duration, listed[0].Duration)
}

func TestCreateSession_ValidationError(t *testing.T) {
	svc, _ := newTestScheduleService()

	_, err := svc.CreateSession(context.Background(), primitive.NewObjectID(), strengthSession("09:00"))
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "at least one day")
}

func TestCreateSession_ConflictBlocksAndSuggestsAlternative(t *testing.T) {
	svc, _ := newTestScheduleService()
	ownerID := primitive.NewObjectID()
	ctx := context.Background()

	s1, err := svc.CreateSession(ctx, ownerID, strengthSession("09:00", domain.Monday, domain.Wednesday))
	require.NoError(t, err)

	candidate := strengthSession("09:00", domain.Wednesday, domain.Friday)
	candidate.Type = domain.WorkoutCardio
	_, err = svc.CreateSession(ctx, ownerID, candidate)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, domain.Wednesday, conflictErr.Conflicts[0].Day)
	assert.Equal(t, "09:00", conflictErr.Conflicts[0].Time)
	assert.Equal(t, s1.ID, conflictErr.Conflicts[0].SessionA.ID)
	assert.Equal(t, domain.WorkoutCardio, conflictErr.Conflicts[0].SessionB.Type)
	assert.Equal(t, "08:00", conflictErr.AlternativeTime)

	// The conflicting candidate was not persisted.
	listed, err := svc.ListSessions(ctx, ownerID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestCreateSession_DifferentTimeSameDayAllowed(t *testing.T) {
	svc, _ := newTestScheduleService()
	ownerID := primitive.NewObjectID()
	ctx := context.Background()

	_, err := svc.CreateSession(ctx, ownerID, strengthSession("09:00", domain.Monday))
	require.NoError(t, err)

	_, err = svc.CreateSession(ctx, ownerID, strengthSession("10:00", domain.Monday))
	require.NoError(t, err)
}

func TestCreateSession_OtherOwnersDoNotConflict(t *testing.T) {
	svc, _ := newTestScheduleService()
	ctx := context.Background()

	_, err := svc.CreateSession(ctx, primitive.NewObjectID(), strengthSession("09:00", domain.Monday))
	require.NoError(t, err)

	_, err = svc.CreateSession(ctx, primitive.NewObjectID(), strengthSession("09:00", domain.Monday))
	require.NoError(t, err)
}

func TestCreateSession_StorageDuplicateMapsToConflict(t *testing.T) {
	svc, repo := newTestScheduleService()
	repo.failNextCreateWithDuplicate = true

	_, err := svc.CreateSession(context.Background(), primitive.NewObjectID(), strengthSession("09:00", domain.Monday))
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
}

func TestUpdateSession_DoesNotConflictWithItself(t *testing.T) {
	svc, _ := newTestScheduleService()
	ownerID := primitive.NewObjectID()
	ctx := context.Background()

	created, err := svc.CreateSession(ctx, ownerID, strengthSession("09:00", domain.Monday))
	require.NoError(t, err)

	// Same slot, new notes: must not collide with its pre-update self.
	updated := strengthSession("09:00", domain.Monday)
	updated.Notes = "add accessory work"
	result, err := svc.UpdateSession(ctx, ownerID, created.ID, updated)
	require.NoError(t, err)
	assert.Equal(t, "add accessory work", result.Notes)
}

func TestUpdateSession_ConflictWithOtherSession(t *testing.T) {
	svc, _ := newTestScheduleService()
	ownerID := primitive.NewObjectID()
	ctx := context.Background()

	_, err := svc.CreateSession(ctx, ownerID, strengthSession("09:00", domain.Monday))
	require.NoError(t, err)
	second, err := svc.CreateSession(ctx, ownerID, strengthSession("10:00", domain.Monday))
	require.NoError(t, err)

	_, err = svc.UpdateSession(ctx, ownerID, second.ID, strengthSession("09:00", domain.Monday))
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
}

func TestUpdateSession_NotFound(t *testing.T) {
	svc, _ := newTestScheduleService()

	_, err := svc.UpdateSession(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), strengthSession("09:00", domain.Monday))
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestUpdateSession_PreservesCompletionLog(t *testing.T) {
	svc, _ := newTestScheduleService()
	ownerID := primitive.NewObjectID()
	ctx := context.Background()

	created, err := svc.CreateSession(ctx, ownerID, strengthSession("09:00", domain.Monday))
	require.NoError(t, err)

	_, err = svc.LogCompletion(ctx, ownerID, created.ID, domain.CompletionRecord{
		Date:        time.Now().UTC(),
		Performance: domain.PerformanceGood,
	})
	require.NoError(t, err)

	result, err := svc.UpdateSession(ctx, ownerID, created.ID, strengthSession("10:00", domain.Monday))
	require.NoError(t, err)
	assert.Len(t, result.Completed, 1)
}

func TestDeleteSession(t *testing.T) {
	svc, _ := newTestScheduleService()
	ownerID := primitive.NewObjectID()
	ctx := context.Background()

	created, err := svc.CreateSession(ctx, ownerID, strengthSession("09:00", domain.Monday))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSession(ctx, ownerID, created.ID))
	assert.ErrorIs(t, svc.DeleteSession(ctx, ownerID, created.ID), ErrSessionNotFound)
}

func TestLogCompletion(t *testing.T) {
	svc, _ := newTestScheduleService()
	ownerID := primitive.NewObjectID()
	ctx := context.Background()

	created, err := svc.CreateSession(ctx, ownerID, strengthSession("09:00", domain.Monday))
	require.NoError(t, err)

	session, err := svc.LogCompletion(ctx, ownerID, created.ID, domain.CompletionRecord{
		Date:        time.Now().UTC(),
		Notes:       "felt strong",
		Performance: domain.PerformanceExcellent,
	})
	require.NoError(t, err)
	require.Len(t, session.Completed, 1)
	assert.Equal(t, domain.PerformanceExcellent, session.Completed[0].Performance)

	// Invalid performance rating is rejected before touching storage.
	_, err = svc.LogCompletion(ctx, ownerID, created.ID, domain.CompletionRecord{
		Date:        time.Now().UTC(),
		Performance: "heroic",
	})
	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.LogCompletion(ctx, ownerID, primitive.NewObjectID(), domain.CompletionRecord{Date: time.Now().UTC()})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAdvice_AggregatesAndDedupes(t *testing.T) {
	svc, _ := newTestScheduleService()
	ownerID := primitive.NewObjectID()
	ctx := context.Background()

	s1 := strengthSession("07:00", domain.Monday)
	s1.Intensity = domain.IntensityHigh
	_, err := svc.CreateSession(ctx, ownerID, s1)
	require.NoError(t, err)

	s2 := strengthSession("08:00", domain.Tuesday)
	_, err = svc.CreateSession(ctx, ownerID, s2)
	require.NoError(t, err)

	advice, err := svc.Advice(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Allow 48 hours between strength sessions for recovery",
		"Consider adding a recovery day after each session",
	}, advice)
}

func TestAdvice_EmptySchedule(t *testing.T) {
	svc, _ := newTestScheduleService()

	advice, err := svc.Advice(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.NotNil(t, advice)
	assert.Empty(t, advice)
}

func TestStats(t *testing.T) {
	svc, _ := newTestScheduleService()
	ownerID := primitive.NewObjectID()
	ctx := context.Background()

	created, err := svc.CreateSession(ctx, ownerID, strengthSession("09:00", domain.Monday))
	require.NoError(t, err)
	_, err = svc.LogCompletion(ctx, ownerID, created.ID, domain.CompletionRecord{Date: time.Now().UTC()})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalCompletedSessions)
	require.Len(t, stats.WorkoutsByType, 1)
	assert.Equal(t, domain.WorkoutStrength, stats.WorkoutsByType[0].Type)
}
