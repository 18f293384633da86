package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
	"fittrack/fitness-tracker/internal/schedule"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrSessionNotFound = errors.New("session not found")
)

// ConflictError reports the collisions that blocked a create or update,
// along with a proposed alternative time drawn from the fixed slot pool.
// Conflicts are data, not panics: the caller chooses whether to block,
// warn, or re-propose a time.
type ConflictError struct {
	Conflicts       []schedule.Conflict
	AlternativeTime string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("scheduling conflict detected (%d collision(s))", len(e.Conflicts))
}

// ScheduleService owns the workout-schedule lifecycle: validation,
// conflict detection, persistence, completion logging, advisories, and
// stats. Create and update are serialized per owner so that two
// concurrent writes cannot both pass the conflict check; the unique
// (user, days, preferredTime) index backs this up at the storage layer.
type ScheduleService interface {
	ListSessions(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Session, error)
	GetSession(ctx context.Context, ownerID, sessionID primitive.ObjectID) (*domain.Session, error)
	CreateSession(ctx context.Context, ownerID primitive.ObjectID, candidate domain.Session) (*domain.Session, error)
	UpdateSession(ctx context.Context, ownerID, sessionID primitive.ObjectID, candidate domain.Session) (*domain.Session, error)
	DeleteSession(ctx context.Context, ownerID, sessionID primitive.ObjectID) error
	LogCompletion(ctx context.Context, ownerID, sessionID primitive.ObjectID, rec domain.CompletionRecord) (*domain.Session, error)
	Advice(ctx context.Context, ownerID primitive.ObjectID) ([]string, error)
	Stats(ctx context.Context, ownerID primitive.ObjectID) (*domain.WorkoutStats, error)
}

type scheduleService struct {
	sessionRepo repository.SessionRepository
	policy      schedule.AlternativePolicy

	mu     sync.Mutex
	owners map[primitive.ObjectID]*sync.Mutex
}

// NewScheduleService creates a new instance of scheduleService. policy
// selects how alternative times are proposed on conflict.
func NewScheduleService(sessionRepo repository.SessionRepository, policy schedule.AlternativePolicy) ScheduleService {
	return &scheduleService{
		sessionRepo: sessionRepo,
		policy:      policy,
		owners:      make(map[primitive.ObjectID]*sync.Mutex),
	}
}

// ownerLock returns the serialization point for one owner's writes.
func (s *scheduleService) ownerLock(ownerID primitive.ObjectID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.owners[ownerID]
	if !ok {
		lock = &sync.Mutex{}
		s.owners[ownerID] = lock
	}
	return lock
}

// conflictError builds the ConflictError surfaced to callers, including
// the suggested alternative slot for the first collision.
func (s *scheduleService) conflictError(conflicts []schedule.Conflict) *ConflictError {
	if len(conflicts) == 0 {
		// Duplicate surfaced by the index without a matching in-memory
		// collision: report the conflict without records.
		return &ConflictError{Conflicts: []schedule.Conflict{}}
	}
	alternative, err := schedule.SuggestAlternative(conflicts[0].Time, s.policy)
	if err != nil {
		alternative = ""
	}
	return &ConflictError{
		Conflicts:       conflicts,
		AlternativeTime: alternative,
	}
}

// ListSessions returns all sessions of one owner.
func (s *scheduleService) ListSessions(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Session, error) {
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID cannot be nil")
	}
	return s.sessionRepo.ListByOwner(ctx, ownerID)
}

// GetSession returns a single session, scoped to its owner.
func (s *scheduleService) GetSession(ctx context.Context, ownerID, sessionID primitive.ObjectID) (*domain.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// CreateSession validates the candidate, checks it against the owner's
// existing sessions, and persists it when clear. A detected collision is
// returned as a *ConflictError carrying one record per shared day.
func (s *scheduleService) CreateSession(ctx context.Context, ownerID primitive.ObjectID, candidate domain.Session) (*domain.Session, error) {
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID cannot be nil")
	}
	candidate.ID = primitive.NilObjectID
	candidate.OwnerID = ownerID
	if candidate.Frequency == "" {
		candidate.Frequency = domain.FrequencyWeekly
	}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	lock := s.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.sessionRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if conflicts := schedule.CheckCandidate(existing, candidate, primitive.NilObjectID); len(conflicts) > 0 {
		return nil, s.conflictError(conflicts)
	}

	sessionID, err := s.sessionRepo.Create(ctx, &candidate)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost a race the mutex could not cover (e.g. multiple
			// replicas); the unique index caught it.
			log.WithField("owner", ownerID.Hex()).Warn("conflict caught by storage index")
			return nil, s.conflictError(schedule.CheckCandidate(existing, candidate, primitive.NilObjectID))
		}
		return nil, err
	}
	candidate.ID = sessionID
	return &candidate, nil
}

// UpdateSession replaces a session's attributes after re-running the
// conflict check with the session's own id excluded, so it cannot
// conflict with its pre-update self.
func (s *scheduleService) UpdateSession(ctx context.Context, ownerID, sessionID primitive.ObjectID, candidate domain.Session) (*domain.Session, error) {
	current, err := s.sessionRepo.GetByID(ctx, sessionID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	candidate.ID = sessionID
	candidate.OwnerID = ownerID
	candidate.Completed = current.Completed
	candidate.CreatedAt = current.CreatedAt
	if candidate.Frequency == "" {
		candidate.Frequency = current.Frequency
	}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	lock := s.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.sessionRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if conflicts := schedule.CheckCandidate(existing, candidate, sessionID); len(conflicts) > 0 {
		return nil, s.conflictError(conflicts)
	}

	if err := s.sessionRepo.Update(ctx, &candidate); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		if errors.Is(err, repository.ErrDuplicate) {
			log.WithField("owner", ownerID.Hex()).Warn("conflict caught by storage index")
			return nil, s.conflictError(schedule.CheckCandidate(existing, candidate, sessionID))
		}
		return nil, err
	}
	return s.GetSession(ctx, ownerID, sessionID)
}

// DeleteSession removes a session owned by ownerID.
func (s *scheduleService) DeleteSession(ctx context.Context, ownerID, sessionID primitive.ObjectID) error {
	err := s.sessionRepo.Delete(ctx, sessionID, ownerID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSessionNotFound
	}
	return err
}

// LogCompletion appends one record to a session's completion log. This
// path deliberately performs no conflict re-check: logging that a workout
// happened never changes when it is scheduled.
func (s *scheduleService) LogCompletion(ctx context.Context, ownerID, sessionID primitive.ObjectID, rec domain.CompletionRecord) (*domain.Session, error) {
	if err := domain.ValidateCompletion(rec); err != nil {
		return nil, err
	}
	session, err := s.sessionRepo.AppendCompletion(ctx, sessionID, ownerID, rec)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// Advice aggregates training-safety advisories across the owner's
// sessions, deduplicated in first-seen order.
func (s *scheduleService) Advice(ctx context.Context, ownerID primitive.ObjectID) ([]string, error) {
	sessions, err := s.sessionRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	suggestions := schedule.AggregateSuggestions(sessions)
	if suggestions == nil {
		suggestions = []string{}
	}
	return suggestions, nil
}

// Stats returns the owner's schedule summary.
func (s *scheduleService) Stats(ctx context.Context, ownerID primitive.ObjectID) (*domain.WorkoutStats, error) {
	return s.sessionRepo.StatsByOwner(ctx, ownerID)
}
