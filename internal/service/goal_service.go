package service

import (
	"context"
	"errors"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrGoalNotFound = errors.New("goal not found")
)

// GoalService manages fitness goals and their progress.
type GoalService interface {
	ListGoals(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Goal, error)
	CreateGoal(ctx context.Context, ownerID primitive.ObjectID, goal domain.Goal) (*domain.Goal, error)
	UpdateGoal(ctx context.Context, ownerID, goalID primitive.ObjectID, goal domain.Goal) (*domain.Goal, error)
	UpdateProgress(ctx context.Context, ownerID, goalID primitive.ObjectID, current float64) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, ownerID, goalID primitive.ObjectID) error
}

type goalService struct {
	goalRepo repository.GoalRepository
}

// NewGoalService creates a new instance of goalService.
func NewGoalService(goalRepo repository.GoalRepository) GoalService {
	return &goalService{goalRepo: goalRepo}
}

// ListGoals returns all goals of one owner.
func (s *goalService) ListGoals(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Goal, error) {
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID cannot be nil")
	}
	return s.goalRepo.ListByOwner(ctx, ownerID)
}

// CreateGoal validates and persists a new goal.
func (s *goalService) CreateGoal(ctx context.Context, ownerID primitive.ObjectID, goal domain.Goal) (*domain.Goal, error) {
	goal.ID = primitive.NilObjectID
	goal.OwnerID = ownerID
	if goal.Status == "" {
		goal.Status = domain.GoalNotStarted
	}
	if goal.Priority == "" {
		goal.Priority = domain.PriorityMedium
	}
	if err := goal.Validate(); err != nil {
		return nil, err
	}

	goalID, err := s.goalRepo.Create(ctx, &goal)
	if err != nil {
		return nil, err
	}
	goal.ID = goalID
	return &goal, nil
}

// UpdateGoal replaces the mutable fields of an existing goal.
func (s *goalService) UpdateGoal(ctx context.Context, ownerID, goalID primitive.ObjectID, goal domain.Goal) (*domain.Goal, error) {
	current, err := s.goalRepo.GetByID(ctx, goalID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}

	goal.ID = goalID
	goal.OwnerID = ownerID
	goal.CreatedAt = current.CreatedAt
	if goal.Status == "" {
		goal.Status = current.Status
	}
	if goal.Priority == "" {
		goal.Priority = current.Priority
	}
	if err := goal.Validate(); err != nil {
		return nil, err
	}

	if err := s.goalRepo.Update(ctx, &goal); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return &goal, nil
}

// UpdateProgress sets the current progress value; reaching the target
// marks the goal completed with a completion timestamp.
func (s *goalService) UpdateProgress(ctx context.Context, ownerID, goalID primitive.ObjectID, current float64) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, goalID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}

	goal.ApplyProgress(current, time.Now().UTC())

	if err := s.goalRepo.Update(ctx, goal); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}

// DeleteGoal removes a goal owned by ownerID.
func (s *goalService) DeleteGoal(ctx context.Context, ownerID, goalID primitive.ObjectID) error {
	err := s.goalRepo.Delete(ctx, goalID, ownerID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrGoalNotFound
	}
	return err
}
