package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalHandler holds the goal service dependency.
type GoalHandler struct {
	goalService service.GoalService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// --- Request/Response Structs ---

type GoalProgressRequest struct {
	Current float64 `json:"current" binding:"required"`
	Target  float64 `json:"target" binding:"required,gt=0"`
	Unit    string  `json:"unit" binding:"required"`
}

type GoalRequest struct {
	Text       string              `json:"text" binding:"required"`
	Category   domain.GoalCategory `json:"category" binding:"required"`
	TargetDate *time.Time          `json:"targetDate"`
	Status     domain.GoalStatus   `json:"status"`
	Priority   domain.GoalPriority `json:"priority"`
	Progress   GoalProgressRequest `json:"progress" binding:"required"`
}

type UpdateProgressRequest struct {
	Current float64 `json:"current" binding:"required"`
}

type GoalResponse struct {
	ID          string              `json:"id"`
	Text        string              `json:"text"`
	Category    domain.GoalCategory `json:"category"`
	TargetDate  *time.Time          `json:"targetDate,omitempty"`
	Completed   bool                `json:"completed"`
	CompletedAt *time.Time          `json:"completedAt,omitempty"`
	Status      domain.GoalStatus   `json:"status"`
	Priority    domain.GoalPriority `json:"priority"`
	Progress    domain.GoalProgress `json:"progress"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

func (r GoalRequest) toDomain() domain.Goal {
	return domain.Goal{
		Text:       r.Text,
		Category:   r.Category,
		TargetDate: r.TargetDate,
		Status:     r.Status,
		Priority:   r.Priority,
		Progress: domain.GoalProgress{
			Current: r.Progress.Current,
			Target:  r.Progress.Target,
			Unit:    r.Progress.Unit,
		},
	}
}

// MapGoalToResponse converts a domain.Goal to GoalResponse DTO.
func MapGoalToResponse(g *domain.Goal) GoalResponse {
	if g == nil {
		return GoalResponse{}
	}
	return GoalResponse{
		ID:          g.ID.Hex(),
		Text:        g.Text,
		Category:    g.Category,
		TargetDate:  g.TargetDate,
		Completed:   g.Completed,
		CompletedAt: g.CompletedAt,
		Status:      g.Status,
		Priority:    g.Priority,
		Progress:    g.Progress,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

// respondGoalError maps goal service errors onto HTTP statuses.
func respondGoalError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid goal data",
			"errors": validationErr.Problems,
		})
	case errors.Is(err, service.ErrGoalNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// goalIDParam parses the :id path parameter.
func goalIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid goal ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

// --- Handler Methods ---

// GetGoals returns all of the user's goals.
// GET /api/v1/goals
func (h *GoalHandler) GetGoals(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	goals, err := h.goalService.ListGoals(c.Request.Context(), ownerID)
	if err != nil {
		respondGoalError(c, err)
		return
	}

	responses := make([]GoalResponse, len(goals))
	for i, g := range goals {
		responses[i] = MapGoalToResponse(&g)
	}
	c.JSON(http.StatusOK, responses)
}

// CreateGoal validates and persists a new goal.
// POST /api/v1/goals
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), ownerID, req.toDomain())
	if err != nil {
		respondGoalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapGoalToResponse(goal))
}

// UpdateGoal replaces a goal's attributes.
// PUT /api/v1/goals/:id
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	goalID, ok := goalIDParam(c)
	if !ok {
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), ownerID, goalID, req.toDomain())
	if err != nil {
		respondGoalError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapGoalToResponse(goal))
}

// UpdateProgress patches a goal's current progress value; reaching the
// target completes the goal.
// PATCH /api/v1/goals/:id/progress
func (h *GoalHandler) UpdateProgress(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	goalID, ok := goalIDParam(c)
	if !ok {
		return
	}

	var req UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	goal, err := h.goalService.UpdateProgress(c.Request.Context(), ownerID, goalID, req.Current)
	if err != nil {
		respondGoalError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapGoalToResponse(goal))
}

// DeleteGoal removes a goal.
// DELETE /api/v1/goals/:id
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	goalID, ok := goalIDParam(c)
	if !ok {
		return
	}

	if err := h.goalService.DeleteGoal(c.Request.Context(), ownerID, goalID); err != nil {
		respondGoalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully"})
}
