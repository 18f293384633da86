package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/schedule"
	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// scheduleSuggestionsFor returns the per-session advisory list.
func scheduleSuggestionsFor(s domain.Session) []string {
	return schedule.Suggestions(s.Type, s.Intensity)
}

// ScheduleHandler holds the schedule service dependency.
type ScheduleHandler struct {
	scheduleService service.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// --- Request/Response Structs ---

// SessionRequest defines the expected JSON for creating or replacing a
// schedule entry. Enum and range checks live in domain validation so the
// response can report every problem at once.
type SessionRequest struct {
	Type          domain.WorkoutType `json:"type" binding:"required"`
	Duration      int                `json:"durationMinutes" binding:"required"`
	PreferredTime string             `json:"preferredTime" binding:"required"`
	Frequency     domain.Frequency   `json:"frequency"`
	Intensity     domain.Intensity   `json:"intensity" binding:"required"`
	Equipment     domain.Equipment   `json:"equipment" binding:"required"`
	Days          []domain.Weekday   `json:"days" binding:"required"`
	Notes         string             `json:"notes"`
}

// SessionResponse is the DTO for returning schedule entries.
type SessionResponse struct {
	ID            string                    `json:"id"`
	Type          domain.WorkoutType        `json:"type"`
	Duration      int                       `json:"durationMinutes"`
	PreferredTime string                    `json:"preferredTime"`
	Frequency     domain.Frequency          `json:"frequency"`
	Intensity     domain.Intensity          `json:"intensity"`
	Equipment     domain.Equipment          `json:"equipment"`
	Days          []domain.Weekday          `json:"days"`
	Notes         string                    `json:"notes,omitempty"`
	Completed     []domain.CompletionRecord `json:"completed"`
	Suggestions   []string                  `json:"suggestions,omitempty"`
	CreatedAt     time.Time                 `json:"createdAt"`
	UpdatedAt     time.Time                 `json:"updatedAt"`
}

// ConflictResponse is one day/time collision in a 409 body.
type ConflictResponse struct {
	Day      domain.Weekday  `json:"day"`
	Time     string          `json:"time"`
	SessionA SessionResponse `json:"sessionA"`
	SessionB SessionResponse `json:"sessionB"`
}

// CompletionRequest logs one completed workout against a session.
type CompletionRequest struct {
	Date        *time.Time         `json:"date"`
	Notes       string             `json:"notes"`
	Performance domain.Performance `json:"performance"`
}

func (r SessionRequest) toDomain() domain.Session {
	return domain.Session{
		Type:          r.Type,
		Duration:      r.Duration,
		PreferredTime: r.PreferredTime,
		Frequency:     r.Frequency,
		Intensity:     r.Intensity,
		Equipment:     r.Equipment,
		Days:          r.Days,
		Notes:         r.Notes,
	}
}

// MapSessionToResponse converts a domain.Session to SessionResponse DTO.
func MapSessionToResponse(s *domain.Session) SessionResponse {
	if s == nil {
		return SessionResponse{}
	}
	completed := s.Completed
	if completed == nil {
		completed = []domain.CompletionRecord{}
	}
	return SessionResponse{
		ID:            s.ID.Hex(),
		Type:          s.Type,
		Duration:      s.Duration,
		PreferredTime: s.PreferredTime,
		Frequency:     s.Frequency,
		Intensity:     s.Intensity,
		Equipment:     s.Equipment,
		Days:          s.Days,
		Notes:         s.Notes,
		Completed:     completed,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// MapSessionsToResponse converts a slice of sessions to DTOs.
func MapSessionsToResponse(sessions []domain.Session) []SessionResponse {
	responses := make([]SessionResponse, len(sessions))
	for i, s := range sessions {
		responses[i] = MapSessionToResponse(&s)
	}
	return responses
}

// respondScheduleError maps service errors onto HTTP statuses:
// 400 validation, 404 missing, 409 conflict (with the collision list and
// a suggested alternative time), 500 otherwise.
func respondScheduleError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	var conflictErr *service.ConflictError

	switch {
	case errors.As(err, &validationErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid schedule data",
			"errors": validationErr.Problems,
		})
	case errors.As(err, &conflictErr):
		conflicts := make([]ConflictResponse, len(conflictErr.Conflicts))
		for i, conflict := range conflictErr.Conflicts {
			conflicts[i] = ConflictResponse{
				Day:      conflict.Day,
				Time:     conflict.Time,
				SessionA: MapSessionToResponse(&conflict.SessionA),
				SessionB: MapSessionToResponse(&conflict.SessionB),
			}
		}
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error":         "Scheduling conflict detected",
			"conflicts":     conflicts,
			"suggestedTime": conflictErr.AlternativeTime,
		})
	case errors.Is(err, service.ErrSessionNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// sessionIDParam parses the :id path parameter.
func sessionIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

// --- Handler Methods ---

// GetSchedule returns all of the user's schedule entries, each annotated
// with its per-session training advisories.
// GET /api/v1/schedule
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	sessions, err := h.scheduleService.ListSessions(c.Request.Context(), ownerID)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	responses := MapSessionsToResponse(sessions)
	for i := range sessions {
		responses[i].Suggestions = scheduleSuggestionsFor(sessions[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetSession returns a single schedule entry.
// GET /api/v1/schedule/:id
func (h *ScheduleHandler) GetSession(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	session, err := h.scheduleService.GetSession(c.Request.Context(), ownerID, sessionID)
	if err != nil {
		respondScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

// CreateSession validates, conflict-checks, and persists a new entry.
// A collision blocks creation and returns 409 with the conflict records.
// POST /api/v1/schedule
func (h *ScheduleHandler) CreateSession(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	session, err := h.scheduleService.CreateSession(c.Request.Context(), ownerID, req.toDomain())
	if err != nil {
		respondScheduleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapSessionToResponse(session))
}

// UpdateSession replaces a schedule entry's attributes. The entry being
// updated is excluded from the conflict check so it cannot collide with
// its own previous time slot.
// PUT /api/v1/schedule/:id
func (h *ScheduleHandler) UpdateSession(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	session, err := h.scheduleService.UpdateSession(c.Request.Context(), ownerID, sessionID, req.toDomain())
	if err != nil {
		respondScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

// DeleteSession removes a schedule entry.
// DELETE /api/v1/schedule/:id
func (h *ScheduleHandler) DeleteSession(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	if err := h.scheduleService.DeleteSession(c.Request.Context(), ownerID, sessionID); err != nil {
		respondScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule item deleted successfully"})
}

// LogCompletion appends a completion record to a session's log. No
// conflict re-check happens on this path.
// POST /api/v1/schedule/:id/completions
func (h *ScheduleHandler) LogCompletion(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	var req CompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	rec := domain.CompletionRecord{
		Date:        time.Now().UTC(),
		Notes:       req.Notes,
		Performance: req.Performance,
	}
	if req.Date != nil {
		rec.Date = *req.Date
	}

	session, err := h.scheduleService.LogCompletion(c.Request.Context(), ownerID, sessionID, rec)
	if err != nil {
		respondScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

// GetAdvice returns the deduplicated training advisories across all of
// the user's sessions.
// GET /api/v1/schedule/advice
func (h *ScheduleHandler) GetAdvice(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	suggestions, err := h.scheduleService.Advice(c.Request.Context(), ownerID)
	if err != nil {
		respondScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// GetStats returns the user's workout statistics summary.
// GET /api/v1/schedule/stats/summary
func (h *ScheduleHandler) GetStats(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	stats, err := h.scheduleService.Stats(c.Request.Context(), ownerID)
	if err != nil {
		respondScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
