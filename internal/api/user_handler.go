package api

import (
	"errors"
	"fmt"
	"net/http"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler holds the user service dependency.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// --- Request/Response Structs ---

type UpdateProfileRequest struct {
	FullName     string              `json:"fullName" binding:"required"`
	Age          int                 `json:"age" binding:"required,gt=0"`
	HeightCm     float64             `json:"height" binding:"omitempty,gt=0"`
	WeightKg     float64             `json:"weight" binding:"omitempty,gt=0"`
	FitnessLevel domain.FitnessLevel `json:"fitnessLevel" binding:"required,oneof=Beginner Intermediate Advanced"`
	Preferences  domain.Preferences  `json:"preferences"`
}

type AvatarUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type AvatarUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

type ConfirmAvatarRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// --- Handler Methods ---

// respondWithProfile resolves the avatar URL and writes the profile DTO.
func (h *UserHandler) respondWithProfile(c *gin.Context, status int, user *domain.User) {
	avatarURL, err := h.userService.AvatarURL(c.Request.Context(), user)
	if err != nil {
		// A broken avatar link should not hide the profile itself.
		avatarURL = ""
	}
	c.JSON(status, MapUserToResponse(user, avatarURL))
}

// GetMe returns the authenticated user's profile.
// GET /api/v1/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch profile")
		}
		return
	}

	h.respondWithProfile(c, http.StatusOK, user)
}

// UpdateMe updates the authenticated user's profile.
// PUT /api/v1/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if req.Preferences.MeasurementUnit == "" {
		req.Preferences = domain.DefaultPreferences()
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, service.ProfileUpdate{
		FullName:     req.FullName,
		Age:          req.Age,
		HeightCm:     req.HeightCm,
		WeightKg:     req.WeightKg,
		FitnessLevel: req.FitnessLevel,
		Preferences:  req.Preferences,
	})
	if err != nil {
		var validationErr *domain.ValidationError
		switch {
		case errors.As(err, &validationErr):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":  "Invalid profile data",
				"errors": validationErr.Problems,
			})
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}

	h.respondWithProfile(c, http.StatusOK, user)
}

// RequestAvatarUpload returns a presigned PUT URL for a new avatar.
// POST /api/v1/me/avatar
func (h *UserHandler) RequestAvatarUpload(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	upload, err := h.userService.RequestAvatarUpload(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrInvalidContentType) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to prepare avatar upload")
		}
		return
	}

	c.JSON(http.StatusOK, AvatarUploadResponse{
		UploadURL: upload.UploadURL,
		ObjectKey: upload.ObjectKey,
	})
}

// ConfirmAvatar records an uploaded avatar object key on the profile.
// PUT /api/v1/me/avatar
func (h *UserHandler) ConfirmAvatar(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ConfirmAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.userService.ConfirmAvatar(c.Request.Context(), userID, req.ObjectKey)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidObjectKey):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to confirm avatar upload")
		}
		return
	}

	h.respondWithProfile(c, http.StatusOK, user)
}
