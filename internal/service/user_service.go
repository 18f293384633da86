package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
	"fittrack/fitness-tracker/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidContentType = errors.New("avatar must be an image content type")
	ErrInvalidObjectKey   = errors.New("object key does not belong to this user")
	ErrUploadURLError     = errors.New("failed to generate upload URL")
)

// ProfileUpdate carries the mutable profile fields.
type ProfileUpdate struct {
	FullName     string
	Age          int
	HeightCm     float64
	WeightKg     float64
	FitnessLevel domain.FitnessLevel
	Preferences  domain.Preferences
}

// AvatarUpload is the presigned-upload handshake returned to the client.
type AvatarUpload struct {
	UploadURL string
	ObjectKey string
}

// UserService manages profiles and avatar uploads.
type UserService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, update ProfileUpdate) (*domain.User, error)
	RequestAvatarUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (*AvatarUpload, error)
	ConfirmAvatar(ctx context.Context, userID primitive.ObjectID, objectKey string) (*domain.User, error)
	AvatarURL(ctx context.Context, user *domain.User) (string, error)
}

type userService struct {
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository, fileStorage storage.FileStorage) UserService {
	return &userService{
		userRepo:    userRepo,
		fileStorage: fileStorage,
	}
}

// GetProfile returns the user's profile.
func (s *userService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile applies the mutable profile fields after validation.
func (s *userService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, update ProfileUpdate) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.FullName = update.FullName
	user.Age = update.Age
	user.HeightCm = update.HeightCm
	user.WeightKg = update.WeightKg
	user.FitnessLevel = update.FitnessLevel
	user.Preferences = update.Preferences

	if err := user.ValidateProfile(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// RequestAvatarUpload generates a presigned PUT URL for a new avatar. The
// client uploads directly to the object store and then calls ConfirmAvatar
// with the returned object key.
func (s *userService) RequestAvatarUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (*AvatarUpload, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, ErrInvalidContentType
	}

	uniqueID := uuid.NewString()
	fileExtension := ""
	if parts := strings.Split(contentType, "/"); len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("avatars", userID.Hex(), fmt.Sprintf("%s.%s", uniqueID, fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}

	return &AvatarUpload{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	}, nil
}

// ConfirmAvatar records the uploaded object key on the profile, replacing
// (and deleting) any previous avatar object.
func (s *userService) ConfirmAvatar(ctx context.Context, userID primitive.ObjectID, objectKey string) (*domain.User, error) {
	// The key must be one we issued for this user.
	if !strings.HasPrefix(objectKey, path.Join("avatars", userID.Hex())+"/") {
		return nil, ErrInvalidObjectKey
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	previous := user.ProfilePic
	user.ProfilePic = objectKey
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if previous != "" && previous != objectKey {
		// Best effort; an orphaned object is not worth failing the request.
		_ = s.fileStorage.DeleteObject(ctx, previous)
	}

	user.PasswordHash = ""
	return user, nil
}

// AvatarURL returns a presigned download URL for the user's avatar, or an
// empty string when no avatar has been uploaded.
func (s *userService) AvatarURL(ctx context.Context, user *domain.User) (string, error) {
	if user == nil || user.ProfilePic == "" {
		return "", nil
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, user.ProfilePic, storage.DefaultPresignedURLExpiry)
}
