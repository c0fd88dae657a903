package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/openwellness/wellness-planner/internal/domain"
	"github.com/openwellness/wellness-planner/internal/repository"
	"github.com/openwellness/wellness-planner/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrStorageUnavailable = errors.New("avatar storage is not configured")
	ErrInvalidContentType = errors.New("avatar content type must be an image")
)

// AvatarUploadResponse carries the presigned URL and the object key the
// client reports back after a successful upload.
type AvatarUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// Profile is a user profile enriched with a temporary avatar URL.
type Profile struct {
	User      *domain.User
	AvatarURL string
}

// --- Service Interface ---
type ProfileService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*Profile, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, name string) (*Profile, error)
	RequestAvatarUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (*AvatarUploadResponse, error)
	ConfirmAvatarUpload(ctx context.Context, userID primitive.ObjectID, objectKey string) (*Profile, error)
}

// --- Service Implementation ---

type profileService struct {
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage // nil when S3 is not configured
}

// NewProfileService creates a new instance of profileService. fileStorage may
// be nil; avatar operations then fail with ErrStorageUnavailable while the
// rest of the profile keeps working.
func NewProfileService(userRepo repository.UserRepository, fileStorage storage.FileStorage) ProfileService {
	return &profileService{
		userRepo:    userRepo,
		fileStorage: fileStorage,
	}
}

// GetProfile returns the user's profile with a short-lived avatar URL when an
// avatar has been uploaded.
func (s *profileService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""

	profile := &Profile{User: user}
	if user.AvatarKey != "" && s.fileStorage != nil {
		url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, user.AvatarKey, storage.DefaultPresignedURLExpiry)
		if err == nil {
			// A failed presign only hides the avatar; the profile itself loads.
			profile.AvatarURL = url
		}
	}
	return profile, nil
}

// UpdateProfile changes the display name.
func (s *profileService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, name string) (*Profile, error) {
	if name == "" {
		return nil, errors.New("name cannot be empty")
	}
	if err := s.userRepo.UpdateProfile(ctx, userID, name, nil); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

// RequestAvatarUploadURL generates a presigned PUT URL for a new avatar.
func (s *profileService) RequestAvatarUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (*AvatarUploadResponse, error) {
	if s.fileStorage == nil {
		return nil, ErrStorageUnavailable
	}
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, ErrInvalidContentType
	}

	ext := extensionForContentType(contentType)
	objectKey := path.Join("avatars", userID.Hex(), uuid.NewString()+ext)

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate upload URL: %w", err)
	}
	return &AvatarUploadResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	}, nil
}

// ConfirmAvatarUpload records the uploaded object key on the profile and
// removes the previous avatar object, if any.
func (s *profileService) ConfirmAvatarUpload(ctx context.Context, userID primitive.ObjectID, objectKey string) (*Profile, error) {
	if s.fileStorage == nil {
		return nil, ErrStorageUnavailable
	}
	// Object keys are server-generated; refuse anything outside the
	// caller's own avatar prefix.
	expectedPrefix := path.Join("avatars", userID.Hex()) + "/"
	if !strings.HasPrefix(objectKey, expectedPrefix) {
		return nil, errors.New("object key does not belong to this user")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	previousKey := user.AvatarKey

	if err := s.userRepo.UpdateProfile(ctx, userID, user.Name, &objectKey); err != nil {
		return nil, err
	}
	if previousKey != "" && previousKey != objectKey {
		_ = s.fileStorage.DeleteObject(ctx, previousKey) // best effort
	}
	return s.GetProfile(ctx, userID)
}

func extensionForContentType(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
