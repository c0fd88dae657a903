package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/openwellness/wellness-planner/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler holds the profile service dependency.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- DTOs ---

type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

type AvatarUploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmAvatarRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

type ProfileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// MapProfileToResponse converts a service.Profile to ProfileResponse DTO.
func MapProfileToResponse(p *service.Profile) ProfileResponse {
	if p == nil || p.User == nil {
		return ProfileResponse{}
	}
	return ProfileResponse{
		ID:        p.User.ID.Hex(),
		Name:      p.User.Name,
		Email:     p.User.Email,
		AvatarURL: p.AvatarURL,
		CreatedAt: p.User.CreatedAt,
	}
}

// --- Handler Methods ---

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse "Profile"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "User not found"
// @Router /me [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve profile.")
		}
		return
	}
	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} ProfileResponse "Updated profile"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /me [patch]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update profile.")
		}
		return
	}
	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}

// RequestAvatarUploadURL godoc
// @Summary Get a presigned URL for an avatar upload
// @Description The client PUTs the image to the returned URL, then confirms
// the upload with the object key.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param upload body AvatarUploadURLRequest true "Content type of the image"
// @Success 200 {object} service.AvatarUploadResponse "Presigned upload URL"
// @Failure 400 {object} gin.H "Unsupported content type"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 503 {object} gin.H "Object storage not configured"
// @Router /me/avatar-url [post]
func (h *ProfileHandler) RequestAvatarUploadURL(c *gin.Context) {
	var req AvatarUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	resp, err := h.profileService.RequestAvatarUploadURL(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStorageUnavailable):
			abortWithError(c, http.StatusServiceUnavailable, err.Error())
		case errors.Is(err, service.ErrInvalidContentType):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL.")
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmAvatarUpload godoc
// @Summary Confirm a completed avatar upload
// @Description Records the uploaded object key on the profile and removes the
// previous avatar object if one existed.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param upload body ConfirmAvatarRequest true "Object key returned by avatar-url"
// @Success 200 {object} ProfileResponse "Updated profile"
// @Failure 400 {object} gin.H "Invalid object key"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 503 {object} gin.H "Object storage not configured"
// @Router /me/avatar [post]
func (h *ProfileHandler) ConfirmAvatarUpload(c *gin.Context) {
	var req ConfirmAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	profile, err := h.profileService.ConfirmAvatarUpload(c.Request.Context(), userID, req.ObjectKey)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStorageUnavailable):
			abortWithError(c, http.StatusServiceUnavailable, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusBadRequest, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}
