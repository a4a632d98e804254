package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/easybookevent/artistcal/internal/services"
	"github.com/easybookevent/artistcal/internal/storage"
	appErrors "github.com/easybookevent/artistcal/pkg/errors"
	"github.com/easybookevent/artistcal/pkg/response"
)

// ProfileHandler serves the artist's own profile and media uploads.
type ProfileHandler struct {
	profiles *services.ProfileService
	files    *storage.FileStore
}

func NewProfileHandler(profiles *services.ProfileService, files *storage.FileStore) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, files: files}
}

type profileRequest struct {
	StageName   string `json:"stage_name" validate:"required,max=128"`
	Phone       string `json:"phone" validate:"omitempty,max=32"`
	Link        string `json:"link" validate:"omitempty,url,max=512"`
	NightlyRate string `json:"nightly_rate" validate:"omitempty,max=32"`
	Bio         string `json:"bio" validate:"omitempty,max=500"`
}

// Get returns the caller's profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profiles.Get(requestContext(c), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// Update creates or rewrites the caller's profile.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req profileRequest
	if !bindAndValidate(c, &req) {
		return
	}

	profile, err := h.profiles.Upsert(requestContext(c), currentUserID(c), services.ProfileInput{
		StageName:   req.StageName,
		Phone:       req.Phone,
		Link:        req.Link,
		NightlyRate: req.NightlyRate,
		Bio:         req.Bio,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// UploadLogo stores a logo image and records its URL on the profile.
func (h *ProfileHandler) UploadLogo(c *gin.Context) {
	url, ok := h.saveUpload(c, "logos")
	if !ok {
		return
	}

	profile, err := h.profiles.SetLogo(requestContext(c), currentUserID(c), url)
	if err != nil {
		_ = h.files.Remove(url)
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// UploadGalleryImage appends a gallery image, capped per profile.
func (h *ProfileHandler) UploadGalleryImage(c *gin.Context) {
	url, ok := h.saveUpload(c, "gallery")
	if !ok {
		return
	}

	profile, err := h.profiles.AddGalleryImage(requestContext(c), currentUserID(c), url)
	if err != nil {
		_ = h.files.Remove(url)
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// RemoveGalleryImage drops the gallery entry at the given index.
func (h *ProfileHandler) RemoveGalleryImage(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, appErrors.NewBadRequest("gallery index must be a number"))
		return
	}

	before, err := h.profiles.Get(requestContext(c), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	removed := ""
	if index >= 0 && index < len(before.Gallery) {
		removed = before.Gallery[index]
	}

	profile, err := h.profiles.RemoveGalleryImage(requestContext(c), currentUserID(c), index)
	if err != nil {
		response.Error(c, err)
		return
	}

	if removed != "" {
		_ = h.files.Remove(removed)
	}
	response.Success(c, http.StatusOK, profile)
}

func (h *ProfileHandler) saveUpload(c *gin.Context, kind string) (string, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.NewBadRequest("a file field is required"))
		return "", false
	}

	src, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.NewBadRequest("uploaded file could not be read"))
		return "", false
	}
	defer src.Close()

	url, err := h.files.Save(kind, header.Filename, header.Size, src)
	if err != nil {
		response.Error(c, err)
		return "", false
	}
	return url, true
}
