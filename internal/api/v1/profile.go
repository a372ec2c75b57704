package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/factuurlijk/factuurlijk/internal/api/dto"
	ierr "github.com/factuurlijk/factuurlijk/internal/errors"
	"github.com/factuurlijk/factuurlijk/internal/logger"
	"github.com/factuurlijk/factuurlijk/internal/service"
)

type ProfileHandler struct {
	service service.ProfileService
	log     *logger.Logger
}

func NewProfileHandler(service service.ProfileService, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		log:     log,
	}
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req dto.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateProfile(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	resp, err := h.service.GetProfile(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateProfile(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UploadLogo accepts the raw image bytes as the request body.
func (h *ProfileHandler) UploadLogo(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Failed to read logo image").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UploadLogo(c.Request.Context(), data)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) GetLogoUrl(c *gin.Context) {
	resp, err := h.service.GetLogoUrl(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
