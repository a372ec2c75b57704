package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/factuurlijk/factuurlijk/internal/api/dto"
	ierr "github.com/factuurlijk/factuurlijk/internal/errors"
	"github.com/factuurlijk/factuurlijk/internal/logger"
	"github.com/factuurlijk/factuurlijk/internal/service"
)

type PaymentHandler struct {
	service service.PaymentService
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log,
	}
}

func (h *PaymentHandler) CreateClaim(c *gin.Context) {
	var req dto.CreatePaymentClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateClaim(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *PaymentHandler) GetClaim(c *gin.Context) {
	resp, err := h.service.GetClaim(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ConfirmClaim is the payment provider webhook. It is not tenant scoped;
// the claim reference identifies the owner.
func (h *PaymentHandler) ConfirmClaim(c *gin.Context) {
	var req dto.ConfirmPaymentClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ConfirmClaim(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
