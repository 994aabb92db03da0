package v1

import (
	"errors"
	"net/http"

	"portfolio-contact-backend/internal/delivery/http/response"
	"portfolio-contact-backend/internal/domain"
	"portfolio-contact-backend/pkg/apperror"
	"portfolio-contact-backend/pkg/logger"
	"portfolio-contact-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

const (
	contactSuccessMessage = "Email sent successfully"
	contactFailureMessage = "Failed to send message. Please try again later."
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", handler.SubmitContact)
	// Name kept from the hosted function the form used to call
	public.POST("/send-contact-email", handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Relay a contact form message to the site owner by email. This is a public endpoint.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.ErrorResponse
// @Failure      500      {object}  response.ErrorResponse
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	err := h.contactUC.SendContactMessage(c.Request.Context(), &req)
	if err != nil {
		var fe *validation.FieldError
		if errors.As(err, &fe) {
			c.Error(apperror.BadRequest(fe.Message))
			return
		}

		result := domain.ResultFromError(err)
		logger.Log.Warn("Contact dispatch failed",
			"request_id", c.GetString("RequestID"),
			"outcome", result.Outcome.String(),
		)
		c.Error(apperror.New(http.StatusInternalServerError, contactFailureMessage, err))
		return
	}

	response.Success(c, http.StatusOK, contactSuccessMessage, nil)
}
