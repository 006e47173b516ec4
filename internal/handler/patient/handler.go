package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pharmaflow/pharmacy-api/internal/handler"
	"github.com/pharmaflow/pharmacy-api/internal/middleware"
	patientService "github.com/pharmaflow/pharmacy-api/internal/service/patient"
)

type Handler struct {
	svc *patientService.Service
}

func NewHandler(svc *patientService.Service) *Handler {
	return &Handler{svc: svc}
}

// List is the staff-facing patient directory.
func (h *Handler) List(c *gin.Context) {
	patients, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(handler.StatusFromError(err), handler.NewErrorResponse(handler.ErrorMessage(err)))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

// Me returns the calling session's patient profile.
func (h *Handler) Me(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	patient, err := h.svc.GetByAccount(c.Request.Context(), claims.AccountID)
	if err != nil {
		c.JSON(handler.StatusFromError(err), handler.NewErrorResponse(handler.ErrorMessage(err)))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patient))
}

type updateContactRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
	Phone       string `json:"phone"`
	Email       string `json:"email" binding:"omitempty,email"`
}

// UpdateMe edits the denormalized contact copies on the caller's
// profile; the login account is untouched.
func (h *Handler) UpdateMe(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	var req updateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	patient, err := h.svc.GetByAccount(c.Request.Context(), claims.AccountID)
	if err != nil {
		c.JSON(handler.StatusFromError(err), handler.NewErrorResponse(handler.ErrorMessage(err)))
		return
	}

	patient.DisplayName = req.DisplayName
	patient.Phone = req.Phone
	patient.Email = req.Email
	if err := h.svc.UpdateContact(c.Request.Context(), patient); err != nil {
		c.JSON(handler.StatusFromError(err), handler.NewErrorResponse(handler.ErrorMessage(err)))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patient))
}
