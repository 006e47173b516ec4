package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pharmaflow/pharmacy-api/internal/handler"
	"github.com/pharmaflow/pharmacy-api/internal/model"
	authService "github.com/pharmaflow/pharmacy-api/internal/service/auth"
	patientService "github.com/pharmaflow/pharmacy-api/internal/service/patient"
	pkgauth "github.com/pharmaflow/pharmacy-api/pkg/auth"
	apperrors "github.com/pharmaflow/pharmacy-api/pkg/errors"
	"github.com/pharmaflow/pharmacy-api/pkg/metrics"
)

type Handler struct {
	svc      *authService.Service
	patients *patientService.Service
	jwtSvc   pkgauth.JWTService
	metrics  *metrics.Metrics
}

func NewHandler(svc *authService.Service, patients *patientService.Service,
	jwtSvc pkgauth.JWTService, m *metrics.Metrics) *Handler {
	return &Handler{
		svc:      svc,
		patients: patients,
		jwtSvc:   jwtSvc,
		metrics:  m,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/recover-password", h.RecoverPassword)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.svc.Register(c.Request.Context(), &req); err != nil {
		c.JSON(handler.StatusFromError(err), handler.NewErrorResponse(handler.ErrorMessage(err)))
		return
	}

	h.metrics.RegistrationsTotal.Inc()
	c.JSON(http.StatusCreated, handler.NewSuccessResponse("registered"))
}

type loginResponse struct {
	Token   string         `json:"token"`
	Account *model.Account `json:"account"`
	Patient *model.Patient `json:"patient,omitempty"`
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	account, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.metrics.LoginsTotal.WithLabelValues("failure").Inc()
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid credentials"))
		return
	}

	token, err := h.jwtSvc.GenerateAccessToken(account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("internal server error"))
		return
	}

	resp := loginResponse{Token: token, Account: account}
	if account.Role == model.RolePatient {
		// Resolve the session's patient profile for the UI.
		patient, err := h.patients.GetByAccount(c.Request.Context(), account.ID)
		if err != nil && !apperrors.IsNotFound(err) {
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("internal server error"))
			return
		}
		resp.Patient = patient
	}

	h.metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, handler.NewSuccessResponse(resp))
}

func (h *Handler) RecoverPassword(c *gin.Context) {
	var req model.RecoverPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.svc.RecoverPassword(c.Request.Context(), req.Email, req.NewPassword); err != nil {
		c.JSON(handler.StatusFromError(err), handler.NewErrorResponse(handler.ErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse("password updated"))
}
