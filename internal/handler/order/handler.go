package order

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pharmaflow/pharmacy-api/internal/handler"
	"github.com/pharmaflow/pharmacy-api/internal/middleware"
	"github.com/pharmaflow/pharmacy-api/internal/model"
	orderService "github.com/pharmaflow/pharmacy-api/internal/service/order"
	patientService "github.com/pharmaflow/pharmacy-api/internal/service/patient"
	"github.com/pharmaflow/pharmacy-api/pkg/metrics"
)

type Handler struct {
	svc      *orderService.Service
	patients *patientService.Service
	metrics  *metrics.Metrics
}

func NewHandler(svc *orderService.Service, patients *patientService.Service, m *metrics.Metrics) *Handler {
	return &Handler{
		svc:      svc,
		patients: patients,
		metrics:  m,
	}
}

// List returns all orders for staff, or the caller's own orders for a
// patient session.
func (h *Handler) List(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	if claims.Role == string(model.RoleAdmin) {
		views, err := h.svc.ListAll(c.Request.Context())
		if err != nil {
			c.JSON(handler.StatusFromError(err), handler.NewErrorResponse(handler.ErrorMessage(err)))
			return
		}
		c.JSON(http.StatusOK, handler.NewSuccessResponse(views))
		return
	}

	patient, err := h.patients.GetByAccount(c.Request.Context(), claims.AccountID)
	if err != nil {
		c.JSON(handler.StatusFromError(err), handler.NewErrorResponse(handler.ErrorMessage(err)))
		return
	}

	views, err := h.svc.ListByPatient(c.Request.Context(), patient.ID)
	if err != nil {
		c.JSON(handler.StatusFromError(err), handler.NewErrorResponse(handler.ErrorMessage(err)))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(views))
}

// Create places an order for the calling patient: either a catalog
// formula reference or a custom formula name, never both.
func (h *Handler) Create(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if req.FormulaID != nil && req.CustomFormulaName != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("formula_id and custom_formula_name are mutually exclusive"))
		return
	}
	if req.FormulaID == nil && req.CustomFormulaName == nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("either formula_id or custom_formula_name is required"))
		return
	}

	patient, err := h.patients.GetByAccount(c.Request.Context(), claims.AccountID)
	if err != nil {
		c.JSON(handler.StatusFromError(err), handler.NewErrorResponse(handler.ErrorMessage(err)))
		return
	}

	var order *model.Order
	if req.FormulaID != nil {
		order, err = h.svc.CreateCatalogOrder(c.Request.Context(), patient.ID, *req.FormulaID,
			req.Quantity, req.Unit, req.Notes)
		if err == nil {
			h.metrics.OrdersCreated.WithLabelValues("catalog").Inc()
		}
	} else {
		order, err = h.svc.CreateCustomOrder(c.Request.Context(), patient.ID, *req.CustomFormulaName,
			req.Quantity, req.Unit, req.Notes)
		if err == nil {
			h.metrics.OrdersCreated.WithLabelValues("custom").Inc()
		}
	}
	if err != nil {
		c.JSON(handler.StatusFromError(err), handler.NewErrorResponse(handler.ErrorMessage(err)))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(order))
}

// SetStatus moves an order to a new lifecycle state.
func (h *Handler) SetStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid order id"))
		return
	}

	var req model.SetOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.svc.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		c.JSON(handler.StatusFromError(err), handler.NewErrorResponse(handler.ErrorMessage(err)))
		return
	}

	h.metrics.OrderStatusChanges.Inc()
	c.JSON(http.StatusOK, handler.NewSuccessResponse("status updated"))
}
