package formula

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pharmaflow/pharmacy-api/internal/handler"
	"github.com/pharmaflow/pharmacy-api/internal/model"
	catalogService "github.com/pharmaflow/pharmacy-api/internal/service/catalog"
)

type Handler struct {
	svc *catalogService.Service
}

func NewHandler(svc *catalogService.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) List(c *gin.Context) {
	formulas, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(handler.StatusFromError(err), handler.NewErrorResponse(handler.ErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(formulas))
}

func (h *Handler) Save(c *gin.Context) {
	var req model.SaveFormulaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	formula := &model.Formula{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if err := h.svc.Save(c.Request.Context(), formula); err != nil {
		c.JSON(handler.StatusFromError(err), handler.NewErrorResponse(handler.ErrorMessage(err)))
		return
	}

	status := http.StatusOK
	if req.ID == 0 {
		status = http.StatusCreated
	}
	c.JSON(status, handler.NewSuccessResponse(formula))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid formula id"))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(handler.StatusFromError(err), handler.NewErrorResponse(handler.ErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse("formula deleted"))
}
