package handler

import (
	appfinance "github.com/backoffice/backend/internal/application/finance"
	"github.com/backoffice/backend/internal/domain/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExpenseHandler serves expenses. List, get, create and delete follow the
// uniform surface; PATCH takes the typed request so line items, VAT rate and
// deposit can change with the totals rederived in the same write.
type ExpenseHandler struct {
	*ResourceHandler[finance.Expense]
	expenses *appfinance.ExpenseService
}

// NewExpenseHandler creates the expense handler
func NewExpenseHandler(expenses *appfinance.ExpenseService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		ResourceHandler: NewResourceHandler(expenses.Service, logger),
		expenses:        expenses,
	}
}

// RegisterRoutes mounts the expense routes with the typed update
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/expense")
	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.GetByID)
	group.PATCH("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

// Update handles PATCH /api/expense/:id
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid id")
		return
	}

	var req appfinance.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.expenses.UpdateExpense(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}
