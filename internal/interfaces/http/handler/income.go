package handler

import (
	appfinance "github.com/backoffice/backend/internal/application/finance"
	"github.com/backoffice/backend/internal/domain/finance"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IncomeHandler serves other-income records. Creation books the matching
// journal entry in the same transaction and returns both rows.
type IncomeHandler struct {
	*ResourceHandler[finance.OtherIncome]
	incomes *appfinance.IncomeService
}

// incomeCreatedResponse is the payload returned from POST /api/other-income
type incomeCreatedResponse struct {
	Income       *finance.OtherIncome  `json:"income"`
	JournalEntry *finance.JournalEntry `json:"journal_entry"`
}

// NewIncomeHandler creates the income handler
func NewIncomeHandler(incomes *appfinance.IncomeService, logger *zap.Logger) *IncomeHandler {
	return &IncomeHandler{
		ResourceHandler: NewResourceHandler(incomes.Service, logger),
		incomes:         incomes,
	}
}

// RegisterRoutes mounts the income routes with the journalled create
func (h *IncomeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/other-income")
	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.GetByID)
	group.PATCH("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

// Create handles POST /api/other-income
func (h *IncomeHandler) Create(c *gin.Context) {
	var income finance.OtherIncome
	if err := c.ShouldBindJSON(&income); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	created, entry, err := h.incomes.CreateWithJournal(c.Request.Context(), &income)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, incomeCreatedResponse{Income: created, JournalEntry: entry})
}
