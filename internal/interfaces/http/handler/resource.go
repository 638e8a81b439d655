package handler

import (
	"github.com/backoffice/backend/internal/application/resource"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// reservedQueryParams are the list parameters that are not field filters
var reservedQueryParams = map[string]bool{
	"page":      true,
	"page_size": true,
	"limit":     true,
	"order_by":  true,
	"order_dir": true,
	"search":    true,
}

// ResourceHandler serves one entity type over the uniform HTTP surface:
//
//	GET    /api/<resource>       list
//	POST   /api/<resource>       create
//	GET    /api/<resource>/:id   get one
//	PATCH  /api/<resource>/:id   merge update
//	DELETE /api/<resource>/:id   delete per the entity's policy
//
// Request validation happens at binding time; everything past that boundary
// speaks domain errors translated back through the envelope.
type ResourceHandler[T any] struct {
	BaseHandler
	service *resource.Service[T]
}

// NewResourceHandler creates a handler for one resource service
func NewResourceHandler[T any](service *resource.Service[T], logger *zap.Logger) *ResourceHandler[T] {
	return &ResourceHandler[T]{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterRoutes mounts the uniform routes under the API group
func (h *ResourceHandler[T]) RegisterRoutes(rg *gin.RouterGroup) {
	path := h.service.Descriptor().Path
	group := rg.Group("/" + path)
	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.GetByID)
	group.PATCH("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

// List handles GET /api/<resource>
func (h *ResourceHandler[T]) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	pageSize := req.PageSize
	if pageSize == 0 {
		pageSize = req.Limit
	}
	filter := shared.Filter{
		Page:     req.Page,
		PageSize: pageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Filters:  make(map[string]any),
	}
	for key, values := range c.Request.URL.Query() {
		if !reservedQueryParams[key] && len(values) > 0 {
			filter.Filters[key] = values[0]
		}
	}

	records, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	norm := filter.Normalize()
	h.SuccessWithMeta(c, records, total, norm.Page, norm.PageSize)
}

// GetByID handles GET /api/<resource>/:id
func (h *ResourceHandler[T]) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid id")
		return
	}

	record, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// Create handles POST /api/<resource>
func (h *ResourceHandler[T]) Create(c *gin.Context) {
	var record T
	if err := c.ShouldBindJSON(&record); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), &record)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, created)
}

// Update handles PATCH /api/<resource>/:id with merge semantics: only the
// fields present in the body are written.
func (h *ResourceHandler[T]) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid id")
		return
	}

	fields := make(map[string]any)
	if err := c.ShouldBindJSON(&fields); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.service.Update(c.Request.Context(), id, fields)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// Delete handles DELETE /api/<resource>/:id and returns the removed (or
// marked) record.
func (h *ResourceHandler[T]) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid id")
		return
	}

	record, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}
