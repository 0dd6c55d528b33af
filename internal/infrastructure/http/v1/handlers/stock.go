package handlers

import (
	"github.com/gin-gonic/gin"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/internal/domain"
	"tillpoint/internal/domain/catalogs/stockitem"
	"tillpoint/internal/infrastructure/http/v1/dto"
)

// StockHandler serves the stock ledger endpoints.
type StockHandler struct {
	*BaseHandler
	service *stockitem.Service
}

// NewStockHandler creates a stock handler.
func NewStockHandler(service *stockitem.Service) *StockHandler {
	return &StockHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Create handles POST /stock/create.
func (h *StockHandler) Create(c *gin.Context) {
	var req dto.CreateStockItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), item); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, item)
}

// List handles GET /stock/list.
func (h *StockHandler) List(c *gin.Context) {
	var req dto.StockListRequest
	if !h.BindQuery(c, &req) {
		return
	}
	req.Defaults()

	result, err := h.service.List(c.Request.Context(), domain.ListFilter{
		Search: req.Search,
		Limit:  req.PageSize,
		Offset: req.Offset(),
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(result.Items, result.TotalCount, req.Page, req.PageSize))
}

// Report handles GET /stock/report.
func (h *StockHandler) Report(c *gin.Context) {
	report, err := h.service.Report(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

// Update handles PUT /stock/:id.
func (h *StockHandler) Update(c *gin.Context) {
	itemID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateStockItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.Apply(item)
	if err := h.service.Update(c.Request.Context(), item); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, item)
}

// Restock handles PUT /stock/:id/restock.
func (h *StockHandler) Restock(c *gin.Context) {
	itemID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.RestockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.service.Restock(c.Request.Context(), itemID, req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, item)
}

// Delete handles DELETE /stock/:id.
func (h *StockHandler) Delete(c *gin.Context) {
	itemID, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), itemID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "stock item deleted")
}

// DeleteMany handles DELETE /stock/deletemany.
func (h *StockHandler) DeleteMany(c *gin.Context) {
	var req dto.IDsRequest
	if !h.BindJSON(c, &req) {
		return
	}
	ids, err := req.ParseIDs()
	if err != nil {
		h.Error(c, err)
		return
	}

	deleted, err := h.service.DeleteMany(c.Request.Context(), ids)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.DeletedResponse{Deleted: deleted})
}

func (h *StockHandler) parseID(c *gin.Context) (id.ID, bool) {
	itemID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id").WithDetail("id", c.Param("id")))
		return id.Nil(), false
	}
	return itemID, true
}
