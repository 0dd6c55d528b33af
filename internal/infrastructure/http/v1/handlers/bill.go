package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/domain/billing"
	"tillpoint/internal/infrastructure/http/v1/dto"
)

// BillHandler serves the billing endpoints.
type BillHandler struct {
	*BaseHandler
	service *billing.Service
}

// NewBillHandler creates a bill handler.
func NewBillHandler(service *billing.Service) *BillHandler {
	return &BillHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Create handles POST /bill/create.
func (h *BillHandler) Create(c *gin.Context) {
	var req dto.CreateBillRequest
	if !h.BindJSON(c, &req) {
		return
	}

	input, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	bill, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, bill)
}

// List handles GET /bill/list.
func (h *BillHandler) List(c *gin.Context) {
	var req dto.BillListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.service.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(result.Items, result.TotalCount, req.Page, req.PageSize))
}

// Get handles GET /bill/:billCode.
func (h *BillHandler) Get(c *gin.Context) {
	bill, err := h.service.GetByCode(c.Request.Context(), c.Param("billCode"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, bill)
}

// Update handles PUT /bill/:billCode.
func (h *BillHandler) Update(c *gin.Context) {
	var req dto.UpdateBillRequest
	if !h.BindJSON(c, &req) {
		return
	}

	input, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	bill, err := h.service.Update(c.Request.Context(), c.Param("billCode"), input)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, bill)
}

// PayPending handles PUT /bill/pending/:billCode.
func (h *BillHandler) PayPending(c *gin.Context) {
	var req dto.PayPendingRequest
	if !h.BindJSON(c, &req) {
		return
	}

	bill, err := h.service.PayPending(c.Request.Context(), c.Param("billCode"), req.Amount)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, bill)
}

// PendingAmount handles GET /bill/pendingamount.
func (h *BillHandler) PendingAmount(c *gin.Context) {
	summary, err := h.service.Pending(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, summary)
}

// SalesActivity handles GET /bill/salesactivity.
func (h *BillHandler) SalesActivity(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 20)
	entries, err := h.service.RecentActivity(c.Request.Context(), limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entries)
}

// Report handles GET /bill/report.
func (h *BillHandler) Report(c *gin.Context) {
	var req dto.BillReportRequest
	if !h.BindQuery(c, &req) {
		return
	}

	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid from date").WithDetail("from", req.From))
		return
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid to date").WithDetail("to", req.To))
		return
	}

	// Inclusive end date
	rows, err := h.service.Report(c.Request.Context(), from, to.AddDate(0, 0, 1))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rows)
}

// DeleteMany handles DELETE /bill/deletemany.
func (h *BillHandler) DeleteMany(c *gin.Context) {
	h.deleteMany(c, false)
}

// DeletePendingMany handles DELETE /bill/pending/deletemany.
func (h *BillHandler) DeletePendingMany(c *gin.Context) {
	h.deleteMany(c, true)
}

func (h *BillHandler) deleteMany(c *gin.Context, pendingOnly bool) {
	var req dto.IDsRequest
	if !h.BindJSON(c, &req) {
		return
	}
	ids, err := req.ParseIDs()
	if err != nil {
		h.Error(c, err)
		return
	}

	deleted, err := h.service.DeleteMany(c.Request.Context(), ids, pendingOnly)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.DeletedResponse{Deleted: deleted})
}
