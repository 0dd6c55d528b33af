package handlers

import (
	"github.com/gin-gonic/gin"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/internal/domain"
	"tillpoint/internal/domain/catalogs/expense"
	"tillpoint/internal/infrastructure/http/v1/dto"
)

// ExpenseHandler serves the expense endpoints.
type ExpenseHandler struct {
	*BaseHandler
	service *expense.Service
}

// NewExpenseHandler creates an expense handler.
func NewExpenseHandler(service *expense.Service) *ExpenseHandler {
	return &ExpenseHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Create handles POST /expenses/create.
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	e := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), e); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, e)
}

// List handles GET /expenses/list.
func (h *ExpenseHandler) List(c *gin.Context) {
	var req dto.ExpenseListRequest
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

// Update handles PUT /expenses/:id.
func (h *ExpenseHandler) Update(c *gin.Context) {
	expenseID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), expenseID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.Apply(e)
	if err := h.service.Update(c.Request.Context(), e); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, e)
}

// Delete handles DELETE /expenses/:id.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	expenseID, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), expenseID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "expense deleted")
}

// DeleteMany handles DELETE /expenses/deletemany.
func (h *ExpenseHandler) DeleteMany(c *gin.Context) {
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

func (h *ExpenseHandler) parseID(c *gin.Context) (id.ID, bool) {
	expenseID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id").WithDetail("id", c.Param("id")))
		return id.Nil(), false
	}
	return expenseID, true
}
