package handlers

import (
	"github.com/gin-gonic/gin"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/internal/domain"
	"tillpoint/internal/domain/auth"
	"tillpoint/internal/infrastructure/http/v1/dto"
)

// RoleHandler serves the role endpoints.
type RoleHandler struct {
	*BaseHandler
	service *auth.RoleService
}

// NewRoleHandler creates a role handler.
func NewRoleHandler(service *auth.RoleService) *RoleHandler {
	return &RoleHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Create handles POST /roles/create.
func (h *RoleHandler) Create(c *gin.Context) {
	var req dto.CreateRoleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	role := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), role); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, role)
}

// List handles GET /roles/list.
func (h *RoleHandler) List(c *gin.Context) {
	page := h.ParseIntQuery(c, "page", 1)
	pageSize := h.ParseIntQuery(c, "pageSize", 10)

	result, err := h.service.List(c.Request.Context(), domain.ListFilter{
		Search: c.Query("search"),
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(result.Items, result.TotalCount, page, pageSize))
}

// Update handles PUT /roles/:id.
func (h *RoleHandler) Update(c *gin.Context) {
	roleID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	role, err := h.service.GetByID(c.Request.Context(), roleID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.Apply(role)
	if err := h.service.Update(c.Request.Context(), role); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, role)
}

// Delete handles DELETE /roles/:id.
func (h *RoleHandler) Delete(c *gin.Context) {
	roleID, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), roleID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "role deleted")
}

func (h *RoleHandler) parseID(c *gin.Context) (id.ID, bool) {
	roleID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id").WithDetail("id", c.Param("id")))
		return id.Nil(), false
	}
	return roleID, true
}
