package handlers

import (
	"github.com/gin-gonic/gin"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/internal/domain"
	"tillpoint/internal/domain/auth"
	"tillpoint/internal/infrastructure/http/v1/dto"
)

// UserHandler serves the staff account endpoints.
type UserHandler struct {
	*BaseHandler
	service *auth.UserService
}

// NewUserHandler creates a user handler.
func NewUserHandler(service *auth.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Create handles POST /users/create.
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := h.service.SetPassword(user, req.Password); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(c.Request.Context(), user); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, user)
}

// List handles GET /users/list.
func (h *UserHandler) List(c *gin.Context) {
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

// Update handles PUT /users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := req.Apply(user); err != nil {
		h.Error(c, err)
		return
	}
	if req.Password != "" {
		if err := h.service.SetPassword(user, req.Password); err != nil {
			h.Error(c, err)
			return
		}
	}

	if err := h.service.Update(c.Request.Context(), user); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, user)
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "user deleted")
}

func (h *UserHandler) parseID(c *gin.Context) (id.ID, bool) {
	userID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id").WithDetail("id", c.Param("id")))
		return id.Nil(), false
	}
	return userID, true
}
