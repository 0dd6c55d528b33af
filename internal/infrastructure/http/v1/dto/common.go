// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
)

// --- Pagination ---

// PaginationRequest contains pagination parameters.
type PaginationRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"pageSize" binding:"omitempty,max=100"`
}

// Defaults sets default pagination values.
func (p *PaginationRequest) Defaults() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = 10
	}
}

// Offset calculates SQL offset.
func (p *PaginationRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewListResponse builds a paginated list envelope.
func NewListResponse(items any, totalCount int64, page, pageSize int) ListResponse {
	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}
	return ListResponse{
		Items:      items,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// --- IDs ---

// IDResponse for create operations.
type IDResponse struct {
	ID   string `json:"id"`
	Code string `json:"code,omitempty"`
}

// IDsRequest carries the ids for bulk operations.
type IDsRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// ParseIDs converts the string ids, rejecting malformed ones.
func (r *IDsRequest) ParseIDs() ([]id.ID, error) {
	out := make([]id.ID, 0, len(r.IDs))
	for _, raw := range r.IDs {
		parsed, err := id.Parse(raw)
		if err != nil {
			return nil, apperror.NewValidation("invalid id").WithDetail("id", raw)
		}
		out = append(out, parsed)
	}
	return out, nil
}

// DeletedResponse reports a bulk delete outcome.
type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}

// --- Success ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse mirrors the error middleware envelope.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
