package dto

import (
	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/internal/core/types"
	"tillpoint/internal/domain/billing"
)

// BillLineRequest is one requested position. Quantity is the only
// client-controlled number; pricing comes from the stock record.
type BillLineRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
}

// CreateBillRequest is a checkout request.
type CreateBillRequest struct {
	StaffName     string            `json:"staffName"`
	Shift         string            `json:"shift"`
	PaymentMode   string            `json:"paymentMode"`
	CustomerName  string            `json:"customerName"`
	CustomerPhone string            `json:"customerPhone"`
	Items         []BillLineRequest `json:"items"`
	DiscountType  string            `json:"discountType"`
	DiscountValue types.Money       `json:"discountValue"`
	LabourCost    types.Money       `json:"labourCost"`
	PaidAmount    types.Money       `json:"paidAmount"`
}

// ToInput converts the request to service input.
func (r *CreateBillRequest) ToInput() (billing.CreateInput, error) {
	lines, err := parseLines(r.Items)
	if err != nil {
		return billing.CreateInput{}, err
	}
	return billing.CreateInput{
		StaffName:     r.StaffName,
		Shift:         billing.Shift(r.Shift),
		PaymentMode:   billing.PaymentMode(r.PaymentMode),
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Lines:         lines,
		DiscountType:  billing.DiscountType(r.DiscountType),
		DiscountValue: r.DiscountValue,
		LabourCost:    r.LabourCost,
		PaidAmount:    r.PaidAmount,
	}, nil
}

// UpdateBillRequest is a full bill edit.
type UpdateBillRequest struct {
	StaffName     string            `json:"staffName"`
	Shift         string            `json:"shift"`
	PaymentMode   string            `json:"paymentMode"`
	CustomerName  string            `json:"customerName"`
	CustomerPhone string            `json:"customerPhone"`
	Items         []BillLineRequest `json:"items"`
	DiscountType  string            `json:"discountType"`
	DiscountValue types.Money       `json:"discountValue"`
	LabourCost    types.Money       `json:"labourCost"`
	PaidAmount    types.Money       `json:"paidAmount"`
}

// ToInput converts the request to service input.
func (r *UpdateBillRequest) ToInput() (billing.UpdateInput, error) {
	lines, err := parseLines(r.Items)
	if err != nil {
		return billing.UpdateInput{}, err
	}
	return billing.UpdateInput{
		StaffName:     r.StaffName,
		Shift:         billing.Shift(r.Shift),
		PaymentMode:   billing.PaymentMode(r.PaymentMode),
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Lines:         lines,
		DiscountType:  billing.DiscountType(r.DiscountType),
		DiscountValue: r.DiscountValue,
		LabourCost:    r.LabourCost,
		PaidAmount:    r.PaidAmount,
	}, nil
}

func parseLines(items []BillLineRequest) ([]billing.LineInput, error) {
	lines := make([]billing.LineInput, 0, len(items))
	for _, item := range items {
		productID, err := id.Parse(item.ProductID)
		if err != nil {
			return nil, apperror.NewValidation("invalid product id").WithDetail("productId", item.ProductID)
		}
		lines = append(lines, billing.LineInput{ProductID: productID, Quantity: item.Quantity})
	}
	return lines, nil
}

// PayPendingRequest applies a partial payment.
type PayPendingRequest struct {
	Amount types.Money `json:"amount"`
}

// BillListRequest filters the bill listing.
type BillListRequest struct {
	PaginationRequest
	Search      string `form:"search"`
	Shift       string `form:"shift"`
	StaffName   string `form:"staffName"`
	PendingOnly bool   `form:"pendingOnly"`
}

// ToFilter converts the request to a repository filter.
func (r *BillListRequest) ToFilter() billing.ListFilter {
	r.Defaults()
	return billing.ListFilter{
		Search:      r.Search,
		Shift:       billing.Shift(r.Shift),
		StaffName:   r.StaffName,
		PendingOnly: r.PendingOnly,
		Limit:       r.PageSize,
		Offset:      r.Offset(),
	}
}

// BillReportRequest bounds the sales report.
type BillReportRequest struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}
