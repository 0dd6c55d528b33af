// Package stockitem implements the product stock catalog.
package stockitem

import (
	"time"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/entity"
	"tillpoint/internal/core/types"
)

// StockItem is a purchasable product tracked by the stock ledger.
type StockItem struct {
	entity.Base

	Name         string      `db:"name" json:"name"`
	Quantity     int64       `db:"quantity" json:"quantity"`
	UnitPrice    types.Money `db:"unit_price" json:"unitPrice"`
	TotalPrice   types.Money `db:"total_price" json:"totalPrice"`
	SalePrice    types.Money `db:"sale_price" json:"salePrice"`
	Supplier     string      `db:"supplier" json:"supplier"`
	RackNo       string      `db:"rack_no" json:"rackNo"`
	PurchaseDate time.Time   `db:"purchase_date" json:"purchaseDate"`
	Warranty     *string     `db:"warranty" json:"warranty,omitempty"`
}

// New creates a stock item with initialized base fields.
func New(name string) *StockItem {
	return &StockItem{
		Base: entity.NewBase(),
		Name: name,
	}
}

// Validate checks business rules.
func (s *StockItem) Validate() error {
	var missing []apperror.MissingField
	if s.Name == "" {
		missing = append(missing, apperror.MissingField{Name: "name", Message: "Product name is required"})
	}
	if s.Supplier == "" {
		missing = append(missing, apperror.MissingField{Name: "supplier", Message: "Supplier is required"})
	}
	if len(missing) > 0 {
		return apperror.NewMissingFields(missing)
	}

	if s.Quantity < 0 {
		return apperror.NewValidation("quantity cannot be negative")
	}
	if s.UnitPrice.IsNegative() || s.TotalPrice.IsNegative() || s.SalePrice.IsNegative() {
		return apperror.NewValidation("prices cannot be negative")
	}
	return nil
}
