package dto

import (
	"time"

	"tillpoint/internal/core/types"
	"tillpoint/internal/domain/catalogs/stockitem"
)

// CreateStockItemRequest for adding a product to the ledger.
type CreateStockItemRequest struct {
	Name         string      `json:"name" binding:"required"`
	Quantity     int64       `json:"quantity" binding:"min=0"`
	UnitPrice    types.Money `json:"unitPrice"`
	SalePrice    types.Money `json:"salePrice"`
	Supplier     string      `json:"supplier" binding:"required"`
	RackNo       string      `json:"rackNo"`
	PurchaseDate string      `json:"purchaseDate"`
	Warranty     *string     `json:"warranty"`
}

// ToEntity converts the request to a stock item.
func (r *CreateStockItemRequest) ToEntity() *stockitem.StockItem {
	item := stockitem.New(r.Name)
	item.Quantity = r.Quantity
	item.UnitPrice = r.UnitPrice
	item.SalePrice = r.SalePrice
	item.Supplier = r.Supplier
	item.RackNo = r.RackNo
	item.Warranty = r.Warranty
	item.PurchaseDate = time.Now()
	if r.PurchaseDate != "" {
		if ts, err := time.Parse("2006-01-02", r.PurchaseDate); err == nil {
			item.PurchaseDate = ts
		}
	}
	return item
}

// UpdateStockItemRequest for a full product update.
type UpdateStockItemRequest struct {
	Name         string      `json:"name" binding:"required"`
	Quantity     int64       `json:"quantity" binding:"min=0"`
	UnitPrice    types.Money `json:"unitPrice"`
	SalePrice    types.Money `json:"salePrice"`
	Supplier     string      `json:"supplier" binding:"required"`
	RackNo       string      `json:"rackNo"`
	PurchaseDate string      `json:"purchaseDate"`
	Warranty     *string     `json:"warranty"`
	Version      int         `json:"version" binding:"required,min=1"`
}

// Apply copies the request onto an existing item.
func (r *UpdateStockItemRequest) Apply(item *stockitem.StockItem) {
	item.Name = r.Name
	item.Quantity = r.Quantity
	item.UnitPrice = r.UnitPrice
	item.SalePrice = r.SalePrice
	item.TotalPrice = r.UnitPrice.Mul(types.NewMoneyFromInt(r.Quantity))
	item.Supplier = r.Supplier
	item.RackNo = r.RackNo
	item.Warranty = r.Warranty
	if r.PurchaseDate != "" {
		if ts, err := time.Parse("2006-01-02", r.PurchaseDate); err == nil {
			item.PurchaseDate = ts
		}
	}
	item.Version = r.Version
	item.Touch()
}

// RestockRequest adds a purchased batch to an existing item.
type RestockRequest struct {
	Quantity  int64       `json:"quantity" binding:"required,min=1"`
	UnitPrice types.Money `json:"unitPrice"`
	SalePrice types.Money `json:"salePrice"`
}

// ToInput converts the request to service input.
func (r *RestockRequest) ToInput() stockitem.RestockInput {
	return stockitem.RestockInput{
		Quantity:  r.Quantity,
		UnitPrice: r.UnitPrice,
		SalePrice: r.SalePrice,
	}
}

// StockListRequest filters the stock listing.
type StockListRequest struct {
	PaginationRequest
	Search string `form:"search"`
}
