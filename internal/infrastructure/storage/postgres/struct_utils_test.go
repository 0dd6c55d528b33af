package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tillpoint/internal/core/entity"
	"tillpoint/internal/core/types"
	"tillpoint/internal/domain/billing"
	"tillpoint/internal/domain/catalogs/stockitem"
)

type mockCatalog struct {
	entity.Base
	Name    string      `db:"name" json:"name"`
	Skipped string      `db:"-" json:"skipped"`
	NoTag   string      `json:"noTag"`
	Amount  types.Money `db:"amount" json:"amount"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expected := []string{"id", "code", "deletion_mark", "version", "created_at", "updated_at", "name", "amount"}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}
	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "skipped")
	assert.Len(t, cols, len(expected))
}

func TestExtractDBColumns_PointerType(t *testing.T) {
	assert.Equal(t, ExtractDBColumns[mockCatalog](), ExtractDBColumns[*mockCatalog]())
}

func TestExtractDBColumns_SkipsUnmappedCollections(t *testing.T) {
	cols := ExtractDBColumns[billing.Bill]()

	assert.Contains(t, cols, "staff_name")
	assert.Contains(t, cols, "remaining_amount")
	assert.NotContains(t, cols, "items", "lines live in their own table")
	assert.NotContains(t, cols, "paymentHistory")
}

func TestStructToMap(t *testing.T) {
	cat := mockCatalog{
		Base:    entity.NewBase(),
		Name:    "Test Name",
		Skipped: "never stored",
		Amount:  types.MustMoney("12.50"),
	}
	cat.Code = "X0001"
	cat.DeletionMark = true

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, "X0001", m["code"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 1, m["version"])
	assert.Equal(t, "Test Name", m["name"])
	assert.True(t, m["amount"].(types.Money).Equal(types.MustMoney("12.50")))
	assert.NotContains(t, m, "skipped")
	assert.NotContains(t, m, "-")
}

func TestStructToMap_Pointer(t *testing.T) {
	item := stockitem.New("Soap")
	item.Quantity = 3
	item.UnitPrice = types.MustMoney("2.00")

	m := StructToMap(item)

	assert.Equal(t, "Soap", m["name"])
	assert.Equal(t, int64(3), m["quantity"])
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("not a struct"))
}
