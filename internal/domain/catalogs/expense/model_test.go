package expense

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/types"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		expense *Expense
		wantErr bool
	}{
		{
			name: "valid",
			expense: func() *Expense {
				e := New("Rent")
				e.Amount = types.MustMoney("500.00")
				return e
			}(),
		},
		{
			name:    "missing name and amount",
			expense: New(""),
			wantErr: true,
		},
		{
			name: "negative amount",
			expense: func() *Expense {
				e := New("Rent")
				e.Amount = types.MustMoney("-5")
				return e
			}(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.expense.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidate_ReportsBothMissingFields(t *testing.T) {
	err := New("").Validate()
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	fields := appErr.Details["missingFields"].([]apperror.MissingField)
	assert.Len(t, fields, 2)
}
