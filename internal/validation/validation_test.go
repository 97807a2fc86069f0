package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/sitesettle/internal/models"
)

func validDebt() models.MaterialDebt {
	return models.MaterialDebt{
		DebtorSiteID:   "site-a",
		CreditorSiteID: "site-b",
		MaterialID:     "cement",
		MaterialName:   "Cement",
		Unit:           "bag",
		Quantity:       decimal.NewFromInt(10),
		TotalAmount:    decimal.RequireFromString("4250.00"),
	}
}

func TestStruct_MaterialDebt(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *models.MaterialDebt)
		wantErr string
	}{
		{name: "valid", mutate: func(d *models.MaterialDebt) {}},
		{
			name:    "same site on both sides",
			mutate:  func(d *models.MaterialDebt) { d.CreditorSiteID = d.DebtorSiteID },
			wantErr: "debtor_site_id",
		},
		{
			name:    "missing creditor",
			mutate:  func(d *models.MaterialDebt) { d.CreditorSiteID = "" },
			wantErr: "creditor_site_id",
		},
		{
			name:    "missing material",
			mutate:  func(d *models.MaterialDebt) { d.MaterialID = "" },
			wantErr: "material_id",
		},
		{
			name:    "negative amount",
			mutate:  func(d *models.MaterialDebt) { d.TotalAmount = decimal.NewFromInt(-1) },
			wantErr: "total_amount",
		},
		{
			name:    "negative quantity",
			mutate:  func(d *models.MaterialDebt) { d.Quantity = decimal.NewFromInt(-3) },
			wantErr: "quantity",
		},
		{
			name:   "zero amount is allowed",
			mutate: func(d *models.MaterialDebt) { d.TotalAmount = decimal.Zero },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDebt()
			tt.mutate(&d)

			err := Struct(d)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
