package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mmynk/sitesettle/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func debt(debtor, creditor, material, amount string) models.MaterialDebt {
	return models.MaterialDebt{
		DebtorSiteID:   debtor,
		CreditorSiteID: creditor,
		MaterialID:     material,
		MaterialName:   material,
		Unit:           "bag",
		Quantity:       dec("1"),
		TotalAmount:    dec(amount),
	}
}

func unpaid(d models.MaterialDebt) models.MaterialDebt {
	d.VendorUnpaid = true
	return d
}

func balance(debtor, creditor, amount string) models.Balance {
	d := debt(debtor, creditor, "m-"+debtor+creditor, amount)
	return models.Balance{
		DebtorSiteID:      debtor,
		CreditorSiteID:    creditor,
		TotalAmountOwed:   dec(amount),
		MaterialBreakdown: []models.MaterialDebt{d},
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}
