package models

import "github.com/shopspring/decimal"

// Tolerance is the rounding slack used when comparing currency amounts.
var Tolerance = decimal.New(1, -2)

// MaterialDebt is one site's obligation to another for a single material.
type MaterialDebt struct {
	// ID identifies the usage row in the debt source. Pure computation
	// does not need it; the store assigns it on insert.
	ID string `json:"id,omitempty"`

	// DebtorSiteID is the site that used the material.
	DebtorSiteID string `json:"debtor_site_id" validate:"required,nefield=CreditorSiteID"`

	// CreditorSiteID is the site that paid the vendor and is owed reimbursement.
	CreditorSiteID string `json:"creditor_site_id" validate:"required"`

	MaterialID   string `json:"material_id" validate:"required"`
	MaterialName string `json:"material_name"`
	Unit         string `json:"unit"`

	// Quantity is the amount consumed, in Unit.
	Quantity decimal.Decimal `json:"quantity" validate:"gte=0"`

	// TotalAmount is the money owed for Quantity.
	TotalAmount decimal.Decimal `json:"total_amount" validate:"gte=0"`

	// VendorUnpaid is true while the creditor site still owes the upstream
	// vendor for this material. Such debts cannot be billed.
	VendorUnpaid bool `json:"vendor_unpaid"`
}
