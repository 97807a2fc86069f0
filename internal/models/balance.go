package models

import "github.com/shopspring/decimal"

// Balance is everything one site owes another, across all materials.
// It is recomputed from open debts whenever needed.
type Balance struct {
	DebtorSiteID   string
	CreditorSiteID string

	// TotalAmountOwed is the sum of MaterialBreakdown[].TotalAmount.
	TotalAmountOwed decimal.Decimal

	// MaterialBreakdown lists the contributing debts in first-seen order.
	MaterialBreakdown []MaterialDebt

	// HasUnpaidVendor is true if any contributing debt is vendor-unpaid.
	HasUnpaidVendor bool
}

// DebtIDs returns the IDs of the contributing debts, skipping empty ones.
func (b Balance) DebtIDs() []string {
	ids := make([]string, 0, len(b.MaterialBreakdown))
	for _, d := range b.MaterialBreakdown {
		if d.ID != "" {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

// ReciprocalPair is two balances where each site owes the other.
type ReciprocalPair struct {
	A Balance
	B Balance

	// OffsetAmount is the part of each balance cancelled by netting.
	OffsetAmount decimal.Decimal

	// NetRemaining is |A - B| rounded to cents.
	NetRemaining decimal.Decimal

	NetPayerSiteID    string
	NetReceiverSiteID string
}

// SiteSummary is one site's position across all its balances.
type SiteSummary struct {
	SiteID string

	// OwedToSite is what other sites owe this one.
	OwedToSite decimal.Decimal

	// OwedBySite is what this site owes others.
	OwedBySite decimal.Decimal

	// Net is OwedToSite - OwedBySite. Positive means the site is owed money.
	Net decimal.Decimal
}
