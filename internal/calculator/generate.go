package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/sitesettle/internal/models"
)

// NetResult is the outcome of netting a reciprocal pair.
type NetResult struct {
	// Offset is always present, even when nothing is left to pay.
	Offset models.NetOffset

	// Settlement bills the net remainder. Nil when the pair nets to zero.
	Settlement *models.Settlement
}

// SelectDebts returns the debts of b whose material is in materialIDs,
// in breakdown order. An empty filter selects every debt.
func SelectDebts(b models.Balance, materialIDs []string) []models.MaterialDebt {
	if len(materialIDs) == 0 {
		return append([]models.MaterialDebt(nil), b.MaterialBreakdown...)
	}

	wanted := make(map[string]bool, len(materialIDs))
	for _, id := range materialIDs {
		wanted[id] = true
	}

	var selected []models.MaterialDebt
	for _, d := range b.MaterialBreakdown {
		if wanted[d.MaterialID] {
			selected = append(selected, d)
		}
	}
	return selected
}

// GenerateFromBalance bills a balance, or only the given materials of it.
//
// The creditor site becomes the payee and the debtor site the payer. Any
// selected debt that is still vendor-unpaid blocks generation; narrowing
// materialIDs to vendor-paid materials lifts the block.
func GenerateFromBalance(b models.Balance, materialIDs []string) (models.Settlement, error) {
	selected := SelectDebts(b, materialIDs)
	if len(selected) == 0 {
		return models.Settlement{}, fmt.Errorf("%w: no open debts from %s to %s match selection",
			ErrNothingToSettle, b.DebtorSiteID, b.CreditorSiteID)
	}

	total := decimal.Zero
	for _, d := range selected {
		if d.VendorUnpaid {
			return models.Settlement{}, fmt.Errorf("%w: %s (%s) owed by %s to %s",
				ErrVendorUnsettled, d.MaterialName, d.MaterialID, d.DebtorSiteID, d.CreditorSiteID)
		}
		total = total.Add(d.TotalAmount)
	}
	if total.IsZero() {
		return models.Settlement{}, fmt.Errorf("%w: selection from %s to %s sums to zero",
			ErrNothingToSettle, b.DebtorSiteID, b.CreditorSiteID)
	}

	return models.Settlement{
		FromSiteID:   b.CreditorSiteID,
		ToSiteID:     b.DebtorSiteID,
		TotalAmount:  total,
		PaidAmount:   decimal.Zero,
		Status:       models.StatusPending,
		Kind:         models.KindBalance,
		OffsetAmount: decimal.Zero,
		MaterialIDs:  distinctMaterialIDs(selected),
	}, nil
}

// GenerateNet settles a reciprocal pair with a single payment for the
// difference, from the net payer to the net receiver.
func GenerateNet(p models.ReciprocalPair) (NetResult, error) {
	for _, b := range []models.Balance{p.A, p.B} {
		if b.HasUnpaidVendor {
			return NetResult{}, fmt.Errorf("%w: balance from %s to %s",
				ErrVendorUnsettled, b.DebtorSiteID, b.CreditorSiteID)
		}
	}

	all := make([]models.MaterialDebt, 0, len(p.A.MaterialBreakdown)+len(p.B.MaterialBreakdown))
	all = append(all, p.A.MaterialBreakdown...)
	all = append(all, p.B.MaterialBreakdown...)
	ids := distinctMaterialIDs(all)

	result := NetResult{
		Offset: models.NetOffset{
			SiteAID:           p.A.DebtorSiteID,
			SiteBID:           p.A.CreditorSiteID,
			OffsetAmount:      p.OffsetAmount,
			NetRemaining:      p.NetRemaining,
			NetPayerSiteID:    p.NetPayerSiteID,
			NetReceiverSiteID: p.NetReceiverSiteID,
			MaterialIDs:       ids,
		},
	}

	if p.NetRemaining.IsZero() {
		return result, nil
	}

	result.Settlement = &models.Settlement{
		FromSiteID:   p.NetReceiverSiteID,
		ToSiteID:     p.NetPayerSiteID,
		TotalAmount:  p.NetRemaining,
		PaidAmount:   decimal.Zero,
		Status:       models.StatusPending,
		Kind:         models.KindNet,
		OffsetAmount: p.OffsetAmount,
		MaterialIDs:  ids,
	}
	return result, nil
}

// distinctMaterialIDs returns the distinct material IDs of debts in first-seen order.
func distinctMaterialIDs(debts []models.MaterialDebt) []string {
	seen := make(map[string]bool, len(debts))
	ids := make([]string, 0, len(debts))
	for _, d := range debts {
		if seen[d.MaterialID] {
			continue
		}
		seen[d.MaterialID] = true
		ids = append(ids, d.MaterialID)
	}
	return ids
}
