package service

import (
	"github.com/mmynk/sitesettle/internal/calculator"
	"github.com/mmynk/sitesettle/internal/models"
	"github.com/mmynk/sitesettle/pkg/api"
)

func siteToAPI(s *models.Site) api.Site {
	return api.Site{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt}
}

func debtFromAPI(d api.MaterialDebt) models.MaterialDebt {
	return models.MaterialDebt{
		ID:             d.ID,
		DebtorSiteID:   d.DebtorSiteID,
		CreditorSiteID: d.CreditorSiteID,
		MaterialID:     d.MaterialID,
		MaterialName:   d.MaterialName,
		Unit:           d.Unit,
		Quantity:       d.Quantity,
		TotalAmount:    d.TotalAmount,
		VendorUnpaid:   d.VendorUnpaid,
	}
}

func debtToAPI(d models.MaterialDebt) api.MaterialDebt {
	return api.MaterialDebt{
		ID:             d.ID,
		DebtorSiteID:   d.DebtorSiteID,
		CreditorSiteID: d.CreditorSiteID,
		MaterialID:     d.MaterialID,
		MaterialName:   d.MaterialName,
		Unit:           d.Unit,
		Quantity:       d.Quantity,
		TotalAmount:    d.TotalAmount,
		VendorUnpaid:   d.VendorUnpaid,
	}
}

func balanceToAPI(b models.Balance) api.Balance {
	materials := make([]api.MaterialDebt, len(b.MaterialBreakdown))
	for i, d := range b.MaterialBreakdown {
		materials[i] = debtToAPI(d)
	}
	return api.Balance{
		DebtorSiteID:    b.DebtorSiteID,
		CreditorSiteID:  b.CreditorSiteID,
		TotalAmountOwed: b.TotalAmountOwed,
		HasUnpaidVendor: b.HasUnpaidVendor,
		Materials:       materials,
	}
}

func balancesToAPI(balances []models.Balance) []api.Balance {
	out := make([]api.Balance, len(balances))
	for i, b := range balances {
		out[i] = balanceToAPI(b)
	}
	return out
}

func pairToAPI(p models.ReciprocalPair) api.ReciprocalPair {
	return api.ReciprocalPair{
		A:                 balanceToAPI(p.A),
		B:                 balanceToAPI(p.B),
		OffsetAmount:      p.OffsetAmount,
		NetRemaining:      p.NetRemaining,
		NetPayerSiteID:    p.NetPayerSiteID,
		NetReceiverSiteID: p.NetReceiverSiteID,
	}
}

// settlementToAPI fills in the derived remaining amount and payment state.
func settlementToAPI(s *models.Settlement) api.Settlement {
	return api.Settlement{
		ID:              s.ID,
		FromSiteID:      s.FromSiteID,
		ToSiteID:        s.ToSiteID,
		TotalAmount:     s.TotalAmount,
		PaidAmount:      s.PaidAmount,
		RemainingAmount: calculator.Remaining(*s),
		OffsetAmount:    s.OffsetAmount,
		Status:          string(s.Status),
		Kind:            string(s.Kind),
		PaymentState:    string(calculator.PaymentStateOf(*s)),
		MaterialIDs:     s.MaterialIDs,
		Note:            s.Note,
		CreatedAt:       s.CreatedAt,
	}
}

func offsetToAPI(o *models.NetOffset) api.NetOffset {
	return api.NetOffset{
		ID:                o.ID,
		SiteAID:           o.SiteAID,
		SiteBID:           o.SiteBID,
		OffsetAmount:      o.OffsetAmount,
		NetRemaining:      o.NetRemaining,
		NetPayerSiteID:    o.NetPayerSiteID,
		NetReceiverSiteID: o.NetReceiverSiteID,
		MaterialIDs:       o.MaterialIDs,
		SettlementID:      o.SettlementID,
		CreatedAt:         o.CreatedAt,
	}
}

func paymentToAPI(p *models.Payment) api.Payment {
	return api.Payment{ID: p.ID, Amount: p.Amount, Note: p.Note, PaidAt: p.PaidAt}
}
