package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/sitesettle/internal/models"
)

// pairKey identifies a directed debtor → creditor pair.
type pairKey struct {
	debtor   string
	creditor string
}

// Aggregate groups debts into one Balance per (debtor, creditor) pair.
//
// Direction matters: A owing B and B owing A are separate balances. Groups
// appear in the order their first debt was seen, and each group's breakdown
// keeps input order. Groups that sum to exactly zero are dropped.
func Aggregate(debts []models.MaterialDebt) []models.Balance {
	index := make(map[pairKey]int)
	var groups []*models.Balance

	for _, d := range debts {
		key := pairKey{debtor: d.DebtorSiteID, creditor: d.CreditorSiteID}
		i, exists := index[key]
		if !exists {
			i = len(groups)
			index[key] = i
			groups = append(groups, &models.Balance{
				DebtorSiteID:    d.DebtorSiteID,
				CreditorSiteID:  d.CreditorSiteID,
				TotalAmountOwed: decimal.Zero,
			})
		}

		b := groups[i]
		b.TotalAmountOwed = b.TotalAmountOwed.Add(d.TotalAmount)
		b.MaterialBreakdown = append(b.MaterialBreakdown, d)
		if d.VendorUnpaid {
			b.HasUnpaidVendor = true
		}
	}

	balances := make([]models.Balance, 0, len(groups))
	for _, b := range groups {
		if b.TotalAmountOwed.IsZero() {
			continue
		}
		balances = append(balances, *b)
	}
	return balances
}

// FindBalance returns the balance owed by debtor to creditor, if any.
func FindBalance(balances []models.Balance, debtorSiteID, creditorSiteID string) (models.Balance, bool) {
	for _, b := range balances {
		if b.DebtorSiteID == debtorSiteID && b.CreditorSiteID == creditorSiteID {
			return b, true
		}
	}
	return models.Balance{}, false
}

// SummarizeSites computes each site's position across all balances,
// sorted by site ID.
func SummarizeSites(balances []models.Balance) []models.SiteSummary {
	summaries := make(map[string]*models.SiteSummary)
	get := func(siteID string) *models.SiteSummary {
		s, exists := summaries[siteID]
		if !exists {
			s = &models.SiteSummary{
				SiteID:     siteID,
				OwedToSite: decimal.Zero,
				OwedBySite: decimal.Zero,
			}
			summaries[siteID] = s
		}
		return s
	}

	for _, b := range balances {
		get(b.CreditorSiteID).OwedToSite = get(b.CreditorSiteID).OwedToSite.Add(b.TotalAmountOwed)
		get(b.DebtorSiteID).OwedBySite = get(b.DebtorSiteID).OwedBySite.Add(b.TotalAmountOwed)
	}

	result := make([]models.SiteSummary, 0, len(summaries))
	for _, s := range summaries {
		s.Net = s.OwedToSite.Sub(s.OwedBySite)
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SiteID < result[j].SiteID
	})
	return result
}
