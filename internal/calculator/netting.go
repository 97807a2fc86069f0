package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/sitesettle/internal/models"
)

// Netting splits balances into reciprocal pairs and everything left over.
type Netting struct {
	Pairs     []models.ReciprocalPair
	Remainder []models.Balance
}

// DetectReciprocalPairs pairs each balance with the first later balance that
// runs in the opposite direction between the same two sites.
//
// Pairing is greedy and each balance joins at most one pair, so
// len(Pairs)*2 + len(Remainder) == len(balances). Unpaired balances keep
// their input order. The input slice is not modified.
func DetectReciprocalPairs(balances []models.Balance) Netting {
	used := make([]bool, len(balances))
	var netting Netting

	for i := range balances {
		if used[i] {
			continue
		}
		for j := i + 1; j < len(balances); j++ {
			if used[j] {
				continue
			}
			if isReciprocal(balances[i], balances[j]) {
				used[i], used[j] = true, true
				netting.Pairs = append(netting.Pairs, NetPair(balances[i], balances[j]))
				break
			}
		}
	}

	for i, b := range balances {
		if !used[i] {
			netting.Remainder = append(netting.Remainder, b)
		}
	}
	return netting
}

// FindPair returns the reciprocal pair between two sites, in either order.
func FindPair(pairs []models.ReciprocalPair, siteA, siteB string) (models.ReciprocalPair, bool) {
	for _, p := range pairs {
		if (p.A.DebtorSiteID == siteA && p.A.CreditorSiteID == siteB) ||
			(p.A.DebtorSiteID == siteB && p.A.CreditorSiteID == siteA) {
			return p, true
		}
	}
	return models.ReciprocalPair{}, false
}

func isReciprocal(a, b models.Balance) bool {
	return a.DebtorSiteID == b.CreditorSiteID && a.CreditorSiteID == b.DebtorSiteID
}

// NetPair offsets two reciprocal balances against each other.
//
// The debtor of the larger balance pays the difference. When both are equal
// the site with the smaller ID is recorded as payer, so the result does not
// depend on argument order.
func NetPair(a, b models.Balance) models.ReciprocalPair {
	owedA, owedB := a.TotalAmountOwed, b.TotalAmountOwed

	larger := a
	switch cmp := owedA.Cmp(owedB); {
	case cmp < 0:
		larger = b
	case cmp == 0 && b.DebtorSiteID < a.DebtorSiteID:
		larger = b
	}

	return models.ReciprocalPair{
		A:                 a,
		B:                 b,
		OffsetAmount:      decimal.Min(owedA, owedB),
		NetRemaining:      owedA.Sub(owedB).Abs().Round(2),
		NetPayerSiteID:    larger.DebtorSiteID,
		NetReceiverSiteID: larger.CreditorSiteID,
	}
}
