package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/sitesettle/internal/models"
)

func mixedBalance(t *testing.T) models.Balance {
	t.Helper()
	balances := Aggregate([]models.MaterialDebt{
		debt("A", "B", "cement", "300"),
		unpaid(debt("A", "B", "steel", "500")),
		debt("A", "B", "sand", "120.25"),
		debt("A", "B", "cement", "50"),
	})
	require.Len(t, balances, 1)
	require.True(t, balances[0].HasUnpaidVendor)
	return balances[0]
}

func TestGenerateFromBalance(t *testing.T) {
	tests := []struct {
		name        string
		balance     func(t *testing.T) models.Balance
		materialIDs []string
		wantErr     error
		wantTotal   string
		wantIDs     []string
	}{
		{
			name: "whole balance",
			balance: func(t *testing.T) models.Balance {
				return Aggregate([]models.MaterialDebt{
					debt("A", "B", "cement", "300"),
					debt("A", "B", "sand", "20"),
				})[0]
			},
			wantTotal: "320",
			wantIDs:   []string{"cement", "sand"},
		},
		{
			name:    "blocked by unpaid vendor",
			balance: mixedBalance,
			wantErr: ErrVendorUnsettled,
		},
		{
			name:        "filter still includes unpaid material",
			balance:     mixedBalance,
			materialIDs: []string{"cement", "steel"},
			wantErr:     ErrVendorUnsettled,
		},
		{
			name:        "unblocked by filtering to vendor-paid materials",
			balance:     mixedBalance,
			materialIDs: []string{"cement", "sand"},
			wantTotal:   "470.25",
			wantIDs:     []string{"cement", "sand"},
		},
		{
			name:        "unknown material",
			balance:     mixedBalance,
			materialIDs: []string{"gravel"},
			wantErr:     ErrNothingToSettle,
		},
		{
			name: "selection sums to zero",
			balance: func(t *testing.T) models.Balance {
				b := Aggregate([]models.MaterialDebt{
					debt("A", "B", "cement", "0"),
					debt("A", "B", "sand", "20"),
				})[0]
				return b
			},
			materialIDs: []string{"cement"},
			wantErr:     ErrNothingToSettle,
		},
		{
			name: "empty balance",
			balance: func(t *testing.T) models.Balance {
				return models.Balance{DebtorSiteID: "A", CreditorSiteID: "B"}
			},
			wantErr: ErrNothingToSettle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := GenerateFromBalance(tt.balance(t), tt.materialIDs)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, "B", s.FromSiteID, "creditor is payee")
			assert.Equal(t, "A", s.ToSiteID, "debtor is payer")
			assertDecimal(t, tt.wantTotal, s.TotalAmount)
			assert.True(t, s.PaidAmount.IsZero())
			assert.Equal(t, models.StatusPending, s.Status)
			assert.Equal(t, models.KindBalance, s.Kind)
			assert.Equal(t, tt.wantIDs, s.MaterialIDs)
		})
	}
}

func TestSelectDebts(t *testing.T) {
	b := mixedBalance(t)

	all := SelectDebts(b, nil)
	assert.Len(t, all, 4)

	cement := SelectDebts(b, []string{"cement"})
	require.Len(t, cement, 2)
	assertDecimal(t, "300", cement[0].TotalAmount)
	assertDecimal(t, "50", cement[1].TotalAmount)
}

func TestGenerateNet(t *testing.T) {
	t.Run("difference is billed to the net payer", func(t *testing.T) {
		pair := NetPair(balance("A", "B", "100"), balance("B", "A", "40"))

		result, err := GenerateNet(pair)
		require.NoError(t, err)
		require.NotNil(t, result.Settlement)

		s := result.Settlement
		assert.Equal(t, "B", s.FromSiteID)
		assert.Equal(t, "A", s.ToSiteID)
		assertDecimal(t, "60", s.TotalAmount)
		assertDecimal(t, "40", s.OffsetAmount)
		assert.Equal(t, models.KindNet, s.Kind)
		assert.Equal(t, models.StatusPending, s.Status)
		assert.Equal(t, []string{"m-AB", "m-BA"}, s.MaterialIDs)

		assertDecimal(t, "40", result.Offset.OffsetAmount)
		assertDecimal(t, "60", result.Offset.NetRemaining)
		assert.Equal(t, "A", result.Offset.NetPayerSiteID)
	})

	t.Run("fully net pair records only the offset", func(t *testing.T) {
		pair := NetPair(balance("A", "B", "50"), balance("B", "A", "50"))

		result, err := GenerateNet(pair)
		require.NoError(t, err)
		assert.Nil(t, result.Settlement)
		assertDecimal(t, "50", result.Offset.OffsetAmount)
		assert.True(t, result.Offset.NetRemaining.IsZero())
		assert.Equal(t, "A", result.Offset.SiteAID)
		assert.Equal(t, "B", result.Offset.SiteBID)
	})

	t.Run("unpaid vendor on either side blocks netting", func(t *testing.T) {
		b := balance("B", "A", "40")
		b.HasUnpaidVendor = true

		_, err := GenerateNet(NetPair(balance("A", "B", "100"), b))
		require.ErrorIs(t, err, ErrVendorUnsettled)
	})
}
