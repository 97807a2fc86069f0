package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/sitesettle/internal/storage/sqlite"
	"github.com/mmynk/sitesettle/pkg/api"
	"github.com/mmynk/sitesettle/pkg/api/apiconnect"
)

// setupTestServer creates a test server backed by a temporary SQLite database.
func setupTestServer(t *testing.T) apiconnect.SettlementServiceClient {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	path, handler := apiconnect.NewSettlementServiceHandler(NewSettlementService(store))
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return apiconnect.NewSettlementServiceClient(http.DefaultClient, server.URL)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func recordDebt(t *testing.T, client apiconnect.SettlementServiceClient, debtor, creditor, material, amount string, vendorUnpaid bool) api.MaterialDebt {
	t.Helper()
	resp, err := client.RecordDebt(context.Background(), connect.NewRequest(&api.RecordDebtRequest{
		Debt: api.MaterialDebt{
			DebtorSiteID:   debtor,
			CreditorSiteID: creditor,
			MaterialID:     material,
			MaterialName:   material,
			Unit:           "bag",
			Quantity:       dec("1"),
			TotalAmount:    dec(amount),
			VendorUnpaid:   vendorUnpaid,
		},
	}))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Msg.Debt.ID)
	return resp.Msg.Debt
}

func assertCode(t *testing.T, want connect.Code, err error) {
	t.Helper()
	require.Error(t, err)
	var connectErr *connect.Error
	require.True(t, errors.As(err, &connectErr), "expected connect error, got %v", err)
	assert.Equal(t, want, connectErr.Code(), connectErr.Message())
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "expected %s, got %s", want, got.String())
}

func TestCreateAndListSites(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	for _, name := range []string{"Riverside Tower", "Airport Depot"} {
		resp, err := client.CreateSite(ctx, connect.NewRequest(&api.CreateSiteRequest{Name: name}))
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Msg.Site.ID)
		assert.NotZero(t, resp.Msg.Site.CreatedAt)
	}

	resp, err := client.ListSites(ctx, connect.NewRequest(&api.ListSitesRequest{}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Sites, 2)
	assert.Equal(t, "Airport Depot", resp.Msg.Sites[0].Name)

	_, err = client.CreateSite(ctx, connect.NewRequest(&api.CreateSiteRequest{}))
	assertCode(t, connect.CodeInvalidArgument, err)

	// Blank after trimming passes the request check and is refused by the store.
	_, err = client.CreateSite(ctx, connect.NewRequest(&api.CreateSiteRequest{Name: "   "}))
	assertCode(t, connect.CodeInvalidArgument, err)
}

func TestRecordDebt_Validation(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name string
		debt api.MaterialDebt
	}{
		{
			name: "same site",
			debt: api.MaterialDebt{DebtorSiteID: "A", CreditorSiteID: "A", MaterialID: "m", TotalAmount: dec("1")},
		},
		{
			name: "missing material",
			debt: api.MaterialDebt{DebtorSiteID: "A", CreditorSiteID: "B", TotalAmount: dec("1")},
		},
		{
			name: "negative amount",
			debt: api.MaterialDebt{DebtorSiteID: "A", CreditorSiteID: "B", MaterialID: "m", TotalAmount: dec("-5")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.RecordDebt(ctx, connect.NewRequest(&api.RecordDebtRequest{Debt: tt.debt}))
			assertCode(t, connect.CodeInvalidArgument, err)
		})
	}
}

func TestListBalances(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	recordDebt(t, client, "A", "B", "cement", "1000", false)
	recordDebt(t, client, "A", "B", "steel", "500", false)
	recordDebt(t, client, "C", "B", "sand", "200", true)

	resp, err := client.ListBalances(ctx, connect.NewRequest(&api.ListBalancesRequest{}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Balances, 2)

	ab := resp.Msg.Balances[0]
	assert.Equal(t, "A", ab.DebtorSiteID)
	assert.Equal(t, "B", ab.CreditorSiteID)
	assertDecimal(t, "1500", ab.TotalAmountOwed)
	assert.Len(t, ab.Materials, 2)
	assert.False(t, ab.HasUnpaidVendor)
	assert.True(t, resp.Msg.Balances[1].HasUnpaidVendor)

	require.Len(t, resp.Msg.Sites, 3)
	assert.Equal(t, "B", resp.Msg.Sites[1].SiteID)
	assertDecimal(t, "1700", resp.Msg.Sites[1].Net)

	scoped, err := client.ListBalances(ctx, connect.NewRequest(&api.ListBalancesRequest{SiteID: "C"}))
	require.NoError(t, err)
	require.Len(t, scoped.Msg.Balances, 1)
	assert.Equal(t, "C", scoped.Msg.Balances[0].DebtorSiteID)
}

func TestGetNetting(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	recordDebt(t, client, "A", "B", "cement", "1000", false)
	recordDebt(t, client, "B", "A", "steel", "600", false)
	recordDebt(t, client, "C", "A", "sand", "50", false)

	resp, err := client.GetNetting(ctx, connect.NewRequest(&api.GetNettingRequest{}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Pairs, 1)
	require.Len(t, resp.Msg.Remainder, 1)

	pair := resp.Msg.Pairs[0]
	assertDecimal(t, "600", pair.OffsetAmount)
	assertDecimal(t, "400", pair.NetRemaining)
	assert.Equal(t, "A", pair.NetPayerSiteID)
	assert.Equal(t, "B", pair.NetReceiverSiteID)
	assert.Equal(t, "C", resp.Msg.Remainder[0].DebtorSiteID)
}

func TestGenerateSettlement(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	recordDebt(t, client, "A", "B", "cement", "1000", false)
	recordDebt(t, client, "A", "B", "steel", "250.50", true)

	t.Run("vendor unpaid blocks the whole balance", func(t *testing.T) {
		_, err := client.GenerateSettlement(ctx, connect.NewRequest(&api.GenerateSettlementRequest{
			DebtorSiteID: "A", CreditorSiteID: "B",
		}))
		assertCode(t, connect.CodeFailedPrecondition, err)
	})

	t.Run("selecting paid materials succeeds", func(t *testing.T) {
		resp, err := client.GenerateSettlement(ctx, connect.NewRequest(&api.GenerateSettlementRequest{
			DebtorSiteID: "A", CreditorSiteID: "B", MaterialIDs: []string{"cement"}, Note: "March",
		}))
		require.NoError(t, err)

		s := resp.Msg.Settlement
		assert.Equal(t, "B", s.FromSiteID)
		assert.Equal(t, "A", s.ToSiteID)
		assertDecimal(t, "1000", s.TotalAmount)
		assertDecimal(t, "1000", s.RemainingAmount)
		assert.Equal(t, "pending", s.Status)
		assert.Equal(t, "pending", s.PaymentState)
		assert.Equal(t, "balance", s.Kind)
		assert.Equal(t, []string{"cement"}, s.MaterialIDs)
		assert.Equal(t, "March", s.Note)
	})

	t.Run("billed debts leave the open balance", func(t *testing.T) {
		_, err := client.GenerateSettlement(ctx, connect.NewRequest(&api.GenerateSettlementRequest{
			DebtorSiteID: "A", CreditorSiteID: "B", MaterialIDs: []string{"cement"},
		}))
		assertCode(t, connect.CodeFailedPrecondition, err)

		resp, err := client.ListBalances(ctx, connect.NewRequest(&api.ListBalancesRequest{}))
		require.NoError(t, err)
		require.Len(t, resp.Msg.Balances, 1)
		assertDecimal(t, "250.50", resp.Msg.Balances[0].TotalAmountOwed)
	})

	t.Run("vendor paid lifts the block", func(t *testing.T) {
		paid, err := client.MarkVendorPaid(ctx, connect.NewRequest(&api.MarkVendorPaidRequest{
			CreditorSiteID: "B", MaterialID: "steel",
		}))
		require.NoError(t, err)
		assert.Equal(t, 1, paid.Msg.UpdatedDebts)

		resp, err := client.GenerateSettlement(ctx, connect.NewRequest(&api.GenerateSettlementRequest{
			DebtorSiteID: "A", CreditorSiteID: "B",
		}))
		require.NoError(t, err)
		assertDecimal(t, "250.50", resp.Msg.Settlement.TotalAmount)
	})

	t.Run("no balance", func(t *testing.T) {
		_, err := client.GenerateSettlement(ctx, connect.NewRequest(&api.GenerateSettlementRequest{
			DebtorSiteID: "B", CreditorSiteID: "A",
		}))
		assertCode(t, connect.CodeFailedPrecondition, err)
	})

	t.Run("same site", func(t *testing.T) {
		_, err := client.GenerateSettlement(ctx, connect.NewRequest(&api.GenerateSettlementRequest{
			DebtorSiteID: "A", CreditorSiteID: "A",
		}))
		assertCode(t, connect.CodeInvalidArgument, err)
	})
}

func TestNetSettle(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	recordDebt(t, client, "A", "B", "cement", "1000", false)
	recordDebt(t, client, "A", "B", "sand", "200", false)
	recordDebt(t, client, "B", "A", "steel", "700", false)

	resp, err := client.NetSettle(ctx, connect.NewRequest(&api.NetSettleRequest{SiteAID: "B", SiteBID: "A"}))
	require.NoError(t, err)

	offset := resp.Msg.Offset
	assert.NotEmpty(t, offset.ID)
	assertDecimal(t, "700", offset.OffsetAmount)
	assertDecimal(t, "500", offset.NetRemaining)
	assert.Equal(t, "A", offset.NetPayerSiteID)
	assert.Equal(t, "B", offset.NetReceiverSiteID)
	assert.ElementsMatch(t, []string{"cement", "sand", "steel"}, offset.MaterialIDs)

	require.NotNil(t, resp.Msg.Settlement)
	s := resp.Msg.Settlement
	assert.Equal(t, offset.SettlementID, s.ID)
	assert.Equal(t, "net", s.Kind)
	assert.Equal(t, "B", s.FromSiteID)
	assert.Equal(t, "A", s.ToSiteID)
	assertDecimal(t, "500", s.TotalAmount)
	assertDecimal(t, "700", s.OffsetAmount)

	// Both balances are consumed.
	balances, err := client.ListBalances(ctx, connect.NewRequest(&api.ListBalancesRequest{}))
	require.NoError(t, err)
	assert.Empty(t, balances.Msg.Balances)

	_, err = client.NetSettle(ctx, connect.NewRequest(&api.NetSettleRequest{SiteAID: "A", SiteBID: "B"}))
	assertCode(t, connect.CodeFailedPrecondition, err)
}

func TestNetSettle_FullyNet(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	recordDebt(t, client, "A", "B", "cement", "300", false)
	recordDebt(t, client, "B", "A", "steel", "300", false)

	resp, err := client.NetSettle(ctx, connect.NewRequest(&api.NetSettleRequest{SiteAID: "A", SiteBID: "B"}))
	require.NoError(t, err)
	assert.Nil(t, resp.Msg.Settlement)
	assertDecimal(t, "300", resp.Msg.Offset.OffsetAmount)
	assertDecimal(t, "0", resp.Msg.Offset.NetRemaining)
	assert.Empty(t, resp.Msg.Offset.SettlementID)

	list, err := client.ListSettlements(ctx, connect.NewRequest(&api.ListSettlementsRequest{}))
	require.NoError(t, err)
	assert.Empty(t, list.Msg.Settlements)

	// The offset is the only record of the netting.
	got, err := client.GetNetOffset(ctx, connect.NewRequest(&api.GetNetOffsetRequest{OffsetID: resp.Msg.Offset.ID}))
	require.NoError(t, err)
	assertDecimal(t, "300", got.Msg.Offset.OffsetAmount)
	assert.Equal(t, "A", got.Msg.Offset.NetPayerSiteID)
	assert.ElementsMatch(t, []string{"cement", "steel"}, got.Msg.Offset.MaterialIDs)

	offsets, err := client.ListNetOffsets(ctx, connect.NewRequest(&api.ListNetOffsetsRequest{SiteID: "B"}))
	require.NoError(t, err)
	require.Len(t, offsets.Msg.Offsets, 1)
	assert.Equal(t, resp.Msg.Offset.ID, offsets.Msg.Offsets[0].ID)

	offsets, err = client.ListNetOffsets(ctx, connect.NewRequest(&api.ListNetOffsetsRequest{SiteID: "C"}))
	require.NoError(t, err)
	assert.Empty(t, offsets.Msg.Offsets)

	_, err = client.GetNetOffset(ctx, connect.NewRequest(&api.GetNetOffsetRequest{OffsetID: "missing"}))
	assertCode(t, connect.CodeNotFound, err)

	netting, err := client.GetNetting(ctx, connect.NewRequest(&api.GetNettingRequest{}))
	require.NoError(t, err)
	assert.Empty(t, netting.Msg.Pairs)
}

func TestNetSettle_VendorUnpaid(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	recordDebt(t, client, "A", "B", "cement", "1000", false)
	recordDebt(t, client, "B", "A", "steel", "700", true)

	_, err := client.NetSettle(ctx, connect.NewRequest(&api.NetSettleRequest{SiteAID: "A", SiteBID: "B"}))
	assertCode(t, connect.CodeFailedPrecondition, err)

	netting, err := client.GetNetting(ctx, connect.NewRequest(&api.GetNettingRequest{}))
	require.NoError(t, err)
	assert.Len(t, netting.Msg.Pairs, 1)
}

func TestApplyPayment(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	recordDebt(t, client, "A", "B", "cement", "1000", false)
	gen, err := client.GenerateSettlement(ctx, connect.NewRequest(&api.GenerateSettlementRequest{
		DebtorSiteID: "A", CreditorSiteID: "B",
	}))
	require.NoError(t, err)
	id := gen.Msg.Settlement.ID

	t.Run("partial", func(t *testing.T) {
		resp, err := client.ApplyPayment(ctx, connect.NewRequest(&api.ApplyPaymentRequest{
			SettlementID: id, Amount: dec("400"), Note: "first instalment",
		}))
		require.NoError(t, err)
		assertDecimal(t, "400", resp.Msg.Settlement.PaidAmount)
		assertDecimal(t, "600", resp.Msg.Settlement.RemainingAmount)
		assert.Equal(t, "partially_paid", resp.Msg.Settlement.PaymentState)
		assert.NotEmpty(t, resp.Msg.Payment.ID)
	})

	t.Run("overpayment rejected", func(t *testing.T) {
		_, err := client.ApplyPayment(ctx, connect.NewRequest(&api.ApplyPaymentRequest{
			SettlementID: id, Amount: dec("600.02"),
		}))
		assertCode(t, connect.CodeInvalidArgument, err)
	})

	t.Run("non-positive rejected", func(t *testing.T) {
		_, err := client.ApplyPayment(ctx, connect.NewRequest(&api.ApplyPaymentRequest{
			SettlementID: id, Amount: dec("0"),
		}))
		assertCode(t, connect.CodeInvalidArgument, err)
	})

	t.Run("within tolerance settles", func(t *testing.T) {
		resp, err := client.ApplyPayment(ctx, connect.NewRequest(&api.ApplyPaymentRequest{
			SettlementID: id, Amount: dec("600.01"),
		}))
		require.NoError(t, err)
		assert.Equal(t, "settled", resp.Msg.Settlement.PaymentState)
		assertDecimal(t, "1000", resp.Msg.Settlement.PaidAmount)
		assertDecimal(t, "0", resp.Msg.Settlement.RemainingAmount)
	})

	t.Run("history", func(t *testing.T) {
		resp, err := client.GetSettlement(ctx, connect.NewRequest(&api.GetSettlementRequest{SettlementID: id}))
		require.NoError(t, err)
		require.Len(t, resp.Msg.Payments, 2)
		assertDecimal(t, "400", resp.Msg.Payments[0].Amount)
		assert.Equal(t, "first instalment", resp.Msg.Payments[0].Note)
		assertDecimal(t, "1000", resp.Msg.Settlement.PaidAmount)
	})

	t.Run("settled accepts nothing more", func(t *testing.T) {
		_, err := client.ApplyPayment(ctx, connect.NewRequest(&api.ApplyPaymentRequest{
			SettlementID: id, Amount: dec("0.01"),
		}))
		assertCode(t, connect.CodeInvalidArgument, err)

		resp, err := client.GetSettlement(ctx, connect.NewRequest(&api.GetSettlementRequest{SettlementID: id}))
		require.NoError(t, err)
		assertDecimal(t, "1000", resp.Msg.Settlement.PaidAmount)
		assert.Len(t, resp.Msg.Payments, 2)
	})

	t.Run("unknown settlement", func(t *testing.T) {
		_, err := client.ApplyPayment(ctx, connect.NewRequest(&api.ApplyPaymentRequest{
			SettlementID: "missing", Amount: dec("1"),
		}))
		assertCode(t, connect.CodeNotFound, err)
	})
}

func TestListAndApproveSettlements(t *testing.T) {
	client := setupTestServer(t)
	ctx := context.Background()

	recordDebt(t, client, "A", "B", "cement", "100", false)
	recordDebt(t, client, "C", "D", "steel", "200", false)
	for _, pair := range [][2]string{{"A", "B"}, {"C", "D"}} {
		_, err := client.GenerateSettlement(ctx, connect.NewRequest(&api.GenerateSettlementRequest{
			DebtorSiteID: pair[0], CreditorSiteID: pair[1],
		}))
		require.NoError(t, err)
	}

	all, err := client.ListSettlements(ctx, connect.NewRequest(&api.ListSettlementsRequest{}))
	require.NoError(t, err)
	assert.Len(t, all.Msg.Settlements, 2)

	scoped, err := client.ListSettlements(ctx, connect.NewRequest(&api.ListSettlementsRequest{SiteID: "D"}))
	require.NoError(t, err)
	require.Len(t, scoped.Msg.Settlements, 1)
	id := scoped.Msg.Settlements[0].ID

	for i := 0; i < 2; i++ {
		resp, err := client.ApproveSettlement(ctx, connect.NewRequest(&api.ApproveSettlementRequest{SettlementID: id}))
		require.NoError(t, err)
		assert.Equal(t, "approved", resp.Msg.Settlement.Status)
	}

	_, err = client.ApproveSettlement(ctx, connect.NewRequest(&api.ApproveSettlementRequest{SettlementID: "missing"}))
	assertCode(t, connect.CodeNotFound, err)
}
