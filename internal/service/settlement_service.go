package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/sitesettle/internal/calculator"
	"github.com/mmynk/sitesettle/internal/metrics"
	"github.com/mmynk/sitesettle/internal/models"
	"github.com/mmynk/sitesettle/internal/storage"
	"github.com/mmynk/sitesettle/internal/validation"
	"github.com/mmynk/sitesettle/pkg/api"
	"github.com/mmynk/sitesettle/pkg/api/apiconnect"
)

// SettlementService implements the Connect SettlementService.
//
// Balances and pairs are never cached: every call that computes them reads
// the open debts again, so a settlement is always generated from the
// current state. Debts are claimed by the store when the settlement is
// written, which turns a duplicate generation into a conflict.
type SettlementService struct {
	apiconnect.UnimplementedSettlementServiceHandler
	store storage.Store
}

// NewSettlementService creates a new SettlementService with the given storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// CreateSite registers a construction site.
func (s *SettlementService) CreateSite(ctx context.Context, req *connect.Request[api.CreateSiteRequest]) (*connect.Response[api.CreateSiteResponse], error) {
	if err := validation.Struct(req.Msg); err != nil {
		return nil, toConnectError("CreateSite", err)
	}

	site := &models.Site{Name: req.Msg.Name}
	if err := s.store.CreateSite(ctx, site); err != nil {
		return nil, toConnectError("CreateSite", err)
	}
	slog.Info("Site created", "site_id", site.ID, "name", site.Name)

	return connect.NewResponse(&api.CreateSiteResponse{Site: siteToAPI(site)}), nil
}

// ListSites returns all sites.
func (s *SettlementService) ListSites(ctx context.Context, req *connect.Request[api.ListSitesRequest]) (*connect.Response[api.ListSitesResponse], error) {
	sites, err := s.store.ListSites(ctx)
	if err != nil {
		return nil, toConnectError("ListSites", err)
	}

	out := make([]api.Site, len(sites))
	for i, site := range sites {
		out[i] = siteToAPI(site)
	}
	return connect.NewResponse(&api.ListSitesResponse{Sites: out}), nil
}

// RecordDebt stores a new open debt between two sites.
func (s *SettlementService) RecordDebt(ctx context.Context, req *connect.Request[api.RecordDebtRequest]) (*connect.Response[api.RecordDebtResponse], error) {
	debt := debtFromAPI(req.Msg.Debt)
	debt.ID = ""
	if err := s.store.CreateDebt(ctx, &debt); err != nil {
		return nil, toConnectError("RecordDebt", err)
	}
	slog.Debug("Debt recorded",
		"debt_id", debt.ID,
		"debtor", debt.DebtorSiteID,
		"creditor", debt.CreditorSiteID,
		"material", debt.MaterialID,
		"amount", debt.TotalAmount.String(),
		"vendor_unpaid", debt.VendorUnpaid,
	)

	return connect.NewResponse(&api.RecordDebtResponse{Debt: debtToAPI(debt)}), nil
}

// MarkVendorPaid records that the creditor site paid its vendor for a material.
func (s *SettlementService) MarkVendorPaid(ctx context.Context, req *connect.Request[api.MarkVendorPaidRequest]) (*connect.Response[api.MarkVendorPaidResponse], error) {
	if err := validation.Struct(req.Msg); err != nil {
		return nil, toConnectError("MarkVendorPaid", err)
	}

	n, err := s.store.MarkVendorPaid(ctx, req.Msg.CreditorSiteID, req.Msg.MaterialID)
	if err != nil {
		return nil, toConnectError("MarkVendorPaid", err)
	}
	slog.Info("Vendor marked paid",
		"creditor", req.Msg.CreditorSiteID,
		"material", req.Msg.MaterialID,
		"updated_debts", n,
	)

	return connect.NewResponse(&api.MarkVendorPaidResponse{UpdatedDebts: n}), nil
}

// openBalances aggregates the current open debts touching siteID.
func (s *SettlementService) openBalances(ctx context.Context, siteID string) ([]models.Balance, error) {
	debts, err := s.store.ListOpenDebts(ctx, siteID)
	if err != nil {
		return nil, err
	}
	return calculator.Aggregate(debts), nil
}

// ListBalances returns what every site owes every other, plus per-site totals.
func (s *SettlementService) ListBalances(ctx context.Context, req *connect.Request[api.ListBalancesRequest]) (*connect.Response[api.ListBalancesResponse], error) {
	balances, err := s.openBalances(ctx, req.Msg.SiteID)
	if err != nil {
		return nil, toConnectError("ListBalances", err)
	}

	summaries := calculator.SummarizeSites(balances)
	sites := make([]api.SiteSummary, len(summaries))
	for i, sum := range summaries {
		sites[i] = api.SiteSummary{
			SiteID:     sum.SiteID,
			OwedToSite: sum.OwedToSite,
			OwedBySite: sum.OwedBySite,
			Net:        sum.Net,
		}
	}

	return connect.NewResponse(&api.ListBalancesResponse{
		Balances: balancesToAPI(balances),
		Sites:    sites,
	}), nil
}

// GetNetting splits the open balances into reciprocal pairs and the rest.
func (s *SettlementService) GetNetting(ctx context.Context, req *connect.Request[api.GetNettingRequest]) (*connect.Response[api.GetNettingResponse], error) {
	balances, err := s.openBalances(ctx, req.Msg.SiteID)
	if err != nil {
		return nil, toConnectError("GetNetting", err)
	}

	netting := calculator.DetectReciprocalPairs(balances)
	pairs := make([]api.ReciprocalPair, len(netting.Pairs))
	for i, p := range netting.Pairs {
		pairs[i] = pairToAPI(p)
	}

	return connect.NewResponse(&api.GetNettingResponse{
		Pairs:     pairs,
		Remainder: balancesToAPI(netting.Remainder),
	}), nil
}

// GenerateSettlement bills one balance, or selected materials of it.
func (s *SettlementService) GenerateSettlement(ctx context.Context, req *connect.Request[api.GenerateSettlementRequest]) (*connect.Response[api.GenerateSettlementResponse], error) {
	if err := validation.Struct(req.Msg); err != nil {
		return nil, toConnectError("GenerateSettlement", err)
	}
	debtor, creditor := req.Msg.DebtorSiteID, req.Msg.CreditorSiteID

	balances, err := s.openBalances(ctx, debtor)
	if err != nil {
		return nil, toConnectError("GenerateSettlement", err)
	}
	balance, ok := calculator.FindBalance(balances, debtor, creditor)
	if !ok {
		return nil, toConnectError("GenerateSettlement",
			fmt.Errorf("%w: %s has no open debts to %s", calculator.ErrNothingToSettle, debtor, creditor))
	}

	settlement, err := calculator.GenerateFromBalance(balance, req.Msg.MaterialIDs)
	if err != nil {
		return nil, toConnectError("GenerateSettlement", err)
	}
	settlement.Note = req.Msg.Note

	selected := calculator.SelectDebts(balance, req.Msg.MaterialIDs)
	debtIDs := make([]string, 0, len(selected))
	for _, d := range selected {
		debtIDs = append(debtIDs, d.ID)
	}

	if err := s.store.CreateSettlement(ctx, &settlement, debtIDs); err != nil {
		return nil, toConnectError("GenerateSettlement", err)
	}
	metrics.RecordSettlement(string(settlement.Kind))
	slog.Info("Settlement generated",
		"settlement_id", settlement.ID,
		"from", settlement.FromSiteID,
		"to", settlement.ToSiteID,
		"total", settlement.TotalAmount.StringFixed(2),
		"materials", settlement.MaterialIDs,
	)

	return connect.NewResponse(&api.GenerateSettlementResponse{Settlement: settlementToAPI(&settlement)}), nil
}

// NetSettle cancels two reciprocal balances against each other and bills
// the difference to the net payer.
func (s *SettlementService) NetSettle(ctx context.Context, req *connect.Request[api.NetSettleRequest]) (*connect.Response[api.NetSettleResponse], error) {
	if err := validation.Struct(req.Msg); err != nil {
		return nil, toConnectError("NetSettle", err)
	}
	siteA, siteB := req.Msg.SiteAID, req.Msg.SiteBID

	balances, err := s.openBalances(ctx, siteA)
	if err != nil {
		return nil, toConnectError("NetSettle", err)
	}
	netting := calculator.DetectReciprocalPairs(balances)
	pair, ok := calculator.FindPair(netting.Pairs, siteA, siteB)
	if !ok {
		return nil, toConnectError("NetSettle",
			fmt.Errorf("%w: %s and %s do not owe each other", calculator.ErrNothingToSettle, siteA, siteB))
	}

	result, err := calculator.GenerateNet(pair)
	if err != nil {
		return nil, toConnectError("NetSettle", err)
	}
	if result.Settlement != nil {
		result.Settlement.Note = req.Msg.Note
	}

	debtIDs := append(pair.A.DebtIDs(), pair.B.DebtIDs()...)
	if err := s.store.CreateNetOffset(ctx, &result.Offset, result.Settlement, debtIDs); err != nil {
		return nil, toConnectError("NetSettle", err)
	}
	metrics.RecordNetOffset(result.Offset.OffsetAmount.InexactFloat64())

	resp := &api.NetSettleResponse{Offset: offsetToAPI(&result.Offset)}
	if result.Settlement != nil {
		metrics.RecordSettlement(string(result.Settlement.Kind))
		settlement := settlementToAPI(result.Settlement)
		resp.Settlement = &settlement
	}
	slog.Info("Reciprocal pair netted",
		"offset_id", result.Offset.ID,
		"offset", result.Offset.OffsetAmount.StringFixed(2),
		"net_remaining", result.Offset.NetRemaining.StringFixed(2),
		"net_payer", result.Offset.NetPayerSiteID,
		"settlement_id", result.Offset.SettlementID,
	)

	return connect.NewResponse(resp), nil
}

// GetNetOffset returns a stored netting record.
func (s *SettlementService) GetNetOffset(ctx context.Context, req *connect.Request[api.GetNetOffsetRequest]) (*connect.Response[api.GetNetOffsetResponse], error) {
	if err := validation.Struct(req.Msg); err != nil {
		return nil, toConnectError("GetNetOffset", err)
	}

	offset, err := s.store.GetNetOffset(ctx, req.Msg.OffsetID)
	if err != nil {
		return nil, toConnectError("GetNetOffset", err)
	}
	return connect.NewResponse(&api.GetNetOffsetResponse{Offset: offsetToAPI(offset)}), nil
}

// ListNetOffsets returns netting records, newest first.
func (s *SettlementService) ListNetOffsets(ctx context.Context, req *connect.Request[api.ListNetOffsetsRequest]) (*connect.Response[api.ListNetOffsetsResponse], error) {
	offsets, err := s.store.ListNetOffsets(ctx, req.Msg.SiteID)
	if err != nil {
		return nil, toConnectError("ListNetOffsets", err)
	}

	out := make([]api.NetOffset, len(offsets))
	for i, o := range offsets {
		out[i] = offsetToAPI(o)
	}
	return connect.NewResponse(&api.ListNetOffsetsResponse{Offsets: out}), nil
}

// ApplyPayment records a payment against a settlement.
func (s *SettlementService) ApplyPayment(ctx context.Context, req *connect.Request[api.ApplyPaymentRequest]) (*connect.Response[api.ApplyPaymentResponse], error) {
	if err := validation.Struct(req.Msg); err != nil {
		return nil, toConnectError("ApplyPayment", err)
	}

	current, err := s.store.GetSettlement(ctx, req.Msg.SettlementID)
	if err != nil {
		return nil, toConnectError("ApplyPayment", err)
	}

	updated, err := calculator.ApplyPayment(*current, req.Msg.Amount)
	if err != nil {
		return nil, toConnectError("ApplyPayment", err)
	}

	payment := &models.Payment{Amount: req.Msg.Amount, Note: req.Msg.Note}
	if err := s.store.RecordPayment(ctx, &updated, current.PaidAmount, payment); err != nil {
		return nil, toConnectError("ApplyPayment", err)
	}
	metrics.PaymentsApplied.Inc()
	slog.Info("Payment applied",
		"settlement_id", updated.ID,
		"amount", payment.Amount.StringFixed(2),
		"paid", updated.PaidAmount.StringFixed(2),
		"state", calculator.PaymentStateOf(updated),
	)

	return connect.NewResponse(&api.ApplyPaymentResponse{
		Settlement: settlementToAPI(&updated),
		Payment:    paymentToAPI(payment),
	}), nil
}

// GetSettlement returns a settlement with its payments.
func (s *SettlementService) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	if err := validation.Struct(req.Msg); err != nil {
		return nil, toConnectError("GetSettlement", err)
	}

	settlement, err := s.store.GetSettlement(ctx, req.Msg.SettlementID)
	if err != nil {
		return nil, toConnectError("GetSettlement", err)
	}
	payments, err := s.store.ListPayments(ctx, settlement.ID)
	if err != nil {
		return nil, toConnectError("GetSettlement", err)
	}

	out := make([]api.Payment, len(payments))
	for i, p := range payments {
		out[i] = paymentToAPI(p)
	}
	return connect.NewResponse(&api.GetSettlementResponse{
		Settlement: settlementToAPI(settlement),
		Payments:   out,
	}), nil
}

// ListSettlements returns settlements, newest first.
func (s *SettlementService) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	settlements, err := s.store.ListSettlements(ctx, req.Msg.SiteID)
	if err != nil {
		return nil, toConnectError("ListSettlements", err)
	}

	out := make([]api.Settlement, len(settlements))
	for i, st := range settlements {
		out[i] = settlementToAPI(st)
	}
	return connect.NewResponse(&api.ListSettlementsResponse{Settlements: out}), nil
}

// ApproveSettlement marks a settlement approved.
func (s *SettlementService) ApproveSettlement(ctx context.Context, req *connect.Request[api.ApproveSettlementRequest]) (*connect.Response[api.ApproveSettlementResponse], error) {
	if err := validation.Struct(req.Msg); err != nil {
		return nil, toConnectError("ApproveSettlement", err)
	}

	if err := s.store.ApproveSettlement(ctx, req.Msg.SettlementID); err != nil {
		return nil, toConnectError("ApproveSettlement", err)
	}
	settlement, err := s.store.GetSettlement(ctx, req.Msg.SettlementID)
	if err != nil {
		return nil, toConnectError("ApproveSettlement", err)
	}
	slog.Info("Settlement approved", "settlement_id", settlement.ID)

	return connect.NewResponse(&api.ApproveSettlementResponse{Settlement: settlementToAPI(settlement)}), nil
}
