// Package apiconnect wires the sitesettle.v1.SettlementService messages in
// package api to Connect clients and handlers.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/sitesettle/pkg/api"
)

// SettlementServiceName is the fully-qualified name of the SettlementService service.
const SettlementServiceName = "sitesettle.v1.SettlementService"

// Procedure paths of the SettlementService RPCs.
const (
	SettlementServiceCreateSiteProcedure         = "/sitesettle.v1.SettlementService/CreateSite"
	SettlementServiceListSitesProcedure          = "/sitesettle.v1.SettlementService/ListSites"
	SettlementServiceRecordDebtProcedure         = "/sitesettle.v1.SettlementService/RecordDebt"
	SettlementServiceMarkVendorPaidProcedure     = "/sitesettle.v1.SettlementService/MarkVendorPaid"
	SettlementServiceListBalancesProcedure       = "/sitesettle.v1.SettlementService/ListBalances"
	SettlementServiceGetNettingProcedure         = "/sitesettle.v1.SettlementService/GetNetting"
	SettlementServiceGenerateSettlementProcedure = "/sitesettle.v1.SettlementService/GenerateSettlement"
	SettlementServiceNetSettleProcedure          = "/sitesettle.v1.SettlementService/NetSettle"
	SettlementServiceGetNetOffsetProcedure       = "/sitesettle.v1.SettlementService/GetNetOffset"
	SettlementServiceListNetOffsetsProcedure     = "/sitesettle.v1.SettlementService/ListNetOffsets"
	SettlementServiceApplyPaymentProcedure       = "/sitesettle.v1.SettlementService/ApplyPayment"
	SettlementServiceGetSettlementProcedure      = "/sitesettle.v1.SettlementService/GetSettlement"
	SettlementServiceListSettlementsProcedure    = "/sitesettle.v1.SettlementService/ListSettlements"
	SettlementServiceApproveSettlementProcedure  = "/sitesettle.v1.SettlementService/ApproveSettlement"
)

// SettlementServiceClient is a client for the sitesettle.v1.SettlementService service.
type SettlementServiceClient interface {
	CreateSite(context.Context, *connect.Request[api.CreateSiteRequest]) (*connect.Response[api.CreateSiteResponse], error)
	ListSites(context.Context, *connect.Request[api.ListSitesRequest]) (*connect.Response[api.ListSitesResponse], error)
	RecordDebt(context.Context, *connect.Request[api.RecordDebtRequest]) (*connect.Response[api.RecordDebtResponse], error)
	MarkVendorPaid(context.Context, *connect.Request[api.MarkVendorPaidRequest]) (*connect.Response[api.MarkVendorPaidResponse], error)
	ListBalances(context.Context, *connect.Request[api.ListBalancesRequest]) (*connect.Response[api.ListBalancesResponse], error)
	GetNetting(context.Context, *connect.Request[api.GetNettingRequest]) (*connect.Response[api.GetNettingResponse], error)
	GenerateSettlement(context.Context, *connect.Request[api.GenerateSettlementRequest]) (*connect.Response[api.GenerateSettlementResponse], error)
	NetSettle(context.Context, *connect.Request[api.NetSettleRequest]) (*connect.Response[api.NetSettleResponse], error)
	GetNetOffset(context.Context, *connect.Request[api.GetNetOffsetRequest]) (*connect.Response[api.GetNetOffsetResponse], error)
	ListNetOffsets(context.Context, *connect.Request[api.ListNetOffsetsRequest]) (*connect.Response[api.ListNetOffsetsResponse], error)
	ApplyPayment(context.Context, *connect.Request[api.ApplyPaymentRequest]) (*connect.Response[api.ApplyPaymentResponse], error)
	GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error)
	ListSettlements(context.Context, *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error)
	ApproveSettlement(context.Context, *connect.Request[api.ApproveSettlementRequest]) (*connect.Response[api.ApproveSettlementResponse], error)
}

// NewSettlementServiceClient constructs a client for the
// sitesettle.v1.SettlementService service. baseURL is the server root,
// e.g. http://localhost:8080.
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SettlementServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &settlementServiceClient{
		createSite:         connect.NewClient[api.CreateSiteRequest, api.CreateSiteResponse](httpClient, baseURL+SettlementServiceCreateSiteProcedure, opts...),
		listSites:          connect.NewClient[api.ListSitesRequest, api.ListSitesResponse](httpClient, baseURL+SettlementServiceListSitesProcedure, opts...),
		recordDebt:         connect.NewClient[api.RecordDebtRequest, api.RecordDebtResponse](httpClient, baseURL+SettlementServiceRecordDebtProcedure, opts...),
		markVendorPaid:     connect.NewClient[api.MarkVendorPaidRequest, api.MarkVendorPaidResponse](httpClient, baseURL+SettlementServiceMarkVendorPaidProcedure, opts...),
		listBalances:       connect.NewClient[api.ListBalancesRequest, api.ListBalancesResponse](httpClient, baseURL+SettlementServiceListBalancesProcedure, opts...),
		getNetting:         connect.NewClient[api.GetNettingRequest, api.GetNettingResponse](httpClient, baseURL+SettlementServiceGetNettingProcedure, opts...),
		generateSettlement: connect.NewClient[api.GenerateSettlementRequest, api.GenerateSettlementResponse](httpClient, baseURL+SettlementServiceGenerateSettlementProcedure, opts...),
		netSettle:          connect.NewClient[api.NetSettleRequest, api.NetSettleResponse](httpClient, baseURL+SettlementServiceNetSettleProcedure, opts...),
		getNetOffset:       connect.NewClient[api.GetNetOffsetRequest, api.GetNetOffsetResponse](httpClient, baseURL+SettlementServiceGetNetOffsetProcedure, opts...),
		listNetOffsets:     connect.NewClient[api.ListNetOffsetsRequest, api.ListNetOffsetsResponse](httpClient, baseURL+SettlementServiceListNetOffsetsProcedure, opts...),
		applyPayment:       connect.NewClient[api.ApplyPaymentRequest, api.ApplyPaymentResponse](httpClient, baseURL+SettlementServiceApplyPaymentProcedure, opts...),
		getSettlement:      connect.NewClient[api.GetSettlementRequest, api.GetSettlementResponse](httpClient, baseURL+SettlementServiceGetSettlementProcedure, opts...),
		listSettlements:    connect.NewClient[api.ListSettlementsRequest, api.ListSettlementsResponse](httpClient, baseURL+SettlementServiceListSettlementsProcedure, opts...),
		approveSettlement:  connect.NewClient[api.ApproveSettlementRequest, api.ApproveSettlementResponse](httpClient, baseURL+SettlementServiceApproveSettlementProcedure, opts...),
	}
}

type settlementServiceClient struct {
	createSite         *connect.Client[api.CreateSiteRequest, api.CreateSiteResponse]
	listSites          *connect.Client[api.ListSitesRequest, api.ListSitesResponse]
	recordDebt         *connect.Client[api.RecordDebtRequest, api.RecordDebtResponse]
	markVendorPaid     *connect.Client[api.MarkVendorPaidRequest, api.MarkVendorPaidResponse]
	listBalances       *connect.Client[api.ListBalancesRequest, api.ListBalancesResponse]
	getNetting         *connect.Client[api.GetNettingRequest, api.GetNettingResponse]
	generateSettlement *connect.Client[api.GenerateSettlementRequest, api.GenerateSettlementResponse]
	netSettle          *connect.Client[api.NetSettleRequest, api.NetSettleResponse]
	getNetOffset       *connect.Client[api.GetNetOffsetRequest, api.GetNetOffsetResponse]
	listNetOffsets     *connect.Client[api.ListNetOffsetsRequest, api.ListNetOffsetsResponse]
	applyPayment       *connect.Client[api.ApplyPaymentRequest, api.ApplyPaymentResponse]
	getSettlement      *connect.Client[api.GetSettlementRequest, api.GetSettlementResponse]
	listSettlements    *connect.Client[api.ListSettlementsRequest, api.ListSettlementsResponse]
	approveSettlement  *connect.Client[api.ApproveSettlementRequest, api.ApproveSettlementResponse]
}

func (c *settlementServiceClient) CreateSite(ctx context.Context, req *connect.Request[api.CreateSiteRequest]) (*connect.Response[api.CreateSiteResponse], error) {
	return c.createSite.CallUnary(ctx, req)
}

func (c *settlementServiceClient) ListSites(ctx context.Context, req *connect.Request[api.ListSitesRequest]) (*connect.Response[api.ListSitesResponse], error) {
	return c.listSites.CallUnary(ctx, req)
}

func (c *settlementServiceClient) RecordDebt(ctx context.Context, req *connect.Request[api.RecordDebtRequest]) (*connect.Response[api.RecordDebtResponse], error) {
	return c.recordDebt.CallUnary(ctx, req)
}

func (c *settlementServiceClient) MarkVendorPaid(ctx context.Context, req *connect.Request[api.MarkVendorPaidRequest]) (*connect.Response[api.MarkVendorPaidResponse], error) {
	return c.markVendorPaid.CallUnary(ctx, req)
}

func (c *settlementServiceClient) ListBalances(ctx context.Context, req *connect.Request[api.ListBalancesRequest]) (*connect.Response[api.ListBalancesResponse], error) {
	return c.listBalances.CallUnary(ctx, req)
}

func (c *settlementServiceClient) GetNetting(ctx context.Context, req *connect.Request[api.GetNettingRequest]) (*connect.Response[api.GetNettingResponse], error) {
	return c.getNetting.CallUnary(ctx, req)
}

func (c *settlementServiceClient) GenerateSettlement(ctx context.Context, req *connect.Request[api.GenerateSettlementRequest]) (*connect.Response[api.GenerateSettlementResponse], error) {
	return c.generateSettlement.CallUnary(ctx, req)
}

func (c *settlementServiceClient) NetSettle(ctx context.Context, req *connect.Request[api.NetSettleRequest]) (*connect.Response[api.NetSettleResponse], error) {
	return c.netSettle.CallUnary(ctx, req)
}

func (c *settlementServiceClient) GetNetOffset(ctx context.Context, req *connect.Request[api.GetNetOffsetRequest]) (*connect.Response[api.GetNetOffsetResponse], error) {
	return c.getNetOffset.CallUnary(ctx, req)
}

func (c *settlementServiceClient) ListNetOffsets(ctx context.Context, req *connect.Request[api.ListNetOffsetsRequest]) (*connect.Response[api.ListNetOffsetsResponse], error) {
	return c.listNetOffsets.CallUnary(ctx, req)
}

func (c *settlementServiceClient) ApplyPayment(ctx context.Context, req *connect.Request[api.ApplyPaymentRequest]) (*connect.Response[api.ApplyPaymentResponse], error) {
	return c.applyPayment.CallUnary(ctx, req)
}

func (c *settlementServiceClient) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	return c.getSettlement.CallUnary(ctx, req)
}

func (c *settlementServiceClient) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	return c.listSettlements.CallUnary(ctx, req)
}

func (c *settlementServiceClient) ApproveSettlement(ctx context.Context, req *connect.Request[api.ApproveSettlementRequest]) (*connect.Response[api.ApproveSettlementResponse], error) {
	return c.approveSettlement.CallUnary(ctx, req)
}

// SettlementServiceHandler is an implementation of the sitesettle.v1.SettlementService service.
type SettlementServiceHandler interface {
	CreateSite(context.Context, *connect.Request[api.CreateSiteRequest]) (*connect.Response[api.CreateSiteResponse], error)
	ListSites(context.Context, *connect.Request[api.ListSitesRequest]) (*connect.Response[api.ListSitesResponse], error)
	RecordDebt(context.Context, *connect.Request[api.RecordDebtRequest]) (*connect.Response[api.RecordDebtResponse], error)
	MarkVendorPaid(context.Context, *connect.Request[api.MarkVendorPaidRequest]) (*connect.Response[api.MarkVendorPaidResponse], error)
	ListBalances(context.Context, *connect.Request[api.ListBalancesRequest]) (*connect.Response[api.ListBalancesResponse], error)
	GetNetting(context.Context, *connect.Request[api.GetNettingRequest]) (*connect.Response[api.GetNettingResponse], error)
	GenerateSettlement(context.Context, *connect.Request[api.GenerateSettlementRequest]) (*connect.Response[api.GenerateSettlementResponse], error)
	NetSettle(context.Context, *connect.Request[api.NetSettleRequest]) (*connect.Response[api.NetSettleResponse], error)
	GetNetOffset(context.Context, *connect.Request[api.GetNetOffsetRequest]) (*connect.Response[api.GetNetOffsetResponse], error)
	ListNetOffsets(context.Context, *connect.Request[api.ListNetOffsetsRequest]) (*connect.Response[api.ListNetOffsetsResponse], error)
	ApplyPayment(context.Context, *connect.Request[api.ApplyPaymentRequest]) (*connect.Response[api.ApplyPaymentResponse], error)
	GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error)
	ListSettlements(context.Context, *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error)
	ApproveSettlement(context.Context, *connect.Request[api.ApproveSettlementRequest]) (*connect.Response[api.ApproveSettlementResponse], error)
}

// NewSettlementServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(SettlementServiceCreateSiteProcedure, connect.NewUnaryHandler(SettlementServiceCreateSiteProcedure, svc.CreateSite, opts...))
	mux.Handle(SettlementServiceListSitesProcedure, connect.NewUnaryHandler(SettlementServiceListSitesProcedure, svc.ListSites, opts...))
	mux.Handle(SettlementServiceRecordDebtProcedure, connect.NewUnaryHandler(SettlementServiceRecordDebtProcedure, svc.RecordDebt, opts...))
	mux.Handle(SettlementServiceMarkVendorPaidProcedure, connect.NewUnaryHandler(SettlementServiceMarkVendorPaidProcedure, svc.MarkVendorPaid, opts...))
	mux.Handle(SettlementServiceListBalancesProcedure, connect.NewUnaryHandler(SettlementServiceListBalancesProcedure, svc.ListBalances, opts...))
	mux.Handle(SettlementServiceGetNettingProcedure, connect.NewUnaryHandler(SettlementServiceGetNettingProcedure, svc.GetNetting, opts...))
	mux.Handle(SettlementServiceGenerateSettlementProcedure, connect.NewUnaryHandler(SettlementServiceGenerateSettlementProcedure, svc.GenerateSettlement, opts...))
	mux.Handle(SettlementServiceNetSettleProcedure, connect.NewUnaryHandler(SettlementServiceNetSettleProcedure, svc.NetSettle, opts...))
	mux.Handle(SettlementServiceGetNetOffsetProcedure, connect.NewUnaryHandler(SettlementServiceGetNetOffsetProcedure, svc.GetNetOffset, opts...))
	mux.Handle(SettlementServiceListNetOffsetsProcedure, connect.NewUnaryHandler(SettlementServiceListNetOffsetsProcedure, svc.ListNetOffsets, opts...))
	mux.Handle(SettlementServiceApplyPaymentProcedure, connect.NewUnaryHandler(SettlementServiceApplyPaymentProcedure, svc.ApplyPayment, opts...))
	mux.Handle(SettlementServiceGetSettlementProcedure, connect.NewUnaryHandler(SettlementServiceGetSettlementProcedure, svc.GetSettlement, opts...))
	mux.Handle(SettlementServiceListSettlementsProcedure, connect.NewUnaryHandler(SettlementServiceListSettlementsProcedure, svc.ListSettlements, opts...))
	mux.Handle(SettlementServiceApproveSettlementProcedure, connect.NewUnaryHandler(SettlementServiceApproveSettlementProcedure, svc.ApproveSettlement, opts...))

	return "/" + SettlementServiceName + "/", mux
}

// UnimplementedSettlementServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSettlementServiceHandler struct{}

func errUnimplemented(procedure string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New(procedure+" is not implemented"))
}

func (UnimplementedSettlementServiceHandler) CreateSite(context.Context, *connect.Request[api.CreateSiteRequest]) (*connect.Response[api.CreateSiteResponse], error) {
	return nil, errUnimplemented(SettlementServiceCreateSiteProcedure)
}

func (UnimplementedSettlementServiceHandler) ListSites(context.Context, *connect.Request[api.ListSitesRequest]) (*connect.Response[api.ListSitesResponse], error) {
	return nil, errUnimplemented(SettlementServiceListSitesProcedure)
}

func (UnimplementedSettlementServiceHandler) RecordDebt(context.Context, *connect.Request[api.RecordDebtRequest]) (*connect.Response[api.RecordDebtResponse], error) {
	return nil, errUnimplemented(SettlementServiceRecordDebtProcedure)
}

func (UnimplementedSettlementServiceHandler) MarkVendorPaid(context.Context, *connect.Request[api.MarkVendorPaidRequest]) (*connect.Response[api.MarkVendorPaidResponse], error) {
	return nil, errUnimplemented(SettlementServiceMarkVendorPaidProcedure)
}

func (UnimplementedSettlementServiceHandler) ListBalances(context.Context, *connect.Request[api.ListBalancesRequest]) (*connect.Response[api.ListBalancesResponse], error) {
	return nil, errUnimplemented(SettlementServiceListBalancesProcedure)
}

func (UnimplementedSettlementServiceHandler) GetNetting(context.Context, *connect.Request[api.GetNettingRequest]) (*connect.Response[api.GetNettingResponse], error) {
	return nil, errUnimplemented(SettlementServiceGetNettingProcedure)
}

func (UnimplementedSettlementServiceHandler) GenerateSettlement(context.Context, *connect.Request[api.GenerateSettlementRequest]) (*connect.Response[api.GenerateSettlementResponse], error) {
	return nil, errUnimplemented(SettlementServiceGenerateSettlementProcedure)
}

func (UnimplementedSettlementServiceHandler) NetSettle(context.Context, *connect.Request[api.NetSettleRequest]) (*connect.Response[api.NetSettleResponse], error) {
	return nil, errUnimplemented(SettlementServiceNetSettleProcedure)
}

func (UnimplementedSettlementServiceHandler) GetNetOffset(context.Context, *connect.Request[api.GetNetOffsetRequest]) (*connect.Response[api.GetNetOffsetResponse], error) {
	return nil, errUnimplemented(SettlementServiceGetNetOffsetProcedure)
}

func (UnimplementedSettlementServiceHandler) ListNetOffsets(context.Context, *connect.Request[api.ListNetOffsetsRequest]) (*connect.Response[api.ListNetOffsetsResponse], error) {
	return nil, errUnimplemented(SettlementServiceListNetOffsetsProcedure)
}

func (UnimplementedSettlementServiceHandler) ApplyPayment(context.Context, *connect.Request[api.ApplyPaymentRequest]) (*connect.Response[api.ApplyPaymentResponse], error) {
	return nil, errUnimplemented(SettlementServiceApplyPaymentProcedure)
}

func (UnimplementedSettlementServiceHandler) GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	return nil, errUnimplemented(SettlementServiceGetSettlementProcedure)
}

func (UnimplementedSettlementServiceHandler) ListSettlements(context.Context, *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	return nil, errUnimplemented(SettlementServiceListSettlementsProcedure)
}

func (UnimplementedSettlementServiceHandler) ApproveSettlement(context.Context, *connect.Request[api.ApproveSettlementRequest]) (*connect.Response[api.ApproveSettlementResponse], error) {
	return nil, errUnimplemented(SettlementServiceApproveSettlementProcedure)
}
