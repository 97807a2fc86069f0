// Package api defines the request and response messages of the
// sitesettle.v1 settlement service. Messages travel as JSON; money fields are
// decimal strings such as "1250.50".
package api

import "github.com/shopspring/decimal"

// Site is a construction site.
type Site struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

// MaterialDebt is one site's obligation to another for a material.
type MaterialDebt struct {
	ID             string          `json:"id,omitempty"`
	DebtorSiteID   string          `json:"debtor_site_id"`
	CreditorSiteID string          `json:"creditor_site_id"`
	MaterialID     string          `json:"material_id"`
	MaterialName   string          `json:"material_name"`
	Unit           string          `json:"unit"`
	Quantity       decimal.Decimal `json:"quantity"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	VendorUnpaid   bool            `json:"vendor_unpaid"`
}

// Balance is everything one site owes another.
type Balance struct {
	DebtorSiteID    string          `json:"debtor_site_id"`
	CreditorSiteID  string          `json:"creditor_site_id"`
	TotalAmountOwed decimal.Decimal `json:"total_amount_owed"`
	HasUnpaidVendor bool            `json:"has_unpaid_vendor"`
	Materials       []MaterialDebt  `json:"materials"`
}

// SiteSummary is one site's position across all balances.
type SiteSummary struct {
	SiteID     string          `json:"site_id"`
	OwedToSite decimal.Decimal `json:"owed_to_site"`
	OwedBySite decimal.Decimal `json:"owed_by_site"`
	Net        decimal.Decimal `json:"net"`
}

// ReciprocalPair is two balances that can be netted.
type ReciprocalPair struct {
	A                 Balance         `json:"a"`
	B                 Balance         `json:"b"`
	OffsetAmount      decimal.Decimal `json:"offset_amount"`
	NetRemaining      decimal.Decimal `json:"net_remaining"`
	NetPayerSiteID    string          `json:"net_payer_site_id"`
	NetReceiverSiteID string          `json:"net_receiver_site_id"`
}

// Settlement is a bill from a creditor site (from) to a debtor site (to).
type Settlement struct {
	ID              string          `json:"id"`
	FromSiteID      string          `json:"from_site_id"`
	ToSiteID        string          `json:"to_site_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	OffsetAmount    decimal.Decimal `json:"offset_amount"`
	Status          string          `json:"status"`
	Kind            string          `json:"kind"`
	PaymentState    string          `json:"payment_state"`
	MaterialIDs     []string        `json:"material_ids"`
	Note            string          `json:"note,omitempty"`
	CreatedAt       int64           `json:"created_at"`
}

// NetOffset records two balances cancelled against each other.
type NetOffset struct {
	ID                string          `json:"id"`
	SiteAID           string          `json:"site_a_id"`
	SiteBID           string          `json:"site_b_id"`
	OffsetAmount      decimal.Decimal `json:"offset_amount"`
	NetRemaining      decimal.Decimal `json:"net_remaining"`
	NetPayerSiteID    string          `json:"net_payer_site_id"`
	NetReceiverSiteID string          `json:"net_receiver_site_id"`
	MaterialIDs       []string        `json:"material_ids"`
	SettlementID      string          `json:"settlement_id,omitempty"`
	CreatedAt         int64           `json:"created_at"`
}

// Payment is one payment applied to a settlement.
type Payment struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note,omitempty"`
	PaidAt int64           `json:"paid_at"`
}

type CreateSiteRequest struct {
	Name string `json:"name" validate:"required"`
}

type CreateSiteResponse struct {
	Site Site `json:"site"`
}

type ListSitesRequest struct{}

type ListSitesResponse struct {
	Sites []Site `json:"sites"`
}

type RecordDebtRequest struct {
	Debt MaterialDebt `json:"debt"`
}

type RecordDebtResponse struct {
	Debt MaterialDebt `json:"debt"`
}

type MarkVendorPaidRequest struct {
	CreditorSiteID string `json:"creditor_site_id" validate:"required"`
	MaterialID     string `json:"material_id" validate:"required"`
}

type MarkVendorPaidResponse struct {
	UpdatedDebts int `json:"updated_debts"`
}

// ListBalancesRequest scopes balances to one site; empty means all sites.
type ListBalancesRequest struct {
	SiteID string `json:"site_id,omitempty"`
}

type ListBalancesResponse struct {
	Balances []Balance     `json:"balances"`
	Sites    []SiteSummary `json:"sites"`
}

// GetNettingRequest scopes netting to one site; empty means all sites.
type GetNettingRequest struct {
	SiteID string `json:"site_id,omitempty"`
}

type GetNettingResponse struct {
	Pairs     []ReciprocalPair `json:"pairs"`
	Remainder []Balance        `json:"remainder"`
}

// GenerateSettlementRequest bills what the debtor owes the creditor. An empty
// MaterialIDs bills the whole balance.
type GenerateSettlementRequest struct {
	DebtorSiteID   string   `json:"debtor_site_id" validate:"required"`
	CreditorSiteID string   `json:"creditor_site_id" validate:"required,nefield=DebtorSiteID"`
	MaterialIDs    []string `json:"material_ids,omitempty"`
	Note           string   `json:"note,omitempty"`
}

type GenerateSettlementResponse struct {
	Settlement Settlement `json:"settlement"`
}

type NetSettleRequest struct {
	SiteAID string `json:"site_a_id" validate:"required"`
	SiteBID string `json:"site_b_id" validate:"required,nefield=SiteAID"`
	Note    string `json:"note,omitempty"`
}

// NetSettleResponse carries the offset and, unless the pair netted to
// zero, the settlement for the remainder.
type NetSettleResponse struct {
	Offset     NetOffset   `json:"offset"`
	Settlement *Settlement `json:"settlement,omitempty"`
}

type GetNetOffsetRequest struct {
	OffsetID string `json:"offset_id" validate:"required"`
}

type GetNetOffsetResponse struct {
	Offset NetOffset `json:"offset"`
}

// ListNetOffsetsRequest scopes offsets to one site; empty means all.
type ListNetOffsetsRequest struct {
	SiteID string `json:"site_id,omitempty"`
}

type ListNetOffsetsResponse struct {
	Offsets []NetOffset `json:"offsets"`
}

type ApplyPaymentRequest struct {
	SettlementID string          `json:"settlement_id" validate:"required"`
	Amount       decimal.Decimal `json:"amount"`
	Note         string          `json:"note,omitempty"`
}

type ApplyPaymentResponse struct {
	Settlement Settlement `json:"settlement"`
	Payment    Payment    `json:"payment"`
}

type GetSettlementRequest struct {
	SettlementID string `json:"settlement_id" validate:"required"`
}

type GetSettlementResponse struct {
	Settlement Settlement `json:"settlement"`
	Payments   []Payment  `json:"payments"`
}

// ListSettlementsRequest scopes settlements to one site; empty means all.
type ListSettlementsRequest struct {
	SiteID string `json:"site_id,omitempty"`
}

type ListSettlementsResponse struct {
	Settlements []Settlement `json:"settlements"`
}

type ApproveSettlementRequest struct {
	SettlementID string `json:"settlement_id" validate:"required"`
}

type ApproveSettlementResponse struct {
	Settlement Settlement `json:"settlement"`
}
