package models

import "github.com/shopspring/decimal"

// SettlementStatus is the approval status of a settlement.
type SettlementStatus string

const (
	StatusPending  SettlementStatus = "pending"
	StatusApproved SettlementStatus = "approved"
)

// SettlementKind records how a settlement was generated.
type SettlementKind string

const (
	// KindBalance settlements bill one balance, or part of it.
	KindBalance SettlementKind = "balance"
	// KindNet settlements bill what is left after netting a reciprocal pair.
	KindNet SettlementKind = "net"
)

// PaymentState is the derived payment progress of a settlement.
type PaymentState string

const (
	PaymentPending       PaymentState = "pending"
	PaymentPartiallyPaid PaymentState = "partially_paid"
	PaymentSettled       PaymentState = "settled"
)

// Settlement is a bill from a creditor site to a debtor site.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// FromSiteID is the creditor site, which receives the money.
	FromSiteID string

	// ToSiteID is the debtor site, which pays.
	ToSiteID string

	TotalAmount decimal.Decimal
	PaidAmount  decimal.Decimal

	Status SettlementStatus
	Kind   SettlementKind

	// OffsetAmount is the amount cancelled by netting (net settlements only).
	OffsetAmount decimal.Decimal

	// MaterialIDs are the materials billed, in first-seen order.
	MaterialIDs []string

	Note string

	// CreatedAt is the Unix timestamp when the settlement was stored.
	CreatedAt int64
}

// NetOffset records that two reciprocal balances were cancelled against each
// other. It is written even when nothing is left to pay.
type NetOffset struct {
	ID                string
	SiteAID           string
	SiteBID           string
	OffsetAmount      decimal.Decimal
	NetRemaining      decimal.Decimal
	NetPayerSiteID    string
	NetReceiverSiteID string
	MaterialIDs       []string

	// SettlementID points at the net settlement, empty when fully net.
	SettlementID string

	CreatedAt int64
}

// Payment is one payment applied to a settlement.
type Payment struct {
	ID           string
	SettlementID string
	Amount       decimal.Decimal
	Note         string
	PaidAt       int64
}

// Site is a construction site taking part in material settlements.
type Site struct {
	ID        string
	Name      string
	CreatedAt int64
}
