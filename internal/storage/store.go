// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/mmynk/sitesettle/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write lost a race: the debts were
	// already claimed by another settlement, or the settlement changed
	// since it was read.
	ErrConflict = errors.New("conflicting update")
)

// Store defines the interface for settlement storage operations.
// It is the debt source and the settlement persistence for the service
// layer; the calculator never talks to it.
type Store interface {
	// CreateSite persists a new site. The site.ID field is generated if empty.
	CreateSite(ctx context.Context, site *models.Site) error

	// ListSites returns all sites ordered by name.
	ListSites(ctx context.Context) ([]*models.Site, error)

	// CreateDebt validates and persists a new open debt.
	// The debt.ID field will be populated by the store.
	CreateDebt(ctx context.Context, debt *models.MaterialDebt) error

	// ListOpenDebts returns debts not yet claimed by a settlement or offset,
	// in insertion order. A non-empty siteID limits the result to debts
	// where the site is debtor or creditor.
	ListOpenDebts(ctx context.Context, siteID string) ([]models.MaterialDebt, error)

	// MarkVendorPaid clears the vendor-unpaid flag on the creditor's open
	// debts for a material and returns how many debts changed.
	MarkVendorPaid(ctx context.Context, creditorSiteID, materialID string) (int, error)

	// CreateSettlement persists a settlement and claims the given debts for it.
	// Returns ErrConflict if any debt is already claimed.
	CreateSettlement(ctx context.Context, settlement *models.Settlement, debtIDs []string) error

	// CreateNetOffset persists an offset, the optional net settlement, and
	// claims the debts of both balances, in one transaction.
	CreateNetOffset(ctx context.Context, offset *models.NetOffset, settlement *models.Settlement, debtIDs []string) error

	// GetNetOffset retrieves an offset by ID.
	GetNetOffset(ctx context.Context, offsetID string) (*models.NetOffset, error)

	// ListNetOffsets returns offsets newest first. A non-empty siteID limits
	// the result to offsets the site took part in.
	ListNetOffsets(ctx context.Context, siteID string) ([]*models.NetOffset, error)

	// GetSettlement retrieves a settlement by ID.
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)

	// ListSettlements returns settlements newest first. A non-empty siteID
	// limits the result to settlements the site pays or receives.
	ListSettlements(ctx context.Context, siteID string) ([]*models.Settlement, error)

	// RecordPayment stores the payment and the settlement's new paid amount,
	// provided the stored paid amount still equals previousPaid.
	RecordPayment(ctx context.Context, settlement *models.Settlement, previousPaid decimal.Decimal, payment *models.Payment) error

	// ListPayments returns a settlement's payments, oldest first.
	ListPayments(ctx context.Context, settlementID string) ([]*models.Payment, error)

	// ApproveSettlement moves a settlement to approved. Approving twice is a no-op.
	ApproveSettlement(ctx context.Context, settlementID string) error

	// Close releases any resources held by the store.
	Close() error
}
