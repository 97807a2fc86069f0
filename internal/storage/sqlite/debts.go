package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/sitesettle/internal/models"
	"github.com/mmynk/sitesettle/internal/storage"
	"github.com/mmynk/sitesettle/internal/validation"
)

const debtColumns = `id, debtor_site_id, creditor_site_id, material_id, material_name, unit,
	quantity, total_amount, vendor_unpaid`

// CreateDebt validates and persists a new open debt.
func (s *SQLiteStore) CreateDebt(ctx context.Context, debt *models.MaterialDebt) error {
	if err := validation.Struct(debt); err != nil {
		return err
	}
	if debt.ID == "" {
		debt.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO material_debts (`+debtColumns+`, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		debt.ID, debt.DebtorSiteID, debt.CreditorSiteID, debt.MaterialID, debt.MaterialName, debt.Unit,
		debt.Quantity, debt.TotalAmount, debt.VendorUnpaid, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert debt: %w", err)
	}
	return nil
}

// ListOpenDebts returns unclaimed debts in insertion order.
func (s *SQLiteStore) ListOpenDebts(ctx context.Context, siteID string) ([]models.MaterialDebt, error) {
	query := `SELECT ` + debtColumns + ` FROM material_debts WHERE settled_by IS NULL`
	var args []interface{}
	if siteID != "" {
		query += ` AND (debtor_site_id = ? OR creditor_site_id = ?)`
		args = append(args, siteID, siteID)
	}
	query += ` ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list open debts: %w", err)
	}
	defer rows.Close()

	var debts []models.MaterialDebt
	for rows.Next() {
		var d models.MaterialDebt
		if err := rows.Scan(&d.ID, &d.DebtorSiteID, &d.CreditorSiteID, &d.MaterialID, &d.MaterialName, &d.Unit,
			&d.Quantity, &d.TotalAmount, &d.VendorUnpaid); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debts: %w", err)
	}
	return debts, nil
}

// MarkVendorPaid clears the vendor-unpaid flag on matching open debts.
func (s *SQLiteStore) MarkVendorPaid(ctx context.Context, creditorSiteID, materialID string) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE material_debts SET vendor_unpaid = 0
		 WHERE creditor_site_id = ? AND material_id = ? AND vendor_unpaid = 1 AND settled_by IS NULL`,
		creditorSiteID, materialID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark vendor paid: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count updated debts: %w", err)
	}
	return int(n), nil
}

// claimDebts marks debts as settled by ref. Every debt must still be open,
// otherwise the whole claim fails with storage.ErrConflict.
func claimDebts(ctx context.Context, tx *sql.Tx, ref string, debtIDs []string) error {
	for _, id := range debtIDs {
		res, err := tx.ExecContext(ctx,
			"UPDATE material_debts SET settled_by = ? WHERE id = ? AND settled_by IS NULL",
			ref, id,
		)
		if err != nil {
			return fmt.Errorf("failed to claim debt: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check claimed debt: %w", err)
		}
		if n != 1 {
			return fmt.Errorf("%w: debt %s is already settled or does not exist", storage.ErrConflict, id)
		}
	}
	return nil
}
