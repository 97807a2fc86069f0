package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/sitesettle/internal/models"
	"github.com/mmynk/sitesettle/internal/storage"
)

const settlementColumns = `id, from_site_id, to_site_id, total_amount, paid_amount, status, kind,
	offset_amount, note, created_at`

// prepareSettlement fills in generated fields.
func prepareSettlement(settlement *models.Settlement) {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}
	if settlement.Status == "" {
		settlement.Status = models.StatusPending
	}
	if settlement.Kind == "" {
		settlement.Kind = models.KindBalance
	}
}

// insertSettlement writes a settlement and its materials inside tx.
func insertSettlement(ctx context.Context, tx *sql.Tx, settlement *models.Settlement) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO settlements (`+settlementColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, settlement.FromSiteID, settlement.ToSiteID,
		settlement.TotalAmount, settlement.PaidAmount, settlement.Status, settlement.Kind,
		settlement.OffsetAmount, nullable(settlement.Note), settlement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}
	return insertMaterialIDs(ctx, tx, "settlement_materials", "settlement_id", settlement.ID, settlement.MaterialIDs)
}

// CreateSettlement persists a new settlement and claims its debts.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement, debtIDs []string) error {
	prepareSettlement(settlement)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertSettlement(ctx, tx, settlement); err != nil {
		return err
	}
	if err := claimDebts(ctx, tx, settlement.ID, debtIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetSettlement retrieves a settlement by ID.
func (s *SQLiteStore) GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error) {
	settlement, err := scanSettlement(s.db.QueryRowContext(ctx,
		`SELECT `+settlementColumns+` FROM settlements WHERE id = ?`,
		settlementID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: settlement %s", storage.ErrNotFound, settlementID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}

	settlement.MaterialIDs, err = queryMaterialIDs(ctx, s.db, "settlement_materials", "settlement_id", settlement.ID)
	if err != nil {
		return nil, err
	}
	return settlement, nil
}

// ListSettlements retrieves settlements newest first.
func (s *SQLiteStore) ListSettlements(ctx context.Context, siteID string) ([]*models.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements`
	var args []interface{}
	if siteID != "" {
		query += ` WHERE from_site_id = ? OR to_site_id = ?`
		args = append(args, siteID, siteID)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}
	rows.Close()

	for _, settlement := range settlements {
		settlement.MaterialIDs, err = queryMaterialIDs(ctx, s.db, "settlement_materials", "settlement_id", settlement.ID)
		if err != nil {
			return nil, err
		}
	}
	return settlements, nil
}

// RecordPayment stores a payment and the settlement's new paid amount.
// The update only applies if paid_amount still equals previousPaid.
func (s *SQLiteStore) RecordPayment(ctx context.Context, settlement *models.Settlement, previousPaid decimal.Decimal, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.PaidAt == 0 {
		payment.PaidAt = time.Now().Unix()
	}
	payment.SettlementID = settlement.ID

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE settlements SET paid_amount = ? WHERE id = ? AND paid_amount = ?",
		settlement.PaidAmount, settlement.ID, previousPaid,
	)
	if err != nil {
		return fmt.Errorf("failed to update paid amount: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated settlement: %w", err)
	}
	if n != 1 {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM settlements WHERE id = ?", settlement.ID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: settlement %s", storage.ErrNotFound, settlement.ID)
		}
		return fmt.Errorf("%w: settlement %s was paid concurrently", storage.ErrConflict, settlement.ID)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO settlement_payments (id, settlement_id, amount, note, paid_at) VALUES (?, ?, ?, ?, ?)",
		payment.ID, payment.SettlementID, payment.Amount, nullable(payment.Note), payment.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListPayments returns a settlement's payments, oldest first.
func (s *SQLiteStore) ListPayments(ctx context.Context, settlementID string) ([]*models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, settlement_id, amount, note, paid_at
		 FROM settlement_payments WHERE settlement_id = ? ORDER BY paid_at, rowid`,
		settlementID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		var note sql.NullString
		if err := rows.Scan(&payment.ID, &payment.SettlementID, &payment.Amount, &note, &payment.PaidAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payment.Note = note.String
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

// ApproveSettlement moves a settlement to approved.
func (s *SQLiteStore) ApproveSettlement(ctx context.Context, settlementID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE settlements SET status = ? WHERE id = ?",
		models.StatusApproved, settlementID,
	)
	if err != nil {
		return fmt.Errorf("failed to approve settlement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check approved settlement: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: settlement %s", storage.ErrNotFound, settlementID)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSettlement(row rowScanner) (*models.Settlement, error) {
	settlement := &models.Settlement{}
	var note sql.NullString
	err := row.Scan(&settlement.ID, &settlement.FromSiteID, &settlement.ToSiteID,
		&settlement.TotalAmount, &settlement.PaidAmount, &settlement.Status, &settlement.Kind,
		&settlement.OffsetAmount, &note, &settlement.CreatedAt)
	if err != nil {
		return nil, err
	}
	settlement.Note = note.String
	return settlement, nil
}
