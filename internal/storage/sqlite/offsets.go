package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/sitesettle/internal/models"
	"github.com/mmynk/sitesettle/internal/storage"
)

// CreateNetOffset persists an offset together with its optional net
// settlement and claims the debts of both balances.
//
// Debts are claimed by the settlement when there is one, otherwise by the
// offset itself.
func (s *SQLiteStore) CreateNetOffset(ctx context.Context, offset *models.NetOffset, settlement *models.Settlement, debtIDs []string) error {
	if offset.ID == "" {
		offset.ID = uuid.New().String()
	}
	if offset.CreatedAt == 0 {
		offset.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	claimRef := offset.ID
	if settlement != nil {
		settlement.CreatedAt = offset.CreatedAt
		prepareSettlement(settlement)
		if err := insertSettlement(ctx, tx, settlement); err != nil {
			return err
		}
		offset.SettlementID = settlement.ID
		claimRef = settlement.ID
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO net_offsets (id, site_a_id, site_b_id, offset_amount, net_remaining,
		 net_payer_site_id, net_receiver_site_id, settlement_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		offset.ID, offset.SiteAID, offset.SiteBID, offset.OffsetAmount, offset.NetRemaining,
		offset.NetPayerSiteID, offset.NetReceiverSiteID, nullable(offset.SettlementID), offset.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert net offset: %w", err)
	}
	if err := insertMaterialIDs(ctx, tx, "net_offset_materials", "offset_id", offset.ID, offset.MaterialIDs); err != nil {
		return err
	}

	if err := claimDebts(ctx, tx, claimRef, debtIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

const offsetColumns = `id, site_a_id, site_b_id, offset_amount, net_remaining,
	net_payer_site_id, net_receiver_site_id, settlement_id, created_at`

func scanNetOffset(row rowScanner) (*models.NetOffset, error) {
	offset := &models.NetOffset{}
	var settlementID sql.NullString
	err := row.Scan(&offset.ID, &offset.SiteAID, &offset.SiteBID, &offset.OffsetAmount, &offset.NetRemaining,
		&offset.NetPayerSiteID, &offset.NetReceiverSiteID, &settlementID, &offset.CreatedAt)
	if err != nil {
		return nil, err
	}
	offset.SettlementID = settlementID.String
	return offset, nil
}

// GetNetOffset retrieves an offset by ID.
func (s *SQLiteStore) GetNetOffset(ctx context.Context, offsetID string) (*models.NetOffset, error) {
	offset, err := scanNetOffset(s.db.QueryRowContext(ctx,
		`SELECT `+offsetColumns+` FROM net_offsets WHERE id = ?`,
		offsetID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: net offset %s", storage.ErrNotFound, offsetID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get net offset: %w", err)
	}

	offset.MaterialIDs, err = queryMaterialIDs(ctx, s.db, "net_offset_materials", "offset_id", offset.ID)
	if err != nil {
		return nil, err
	}
	return offset, nil
}

// ListNetOffsets retrieves offsets newest first.
func (s *SQLiteStore) ListNetOffsets(ctx context.Context, siteID string) ([]*models.NetOffset, error) {
	query := `SELECT ` + offsetColumns + ` FROM net_offsets`
	var args []interface{}
	if siteID != "" {
		query += ` WHERE site_a_id = ? OR site_b_id = ?`
		args = append(args, siteID, siteID)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list net offsets: %w", err)
	}
	defer rows.Close()

	var offsets []*models.NetOffset
	for rows.Next() {
		offset, err := scanNetOffset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan net offset: %w", err)
		}
		offsets = append(offsets, offset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate net offsets: %w", err)
	}
	rows.Close()

	for _, offset := range offsets {
		offset.MaterialIDs, err = queryMaterialIDs(ctx, s.db, "net_offset_materials", "offset_id", offset.ID)
		if err != nil {
			return nil, err
		}
	}
	return offsets, nil
}
