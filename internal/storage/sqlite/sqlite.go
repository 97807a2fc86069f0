// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/sitesettle/internal/models"
	"github.com/mmynk/sitesettle/internal/storage"
	"github.com/mmynk/sitesettle/internal/validation"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas go in the DSN so every pooled connection gets them
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSite persists a new site.
func (s *SQLiteStore) CreateSite(ctx context.Context, site *models.Site) error {
	if strings.TrimSpace(site.Name) == "" {
		return fmt.Errorf("%w: site name required", validation.ErrInvalid)
	}
	if site.ID == "" {
		site.ID = uuid.New().String()
	}
	if site.CreatedAt == 0 {
		site.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sites (id, name, created_at) VALUES (?, ?, ?)",
		site.ID, site.Name, site.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert site: %w", err)
	}
	return nil
}

// ListSites returns all sites ordered by name.
func (s *SQLiteStore) ListSites(ctx context.Context) ([]*models.Site, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, created_at FROM sites ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	defer rows.Close()

	var sites []*models.Site
	for rows.Next() {
		site := &models.Site{}
		if err := rows.Scan(&site.ID, &site.Name, &site.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sites: %w", err)
	}
	return sites, nil
}

// insertMaterialIDs stores an ordered material ID list in one of the
// *_materials tables.
func insertMaterialIDs(ctx context.Context, tx *sql.Tx, table, ownerColumn, ownerID string, materialIDs []string) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, material_id, position) VALUES (?, ?, ?)", table, ownerColumn)
	for i, materialID := range materialIDs {
		if _, err := tx.ExecContext(ctx, query, ownerID, materialID, i); err != nil {
			return fmt.Errorf("failed to insert material %s: %w", materialID, err)
		}
	}
	return nil
}

// queryMaterialIDs loads an ordered material ID list.
func queryMaterialIDs(ctx context.Context, db *sql.DB, table, ownerColumn, ownerID string) ([]string, error) {
	query := fmt.Sprintf("SELECT material_id FROM %s WHERE %s = ? ORDER BY position", table, ownerColumn)
	rows, err := db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get materials: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate materials: %w", err)
	}
	return ids, nil
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
