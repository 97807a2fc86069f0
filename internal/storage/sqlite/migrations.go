package sqlite

import "database/sql"

// schema sets up the database. It runs on startup to ensure tables exist.
// Amounts are stored as decimal strings to keep cents exact.
const schema = `
CREATE TABLE IF NOT EXISTS sites (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS settlements (
    id TEXT PRIMARY KEY,
    from_site_id TEXT NOT NULL,
    to_site_id TEXT NOT NULL,
    total_amount TEXT NOT NULL,
    paid_amount TEXT NOT NULL,
    status TEXT NOT NULL,
    kind TEXT NOT NULL,
    offset_amount TEXT NOT NULL,
    note TEXT,
    created_at INTEGER NOT NULL,
    CHECK (from_site_id <> to_site_id)
);

CREATE TABLE IF NOT EXISTS settlement_materials (
    settlement_id TEXT NOT NULL,
    material_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (settlement_id, material_id),
    FOREIGN KEY (settlement_id) REFERENCES settlements(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS net_offsets (
    id TEXT PRIMARY KEY,
    site_a_id TEXT NOT NULL,
    site_b_id TEXT NOT NULL,
    offset_amount TEXT NOT NULL,
    net_remaining TEXT NOT NULL,
    net_payer_site_id TEXT NOT NULL,
    net_receiver_site_id TEXT NOT NULL,
    settlement_id TEXT,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (settlement_id) REFERENCES settlements(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS net_offset_materials (
    offset_id TEXT NOT NULL,
    material_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (offset_id, material_id),
    FOREIGN KEY (offset_id) REFERENCES net_offsets(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS material_debts (
    id TEXT PRIMARY KEY,
    debtor_site_id TEXT NOT NULL,
    creditor_site_id TEXT NOT NULL,
    material_id TEXT NOT NULL,
    material_name TEXT NOT NULL,
    unit TEXT NOT NULL,
    quantity TEXT NOT NULL,
    total_amount TEXT NOT NULL,
    vendor_unpaid INTEGER NOT NULL DEFAULT 0,
    settled_by TEXT,
    created_at INTEGER NOT NULL,
    CHECK (debtor_site_id <> creditor_site_id)
);

CREATE TABLE IF NOT EXISTS settlement_payments (
    id TEXT PRIMARY KEY,
    settlement_id TEXT NOT NULL,
    amount TEXT NOT NULL,
    note TEXT,
    paid_at INTEGER NOT NULL,
    FOREIGN KEY (settlement_id) REFERENCES settlements(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_material_debts_debtor ON material_debts(debtor_site_id) WHERE settled_by IS NULL;
CREATE INDEX IF NOT EXISTS idx_material_debts_creditor ON material_debts(creditor_site_id) WHERE settled_by IS NULL;
CREATE INDEX IF NOT EXISTS idx_settlements_from ON settlements(from_site_id);
CREATE INDEX IF NOT EXISTS idx_settlements_to ON settlements(to_site_id);
CREATE INDEX IF NOT EXISTS idx_settlement_payments_settlement_id ON settlement_payments(settlement_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
