package sqlite

import (
	"context"
	"database/sql"
)

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Rows are ordered by rowid where recording order matters.
const schema = `
CREATE TABLE IF NOT EXISTS claims (
    id TEXT PRIMARY KEY,
    org_id TEXT NOT NULL,
    property_id TEXT NOT NULL DEFAULT '',
    claim_number TEXT NOT NULL DEFAULT '',
    carrier TEXT NOT NULL DEFAULT '',
    jurisdiction TEXT NOT NULL DEFAULT '',
    stage TEXT NOT NULL,
    estimated_value_cents INTEGER NOT NULL DEFAULT 0,
    deductible_cents INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS stage_events (
    id TEXT PRIMARY KEY,
    claim_id TEXT NOT NULL,
    from_stage TEXT NOT NULL,
    to_stage TEXT NOT NULL,
    actor_id TEXT NOT NULL DEFAULT '',
    note TEXT,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (claim_id) REFERENCES claims(id)
);

CREATE TABLE IF NOT EXISTS payments (
    id TEXT PRIMARY KEY,
    claim_id TEXT NOT NULL,
    amount_cents INTEGER NOT NULL,
    payment_type TEXT NOT NULL,
    reference TEXT,
    recorded_by TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    FOREIGN KEY (claim_id) REFERENCES claims(id)
);

CREATE TABLE IF NOT EXISTS supplements (
    id TEXT PRIMARY KEY,
    claim_id TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    total_cents INTEGER NOT NULL,
    status TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    FOREIGN KEY (claim_id) REFERENCES claims(id)
);

CREATE INDEX IF NOT EXISTS idx_claims_org_id ON claims(org_id);
CREATE INDEX IF NOT EXISTS idx_claims_org_stage ON claims(org_id, stage);
CREATE INDEX IF NOT EXISTS idx_stage_events_claim_id ON stage_events(claim_id);
CREATE INDEX IF NOT EXISTS idx_payments_claim_id ON payments(claim_id);
CREATE INDEX IF NOT EXISTS idx_supplements_claim_id ON supplements(claim_id);
`

// runMigrations executes the schema setup.
func runMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
