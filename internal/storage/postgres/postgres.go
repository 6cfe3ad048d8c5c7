// Package postgres provides a PostgreSQL-backed implementation of the
// storage.Store interface on top of pgxpool.
package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/mmynk/claimtrack/internal/models"
	"github.com/mmynk/claimtrack/internal/storage"
)

var _ storage.Store = (*PostgresStore)(nil)

// Pool is the subset of *pgxpool.Pool the store uses. pgxmock.PgxPoolIface
// satisfies it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// PostgresStore implements storage.Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// New creates a PostgresStore with a connection pool and applies the schema.
func New(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	s := &PostgresStore{pool: pool}
	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// NewWithPool wraps an existing pool without running migrations.
func NewWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const migration = `
CREATE TABLE IF NOT EXISTS claims (
	id                    TEXT PRIMARY KEY,
	org_id                TEXT NOT NULL,
	property_id           TEXT NOT NULL DEFAULT '',
	claim_number          TEXT NOT NULL DEFAULT '',
	carrier               TEXT NOT NULL DEFAULT '',
	jurisdiction          TEXT NOT NULL DEFAULT '',
	stage                 TEXT NOT NULL,
	estimated_value_cents BIGINT NOT NULL DEFAULT 0,
	deductible_cents      BIGINT NOT NULL DEFAULT 0,
	created_at            BIGINT NOT NULL,
	updated_at            BIGINT NOT NULL,
	seq                   BIGSERIAL
);

CREATE TABLE IF NOT EXISTS stage_events (
	id         TEXT PRIMARY KEY,
	claim_id   TEXT NOT NULL REFERENCES claims(id),
	from_stage TEXT NOT NULL,
	to_stage   TEXT NOT NULL,
	actor_id   TEXT NOT NULL DEFAULT '',
	note       TEXT,
	created_at BIGINT NOT NULL,
	seq        BIGSERIAL
);

CREATE TABLE IF NOT EXISTS payments (
	id           TEXT PRIMARY KEY,
	claim_id     TEXT NOT NULL REFERENCES claims(id),
	amount_cents BIGINT NOT NULL,
	payment_type TEXT NOT NULL,
	reference    TEXT,
	recorded_by  TEXT NOT NULL DEFAULT '',
	created_at   BIGINT NOT NULL,
	seq          BIGSERIAL
);

CREATE TABLE IF NOT EXISTS supplements (
	id          TEXT PRIMARY KEY,
	claim_id    TEXT NOT NULL REFERENCES claims(id),
	description TEXT NOT NULL DEFAULT '',
	total_cents BIGINT NOT NULL,
	status      TEXT NOT NULL,
	created_at  BIGINT NOT NULL,
	updated_at  BIGINT NOT NULL,
	seq         BIGSERIAL
);

CREATE INDEX IF NOT EXISTS idx_claims_org_stage ON claims(org_id, stage);
CREATE INDEX IF NOT EXISTS idx_stage_events_claim_id ON stage_events(claim_id);
CREATE INDEX IF NOT EXISTS idx_payments_claim_id ON payments(claim_id);
CREATE INDEX IF NOT EXISTS idx_supplements_claim_id ON supplements(claim_id);
`

// Migrate applies the schema. It is idempotent.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, migration); err != nil {
		return eris.Wrap(err, "postgres: migrate")
	}
	return nil
}

const claimColumns = `id, org_id, property_id, claim_number, carrier, jurisdiction, stage, estimated_value_cents, deductible_cents, created_at, updated_at`

func scanClaim(row pgx.Row) (*models.Claim, error) {
	c := &models.Claim{}
	var stage string
	err := row.Scan(&c.ID, &c.OrgID, &c.PropertyID, &c.ClaimNumber, &c.Carrier, &c.Jurisdiction,
		&stage, &c.EstimatedValueCents, &c.DeductibleCents, &c.CreatedAt, &c.UpdatedAt)
	c.Stage = models.Stage(stage)
	return c, err
}

// CreateClaim inserts a claim in stage FILED and its filing event.
func (s *PostgresStore) CreateClaim(ctx context.Context, claim *models.Claim, actorID string) error {
	if claim.ID == "" {
		claim.ID = uuid.New().String()
	}
	if claim.CreatedAt == 0 {
		claim.CreatedAt = time.Now().Unix()
	}
	claim.UpdatedAt = claim.CreatedAt
	if claim.Stage == models.StageNone {
		claim.Stage = models.StageFiled
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	_, err = tx.Exec(ctx,
		`INSERT INTO claims (`+claimColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		claim.ID, claim.OrgID, claim.PropertyID, claim.ClaimNumber, claim.Carrier, claim.Jurisdiction,
		string(claim.Stage), claim.EstimatedValueCents, claim.DeductibleCents, claim.CreatedAt, claim.UpdatedAt,
	)
	if err != nil {
		return eris.Wrap(err, "postgres: insert claim")
	}

	if err := insertStageEvent(ctx, tx, claim.ID, models.StageNone, claim.Stage, actorID, "", claim.CreatedAt); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return eris.Wrap(err, "postgres: commit")
	}
	return nil
}

// GetClaim returns a claim of the given organization.
func (s *PostgresStore) GetClaim(ctx context.Context, orgID, claimID string) (*models.Claim, error) {
	claim, err := scanClaim(s.pool.QueryRow(ctx,
		`SELECT `+claimColumns+` FROM claims WHERE id = $1 AND org_id = $2`,
		claimID, orgID,
	))
	if eris.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(storage.ErrNotFound, "claim %s", claimID)
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get claim")
	}
	return claim, nil
}

// ListClaims returns an organization's claims, newest first.
func (s *PostgresStore) ListClaims(ctx context.Context, orgID string, filter storage.ClaimFilter) ([]*models.Claim, error) {
	query := `SELECT ` + claimColumns + ` FROM claims WHERE org_id = $1`
	args := []any{orgID}
	if filter.Stage != models.StageNone {
		args = append(args, string(filter.Stage))
		query += ` AND stage = $2`
	}
	query += ` ORDER BY created_at DESC, seq DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list claims")
	}
	defer rows.Close()

	var claims []*models.Claim
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan claim")
		}
		claims = append(claims, claim)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate claims")
	}
	return claims, nil
}

// UpdateClaimFinancials sets a claim's estimated value and deductible.
func (s *PostgresStore) UpdateClaimFinancials(ctx context.Context, orgID, claimID string, estimatedCents, deductibleCents int64) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE claims SET estimated_value_cents = $1, deductible_cents = $2, updated_at = $3 WHERE id = $4 AND org_id = $5`,
		estimatedCents, deductibleCents, time.Now().Unix(), claimID, orgID,
	)
	if err != nil {
		return eris.Wrap(err, "postgres: update claim financials")
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(storage.ErrNotFound, "claim %s", claimID)
	}
	return nil
}

// TransitionClaimStage applies a stage change if the claim is still in stage from.
func (s *PostgresStore) TransitionClaimStage(ctx context.Context, orgID, claimID string, from, to models.Stage, actorID, note string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	now := time.Now().Unix()
	tag, err := tx.Exec(ctx,
		`UPDATE claims SET stage = $1, updated_at = $2 WHERE id = $3 AND org_id = $4 AND stage = $5`,
		string(to), now, claimID, orgID, string(from),
	)
	if err != nil {
		return eris.Wrap(err, "postgres: update claim stage")
	}
	if tag.RowsAffected() == 0 {
		var exists int
		err := tx.QueryRow(ctx, `SELECT 1 FROM claims WHERE id = $1 AND org_id = $2`, claimID, orgID).Scan(&exists)
		if eris.Is(err, pgx.ErrNoRows) {
			return eris.Wrapf(storage.ErrNotFound, "claim %s", claimID)
		}
		if err != nil {
			return eris.Wrap(err, "postgres: check claim existence")
		}
		return eris.Wrapf(storage.ErrStageConflict, "claim %s is no longer %s", claimID, from)
	}

	if err := insertStageEvent(ctx, tx, claimID, from, to, actorID, note, now); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return eris.Wrap(err, "postgres: commit")
	}
	return nil
}

func insertStageEvent(ctx context.Context, tx pgx.Tx, claimID string, from, to models.Stage, actorID, note string, at int64) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO stage_events (id, claim_id, from_stage, to_stage, actor_id, note, created_at) VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)`,
		uuid.New().String(), claimID, string(from), string(to), actorID, note, at,
	)
	if err != nil {
		return eris.Wrap(err, "postgres: insert stage event")
	}
	return nil
}

// ListStageEvents returns a claim's stage history, oldest first.
func (s *PostgresStore) ListStageEvents(ctx context.Context, claimID string) ([]*models.StageEvent, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, claim_id, from_stage, to_stage, actor_id, COALESCE(note, ''), created_at FROM stage_events WHERE claim_id = $1 ORDER BY seq`,
		claimID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list stage events")
	}
	defer rows.Close()

	var events []*models.StageEvent
	for rows.Next() {
		e := &models.StageEvent{}
		var from, to string
		if err := rows.Scan(&e.ID, &e.ClaimID, &from, &to, &e.ActorID, &e.Note, &e.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan stage event")
		}
		e.FromStage, e.ToStage = models.Stage(from), models.Stage(to)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate stage events")
	}
	return events, nil
}
