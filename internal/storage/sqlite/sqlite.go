// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/claimtrack/internal/models"
	"github.com/mmynk/claimtrack/internal/storage"
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
		return nil, eris.Wrap(err, "sqlite: create database directory")
	}

	// Pragmas in the DSN apply to every pooled connection.
	dsn := "file:" + dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open database")
	}

	if err := runMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "sqlite: run migrations")
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const claimColumns = `id, org_id, property_id, claim_number, carrier, jurisdiction, stage,
	estimated_value_cents, deductible_cents, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanClaim(row scanner) (*models.Claim, error) {
	c := &models.Claim{}
	err := row.Scan(&c.ID, &c.OrgID, &c.PropertyID, &c.ClaimNumber, &c.Carrier, &c.Jurisdiction,
		&c.Stage, &c.EstimatedValueCents, &c.DeductibleCents, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// CreateClaim persists a new claim in stage FILED together with its filing event.
func (s *SQLiteStore) CreateClaim(ctx context.Context, claim *models.Claim, actorID string) error {
	// Generate IDs if not set
	if claim.ID == "" {
		claim.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if claim.CreatedAt == 0 {
		claim.CreatedAt = now
	}
	claim.UpdatedAt = claim.CreatedAt
	if claim.Stage == models.StageNone {
		claim.Stage = models.StageFiled
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin transaction")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO claims (`+claimColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		claim.ID, claim.OrgID, claim.PropertyID, claim.ClaimNumber, claim.Carrier, claim.Jurisdiction,
		claim.Stage, claim.EstimatedValueCents, claim.DeductibleCents, claim.CreatedAt, claim.UpdatedAt,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: insert claim")
	}

	if err := insertStageEvent(ctx, tx, claim.ID, models.StageNone, claim.Stage, actorID, "", claim.CreatedAt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "sqlite: commit transaction")
	}
	return nil
}

// GetClaim retrieves a claim by ID within an organization.
func (s *SQLiteStore) GetClaim(ctx context.Context, orgID, claimID string) (*models.Claim, error) {
	claim, err := scanClaim(s.db.QueryRowContext(ctx,
		`SELECT `+claimColumns+` FROM claims WHERE id = ? AND org_id = ?`,
		claimID, orgID,
	))
	if err == sql.ErrNoRows {
		return nil, eris.Wrapf(storage.ErrNotFound, "claim %s", claimID)
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get claim")
	}
	return claim, nil
}

// ListClaims returns an organization's claims, newest first.
func (s *SQLiteStore) ListClaims(ctx context.Context, orgID string, filter storage.ClaimFilter) ([]*models.Claim, error) {
	query := `SELECT ` + claimColumns + ` FROM claims WHERE org_id = ?`
	args := []any{orgID}
	if filter.Stage != models.StageNone {
		query += ` AND stage = ?`
		args = append(args, filter.Stage)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list claims")
	}
	defer rows.Close()

	var claims []*models.Claim
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan claim")
		}
		claims = append(claims, claim)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate claims")
	}
	return claims, nil
}

// UpdateClaimFinancials sets a claim's estimated value and deductible.
func (s *SQLiteStore) UpdateClaimFinancials(ctx context.Context, orgID, claimID string, estimatedCents, deductibleCents int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE claims SET estimated_value_cents = ?, deductible_cents = ?, updated_at = ?
		 WHERE id = ? AND org_id = ?`,
		estimatedCents, deductibleCents, time.Now().Unix(), claimID, orgID,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: update claim financials")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Wrapf(storage.ErrNotFound, "claim %s", claimID)
	}
	return nil
}

// TransitionClaimStage applies a stage change if the claim is still in stage from.
func (s *SQLiteStore) TransitionClaimStage(ctx context.Context, orgID, claimID string, from, to models.Stage, actorID, note string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin transaction")
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	res, err := tx.ExecContext(ctx,
		`UPDATE claims SET stage = ?, updated_at = ? WHERE id = ? AND org_id = ? AND stage = ?`,
		to, now, claimID, orgID, from,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: update claim stage")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		// Distinguish a missing claim from one that moved underneath us.
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM claims WHERE id = ? AND org_id = ?", claimID, orgID).Scan(&exists)
		if err == sql.ErrNoRows {
			return eris.Wrapf(storage.ErrNotFound, "claim %s", claimID)
		}
		if err != nil {
			return eris.Wrap(err, "sqlite: check claim existence")
		}
		return eris.Wrapf(storage.ErrStageConflict, "claim %s is no longer %s", claimID, from)
	}

	if err := insertStageEvent(ctx, tx, claimID, from, to, actorID, note, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "sqlite: commit transaction")
	}
	return nil
}

func insertStageEvent(ctx context.Context, tx *sql.Tx, claimID string, from, to models.Stage, actorID, note string, at int64) error {
	var noteVal any
	if note != "" {
		noteVal = note
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO stage_events (id, claim_id, from_stage, to_stage, actor_id, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), claimID, from, to, actorID, noteVal, at,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: insert stage event")
	}
	return nil
}

// ListStageEvents returns a claim's stage history, oldest first.
func (s *SQLiteStore) ListStageEvents(ctx context.Context, claimID string) ([]*models.StageEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, claim_id, from_stage, to_stage, actor_id, note, created_at
		 FROM stage_events WHERE claim_id = ? ORDER BY rowid`,
		claimID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list stage events")
	}
	defer rows.Close()

	var events []*models.StageEvent
	for rows.Next() {
		e := &models.StageEvent{}
		var note sql.NullString
		if err := rows.Scan(&e.ID, &e.ClaimID, &e.FromStage, &e.ToStage, &e.ActorID, &note, &e.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan stage event")
		}
		if note.Valid {
			e.Note = note.String
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate stage events")
	}
	return events, nil
}
