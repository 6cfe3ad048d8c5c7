package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/mmynk/claimtrack/internal/models"
	"github.com/mmynk/claimtrack/internal/storage"
)

const supplementColumns = `id, claim_id, description, total_cents, status, created_at, updated_at`

func scanSupplement(row scanner) (*models.Supplement, error) {
	sup := &models.Supplement{}
	err := row.Scan(&sup.ID, &sup.ClaimID, &sup.Description, &sup.TotalCents, &sup.Status,
		&sup.CreatedAt, &sup.UpdatedAt)
	return sup, err
}

// CreateSupplement persists a new supplement. Status defaults to requested.
func (s *SQLiteStore) CreateSupplement(ctx context.Context, supplement *models.Supplement) error {
	if supplement.ID == "" {
		supplement.ID = uuid.New().String()
	}
	if supplement.CreatedAt == 0 {
		supplement.CreatedAt = time.Now().Unix()
	}
	supplement.UpdatedAt = supplement.CreatedAt
	if supplement.Status == "" {
		supplement.Status = models.SupplementRequested
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO supplements (`+supplementColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		supplement.ID, supplement.ClaimID, supplement.Description, supplement.TotalCents,
		supplement.Status, supplement.CreatedAt, supplement.UpdatedAt,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: insert supplement")
	}
	return nil
}

// GetSupplement retrieves a supplement by ID.
func (s *SQLiteStore) GetSupplement(ctx context.Context, supplementID string) (*models.Supplement, error) {
	sup, err := scanSupplement(s.db.QueryRowContext(ctx,
		`SELECT `+supplementColumns+` FROM supplements WHERE id = ?`,
		supplementID,
	))
	if err == sql.ErrNoRows {
		return nil, eris.Wrapf(storage.ErrNotFound, "supplement %s", supplementID)
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get supplement")
	}
	return sup, nil
}

// UpdateSupplementStatus sets a supplement's status.
func (s *SQLiteStore) UpdateSupplementStatus(ctx context.Context, supplementID string, status models.SupplementStatus) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE supplements SET status = ?, updated_at = ? WHERE id = ?",
		status, time.Now().Unix(), supplementID,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: update supplement status")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Wrapf(storage.ErrNotFound, "supplement %s", supplementID)
	}
	return nil
}

// ListSupplements returns a claim's supplements in creation order,
// restricted to the given statuses when any are passed.
func (s *SQLiteStore) ListSupplements(ctx context.Context, claimID string, statuses ...models.SupplementStatus) ([]*models.Supplement, error) {
	query := `SELECT ` + supplementColumns + ` FROM supplements WHERE claim_id = ?`
	args := []any{claimID}
	if len(statuses) > 0 {
		query += ` AND status IN (?` + repeatPlaceholder(len(statuses)-1) + `)`
		for _, st := range statuses {
			args = append(args, st)
		}
	}
	query += ` ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list supplements")
	}
	defer rows.Close()

	var supplements []*models.Supplement
	for rows.Next() {
		sup, err := scanSupplement(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan supplement")
		}
		supplements = append(supplements, sup)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate supplements")
	}
	return supplements, nil
}

// SupplementTotals returns a claim's supplement totals grouped by status.
func (s *SQLiteStore) SupplementTotals(ctx context.Context, claimID string) (map[models.SupplementStatus]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT status, COALESCE(SUM(total_cents), 0) FROM supplements WHERE claim_id = ? GROUP BY status",
		claimID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: sum supplements")
	}
	defer rows.Close()

	totals := make(map[models.SupplementStatus]int64)
	for rows.Next() {
		var status models.SupplementStatus
		var total int64
		if err := rows.Scan(&status, &total); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan supplement total")
		}
		totals[status] = total
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate supplement totals")
	}
	return totals, nil
}

// repeatPlaceholder returns a string of ", ?" repeated n times.
// Used for building IN clauses with multiple placeholders.
func repeatPlaceholder(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(", ?", n)
}
