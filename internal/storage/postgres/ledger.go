package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/mmynk/claimtrack/internal/models"
	"github.com/mmynk/claimtrack/internal/storage"
)

// CreatePayment appends a payment to the claim's ledger.
func (s *PostgresStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO payments (id, claim_id, amount_cents, payment_type, reference, recorded_by, created_at) VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)`,
		payment.ID, payment.ClaimID, payment.AmountCents, string(payment.Type), payment.Reference, payment.RecordedBy, payment.CreatedAt,
	)
	if err != nil {
		return eris.Wrap(err, "postgres: insert payment")
	}
	return nil
}

// ListPayments returns a claim's payments in recording order.
func (s *PostgresStore) ListPayments(ctx context.Context, claimID string) ([]*models.Payment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, claim_id, amount_cents, payment_type, COALESCE(reference, ''), recorded_by, created_at FROM payments WHERE claim_id = $1 ORDER BY seq`,
		claimID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list payments")
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p := &models.Payment{}
		var paymentType string
		if err := rows.Scan(&p.ID, &p.ClaimID, &p.AmountCents, &paymentType, &p.Reference, &p.RecordedBy, &p.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan payment")
		}
		p.Type = models.PaymentType(paymentType)
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate payments")
	}
	return payments, nil
}

// SumPayments returns the total of every payment recorded for a claim.
func (s *PostgresStore) SumPayments(ctx context.Context, claimID string) (int64, error) {
	var total int64
	err := s.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0)::BIGINT FROM payments WHERE claim_id = $1`,
		claimID,
	).Scan(&total)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: sum payments")
	}
	return total, nil
}

const supplementColumns = `id, claim_id, description, total_cents, status, created_at, updated_at`

func scanSupplement(row pgx.Row) (*models.Supplement, error) {
	sup := &models.Supplement{}
	var status string
	err := row.Scan(&sup.ID, &sup.ClaimID, &sup.Description, &sup.TotalCents, &status, &sup.CreatedAt, &sup.UpdatedAt)
	sup.Status = models.SupplementStatus(status)
	return sup, err
}

// CreateSupplement persists a new supplement. Status defaults to requested.
func (s *PostgresStore) CreateSupplement(ctx context.Context, supplement *models.Supplement) error {
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

	_, err := s.pool.Exec(ctx,
		`INSERT INTO supplements (`+supplementColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		supplement.ID, supplement.ClaimID, supplement.Description, supplement.TotalCents,
		string(supplement.Status), supplement.CreatedAt, supplement.UpdatedAt,
	)
	if err != nil {
		return eris.Wrap(err, "postgres: insert supplement")
	}
	return nil
}

// GetSupplement retrieves a supplement by ID.
func (s *PostgresStore) GetSupplement(ctx context.Context, supplementID string) (*models.Supplement, error) {
	sup, err := scanSupplement(s.pool.QueryRow(ctx,
		`SELECT `+supplementColumns+` FROM supplements WHERE id = $1`,
		supplementID,
	))
	if eris.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(storage.ErrNotFound, "supplement %s", supplementID)
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get supplement")
	}
	return sup, nil
}

// UpdateSupplementStatus sets a supplement's status.
func (s *PostgresStore) UpdateSupplementStatus(ctx context.Context, supplementID string, status models.SupplementStatus) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE supplements SET status = $1, updated_at = $2 WHERE id = $3`,
		string(status), time.Now().Unix(), supplementID,
	)
	if err != nil {
		return eris.Wrap(err, "postgres: update supplement status")
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(storage.ErrNotFound, "supplement %s", supplementID)
	}
	return nil
}

// ListSupplements returns a claim's supplements in creation order,
// restricted to the given statuses when any are passed.
func (s *PostgresStore) ListSupplements(ctx context.Context, claimID string, statuses ...models.SupplementStatus) ([]*models.Supplement, error) {
	query := `SELECT ` + supplementColumns + ` FROM supplements WHERE claim_id = $1`
	args := []any{claimID}
	if len(statuses) > 0 {
		names := make([]string, len(statuses))
		for i, st := range statuses {
			names[i] = string(st)
		}
		args = append(args, names)
		query += ` AND status = ANY($2)`
	}
	query += ` ORDER BY seq`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list supplements")
	}
	defer rows.Close()

	var supplements []*models.Supplement
	for rows.Next() {
		sup, err := scanSupplement(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan supplement")
		}
		supplements = append(supplements, sup)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate supplements")
	}
	return supplements, nil
}

// SupplementTotals returns a claim's supplement totals grouped by status.
func (s *PostgresStore) SupplementTotals(ctx context.Context, claimID string) (map[models.SupplementStatus]int64, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT status, COALESCE(SUM(total_cents), 0)::BIGINT FROM supplements WHERE claim_id = $1 GROUP BY status`,
		claimID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: sum supplements")
	}
	defer rows.Close()

	totals := make(map[models.SupplementStatus]int64)
	for rows.Next() {
		var status string
		var total int64
		if err := rows.Scan(&status, &total); err != nil {
			return nil, eris.Wrap(err, "postgres: scan supplement total")
		}
		totals[models.SupplementStatus(status)] = total
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate supplement totals")
	}
	return totals, nil
}
