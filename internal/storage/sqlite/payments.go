package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/mmynk/claimtrack/internal/models"
)

// CreatePayment appends a payment to the claim's ledger.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	// Generate ID if not set
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}

	var reference any
	if payment.Reference != "" {
		reference = payment.Reference
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (id, claim_id, amount_cents, payment_type, reference, recorded_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.ClaimID, payment.AmountCents, payment.Type,
		reference, payment.RecordedBy, payment.CreatedAt,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: insert payment")
	}

	return nil
}

// ListPayments retrieves all payments for a claim in recording order.
func (s *SQLiteStore) ListPayments(ctx context.Context, claimID string) ([]*models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, claim_id, amount_cents, payment_type, reference, recorded_by, created_at
		 FROM payments WHERE claim_id = ? ORDER BY rowid`,
		claimID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list payments")
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		var reference sql.NullString

		if err := rows.Scan(&payment.ID, &payment.ClaimID, &payment.AmountCents, &payment.Type,
			&reference, &payment.RecordedBy, &payment.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan payment")
		}

		if reference.Valid {
			payment.Reference = reference.String
		}

		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate payments")
	}

	return payments, nil
}

// SumPayments returns the total of every payment recorded for a claim.
func (s *SQLiteStore) SumPayments(ctx context.Context, claimID string) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount_cents), 0) FROM payments WHERE claim_id = ?",
		claimID,
	).Scan(&total)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: sum payments")
	}
	return total, nil
}
