package models

import "strings"

// PaymentType tags a payment. The depreciation draft treats ACV payments
// differently from every other type.
type PaymentType string

const (
	PaymentTypeACV          PaymentType = "ACV"
	PaymentTypeRCV          PaymentType = "RCV"
	PaymentTypeDepreciation PaymentType = "DEPRECIATION"
	PaymentTypeSupplement   PaymentType = "SUPPLEMENT"
	PaymentTypeOther        PaymentType = "OTHER"
)

// ParsePaymentType normalizes a payment type tag. ok is false for unknown tags.
func ParsePaymentType(raw string) (PaymentType, bool) {
	t := PaymentType(strings.ToUpper(strings.TrimSpace(raw)))
	switch t {
	case PaymentTypeACV, PaymentTypeRCV, PaymentTypeDepreciation, PaymentTypeSupplement, PaymentTypeOther:
		return t, true
	}
	return "", false
}

// Payment represents one disbursement against a claim.
// Payments are append-only: once recorded they are never updated or deleted.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// ClaimID is the claim this payment belongs to.
	ClaimID string

	// AmountCents is the disbursed amount.
	AmountCents int64

	// Type is the payment type tag (e.g. ACV, RCV).
	Type PaymentType

	// Reference is an optional check number or transaction reference.
	Reference string

	// RecordedBy is the user ID who recorded the payment.
	RecordedBy string

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}
