package v1

import (
	"context"

	"github.com/google/uuid"

	"github.com/tinoosan/payments/internal/bank"
)

// PaymentReader abstracts read access to the append-only payment log.
type PaymentReader interface {
	// GetPayment returns a payment by id.
	GetPayment(ctx context.Context, id uuid.UUID) (bank.Payment, error)
	// ListPayments returns payments in creation order, optionally filtered to
	// those touching accountID on either side.
	ListPayments(ctx context.Context, accountID string) ([]bank.Payment, error)
}

// ReadyChecker is optionally implemented by stores to indicate readiness.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}
