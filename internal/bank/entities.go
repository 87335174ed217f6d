package bank

import (
	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

// Direction labels a payment from the perspective of the primary account acted
// upon: incoming when its balance increased, outgoing when a source account was
// debited.
type Direction string

const (
	// DirectionIncoming marks a payment that credited the primary account.
	DirectionIncoming Direction = "incoming"
	// DirectionOutgoing marks a payment that debited a source account.
	DirectionOutgoing Direction = "outgoing"
)

// Account is a balance-holding entity identified by a unique id.
// Balance is exact decimal and must never be negative at rest.
type Account struct {
	// ID is unique and immutable after creation. Assigned as a UUID string on
	// create when the client does not supply one.
	ID       string
	Owner    string
	Balance  decimal.Decimal
	// Currency is an informational label only; it is stored but never enforced.
	Currency string
}

// Payment is an immutable record of one balance-affecting event between zero,
// one, or two accounts. Payments form an append-only log: they are never
// updated or deleted, and they keep referencing account ids after the account
// itself is gone.
type Payment struct {
	// ID is assigned by the store on creation (UUIDv7: time-ordered, unique,
	// never reused).
	ID          uuid.UUID
	// FromAccount is empty for pure deposits with no originating account.
	FromAccount string
	// ToAccount is empty for pure withdrawals.
	ToAccount   string
	// Amount is the positive magnitude moved.
	Amount      decimal.Decimal
	Direction   Direction
}
