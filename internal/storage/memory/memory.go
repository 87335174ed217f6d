package memory

// Package memory provides a simple in-memory implementation used for development
// and tests. It keeps code paths easy to follow while allowing us to plug in a
// real DB later.
import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/tinoosan/payments/internal/bank"
	"github.com/tinoosan/payments/internal/errs"
)

// Store is an in-memory implementation of the repository+writer interfaces used
// by the services. It is guarded by an RWMutex for concurrent reads/writes.
// Payments are kept in insertion order to preserve the append-log shape.
type Store struct {
	mu         sync.RWMutex
	accounts   map[string]bank.Account
	payments   []bank.Payment
	paymentIdx map[uuid.UUID]int
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{
		accounts:   make(map[string]bank.Account),
		paymentIdx: make(map[uuid.UUID]int),
	}
}

// Seed helpers for local dev/tests.
func (s *Store) SeedAccount(a bank.Account) { s.mu.Lock(); s.accounts[a.ID] = a; s.mu.Unlock() }
func (s *Store) Reset() {
	s.mu.Lock()
	s.accounts = map[string]bank.Account{}
	s.payments = nil
	s.paymentIdx = map[uuid.UUID]int{}
	s.mu.Unlock()
}

// GetAccount returns an account by id.
func (s *Store) GetAccount(_ context.Context, id string) (bank.Account, error) {
	s.mu.RLock(); defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok { return bank.Account{}, errs.ErrAccountNotFound }
	return a, nil
}

// ListAccounts returns all accounts.
func (s *Store) ListAccounts(_ context.Context) ([]bank.Account, error) {
	s.mu.RLock(); defer s.mu.RUnlock()
	out := make([]bank.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	return out, nil
}

// CreateAccount persists a new account. The id must not already exist.
func (s *Store) CreateAccount(_ context.Context, a bank.Account) (bank.Account, error) {
	s.mu.Lock(); defer s.mu.Unlock()
	if _, ok := s.accounts[a.ID]; ok { return bank.Account{}, errs.ErrConflict }
	s.accounts[a.ID] = a
	return a, nil
}

// UpdateAccount persists changes to an existing account.
func (s *Store) UpdateAccount(_ context.Context, a bank.Account) (bank.Account, error) {
	s.mu.Lock(); defer s.mu.Unlock()
	if _, ok := s.accounts[a.ID]; !ok { return bank.Account{}, errs.ErrAccountNotFound }
	s.accounts[a.ID] = a
	return a, nil
}

// DeleteAccount removes an account. Historical payments are untouched.
func (s *Store) DeleteAccount(_ context.Context, id string) error {
	s.mu.Lock(); defer s.mu.Unlock()
	if _, ok := s.accounts[id]; !ok { return errs.ErrAccountNotFound }
	delete(s.accounts, id)
	return nil
}

// ApplyMovement persists the mutated accounts and the optional payment as a
// single unit under the store lock. The store assigns the payment id.
func (s *Store) ApplyMovement(_ context.Context, accounts []bank.Account, payment *bank.Payment) (*bank.Payment, error) {
	s.mu.Lock(); defer s.mu.Unlock()
	for _, a := range accounts {
		if _, ok := s.accounts[a.ID]; !ok { return nil, errs.ErrAccountNotFound }
	}
	for _, a := range accounts {
		s.accounts[a.ID] = a
	}
	if payment == nil { return nil, nil }
	id, err := uuid.NewV7()
	if err != nil { return nil, err }
	p := *payment
	p.ID = id
	s.paymentIdx[p.ID] = len(s.payments)
	s.payments = append(s.payments, p)
	return &p, nil
}

// GetPayment returns a payment by id.
func (s *Store) GetPayment(_ context.Context, id uuid.UUID) (bank.Payment, error) {
	s.mu.RLock(); defer s.mu.RUnlock()
	i, ok := s.paymentIdx[id]
	if !ok { return bank.Payment{}, errs.ErrNotFound }
	return s.payments[i], nil
}

// ListPayments returns payments in insertion order. A non-empty accountID
// filters to payments touching that account on either side.
func (s *Store) ListPayments(_ context.Context, accountID string) ([]bank.Payment, error) {
	s.mu.RLock(); defer s.mu.RUnlock()
	out := make([]bank.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		if accountID != "" && p.FromAccount != accountID && p.ToAccount != accountID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
