// Package account implements the account directory rules: immutable identity
// and currency, editable owner and balance, hard deletes with no payment
// cascade.
package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/tinoosan/payments/internal/bank"
	"github.com/tinoosan/payments/internal/errs"
)

// Repo defines read operations needed by the service.
type Repo interface {
	GetAccount(ctx context.Context, id string) (bank.Account, error)
	ListAccounts(ctx context.Context) ([]bank.Account, error)
}

// Writer defines write operations needed by the service.
type Writer interface {
	CreateAccount(ctx context.Context, a bank.Account) (bank.Account, error)
	UpdateAccount(ctx context.Context, a bank.Account) (bank.Account, error)
	DeleteAccount(ctx context.Context, id string) error
}

// Service exposes account lifecycle operations. Balance arithmetic lives in
// the ledger service; updates here replace fields verbatim.
type Service interface {
	Get(ctx context.Context, id string) (bank.Account, error)
	List(ctx context.Context) ([]bank.Account, error)
	Create(ctx context.Context, a bank.Account) (bank.Account, error)
	Update(ctx context.Context, id string, payload bank.Account) (bank.Account, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repo
	writer Writer
}

func New(repo Repo, writer Writer) Service { return &service{repo: repo, writer: writer} }

func (s *service) Get(ctx context.Context, id string) (bank.Account, error) {
	if id == "" {
		return bank.Account{}, errs.ErrInvalidAccount
	}
	return s.repo.GetAccount(ctx, id)
}

func (s *service) List(ctx context.Context) ([]bank.Account, error) {
	return s.repo.ListAccounts(ctx)
}

// Create persists the account as supplied; no balance validation happens on
// this path. A missing id is assigned.
func (s *service) Create(ctx context.Context, a bank.Account) (bank.Account, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return s.writer.CreateAccount(ctx, a)
}

// Update overwrites owner and balance from the payload. ID and currency are
// immutable via this path.
func (s *service) Update(ctx context.Context, id string, payload bank.Account) (bank.Account, error) {
	if id == "" {
		return bank.Account{}, errs.ErrInvalidAccount
	}
	current, err := s.repo.GetAccount(ctx, id)
	if err != nil {
		return bank.Account{}, err
	}
	current.Owner = payload.Owner
	current.Balance = payload.Balance
	return s.writer.UpdateAccount(ctx, current)
}

// Delete removes the account. Historical payments keep their references.
func (s *service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errs.ErrInvalidAccount
	}
	if _, err := s.repo.GetAccount(ctx, id); err != nil {
		return err
	}
	return s.writer.DeleteAccount(ctx, id)
}
