// Package ledger implements the money-movement rules: non-negative balances,
// atomic two-account transfers, and one payment record per movement.
package ledger

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/govalues/decimal"

	"github.com/tinoosan/payments/internal/bank"
	"github.com/tinoosan/payments/internal/errs"
)

// Repo defines read operations needed by the service.
type Repo interface {
	GetAccount(ctx context.Context, id string) (bank.Account, error)
}

// Writer defines write operations needed by the service. ApplyMovement must
// persist the accounts and the optional payment as a single all-or-nothing
// unit; the store assigns the payment id.
type Writer interface {
	ApplyMovement(ctx context.Context, accounts []bank.Account, payment *bank.Payment) (*bank.Payment, error)
}

// Service exposes the three balance-mutating operations.
type Service interface {
	Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) (bank.Account, error)
	Deposit(ctx context.Context, accountID string, amount decimal.Decimal, fromAccountID string) (bank.Account, bank.Payment, error)
	Transfer(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal) (bank.Payment, error)
}

type service struct {
	repo   Repo
	writer Writer

	// Per-account mutexes serialize the read-validate-write sequence of a
	// single operation so two concurrent movements on the same account cannot
	// both act on a stale balance. The table grows with the set of account
	// ids touched; accounts are long-lived so entries are never evicted.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(repo Repo, writer Writer) Service {
	return &service{repo: repo, writer: writer, locks: make(map[string]*sync.Mutex)}
}

// lockAccounts acquires the mutex of every id in ascending order and returns
// the matching unlock. The fixed ordering keeps two transfers moving funds in
// opposite directions between the same pair from deadlocking.
func (s *service) lockAccounts(ids ...string) func() {
	uniq := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}
	sort.Strings(uniq)
	held := make([]*sync.Mutex, 0, len(uniq))
	for _, id := range uniq {
		s.mu.Lock()
		m, ok := s.locks[id]
		if !ok {
			m = &sync.Mutex{}
			s.locks[id] = m
		}
		s.mu.Unlock()
		m.Lock()
		held = append(held, m)
	}
	return func() {
		for _, m := range held {
			m.Unlock()
		}
	}
}

// Withdraw debits an account. A bare withdraw mutates the balance only and
// produces no payment record.
func (s *service) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) (bank.Account, error) {
	if accountID == "" {
		return bank.Account{}, errs.ErrInvalidAccount
	}
	if amount.Sign() <= 0 {
		return bank.Account{}, errs.ErrInvalidAmount
	}
	unlock := s.lockAccounts(accountID)
	defer unlock()

	acc, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return bank.Account{}, err
	}
	if acc.Balance.Cmp(amount) < 0 {
		return bank.Account{}, errs.ErrInsufficientFunds
	}
	balance, err := acc.Balance.Sub(amount)
	if err != nil {
		return bank.Account{}, err
	}
	acc.Balance = balance
	if _, err := s.writer.ApplyMovement(ctx, []bank.Account{acc}, nil); err != nil {
		return bank.Account{}, err
	}
	return acc, nil
}

// Deposit credits an account and writes a payment record. When fromAccountID
// resolves to an existing account it is debited in the same unit of work and
// the payment is tagged outgoing. An unresolved fromAccountID is treated as
// absent: the deposit still succeeds and nobody is debited.
func (s *service) Deposit(ctx context.Context, accountID string, amount decimal.Decimal, fromAccountID string) (bank.Account, bank.Payment, error) {
	if accountID == "" {
		return bank.Account{}, bank.Payment{}, errs.ErrInvalidAccount
	}
	unlock := s.lockAccounts(accountID, fromAccountID)
	defer unlock()

	acc, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return bank.Account{}, bank.Payment{}, err
	}
	balance, err := acc.Balance.Add(amount)
	if err != nil {
		return bank.Account{}, bank.Payment{}, err
	}
	if balance.IsNeg() {
		return bank.Account{}, bank.Payment{}, errs.ErrInsufficientFunds
	}
	acc.Balance = balance

	payment := bank.Payment{ToAccount: accountID, Amount: amount, Direction: bank.DirectionIncoming}
	accounts := []bank.Account{acc}

	if fromAccountID != "" {
		src, srcErr := s.sourceAccount(ctx, acc, fromAccountID)
		if srcErr != nil && !errors.Is(srcErr, errs.ErrAccountNotFound) {
			return bank.Account{}, bank.Payment{}, srcErr
		}
		if srcErr == nil {
			debited, err := src.Balance.Sub(amount)
			if err != nil {
				return bank.Account{}, bank.Payment{}, err
			}
			if debited.IsNeg() {
				return bank.Account{}, bank.Payment{}, errs.ErrInsufficientFunds
			}
			src.Balance = debited
			if src.ID == acc.ID {
				acc = src
				accounts = []bank.Account{acc}
			} else {
				accounts = append(accounts, src)
			}
			payment.FromAccount = fromAccountID
			payment.Direction = bank.DirectionOutgoing
		}
	}

	created, err := s.writer.ApplyMovement(ctx, accounts, &payment)
	if err != nil {
		return bank.Account{}, bank.Payment{}, err
	}
	return acc, *created, nil
}

// sourceAccount resolves the optional deposit source. When the source is the
// target itself the already-credited copy is used so the debit nets out,
// matching the sequential read-after-write of the two-step flow.
func (s *service) sourceAccount(ctx context.Context, target bank.Account, fromAccountID string) (bank.Account, error) {
	if fromAccountID == target.ID {
		return target, nil
	}
	return s.repo.GetAccount(ctx, fromAccountID)
}

// Transfer atomically moves amount between two distinct accounts and records
// exactly one payment. Either everything is persisted or nothing is.
func (s *service) Transfer(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal) (bank.Payment, error) {
	if fromAccountID == toAccountID {
		return bank.Payment{}, errs.ErrInvalidAccount
	}
	if amount.Sign() <= 0 {
		return bank.Payment{}, errs.ErrInvalidAmount
	}
	unlock := s.lockAccounts(fromAccountID, toAccountID)
	defer unlock()

	from, err := s.repo.GetAccount(ctx, fromAccountID)
	if err != nil {
		return bank.Payment{}, err
	}
	to, err := s.repo.GetAccount(ctx, toAccountID)
	if err != nil {
		return bank.Payment{}, err
	}
	if from.Balance.Cmp(amount) < 0 {
		return bank.Payment{}, errs.ErrInsufficientFunds
	}
	fromBalance, err := from.Balance.Sub(amount)
	if err != nil {
		return bank.Payment{}, err
	}
	toBalance, err := to.Balance.Add(amount)
	if err != nil {
		return bank.Payment{}, err
	}
	from.Balance = fromBalance
	to.Balance = toBalance

	payment := bank.Payment{
		FromAccount: fromAccountID,
		ToAccount:   toAccountID,
		Amount:      amount,
		Direction:   bank.DirectionOutgoing,
	}
	created, err := s.writer.ApplyMovement(ctx, []bank.Account{from, to}, &payment)
	if err != nil {
		return bank.Payment{}, err
	}
	return *created, nil
}
