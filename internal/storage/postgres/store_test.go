package postgres

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/tinoosan/payments/internal/bank"
	"github.com/tinoosan/payments/internal/errs"
)

func getTestDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres store tests")
	}
	return dsn
}

func mustOpen(t *testing.T, dsn string) *Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func applyInitSQL(t *testing.T, dsn string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s := mustOpen(t, dsn)
	defer s.Close()
	// Resolve init SQL path relative to this test file so CWD doesn't matter
	_, thisFile, _, _ := runtime.Caller(0)
	repoRoot := filepath.Clean(filepath.Join(filepath.Dir(thisFile), "../../../"))
	path := filepath.Join(repoRoot, "db", "migrations", "0001_init.sql")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read init sql: %v", err)
	}
	// Exec may contain multiple statements; pgx supports this
	if _, err := s.pool.Exec(ctx, string(b)); err != nil {
		t.Fatalf("apply init sql: %v", err)
	}
}

func truncateAll(t *testing.T, dsn string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s := mustOpen(t, dsn)
	defer s.Close()
	_, _ = s.pool.Exec(ctx, `truncate table payments, accounts cascade`)
}

func TestStore_AccountCRUD(t *testing.T) {
	dsn := getTestDSN(t)
	applyInitSQL(t, dsn)
	truncateAll(t, dsn)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s := mustOpen(t, dsn)
	defer s.Close()

	a := bank.Account{ID: "acc-1", Owner: "Alice", Balance: decimal.MustParse("100.25"), Currency: "GBP"}
	if _, err := s.CreateAccount(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.CreateAccount(ctx, a); !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("duplicate create: expected ErrConflict, got %v", err)
	}

	got, err := s.GetAccount(ctx, "acc-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Owner != "Alice" || got.Balance.Cmp(decimal.MustParse("100.25")) != 0 || got.Currency != "GBP" {
		t.Fatalf("unexpected account: %+v", got)
	}

	got.Owner = "Alicia"
	got.Balance = decimal.MustParse("75")
	if _, err := s.UpdateAccount(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err = s.GetAccount(ctx, "acc-1")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Owner != "Alicia" || got.Balance.Cmp(decimal.MustParse("75")) != 0 {
		t.Fatalf("update not applied: %+v", got)
	}

	all, err := s.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one account, got %d", len(all))
	}

	if err := s.DeleteAccount(ctx, "acc-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetAccount(ctx, "acc-1"); !errors.Is(err, errs.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound after delete, got %v", err)
	}
	if err := s.DeleteAccount(ctx, "acc-1"); !errors.Is(err, errs.ErrAccountNotFound) {
		t.Fatalf("double delete: expected ErrAccountNotFound, got %v", err)
	}
}

func TestStore_ApplyMovementAndPayments(t *testing.T) {
	dsn := getTestDSN(t)
	applyInitSQL(t, dsn)
	truncateAll(t, dsn)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s := mustOpen(t, dsn)
	defer s.Close()

	from := bank.Account{ID: "a", Owner: "Alice", Balance: decimal.MustParse("1000"), Currency: "GBP"}
	to := bank.Account{ID: "b", Owner: "Bob", Balance: decimal.MustParse("500"), Currency: "GBP"}
	for _, a := range []bank.Account{from, to} {
		if _, err := s.CreateAccount(ctx, a); err != nil {
			t.Fatalf("create %s: %v", a.ID, err)
		}
	}

	from.Balance = decimal.MustParse("900")
	to.Balance = decimal.MustParse("600")
	payment := bank.Payment{FromAccount: "a", ToAccount: "b", Amount: decimal.MustParse("100"), Direction: bank.DirectionOutgoing}
	created, err := s.ApplyMovement(ctx, []bank.Account{from, to}, &payment)
	if err != nil {
		t.Fatalf("apply movement: %v", err)
	}
	if created == nil || created.ID == uuid.Nil {
		t.Fatal("expected assigned payment id")
	}

	got, err := s.GetAccount(ctx, "a")
	if err != nil {
		t.Fatalf("get a: %v", err)
	}
	if got.Balance.Cmp(decimal.MustParse("900")) != 0 {
		t.Fatalf("expected balance 900, got %s", got.Balance)
	}

	p, err := s.GetPayment(ctx, created.ID)
	if err != nil {
		t.Fatalf("get payment: %v", err)
	}
	if p.FromAccount != "a" || p.ToAccount != "b" || p.Amount.Cmp(decimal.MustParse("100")) != 0 || p.Direction != bank.DirectionOutgoing {
		t.Fatalf("unexpected payment: %+v", p)
	}

	// movements against a missing account must not land partially
	from.Balance = decimal.MustParse("800")
	missing := bank.Account{ID: "ghost", Balance: decimal.MustParse("1")}
	if _, err := s.ApplyMovement(ctx, []bank.Account{from, missing}, nil); !errors.Is(err, errs.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	got, err = s.GetAccount(ctx, "a")
	if err != nil {
		t.Fatalf("get a after failed movement: %v", err)
	}
	if got.Balance.Cmp(decimal.MustParse("900")) != 0 {
		t.Fatalf("partial write observed: balance %s", got.Balance)
	}

	// deposit without a source keeps from_account null and round-trips empty
	deposit := bank.Payment{ToAccount: "b", Amount: decimal.MustParse("25"), Direction: bank.DirectionIncoming}
	created, err = s.ApplyMovement(ctx, nil, &deposit)
	if err != nil {
		t.Fatalf("apply deposit: %v", err)
	}
	p, err = s.GetPayment(ctx, created.ID)
	if err != nil {
		t.Fatalf("get deposit payment: %v", err)
	}
	if p.FromAccount != "" || p.Direction != bank.DirectionIncoming {
		t.Fatalf("unexpected payment: %+v", p)
	}

	ps, err := s.ListPayments(ctx, "a")
	if err != nil {
		t.Fatalf("list payments: %v", err)
	}
	if len(ps) != 1 {
		t.Fatalf("expected 1 payment touching a, got %d", len(ps))
	}
	ps, err = s.ListPayments(ctx, "")
	if err != nil {
		t.Fatalf("list all payments: %v", err)
	}
	if len(ps) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(ps))
	}
}
