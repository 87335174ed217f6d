package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/govalues/decimal"

	"github.com/tinoosan/payments/internal/bank"
	"github.com/tinoosan/payments/internal/errs"
)

// A movement naming a missing account must not apply any of its writes.
func TestApplyMovement_AllOrNothing(t *testing.T) {
	s := New()
	s.SeedAccount(bank.Account{ID: "a", Owner: "Alice", Balance: decimal.MustParse("100"), Currency: "GBP"})

	mutated := bank.Account{ID: "a", Owner: "Alice", Balance: decimal.MustParse("50"), Currency: "GBP"}
	ghost := bank.Account{ID: "ghost", Balance: decimal.MustParse("50")}
	payment := bank.Payment{FromAccount: "a", ToAccount: "ghost", Amount: decimal.MustParse("50"), Direction: bank.DirectionOutgoing}

	_, err := s.ApplyMovement(context.Background(), []bank.Account{mutated, ghost}, &payment)
	if !errors.Is(err, errs.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	got, err := s.GetAccount(context.Background(), "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Balance.Cmp(decimal.MustParse("100")) != 0 {
		t.Fatalf("partial write observed: balance %s", got.Balance)
	}
	ps, err := s.ListPayments(context.Background(), "")
	if err != nil {
		t.Fatalf("list payments: %v", err)
	}
	if len(ps) != 0 {
		t.Fatalf("expected no payments, got %d", len(ps))
	}
}

func TestPayments_OrderAndLookup(t *testing.T) {
	s := New()
	var ids []string
	for i := 0; i < 3; i++ {
		p := bank.Payment{ToAccount: "a", Amount: decimal.MustParse("1"), Direction: bank.DirectionIncoming}
		created, err := s.ApplyMovement(context.Background(), nil, &p)
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
		ids = append(ids, created.ID.String())
	}
	ps, err := s.ListPayments(context.Background(), "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ps) != 3 {
		t.Fatalf("expected 3 payments, got %d", len(ps))
	}
	for i, p := range ps {
		if p.ID.String() != ids[i] {
			t.Fatalf("insertion order not preserved at %d", i)
		}
	}
	got, err := s.GetPayment(context.Background(), ps[1].ID)
	if err != nil {
		t.Fatalf("get payment: %v", err)
	}
	if got.ID != ps[1].ID {
		t.Fatalf("unexpected payment: %+v", got)
	}
}
