package postgres

// Package postgres provides a pgx-backed storage implementation that satisfies
// the repository and writer interfaces used by the services.
//
// It is intentionally small and explicit. Migrations that create the expected
// schema live under db/migrations. This package focuses on mapping between the
// domain entities and SQL rows and running the necessary statements/transactions.

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tinoosan/payments/internal/bank"
	"github.com/tinoosan/payments/internal/errs"
)

// Store holds a pgx connection pool and implements the read/write interfaces
// used across the service layer. All methods are safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil { return nil, err }
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil { return nil, err }
	// Verify connection
	if err := pool.Ping(ctx); err != nil { pool.Close(); return nil, err }
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() { if s.pool != nil { s.pool.Close() } }

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// SeedDev inserts two funded accounts for quick local testing.
func (s *Store) SeedDev(ctx context.Context) ([]bank.Account, error) {
	accs := []bank.Account{
		{ID: uuid.NewString(), Owner: "Alice", Balance: decimal.MustParse("1000"), Currency: "GBP"},
		{ID: uuid.NewString(), Owner: "Bob", Balance: decimal.MustParse("500"), Currency: "GBP"},
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil { return nil, err }
	defer func() { _ = tx.Rollback(ctx) }()
	for _, a := range accs {
		if _, err := tx.Exec(ctx, `
			insert into accounts (id, owner, balance, currency)
			values ($1,$2,$3,$4)
		`, a.ID, a.Owner, a.Balance.String(), a.Currency); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil { return nil, err }
	return accs, nil
}

// --- Account reads ---

// GetAccount fetches a single account by id.
func (s *Store) GetAccount(ctx context.Context, id string) (bank.Account, error) {
	var a bank.Account
	var balance string
	err := s.pool.QueryRow(ctx, `
		select id, owner, balance::text, currency
		from accounts
		where id = $1
	`, id).Scan(&a.ID, &a.Owner, &balance, &a.Currency)
	if errors.Is(err, pgx.ErrNoRows) { return bank.Account{}, errs.ErrAccountNotFound }
	if err != nil { return bank.Account{}, err }
	if a.Balance, err = decimal.Parse(balance); err != nil { return bank.Account{}, err }
	return a, nil
}

// ListAccounts returns all accounts.
func (s *Store) ListAccounts(ctx context.Context) ([]bank.Account, error) {
	rows, err := s.pool.Query(ctx, `
		select id, owner, balance::text, currency
		from accounts
		order by id
	`)
	if err != nil { return nil, err }
	defer rows.Close()
	out := make([]bank.Account, 0)
	for rows.Next() {
		var a bank.Account
		var balance string
		if err := rows.Scan(&a.ID, &a.Owner, &balance, &a.Currency); err != nil { return nil, err }
		if a.Balance, err = decimal.Parse(balance); err != nil { return nil, err }
		out = append(out, a)
	}
	return out, rows.Err()
}

// --- Account writes ---

// CreateAccount inserts an account row. A duplicate id maps to ErrConflict.
func (s *Store) CreateAccount(ctx context.Context, a bank.Account) (bank.Account, error) {
	_, err := s.pool.Exec(ctx, `
		insert into accounts (id, owner, balance, currency)
		values ($1,$2,$3,$4)
	`, a.ID, a.Owner, a.Balance.String(), a.Currency)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { return bank.Account{}, errs.ErrConflict }
	if err != nil { return bank.Account{}, err }
	return a, nil
}

// UpdateAccount overwrites the mutable fields of an account row.
func (s *Store) UpdateAccount(ctx context.Context, a bank.Account) (bank.Account, error) {
	ct, err := s.pool.Exec(ctx, `
		update accounts
		set owner=$1, balance=$2
		where id=$3
	`, a.Owner, a.Balance.String(), a.ID)
	if err != nil { return bank.Account{}, err }
	if ct.RowsAffected() == 0 { return bank.Account{}, errs.ErrAccountNotFound }
	return a, nil
}

// DeleteAccount removes an account row. Payments referencing it are kept.
func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	ct, err := s.pool.Exec(ctx, `delete from accounts where id=$1`, id)
	if err != nil { return err }
	if ct.RowsAffected() == 0 { return errs.ErrAccountNotFound }
	return nil
}

// ApplyMovement writes the mutated accounts and the optional payment in one
// transaction. Rows are locked in ascending id order so concurrent movements
// over the same pair cannot deadlock, and either every write lands or none do.
func (s *Store) ApplyMovement(ctx context.Context, accounts []bank.Account, payment *bank.Payment) (*bank.Payment, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil { return nil, err }
	defer func() { _ = tx.Rollback(ctx) }()

	ordered := make([]bank.Account, len(accounts))
	copy(ordered, accounts)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })
	for _, a := range ordered {
		if _, err := tx.Exec(ctx, `select 1 from accounts where id=$1 for update`, a.ID); err != nil {
			return nil, err
		}
		ct, err := tx.Exec(ctx, `
			update accounts
			set balance=$1
			where id=$2
		`, a.Balance.String(), a.ID)
		if err != nil { return nil, err }
		if ct.RowsAffected() == 0 { return nil, errs.ErrAccountNotFound }
	}

	var created *bank.Payment
	if payment != nil {
		id, err := uuid.NewV7()
		if err != nil { return nil, err }
		p := *payment
		p.ID = id
		if _, err := tx.Exec(ctx, `
			insert into payments (id, from_account, to_account, amount, direction)
			values ($1, nullif($2,''), nullif($3,''), $4, $5)
		`, p.ID, p.FromAccount, p.ToAccount, p.Amount.String(), string(p.Direction)); err != nil {
			return nil, err
		}
		created = &p
	}
	if err := tx.Commit(ctx); err != nil { return nil, err }
	return created, nil
}

// --- Payment reads ---

// GetPayment returns a payment by id.
func (s *Store) GetPayment(ctx context.Context, id uuid.UUID) (bank.Payment, error) {
	var p bank.Payment
	var amount string
	var direction string
	err := s.pool.QueryRow(ctx, `
		select id, coalesce(from_account,''), coalesce(to_account,''), amount::text, direction
		from payments
		where id = $1
	`, id).Scan(&p.ID, &p.FromAccount, &p.ToAccount, &amount, &direction)
	if errors.Is(err, pgx.ErrNoRows) { return bank.Payment{}, errs.ErrNotFound }
	if err != nil { return bank.Payment{}, err }
	if p.Amount, err = decimal.Parse(amount); err != nil { return bank.Payment{}, err }
	p.Direction = bank.Direction(direction)
	return p, nil
}

// ListPayments returns payments in creation order. A non-empty accountID
// filters to payments touching that account on either side.
func (s *Store) ListPayments(ctx context.Context, accountID string) ([]bank.Payment, error) {
	rows, err := s.pool.Query(ctx, `
		select id, coalesce(from_account,''), coalesce(to_account,''), amount::text, direction
		from payments
		where $1 = '' or from_account = $1 or to_account = $1
		order by created_at asc, id asc
	`, accountID)
	if err != nil { return nil, err }
	defer rows.Close()
	out := make([]bank.Payment, 0)
	for rows.Next() {
		var p bank.Payment
		var amount, direction string
		if err := rows.Scan(&p.ID, &p.FromAccount, &p.ToAccount, &amount, &direction); err != nil { return nil, err }
		if p.Amount, err = decimal.Parse(amount); err != nil { return nil, err }
		p.Direction = bank.Direction(direction)
		out = append(out, p)
	}
	return out, rows.Err()
}
