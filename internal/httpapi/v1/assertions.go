package v1

import (
	"github.com/tinoosan/payments/internal/service/account"
	"github.com/tinoosan/payments/internal/service/ledger"
	"github.com/tinoosan/payments/internal/storage/memory"
	"github.com/tinoosan/payments/internal/storage/postgres"
)

// Compile-time interface assertions for both stores against the interfaces
// consumed by the HTTP API and services.
var (
	_ account.Repo   = (*memory.Store)(nil)
	_ account.Writer = (*memory.Store)(nil)
	_ ledger.Repo    = (*memory.Store)(nil)
	_ ledger.Writer  = (*memory.Store)(nil)
	_ PaymentReader  = (*memory.Store)(nil)

	_ account.Repo   = (*postgres.Store)(nil)
	_ account.Writer = (*postgres.Store)(nil)
	_ ledger.Repo    = (*postgres.Store)(nil)
	_ ledger.Writer  = (*postgres.Store)(nil)
	_ PaymentReader  = (*postgres.Store)(nil)
	_ ReadyChecker   = (*postgres.Store)(nil)
)
