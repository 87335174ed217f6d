// Package v1 wires the HTTP surface of the payments service.
// It keeps handlers thin, delegating business rules to the service layer.
package v1

import (
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tinoosan/payments/internal/service/account"
	"github.com/tinoosan/payments/internal/service/ledger"
)

// Server wires handlers and middleware using Chi.
// It composes read (repo) and write (writer) dependencies through services.
type Server struct {
	ledgerSvc  ledger.Service
	accountSvc account.Service
	payments   PaymentReader
	ready      ReadyChecker
	log        *slog.Logger
	rt         *chi.Mux
}

// New constructs the HTTP server with routes and middleware.
// The logger is used by basic request/response logging and panic recovery.
func New(arepo account.Repo, awriter account.Writer, lrepo ledger.Repo, lwriter ledger.Writer, payments PaymentReader, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)

	s := &Server{
		ledgerSvc:  ledger.New(lrepo, lwriter),
		accountSvc: account.New(arepo, awriter),
		payments:   payments,
		log:        logger,
		rt:         r,
	}
	if rc, ok := payments.(ReadyChecker); ok {
		s.ready = rc
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints and attaches any per-route middleware.
func (s *Server) routes() {
	// Accounts (v1)
	s.rt.Get("/v1/accounts", s.listAccounts)
	s.rt.With(s.validateCreateAccount()).Post("/v1/accounts", s.postAccount)
	s.rt.Get("/v1/accounts/{id}", s.getAccount)
	s.rt.Put("/v1/accounts/{id}", s.updateAccount)
	s.rt.Delete("/v1/accounts/{id}", s.deleteAccount)
	// Movements (v1)
	s.rt.With(s.validateDeposit()).Post("/v1/accounts/{id}/deposit", s.deposit)
	s.rt.With(s.validateWithdraw()).Post("/v1/accounts/{id}/withdraw", s.withdraw)
	// Payments (v1)
	s.rt.With(s.validateTransfer()).Post("/v1/payments", s.postPayment)
	s.rt.Get("/v1/payments", s.listPayments)
	s.rt.Get("/v1/payments/{id}", s.getPayment)
	// Health and metrics (unversioned)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Get("/metrics", metricsHandler().ServeHTTP)
}
