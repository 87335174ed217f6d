package v1

import (
	"context"
	"encoding/json"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/govalues/decimal"

	"github.com/tinoosan/payments/internal/bank"
)

type ctxKey string

const ctxKeyCreateAccount ctxKey = "validatedCreateAccount"
const ctxKeyDeposit ctxKey = "validatedDeposit"
const ctxKeyWithdraw ctxKey = "validatedWithdraw"
const ctxKeyTransfer ctxKey = "validatedTransfer"

// decodeJSON decodes a strict JSON body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

// parseAmount parses a wire amount, writing a 400 on malformed input.
// An empty string is rejected; sign rules are the service's concern.
func parseAmount(w http.ResponseWriter, raw string) (decimal.Decimal, bool) {
	amt, err := decimal.Parse(raw)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "amount must be a decimal string", "invalid_amount")
		return decimal.Decimal{}, false
	}
	return amt, true
}

// validateCreateAccount parses POST /accounts and stores the domain account in
// the request context for the handler to use.
func (s *Server) validateCreateAccount() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) { return }
			var req createAccountRequest
			if !decodeJSON(w, r, &req) { return }
			balance := decimal.Decimal{}
			if req.Balance != "" {
				var ok bool
				if balance, ok = parseAmount(w, req.Balance); !ok { return }
			}
			a := bank.Account{ID: req.ID, Owner: req.Owner, Balance: balance, Currency: req.Currency}
			ctx := context.WithValue(r.Context(), ctxKeyCreateAccount, a)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validateDeposit parses POST /accounts/{id}/deposit.
func (s *Server) validateDeposit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) { return }
			var req depositRequest
			if !decodeJSON(w, r, &req) { return }
			amt, ok := parseAmount(w, req.Amount)
			if !ok { return }
			in := depositInput{AccountID: chi.URLParam(r, "id"), Amount: amt, FromAccountID: req.FromAccountID}
			ctx := context.WithValue(r.Context(), ctxKeyDeposit, in)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validateWithdraw parses POST /accounts/{id}/withdraw.
func (s *Server) validateWithdraw() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) { return }
			var req withdrawRequest
			if !decodeJSON(w, r, &req) { return }
			amt, ok := parseAmount(w, req.Amount)
			if !ok { return }
			in := withdrawInput{AccountID: chi.URLParam(r, "id"), Amount: amt}
			ctx := context.WithValue(r.Context(), ctxKeyWithdraw, in)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validateTransfer parses POST /payments.
func (s *Server) validateTransfer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) { return }
			var req transferRequest
			if !decodeJSON(w, r, &req) { return }
			amt, ok := parseAmount(w, req.Amount)
			if !ok { return }
			in := transferInput{FromAccountID: req.FromAccountID, ToAccountID: req.ToAccountID, Amount: amt}
			ctx := context.WithValue(r.Context(), ctxKeyTransfer, in)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
