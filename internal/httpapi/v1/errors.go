package v1

import (
	"errors"
	"net/http"

	"github.com/tinoosan/payments/internal/errs"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
	toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) { writeErr(w, http.StatusBadRequest, msg, "") }
func notFound(w http.ResponseWriter)               { writeErr(w, http.StatusNotFound, "not_found", "not_found") }

// writeDomainErr maps the sentinel error kinds to transport status codes.
// Invalid input is the client's fault (400), a missing entity is 404, a
// movement the balance invariant rejects is 422, and a duplicate id is 409.
func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidAccount):
		writeErr(w, http.StatusBadRequest, "invalid account id", "invalid_account")
	case errors.Is(err, errs.ErrInvalidAmount):
		writeErr(w, http.StatusBadRequest, "amount must be a positive decimal", "invalid_amount")
	case errors.Is(err, errs.ErrAccountNotFound):
		writeErr(w, http.StatusNotFound, "account not found", "account_not_found")
	case errors.Is(err, errs.ErrNotFound):
		notFound(w)
	case errors.Is(err, errs.ErrInsufficientFunds):
		writeErr(w, http.StatusUnprocessableEntity, "insufficient funds", "insufficient_funds")
	case errors.Is(err, errs.ErrConflict):
		writeErr(w, http.StatusConflict, "account id already exists", "conflict")
	default:
		writeErr(w, http.StatusInternalServerError, "internal error", "")
	}
}
