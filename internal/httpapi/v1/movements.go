// Movement handlers: deposit and withdraw against a single account.
package v1

import (
	"net/http"
)

// deposit handles POST /accounts/{id}/deposit. The optional from_account_id
// debits a source account in the same unit of work; the created payment is
// returned alongside the updated target account.
func (s *Server) deposit(w http.ResponseWriter, r *http.Request) {
	v := r.Context().Value(ctxKeyDeposit)
	in, ok := v.(depositInput)
	if !ok {
		writeErr(w, http.StatusInternalServerError, "validated request missing", "")
		return
	}
	acc, payment, err := s.ledgerSvc.Deposit(r.Context(), in.AccountID, in.Amount, in.FromAccountID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	resp := struct {
		Account accountResponse `json:"account"`
		Payment paymentResponse `json:"payment"`
	}{Account: toAccountResponse(acc), Payment: toPaymentResponse(payment)}
	toJSON(w, http.StatusCreated, resp)
}

// withdraw handles POST /accounts/{id}/withdraw. A bare withdraw mutates the
// balance only; no payment record is produced.
func (s *Server) withdraw(w http.ResponseWriter, r *http.Request) {
	v := r.Context().Value(ctxKeyWithdraw)
	in, ok := v.(withdrawInput)
	if !ok {
		writeErr(w, http.StatusInternalServerError, "validated request missing", "")
		return
	}
	acc, err := s.ledgerSvc.Withdraw(r.Context(), in.AccountID, in.Amount)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toAccountResponse(acc))
}
