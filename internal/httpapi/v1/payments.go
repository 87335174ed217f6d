// Payment handlers: transfers and the append-log readers.
package v1

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// postPayment handles POST /payments: the two-account atomic transfer.
func (s *Server) postPayment(w http.ResponseWriter, r *http.Request) {
	v := r.Context().Value(ctxKeyTransfer)
	in, ok := v.(transferInput)
	if !ok {
		writeErr(w, http.StatusInternalServerError, "validated request missing", "")
		return
	}
	payment, err := s.ledgerSvc.Transfer(r.Context(), in.FromAccountID, in.ToAccountID, in.Amount)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusCreated, toPaymentResponse(payment))
}

func (s *Server) listPayments(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("account_id")
	payments, err := s.payments.ListPayments(r.Context(), accountID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	toJSON(w, http.StatusOK, out)
}

func (s *Server) getPayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid payment id")
		return
	}
	p, err := s.payments.GetPayment(r.Context(), id)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toPaymentResponse(p))
}
