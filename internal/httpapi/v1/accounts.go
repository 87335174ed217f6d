// Account handlers: CRUD orchestration with no balance arithmetic.
package v1

import (
	"net/http"
	"sort"

	chi "github.com/go-chi/chi/v5"

	"github.com/tinoosan/payments/internal/bank"
)

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	accs, err := s.accountSvc.List(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	sort.Slice(accs, func(i, j int) bool { return accs[i].ID < accs[j].ID })
	out := make([]accountResponse, 0, len(accs))
	for _, a := range accs {
		out = append(out, toAccountResponse(a))
	}
	toJSON(w, http.StatusOK, out)
}

func (s *Server) postAccount(w http.ResponseWriter, r *http.Request) {
	v := r.Context().Value(ctxKeyCreateAccount)
	in, ok := v.(bank.Account)
	if !ok {
		writeErr(w, http.StatusInternalServerError, "validated request missing", "")
		return
	}
	acc, err := s.accountSvc.Create(r.Context(), in)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusCreated, toAccountResponse(acc))
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	acc, err := s.accountSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toAccountResponse(acc))
}

// updateAccount handles PUT /accounts/{id}. Only owner and balance are taken
// from the payload; id and currency stay as stored.
func (s *Server) updateAccount(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) { return }
	var req updateAccountRequest
	if !decodeJSON(w, r, &req) { return }
	balance, ok := parseAmount(w, req.Balance)
	if !ok { return }
	acc, err := s.accountSvc.Update(r.Context(), chi.URLParam(r, "id"), bank.Account{Owner: req.Owner, Balance: balance})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toAccountResponse(acc))
}

func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.accountSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
