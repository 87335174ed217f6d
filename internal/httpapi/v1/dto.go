package v1

import (
	"github.com/govalues/decimal"

	"github.com/tinoosan/payments/internal/bank"
)

// Amounts travel as decimal strings on the wire to keep exactness explicit.

type createAccountRequest struct {
	ID       string `json:"id,omitempty"`
	Owner    string `json:"owner"`
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
}

type updateAccountRequest struct {
	Owner   string `json:"owner"`
	Balance string `json:"balance"`
}

type depositRequest struct {
	Amount        string `json:"amount"`
	FromAccountID string `json:"from_account_id,omitempty"`
}

type withdrawRequest struct {
	Amount string `json:"amount"`
}

type transferRequest struct {
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
	Amount        string `json:"amount"`
}

type accountResponse struct {
	ID       string `json:"id"`
	Owner    string `json:"owner"`
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
}

type paymentResponse struct {
	ID          string `json:"id"`
	FromAccount string `json:"from_account,omitempty"`
	ToAccount   string `json:"to_account,omitempty"`
	Amount      string `json:"amount"`
	Direction   string `json:"direction"`
}

// validated movement requests stored in the request context.

type depositInput struct {
	AccountID     string
	Amount        decimal.Decimal
	FromAccountID string
}

type withdrawInput struct {
	AccountID string
	Amount    decimal.Decimal
}

type transferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
}

func toAccountResponse(a bank.Account) accountResponse {
	return accountResponse{ID: a.ID, Owner: a.Owner, Balance: a.Balance.String(), Currency: a.Currency}
}

func toPaymentResponse(p bank.Payment) paymentResponse {
	return paymentResponse{
		ID:          p.ID.String(),
		FromAccount: p.FromAccount,
		ToAccount:   p.ToAccount,
		Amount:      p.Amount.String(),
		Direction:   string(p.Direction),
	}
}
