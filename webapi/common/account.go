package common

import (
	"time"

	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/money"
	"github.com/google/uuid"
)

// AccountResponse is the public view of an account. Credentials are never rendered.
type AccountResponse struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Phone       string       `json:"phone"`
	Aadhaar     string       `json:"aadhaar"`
	Role        string       `json:"role"`
	AccountType string       `json:"accountType"`
	Balance     money.Amount `json:"balance" swaggertype:"number"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// ToAccountResponse maps a store read model to its public view.
func ToAccountResponse(a *dto.AccountRead) AccountResponse {
	return AccountResponse{
		ID:          a.ID,
		Name:        a.Name,
		Phone:       a.Phone,
		Aadhaar:     a.Aadhaar,
		Role:        a.Role,
		AccountType: a.Category,
		Balance:     money.Amount(a.Balance),
		CreatedAt:   a.CreatedAt,
	}
}

// ToAccountResponses maps a list of read models.
func ToAccountResponses(list []*dto.AccountRead) []AccountResponse {
	out := make([]AccountResponse, 0, len(list))
	for _, a := range list {
		out = append(out, ToAccountResponse(a))
	}
	return out
}
