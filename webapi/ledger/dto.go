package ledger

import (
	"time"

	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/money"
	"github.com/google/uuid"
)

// AmountRequest is the body of deposit and withdraw requests.
type AmountRequest struct {
	Amount money.Amount `json:"amount" swaggertype:"number" example:"500"`
}

// TransferRequest is the body of a transfer request.
type TransferRequest struct {
	RecipientPhone string       `json:"recipientPhone" validate:"required"`
	Amount         money.Amount `json:"amount" swaggertype:"number" example:"300"`
}

// BalanceResponse carries the balance after a deposit or withdrawal.
type BalanceResponse struct {
	Balance money.Amount `json:"balance" swaggertype:"number"`
}

// TransferResponse carries the sender's balance after a transfer.
type TransferResponse struct {
	SenderBalance money.Amount `json:"senderBalance" swaggertype:"number"`
	Message       string       `json:"message"`
}

// Counterparty identifies the other side of a transfer record.
type Counterparty struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
}

// TransactionResponse is one history entry.
type TransactionResponse struct {
	ID           uuid.UUID     `json:"id"`
	Type         string        `json:"type"`
	Amount       money.Amount  `json:"amount" swaggertype:"number"`
	Status       string        `json:"status"`
	Counterparty *Counterparty `json:"counterparty,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// HistoryResponse wraps the caller's history, newest first.
type HistoryResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

func toHistoryResponse(records []*dto.TransactionRead) HistoryResponse {
	out := HistoryResponse{Transactions: make([]TransactionResponse, 0, len(records))}
	for _, r := range records {
		tx := TransactionResponse{
			ID:        r.ID,
			Type:      r.Kind,
			Amount:    money.Amount(r.Amount),
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
		}
		if r.CounterpartyID != nil {
			tx.Counterparty = &Counterparty{
				ID:    *r.CounterpartyID,
				Name:  r.CounterpartyName,
				Phone: r.CounterpartyPhone,
			}
		}
		out.Transactions = append(out.Transactions, tx)
	}
	return out
}
