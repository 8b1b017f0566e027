package dto

import (
	"time"

	"github.com/fittrack/gym_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenAccountRequest defines the data needed to open a running account.
type OpenAccountRequest struct {
	MemberID    string `json:"memberID" binding:"required"`
	Description string `json:"description"` // Optional; defaults when empty
}

// RegisterMovementRequest defines the data for a manual ledger entry.
type RegisterMovementRequest struct {
	Type        domain.MovementType `json:"type" binding:"required,oneof=DEUDA CREDITO PAGO AJUSTE"`
	Amount      decimal.Decimal     `json:"amount" binding:"required,dgt0"`
	Description string              `json:"description" binding:"required"`
}

// MovementResponse defines the data returned for a movement.
type MovementResponse struct {
	MovementID  string              `json:"movementID"`
	AccountID   string              `json:"accountID"`
	Type        domain.MovementType `json:"type"`
	Amount      decimal.Decimal     `json:"amount"`
	Description string              `json:"description"`
	PaymentID   string              `json:"paymentID,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// AccountResponse defines the data returned for a running account.
type AccountResponse struct {
	AccountID     string              `json:"accountID"`
	MemberID      string              `json:"memberID"`
	OwedBalance   decimal.Decimal     `json:"owedBalance"`
	CreditBalance decimal.Decimal     `json:"creditBalance"`
	NetBalance    decimal.Decimal     `json:"netBalance"`
	State         domain.AccountState `json:"state"`
	Description   string              `json:"description"`
	CreatedAt     time.Time           `json:"createdAt"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
	Movements     []MovementResponse  `json:"movements,omitempty"`
}

// ToMovementResponse converts a domain.Movement to its DTO.
func ToMovementResponse(m domain.Movement) MovementResponse {
	return MovementResponse{
		MovementID:  m.MovementID,
		AccountID:   m.AccountID,
		Type:        m.Type,
		Amount:      m.Amount,
		Description: m.Description,
		PaymentID:   m.PaymentID,
		CreatedAt:   m.CreatedAt,
	}
}

// ToAccountResponse converts a domain.RunningAccount (with any loaded
// movements) to its DTO.
func ToAccountResponse(acc *domain.RunningAccount) AccountResponse {
	resp := AccountResponse{
		AccountID:     acc.AccountID,
		MemberID:      acc.MemberID,
		OwedBalance:   acc.OwedBalance,
		CreditBalance: acc.CreditBalance,
		NetBalance:    acc.NetBalance(),
		State:         acc.State,
		Description:   acc.Description,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
	if len(acc.Movements) > 0 {
		resp.Movements = make([]MovementResponse, len(acc.Movements))
		for i, m := range acc.Movements {
			resp.Movements[i] = ToMovementResponse(m)
		}
	}
	return resp
}

// ToAccountResponseSlice converts a slice of accounts to DTOs.
func ToAccountResponseSlice(accs []domain.RunningAccount) []AccountResponse {
	resps := make([]AccountResponse, len(accs))
	for i := range accs {
		resps[i] = ToAccountResponse(&accs[i])
	}
	return resps
}
