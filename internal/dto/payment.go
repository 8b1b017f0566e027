package dto

import (
	"time"

	"github.com/fittrack/gym_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerSettlementRequest is the optional "also pay the cuenta corriente"
// part of a POS payment.
type LedgerSettlementRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required,dgt0"`
}

// RegisterPaymentRequest defines the data for a subscription-fee payment,
// optionally combined with a ledger settlement in the same action.
type RegisterPaymentRequest struct {
	SubscriptionID string                   `json:"subscriptionID" binding:"required"`
	FeeAmount      decimal.Decimal          `json:"feeAmount" binding:"required,dgt0"`
	Method         domain.PaymentMethod     `json:"method" binding:"required"`
	Notes          string                   `json:"notes"`
	SettleLedger   *LedgerSettlementRequest `json:"settleLedger,omitempty"`
}

// PaymentResponse defines the data returned after registering a payment.
// LedgerSettlementApplied is false when a settlement was requested but the
// target account was not ACTIVO, in which case the payment stands on its own
// and the caller is expected to surface the skip.
type PaymentResponse struct {
	PaymentID               string               `json:"paymentID"`
	SubscriptionID          string               `json:"subscriptionID"`
	Amount                  decimal.Decimal      `json:"amount"`
	Method                  domain.PaymentMethod `json:"method"`
	Notes                   string               `json:"notes"`
	CreatedAt               time.Time            `json:"createdAt"`
	LedgerSettlementApplied bool                 `json:"ledgerSettlementApplied"`
}

// ToPaymentResponse converts a domain.Payment plus the settlement outcome to
// its DTO.
func ToPaymentResponse(p *domain.Payment, ledgerApplied bool) PaymentResponse {
	return PaymentResponse{
		PaymentID:               p.PaymentID,
		SubscriptionID:          p.SubscriptionID,
		Amount:                  p.Amount,
		Method:                  p.Method,
		Notes:                   p.Notes,
		CreatedAt:               p.CreatedAt,
		LedgerSettlementApplied: ledgerApplied,
	}
}
