package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType classifies a running-account movement.
type MovementType string

const (
	// MovementDebt increases the owed balance.
	MovementDebt MovementType = "DEUDA"
	// MovementCredit increases the credit balance.
	MovementCredit MovementType = "CREDITO"
	// MovementPayment pays down owed first, then credit. Whether an excess
	// beyond both balances becomes new credit depends on the entry point;
	// see ledger.Settle.
	MovementPayment MovementType = "PAGO"
	// MovementAdjustment is a manual owed-side delta, floored at zero.
	// There is no credit-side adjustment variant.
	MovementAdjustment MovementType = "AJUSTE"
)

// Movement is one immutable entry in a running account's history. Movements
// are never updated or deleted; they are the sole source of historical truth
// for the account balances.
type Movement struct {
	MovementID  string          `json:"movementID"`
	AccountID   string          `json:"accountID"`
	Type        MovementType    `json:"type"`
	Amount      decimal.Decimal `json:"amount"` // > 0
	Description string          `json:"description"`
	// PaymentID links the movement to the POS payment that produced it,
	// empty for manual ledger entries.
	PaymentID string    `json:"paymentID,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
