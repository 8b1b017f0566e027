package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType mirrors domain.MovementType at the storage layer.
type MovementType string

// Movement is the db row for one running-account movement. Rows are insert
// only; there is no update or delete path anywhere in the codebase.
type Movement struct {
	MovementID  string          `db:"movement_id"`
	AccountID   string          `db:"account_id"`
	Type        MovementType    `db:"movement_type"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	PaymentID   string          `db:"payment_id"` // nullable
	CreatedAt   time.Time       `db:"created_at"`
}
