package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the db row for a POS transaction against a subscription.
type Payment struct {
	PaymentID      string          `db:"payment_id"`
	SubscriptionID string          `db:"subscription_id"`
	Amount         decimal.Decimal `db:"amount"`
	Method         string          `db:"method"`
	Notes          string          `db:"notes"`
	CreatedAt      time.Time       `db:"created_at"`
}
