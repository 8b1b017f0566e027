package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountState mirrors domain.AccountState at the storage layer.
type AccountState string

// RunningAccount is the db row for a member's cuenta corriente.
// member_id carries a UNIQUE constraint: one account per member, ever.
type RunningAccount struct {
	AccountID     string          `db:"account_id"`
	MemberID      string          `db:"member_id"`
	OwedBalance   decimal.Decimal `db:"owed_balance"`
	CreditBalance decimal.Decimal `db:"credit_balance"`
	State         AccountState    `db:"state"`
	Description   string          `db:"description"`
	CreatedAt     time.Time       `db:"created_at"`
	LastUpdatedAt time.Time       `db:"last_updated_at"`
}
