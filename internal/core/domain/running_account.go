package domain

import "github.com/shopspring/decimal"

// AccountState is the lifecycle state of a running account.
type AccountState string

const (
	// AccountActive accepts movements.
	AccountActive AccountState = "ACTIVO"
	// AccountSettled means both balances are exactly zero. The account still
	// exists and leaves this state as soon as a movement produces a nonzero
	// balance again via the payment coordinator path.
	AccountSettled AccountState = "SALDADO"
	// AccountClosed is terminal. No further movements are accepted.
	AccountClosed AccountState = "CERRADO"
)

// RunningAccount is a member's cuenta corriente: two running balances plus an
// append-only movement history. A member has at most one account for its
// lifetime; the storage layer enforces the uniqueness.
//
// OwedBalance and CreditBalance are derived caches over the movement log and
// must always equal the fold of all movements in creation order. They are
// only ever written by the ledger service's movement-apply path.
type RunningAccount struct {
	AccountID     string          `json:"accountID"`
	MemberID      string          `json:"memberID"`
	OwedBalance   decimal.Decimal `json:"owedBalance"`   // >= 0
	CreditBalance decimal.Decimal `json:"creditBalance"` // >= 0
	State         AccountState    `json:"state"`
	Description   string          `json:"description"`
	AuditFields
	// Movements is populated by detail lookups, newest first. Listing
	// endpoints carry only the most recent few.
	Movements []Movement `json:"movements,omitempty"`
}

// NetBalance returns owed minus credit: positive means the member owes the
// gym, negative means the gym owes the member.
func (a RunningAccount) NetBalance() decimal.Decimal {
	return a.OwedBalance.Sub(a.CreditBalance)
}
