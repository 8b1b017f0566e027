package ledger

import (
	"fmt"

	"github.com/fittrack/gym_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Balances is the (owed, credit) pair of a running account. Both components
// are always >= 0.
type Balances struct {
	Owed   decimal.Decimal
	Credit decimal.Decimal
}

// Zero returns a zeroed balance pair.
func Zero() Balances {
	return Balances{Owed: decimal.Zero, Credit: decimal.Zero}
}

// IsSettled reports whether both balances are exactly zero.
func (b Balances) IsSettled() bool {
	return b.Owed.IsZero() && b.Credit.IsZero()
}

// Apply folds one movement into the balance pair using the manual-entry
// arithmetic. This is used by both the ledger service and the balance-fold
// invariant check, so the two can never drift apart.
//
// PAGO here floors at zero: the amount reduces owed first, a remainder then
// reduces credit, and anything beyond both balances is not reflected. The
// payment coordinator's settlement path uses Settle with overflowToCredit
// instead; the two entry points intentionally compute different overpayment
// outcomes.
func Apply(b Balances, movementType domain.MovementType, amount decimal.Decimal) (Balances, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return b, fmt.Errorf("movement amount must be positive, got %s", amount.String())
	}

	switch movementType {
	case domain.MovementDebt:
		b.Owed = b.Owed.Add(amount)
	case domain.MovementCredit:
		b.Credit = b.Credit.Add(amount)
	case domain.MovementPayment:
		b = Settle(b, amount, false)
	case domain.MovementAdjustment:
		// Manual owed-side correction, floored at zero.
		b.Owed = b.Owed.Add(amount)
		if b.Owed.IsNegative() {
			b.Owed = decimal.Zero
		}
	default:
		return b, fmt.Errorf("unknown movement type %q", movementType)
	}
	return b, nil
}

// Settle runs the payment waterfall: amount pays down owed first, any
// remainder then pays down credit. When overflowToCredit is true, whatever is
// left after both balances reach zero becomes new credit (the overpayment
// case at the point of sale); when false the excess is dropped.
func Settle(b Balances, amount decimal.Decimal, overflowToCredit bool) Balances {
	remaining := amount

	if b.Owed.GreaterThan(decimal.Zero) {
		if remaining.GreaterThanOrEqual(b.Owed) {
			remaining = remaining.Sub(b.Owed)
			b.Owed = decimal.Zero
		} else {
			b.Owed = b.Owed.Sub(remaining)
			remaining = decimal.Zero
		}
	}

	if remaining.GreaterThan(decimal.Zero) {
		if b.Credit.GreaterThan(decimal.Zero) {
			if remaining.GreaterThanOrEqual(b.Credit) {
				remaining = remaining.Sub(b.Credit)
				b.Credit = decimal.Zero
			} else {
				b.Credit = b.Credit.Sub(remaining)
				remaining = decimal.Zero
			}
		} else if overflowToCredit {
			b.Credit = remaining
		}
	}

	return b
}

// NextState derives the account state after a movement: both balances at
// exactly zero means SALDADO, anything else ACTIVO. CERRADO is never produced
// here; closing is a separate explicit transition.
func NextState(b Balances) domain.AccountState {
	if b.IsSettled() {
		return domain.AccountSettled
	}
	return domain.AccountActive
}

// Fold replays movements oldest-first from (0, 0). The result must equal the
// persisted account balances; a mismatch means the movement log and the
// balance cache have diverged.
func Fold(movements []domain.Movement) (Balances, error) {
	b := Zero()
	for _, m := range movements {
		var err error
		if m.PaymentID != "" && m.Type == domain.MovementPayment {
			// Coordinator settlements converted overpayment into credit when
			// they were applied; replay them the same way.
			b = Settle(b, m.Amount, true)
		} else {
			b, err = Apply(b, m.Type, m.Amount)
			if err != nil {
				return b, fmt.Errorf("movement %s: %w", m.MovementID, err)
			}
		}
	}
	return b, nil
}
