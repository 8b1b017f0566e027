package mapping

import (
	"github.com/fittrack/gym_backoffice/internal/core/domain"
	"github.com/fittrack/gym_backoffice/internal/models"
)

// ToModelRunningAccount converts a domain RunningAccount to its db row.
func ToModelRunningAccount(d domain.RunningAccount) models.RunningAccount {
	return models.RunningAccount{
		AccountID:     d.AccountID,
		MemberID:      d.MemberID,
		OwedBalance:   d.OwedBalance,
		CreditBalance: d.CreditBalance,
		State:         models.AccountState(d.State),
		Description:   d.Description,
		CreatedAt:     d.CreatedAt,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

// ToDomainRunningAccount converts a db row to a domain RunningAccount.
func ToDomainRunningAccount(m models.RunningAccount) domain.RunningAccount {
	return domain.RunningAccount{
		AccountID:     m.AccountID,
		MemberID:      m.MemberID,
		OwedBalance:   m.OwedBalance,
		CreditBalance: m.CreditBalance,
		State:         domain.AccountState(m.State),
		Description:   m.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// ToDomainMovement converts a db row to a domain Movement.
func ToDomainMovement(m models.Movement) domain.Movement {
	return domain.Movement{
		MovementID:  m.MovementID,
		AccountID:   m.AccountID,
		Type:        domain.MovementType(m.Type),
		Amount:      m.Amount,
		Description: m.Description,
		PaymentID:   m.PaymentID,
		CreatedAt:   m.CreatedAt,
	}
}

// ToDomainMovementSlice converts a slice of db rows to domain Movements.
func ToDomainMovementSlice(ms []models.Movement) []domain.Movement {
	ds := make([]domain.Movement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMovement(m)
	}
	return ds
}
