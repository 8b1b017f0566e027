package pgsql

import (
	portsrepo "github.com/fittrack/gym_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgx repositories over a shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo:       newPgxLedgerRepository(dbPool),
		MemberRepo:       newPgxMemberRepository(dbPool),
		SubscriptionRepo: newPgxSubscriptionRepository(dbPool),
		PaymentRepo:      newPgxPaymentRepository(dbPool),
		AttendanceRepo:   newPgxAttendanceRepository(dbPool),
	}
}
