package services

import (
	portsrepo "github.com/fittrack/gym_backoffice/internal/core/ports/repositories"
	portssvc "github.com/fittrack/gym_backoffice/internal/core/ports/services"
)

// NewContainer creates the service container with properly initialized
// dependencies.
func NewContainer(repos *portsrepo.RepositoryProvider, revalidator portssvc.Revalidator) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Ledger:     NewLedgerService(repos.LedgerRepo, repos.MemberRepo, revalidator),
		Payment:    NewPaymentService(repos.LedgerRepo, repos.PaymentRepo, repos.SubscriptionRepo, revalidator),
		Attendance: NewAttendanceService(repos.MemberRepo, repos.SubscriptionRepo, repos.AttendanceRepo, revalidator),
	}
}

// Compile-time interface checks for the service implementations.
var (
	_ portssvc.LedgerSvcFacade     = (*ledgerService)(nil)
	_ portssvc.PaymentSvcFacade    = (*paymentService)(nil)
	_ portssvc.AttendanceSvcFacade = (*attendanceService)(nil)
)
