package services

import "context"

// Revalidation targets published after state changes. The UI layer listens
// and refreshes the matching screens; this mirrors the paths the back office
// renders.
const (
	RevalidateAccounts     = "admin/cuenta-corriente"
	RevalidateMembers      = "admin/socios"
	RevalidateTransactions = "admin/transacciones"
	RevalidateDashboard    = "admin"
	RevalidateAttendance   = "admin/asistencias"
)

// Revalidator is the fire-and-forget cache-invalidation hook. Implementations
// must never fail the calling operation: errors are logged and swallowed.
type Revalidator interface {
	Revalidate(ctx context.Context, targets ...string)
}
