package repositories

import (
	"context"

	"github.com/fittrack/gym_backoffice/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// MemberReader is the member-lookup collaborator. Member administration is a
// separate module; this core only reads.
type MemberReader interface {
	// FindMemberByID retrieves a member by its opaque ID.
	FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// FindMemberByNationalID retrieves a member by DNI.
	FindMemberByNationalID(ctx context.Context, nationalID string) (*domain.Member, error)
}

// SubscriptionReader is the subscription-lookup collaborator.
type SubscriptionReader interface {
	// FindSubscriptionByID retrieves a subscription by its ID.
	FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error)

	// FindLatestActiveByMember retrieves the member's active subscription
	// with the latest end date, or ErrNotFound when none exists.
	FindLatestActiveByMember(ctx context.Context, memberID string) (*domain.Subscription, error)
}

// PaymentWriter persists POS payments. SavePaymentInTx takes part in the
// payment coordinator's all-or-nothing transaction.
type PaymentWriter interface {
	SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error
}

// AttendanceWriter appends check-in events for the attendance collaborator.
type AttendanceWriter interface {
	SaveAttendance(ctx context.Context, record domain.AttendanceRecord) error
}
