package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fittrack/gym_backoffice/internal/apperrors"
	"github.com/fittrack/gym_backoffice/internal/core/domain"
	portsrepo "github.com/fittrack/gym_backoffice/internal/core/ports/repositories"
	"github.com/fittrack/gym_backoffice/internal/models"
	"github.com/fittrack/gym_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxSubscriptionRepository reads subscription rows for the attendance gate
// and the payment coordinator.
type PgxSubscriptionRepository struct {
	BaseRepository
}

func newPgxSubscriptionRepository(pool *pgxpool.Pool) portsrepo.SubscriptionReader {
	return &PgxSubscriptionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SubscriptionReader = (*PgxSubscriptionRepository)(nil)

const subscriptionColumns = `subscription_id, member_id, plan_id, start_date, end_date, is_active`

// FindSubscriptionByID retrieves a subscription by its ID.
func (r *PgxSubscriptionRepository) FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE subscription_id = $1;`
	return r.scanSubscription(r.Pool.QueryRow(ctx, query, subscriptionID), subscriptionID)
}

// FindLatestActiveByMember retrieves the member's active subscription with
// the latest end date.
func (r *PgxSubscriptionRepository) FindLatestActiveByMember(ctx context.Context, memberID string) (*domain.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE member_id = $1 AND is_active = TRUE
		ORDER BY end_date DESC
		LIMIT 1;
	`
	return r.scanSubscription(r.Pool.QueryRow(ctx, query, memberID), memberID)
}

func (r *PgxSubscriptionRepository) scanSubscription(row pgx.Row, id string) (*domain.Subscription, error) {
	var m models.Subscription
	err := row.Scan(&m.SubscriptionID, &m.MemberID, &m.PlanID, &m.StartDate, &m.EndDate, &m.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: subscription for %s", apperrors.ErrNotFound, id)
		}
		return nil, apperrors.NewAppError(500, "failed to scan subscription for "+id, err)
	}
	sub := mapping.ToDomainSubscription(m)
	return &sub, nil
}
