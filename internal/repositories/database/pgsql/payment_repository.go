package pgsql

import (
	"context"

	"github.com/fittrack/gym_backoffice/internal/apperrors"
	"github.com/fittrack/gym_backoffice/internal/core/domain"
	portsrepo "github.com/fittrack/gym_backoffice/internal/core/ports/repositories"
	"github.com/fittrack/gym_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPaymentRepository persists POS payments.
type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentWriter {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentWriter = (*PgxPaymentRepository)(nil)

// SavePaymentInTx inserts the payment within the caller's transaction so it
// commits or rolls back together with any linked ledger settlement.
func (r *PgxPaymentRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	modelPayment := mapping.ToModelPayment(payment)

	query := `
		INSERT INTO payments (payment_id, subscription_id, amount, method, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := tx.Exec(ctx, query,
		modelPayment.PaymentID,
		modelPayment.SubscriptionID,
		modelPayment.Amount,
		modelPayment.Method,
		modelPayment.Notes,
		modelPayment.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save payment "+modelPayment.PaymentID, err)
	}
	return nil
}
