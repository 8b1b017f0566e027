package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/fittrack/gym_backoffice/internal/apperrors"
	"github.com/fittrack/gym_backoffice/internal/core/domain"
	portsrepo "github.com/fittrack/gym_backoffice/internal/core/ports/repositories"
	portssvc "github.com/fittrack/gym_backoffice/internal/core/ports/services"
	"github.com/fittrack/gym_backoffice/internal/dto"
	"github.com/fittrack/gym_backoffice/internal/middleware"
	"github.com/fittrack/gym_backoffice/internal/utils/ledger"
)

var (
	ErrInvalidFeeAmount     = errors.New("fee amount must be greater than zero")
	ErrInvalidPaymentMethod = errors.New("payment method is not one of the accepted tender types")
	ErrInvalidSettleAmount  = errors.New("ledger settlement amount must be greater than zero")
)

// paymentService composes a subscription-fee payment with an optional
// simultaneous ledger settlement. The payment insert, the settlement movement
// and the balance update land in one storage transaction; a failure anywhere
// leaves nothing behind.
type paymentService struct {
	ledgerRepo       portsrepo.LedgerRepositoryWithTx
	paymentRepo      portsrepo.PaymentWriter
	subscriptionRepo portsrepo.SubscriptionReader
	revalidator      portssvc.Revalidator
}

// NewPaymentService creates a new payment coordinator.
func NewPaymentService(ledgerRepo portsrepo.LedgerRepositoryWithTx, paymentRepo portsrepo.PaymentWriter, subscriptionRepo portsrepo.SubscriptionReader, revalidator portssvc.Revalidator) portssvc.PaymentSvcFacade {
	return &paymentService{
		ledgerRepo:       ledgerRepo,
		paymentRepo:      paymentRepo,
		subscriptionRepo: subscriptionRepo,
		revalidator:      revalidator,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// RegisterPayment validates and persists the payment and, when requested and
// the target account is ACTIVO, the linked ledger settlement. A settlement
// requested against a missing or non-ACTIVO account is skipped rather than
// failing the payment; the returned bool tells the caller which happened.
func (s *paymentService) RegisterPayment(ctx context.Context, req dto.RegisterPaymentRequest) (*domain.Payment, bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.FeeAmount.LessThanOrEqual(decimal.Zero) {
		return nil, false, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrInvalidFeeAmount)
	}
	if !domain.ValidPaymentMethod(req.Method) {
		return nil, false, fmt.Errorf("%w: %s: %q", apperrors.ErrValidation, ErrInvalidPaymentMethod, req.Method)
	}
	if req.SettleLedger != nil && req.SettleLedger.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, false, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrInvalidSettleAmount)
	}

	if _, err := s.subscriptionRepo.FindSubscriptionByID(ctx, req.SubscriptionID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, false, fmt.Errorf("%w: subscription %s", apperrors.ErrNotFound, req.SubscriptionID)
		}
		logger.Error("Failed to look up subscription for payment", slog.String("subscription_id", req.SubscriptionID), slog.String("error", err.Error()))
		return nil, false, err
	}

	totalCharged := req.FeeAmount
	if req.SettleLedger != nil {
		totalCharged = totalCharged.Add(req.SettleLedger.Amount)
	}

	payment := domain.Payment{
		PaymentID:      uuid.NewString(),
		SubscriptionID: req.SubscriptionID,
		Amount:         totalCharged,
		Method:         req.Method,
		Notes:          compositeNotes(req, totalCharged),
		CreatedAt:      time.Now().UTC(),
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx) // no-op after commit

	if err := s.paymentRepo.SavePaymentInTx(ctx, tx, payment); err != nil {
		logger.Error("Failed to save payment", slog.String("payment_id", payment.PaymentID), slog.String("error", err.Error()))
		return nil, false, err
	}

	ledgerApplied := false
	if req.SettleLedger != nil {
		ledgerApplied, err = s.settleInTx(ctx, tx, payment, *req.SettleLedger)
		if err != nil {
			return nil, false, err
		}
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, false, err
	}

	logger.Info("Payment registered",
		slog.String("payment_id", payment.PaymentID),
		slog.String("subscription_id", payment.SubscriptionID),
		slog.String("amount", payment.Amount.String()),
		slog.Bool("ledger_settlement_applied", ledgerApplied),
	)
	s.revalidator.Revalidate(ctx, portssvc.RevalidateTransactions, portssvc.RevalidateAccounts)

	return &payment, ledgerApplied, nil
}

// settleInTx applies the settlement waterfall to the target account inside
// the payment's transaction. Unlike the manual PAGO movement, an amount
// beyond both balances becomes new credit here: the member overpaid at the
// counter and the surplus stays on their account.
func (s *paymentService) settleInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment, settle dto.LedgerSettlementRequest) (bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.ledgerRepo.FindAccountByIDForUpdate(ctx, tx, settle.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Ledger settlement skipped: account not found", slog.String("account_id", settle.AccountID), slog.String("payment_id", payment.PaymentID))
			return false, nil
		}
		return false, err
	}
	if account.State != domain.AccountActive {
		logger.Warn("Ledger settlement skipped: account not active",
			slog.String("account_id", account.AccountID),
			slog.String("state", string(account.State)),
			slog.String("payment_id", payment.PaymentID),
		)
		return false, nil
	}

	balances := ledger.Balances{Owed: account.OwedBalance, Credit: account.CreditBalance}
	newBalances := ledger.Settle(balances, settle.Amount, true)
	newState := ledger.NextState(newBalances)

	movement := domain.Movement{
		MovementID:  uuid.NewString(),
		AccountID:   account.AccountID,
		Type:        domain.MovementPayment,
		Amount:      settle.Amount,
		Description: fmt.Sprintf("Pago de cuota + cuenta corriente (Transacción #%s)", payment.PaymentID),
		PaymentID:   payment.PaymentID,
		CreatedAt:   payment.CreatedAt,
	}

	if err := s.ledgerRepo.AppendMovementInTx(ctx, tx, movement, newBalances.Owed, newBalances.Credit, newState); err != nil {
		logger.Error("Failed to append settlement movement", slog.String("account_id", account.AccountID), slog.String("error", err.Error()))
		return false, err
	}

	return true, nil
}

// compositeNotes builds the payment's human-readable audit note. When the
// payment combines fee and ledger portions the breakdown is embedded so the
// payment listing is self-explanatory without joining to movements.
func compositeNotes(req dto.RegisterPaymentRequest, total decimal.Decimal) string {
	notes := strings.TrimSpace(req.Notes)
	if req.SettleLedger == nil {
		return notes
	}
	breakdown := fmt.Sprintf("Cuota: $%s + Cuenta Corriente: $%s = Total: $%s",
		req.FeeAmount.StringFixed(2),
		req.SettleLedger.Amount.StringFixed(2),
		total.StringFixed(2),
	)
	if notes == "" {
		return breakdown
	}
	return breakdown + " | " + notes
}
