package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fittrack/gym_backoffice/internal/apperrors"
	"github.com/fittrack/gym_backoffice/internal/core/domain"
	portsrepo "github.com/fittrack/gym_backoffice/internal/core/ports/repositories"
	portssvc "github.com/fittrack/gym_backoffice/internal/core/ports/services"
	"github.com/fittrack/gym_backoffice/internal/dto"
	"github.com/fittrack/gym_backoffice/internal/middleware"
	"github.com/fittrack/gym_backoffice/internal/utils/ledger"
)

// DefaultAccountDescription is used when an account is opened without one.
const DefaultAccountDescription = "Cuenta corriente abierta"

// recentMovementsLimit is how many movements each account carries in the
// listing view.
const recentMovementsLimit = 5

var (
	ErrInvalidAmount      = errors.New("movement amount must be greater than zero")
	ErrInvalidDescription = errors.New("movement description is required")
	ErrAccountNotActive   = errors.New("account is not active")
	ErrBalanceNotZero     = errors.New("account balances must be zero to close")
)

// ledgerService implements the running-account business rules: opening,
// applying movements, and closing. It is the single writer of account
// balances.
type ledgerService struct {
	ledgerRepo  portsrepo.LedgerRepositoryWithTx
	memberRepo  portsrepo.MemberReader
	revalidator portssvc.Revalidator
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryWithTx, memberRepo portsrepo.MemberReader, revalidator portssvc.Revalidator) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		memberRepo:  memberRepo,
		revalidator: revalidator,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// OpenAccount opens a running account for a member. The member must exist and
// must not already have an account; the storage-layer unique constraint on
// member_id settles the race between two concurrent opens.
func (s *ledgerService) OpenAccount(ctx context.Context, req dto.OpenAccountRequest) (*domain.RunningAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	member, err := s.memberRepo.FindMemberByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: member %s", apperrors.ErrNotFound, req.MemberID)
		}
		logger.Error("Failed to look up member for account open", slog.String("member_id", req.MemberID), slog.String("error", err.Error()))
		return nil, err
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = DefaultAccountDescription
	}

	now := time.Now().UTC()
	account := domain.RunningAccount{
		AccountID:     uuid.NewString(),
		MemberID:      member.MemberID,
		OwedBalance:   decimal.Zero,
		CreditBalance: decimal.Zero,
		State:         domain.AccountActive,
		Description:   description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.ledgerRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Member already has a running account", slog.String("member_id", member.MemberID))
			return nil, fmt.Errorf("%w: member %s already has a running account", apperrors.ErrDuplicate, member.MemberID)
		}
		logger.Error("Failed to save running account", slog.String("member_id", member.MemberID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Running account opened", slog.String("account_id", account.AccountID), slog.String("member_id", member.MemberID))
	s.revalidator.Revalidate(ctx, portssvc.RevalidateAccounts, portssvc.RevalidateMembers)

	return &account, nil
}

// ApplyMovement registers one movement and updates both balances atomically.
// The lock-read-compute-write sequence runs inside a single transaction so
// concurrent movements against the same account serialize instead of losing
// updates.
func (s *ledgerService) ApplyMovement(ctx context.Context, accountID string, req dto.RegisterMovementRequest) (*domain.RunningAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Fail fast before touching storage.
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrInvalidAmount)
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrInvalidDescription)
	}
	switch req.Type {
	case domain.MovementDebt, domain.MovementCredit, domain.MovementPayment, domain.MovementAdjustment:
	default:
		return nil, fmt.Errorf("%w: unknown movement type %q", apperrors.ErrValidation, req.Type)
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx) // no-op after commit

	account, err := s.ledgerRepo.FindAccountByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		logger.Error("Failed to lock account for movement", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, err
	}

	if account.State != domain.AccountActive {
		return nil, fmt.Errorf("%w: %s (state %s)", apperrors.ErrConflict, ErrAccountNotActive, account.State)
	}

	balances := ledger.Balances{Owed: account.OwedBalance, Credit: account.CreditBalance}
	newBalances, err := ledger.Apply(balances, req.Type, req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}
	newState := ledger.NextState(newBalances)

	movement := domain.Movement{
		MovementID:  uuid.NewString(),
		AccountID:   account.AccountID,
		Type:        req.Type,
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.ledgerRepo.AppendMovementInTx(ctx, tx, movement, newBalances.Owed, newBalances.Credit, newState); err != nil {
		logger.Error("Failed to append movement", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Movement registered",
		slog.String("account_id", account.AccountID),
		slog.String("movement_id", movement.MovementID),
		slog.String("type", string(req.Type)),
		slog.String("amount", req.Amount.String()),
		slog.String("new_state", string(newState)),
	)
	s.revalidator.Revalidate(ctx, portssvc.RevalidateAccounts, portssvc.RevalidateMembers, portssvc.RevalidateTransactions)

	account.OwedBalance = newBalances.Owed
	account.CreditBalance = newBalances.Credit
	account.State = newState
	account.LastUpdatedAt = movement.CreatedAt
	return account, nil
}

// CloseAccount transitions a settled account to CERRADO. The repository's
// conditional update re-checks the state under the row lock, so a movement
// racing the close cannot slip through.
func (s *ledgerService) CloseAccount(ctx context.Context, accountID string) (*domain.RunningAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.ledgerRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, err
	}

	if account.State != domain.AccountSettled {
		return nil, fmt.Errorf("%w: %s (state %s)", apperrors.ErrConflict, ErrBalanceNotZero, account.State)
	}

	if err := s.ledgerRepo.CloseAccount(ctx, accountID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrBalanceNotZero)
		}
		logger.Error("Failed to close account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Running account closed", slog.String("account_id", accountID), slog.String("member_id", account.MemberID))
	s.revalidator.Revalidate(ctx, portssvc.RevalidateAccounts, portssvc.RevalidateMembers)

	account.State = domain.AccountClosed
	return account, nil
}

// GetAccountByID retrieves an account with its full movement history, newest
// first.
func (s *ledgerService) GetAccountByID(ctx context.Context, accountID string) (*domain.RunningAccount, error) {
	account, err := s.ledgerRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	movements, err := s.ledgerRepo.FindMovementsByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	account.Movements = movements
	return account, nil
}

// GetAccountByMember retrieves a member's account without movement history.
func (s *ledgerService) GetAccountByMember(ctx context.Context, memberID string) (*domain.RunningAccount, error) {
	return s.ledgerRepo.FindAccountByMemberID(ctx, memberID)
}

// ListAccounts retrieves all accounts for the dashboard listing, ordered by
// member name, each with its most recent movements.
func (s *ledgerService) ListAccounts(ctx context.Context) ([]domain.RunningAccount, error) {
	return s.ledgerRepo.ListAccountsWithRecentMovements(ctx, recentMovementsLimit)
}
