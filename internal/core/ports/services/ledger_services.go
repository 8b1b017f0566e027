package services

import (
	"context"

	"github.com/fittrack/gym_backoffice/internal/core/domain"
	"github.com/fittrack/gym_backoffice/internal/dto"
)

// LedgerReaderSvc defines read operations for running accounts.
type LedgerReaderSvc interface {
	// GetAccountByID retrieves an account with its full movement history,
	// newest first.
	GetAccountByID(ctx context.Context, accountID string) (*domain.RunningAccount, error)

	// GetAccountByMember retrieves a member's account without movements.
	GetAccountByMember(ctx context.Context, memberID string) (*domain.RunningAccount, error)

	// ListAccounts retrieves all accounts ordered by member name, each with
	// its most recent movements.
	ListAccounts(ctx context.Context) ([]domain.RunningAccount, error)
}

// LedgerWriterSvc defines the state-changing ledger operations. This is the
// only code path that mutates account balances.
type LedgerWriterSvc interface {
	// OpenAccount opens a running account for a member. Fails with
	// ErrNotFound when the member does not exist and ErrDuplicate when the
	// member already has an account, open or closed.
	OpenAccount(ctx context.Context, req dto.OpenAccountRequest) (*domain.RunningAccount, error)

	// ApplyMovement registers a manual movement and updates balances
	// atomically. Fails with ErrConflict when the account is not ACTIVO.
	ApplyMovement(ctx context.Context, accountID string, req dto.RegisterMovementRequest) (*domain.RunningAccount, error)

	// CloseAccount transitions a SALDADO account to CERRADO. Fails with
	// ErrConflict otherwise. Irreversible.
	CloseAccount(ctx context.Context, accountID string) (*domain.RunningAccount, error)
}

// LedgerSvcFacade combines all ledger service interfaces.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
