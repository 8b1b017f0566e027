package repositories

import (
	"context"

	"github.com/fittrack/gym_backoffice/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations for running accounts and movements.
// Reads have no side effects and are safe to call repeatedly.
type LedgerReader interface {
	// FindAccountByID retrieves an account by its ID, without movements.
	FindAccountByID(ctx context.Context, accountID string) (*domain.RunningAccount, error)

	// FindAccountByMemberID retrieves a member's account, or ErrNotFound if
	// the member never opened one.
	FindAccountByMemberID(ctx context.Context, memberID string) (*domain.RunningAccount, error)

	// FindMovementsByAccountID retrieves the full movement history, newest
	// first (display order; callers that fold reverse it themselves).
	FindMovementsByAccountID(ctx context.Context, accountID string) ([]domain.Movement, error)

	// ListAccountsWithRecentMovements retrieves all accounts ordered by
	// member display name, each carrying at most recentLimit newest
	// movements.
	ListAccountsWithRecentMovements(ctx context.Context, recentLimit int) ([]domain.RunningAccount, error)
}

// LedgerWriter defines write operations for running accounts.
type LedgerWriter interface {
	// SaveAccount persists a new account. Returns ErrDuplicate if the member
	// already has one; the member_id unique constraint closes the race
	// between two concurrent opens.
	SaveAccount(ctx context.Context, account domain.RunningAccount) error

	// CloseAccount marks the account CERRADO.
	CloseAccount(ctx context.Context, accountID string) error
}

// LedgerTransactionSupport defines the operations that make movement appends
// atomic. The lock-read-compute-write sequence for one account always runs
// inside a single pgx transaction.
type LedgerTransactionSupport interface {
	// FindAccountByIDForUpdate selects the account row and locks it for
	// update within tx, serializing concurrent movements on the same
	// account.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.RunningAccount, error)

	// AppendMovementInTx inserts the movement and updates the account's
	// balances and state within tx. Both land or neither does.
	AppendMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.Movement, newOwed, newCredit decimal.Decimal, newState domain.AccountState) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
	LedgerTransactionSupport
}

// LedgerRepositoryWithTx extends the facade with transaction management.
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
