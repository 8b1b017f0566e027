package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fittrack/gym_backoffice/internal/apperrors"
	"github.com/fittrack/gym_backoffice/internal/core/domain"
	portsrepo "github.com/fittrack/gym_backoffice/internal/core/ports/repositories"
	"github.com/fittrack/gym_backoffice/internal/models"
	"github.com/fittrack/gym_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxLedgerRepository stores running accounts and their movement logs.
type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for running-account data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

const accountColumns = `account_id, member_id, owed_balance, credit_balance, state, description, created_at, last_updated_at`

// SaveAccount inserts a new running account. The unique constraint on
// member_id turns a concurrent duplicate open into ErrDuplicate.
func (r *PgxLedgerRepository) SaveAccount(ctx context.Context, account domain.RunningAccount) error {
	modelAcc := mapping.ToModelRunningAccount(account)

	query := `
		INSERT INTO running_accounts (account_id, member_id, owed_balance, credit_balance, state, description, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.MemberID,
		modelAcc.OwedBalance,
		modelAcc.CreditBalance,
		modelAcc.State,
		modelAcc.Description,
		modelAcc.CreatedAt,
		modelAcc.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique violation
			return fmt.Errorf("%w: running account for member %s", apperrors.ErrDuplicate, modelAcc.MemberID)
		}
		return apperrors.NewAppError(500, "failed to save running account "+modelAcc.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID, without movements.
func (r *PgxLedgerRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.RunningAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM running_accounts WHERE account_id = $1;`
	return r.scanAccount(r.Pool.QueryRow(ctx, query, accountID), accountID)
}

// FindAccountByMemberID retrieves a member's account, open or closed.
func (r *PgxLedgerRepository) FindAccountByMemberID(ctx context.Context, memberID string) (*domain.RunningAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM running_accounts WHERE member_id = $1;`
	return r.scanAccount(r.Pool.QueryRow(ctx, query, memberID), memberID)
}

// FindAccountByIDForUpdate selects the account row and locks it for update
// within tx. Concurrent movement appends on the same account queue behind the
// lock instead of racing the balance update.
func (r *PgxLedgerRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.RunningAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM running_accounts WHERE account_id = $1 FOR UPDATE;`
	return r.scanAccount(tx.QueryRow(ctx, query, accountID), accountID)
}

func (r *PgxLedgerRepository) scanAccount(row pgx.Row, id string) (*domain.RunningAccount, error) {
	var m models.RunningAccount
	err := row.Scan(
		&m.AccountID,
		&m.MemberID,
		&m.OwedBalance,
		&m.CreditBalance,
		&m.State,
		&m.Description,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: running account %s", apperrors.ErrNotFound, id)
		}
		return nil, apperrors.NewAppError(500, "failed to scan running account "+id, err)
	}
	acc := mapping.ToDomainRunningAccount(m)
	return &acc, nil
}

// AppendMovementInTx inserts the movement and updates the account's balances
// and state within tx. The caller holds the row lock from
// FindAccountByIDForUpdate, so both writes land together or the transaction
// rolls back as a whole.
func (r *PgxLedgerRepository) AppendMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.Movement, newOwed, newCredit decimal.Decimal, newState domain.AccountState) error {
	movementQuery := `
		INSERT INTO movements (movement_id, account_id, movement_type, amount, description, payment_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	var paymentID sql.NullString
	if movement.PaymentID != "" {
		paymentID = sql.NullString{String: movement.PaymentID, Valid: true}
	}
	_, err := tx.Exec(ctx, movementQuery,
		movement.MovementID,
		movement.AccountID,
		string(movement.Type),
		movement.Amount,
		movement.Description,
		paymentID,
		movement.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert movement "+movement.MovementID, err)
	}

	balanceQuery := `
		UPDATE running_accounts
		SET owed_balance = $2, credit_balance = $3, state = $4, last_updated_at = $5
		WHERE account_id = $1;
	`
	tag, err := tx.Exec(ctx, balanceQuery,
		movement.AccountID,
		newOwed,
		newCredit,
		string(newState),
		movement.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update balances for account "+movement.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: running account %s", apperrors.ErrNotFound, movement.AccountID)
	}
	return nil
}

// CloseAccount marks the account CERRADO. The state predicate re-checks
// SALDADO at write time: a movement that slipped in between read and close
// makes this a no-op, reported as ErrConflict.
func (r *PgxLedgerRepository) CloseAccount(ctx context.Context, accountID string) error {
	query := `
		UPDATE running_accounts
		SET state = $2, last_updated_at = $3
		WHERE account_id = $1 AND state = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, string(domain.AccountClosed), time.Now().UTC(), string(domain.AccountSettled))
	if err != nil {
		return apperrors.NewAppError(500, "failed to close running account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: running account %s is not settled", apperrors.ErrConflict, accountID)
	}
	return nil
}

// FindMovementsByAccountID retrieves the full movement history, newest first.
func (r *PgxLedgerRepository) FindMovementsByAccountID(ctx context.Context, accountID string) ([]domain.Movement, error) {
	query := `
		SELECT movement_id, account_id, movement_type, amount, description, payment_id, created_at
		FROM movements
		WHERE account_id = $1
		ORDER BY created_at DESC, movement_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query movements for account "+accountID, err)
	}
	defer rows.Close()

	return scanMovements(rows)
}

// ListAccountsWithRecentMovements retrieves all accounts joined to their
// member names for ordering, each with at most recentLimit newest movements.
func (r *PgxLedgerRepository) ListAccountsWithRecentMovements(ctx context.Context, recentLimit int) ([]domain.RunningAccount, error) {
	accountsQuery := `
		SELECT ra.account_id, ra.member_id, ra.owed_balance, ra.credit_balance, ra.state, ra.description, ra.created_at, ra.last_updated_at
		FROM running_accounts ra
		JOIN members m ON m.member_id = ra.member_id
		ORDER BY m.last_name ASC, m.first_name ASC;
	`
	rows, err := r.Pool.Query(ctx, accountsQuery)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query running accounts", err)
	}
	defer rows.Close()

	var accounts []domain.RunningAccount
	for rows.Next() {
		var m models.RunningAccount
		if err := rows.Scan(&m.AccountID, &m.MemberID, &m.OwedBalance, &m.CreditBalance, &m.State, &m.Description, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan running account row", err)
		}
		accounts = append(accounts, mapping.ToDomainRunningAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading running account rows", err)
	}

	if len(accounts) == 0 || recentLimit <= 0 {
		return accounts, nil
	}

	// Window over movements: newest recentLimit per account in one round trip.
	movementsQuery := `
		SELECT movement_id, account_id, movement_type, amount, description, payment_id, created_at
		FROM (
			SELECT mv.*, ROW_NUMBER() OVER (PARTITION BY mv.account_id ORDER BY mv.created_at DESC, mv.movement_id DESC) AS rn
			FROM movements mv
		) ranked
		WHERE rn <= $1
		ORDER BY account_id, created_at DESC, movement_id DESC;
	`
	movementRows, err := r.Pool.Query(ctx, movementsQuery, recentLimit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query recent movements", err)
	}
	defer movementRows.Close()

	movements, err := scanMovements(movementRows)
	if err != nil {
		return nil, err
	}

	byAccount := make(map[string][]domain.Movement, len(accounts))
	for _, mv := range movements {
		byAccount[mv.AccountID] = append(byAccount[mv.AccountID], mv)
	}
	for i := range accounts {
		accounts[i].Movements = byAccount[accounts[i].AccountID]
	}
	return accounts, nil
}

func scanMovements(rows pgx.Rows) ([]domain.Movement, error) {
	var result []domain.Movement
	for rows.Next() {
		var m models.Movement
		var paymentID sql.NullString
		if err := rows.Scan(&m.MovementID, &m.AccountID, &m.Type, &m.Amount, &m.Description, &paymentID, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan movement row", err)
		}
		if paymentID.Valid {
			m.PaymentID = paymentID.String
		}
		result = append(result, mapping.ToDomainMovement(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading movement rows", err)
	}
	return result, nil
}
