package pgsql

import (
	"context"
	"database/sql"
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

// PgxMemberRepository reads member rows. The member module owns writes.
type PgxMemberRepository struct {
	BaseRepository
}

func newPgxMemberRepository(pool *pgxpool.Pool) portsrepo.MemberReader {
	return &PgxMemberRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MemberReader = (*PgxMemberRepository)(nil)

const memberColumns = `member_id, national_id, first_name, last_name, phone, is_active`

// FindMemberByID retrieves a member by its opaque ID.
func (r *PgxMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE member_id = $1;`
	return r.scanMember(r.Pool.QueryRow(ctx, query, memberID), memberID)
}

// FindMemberByNationalID retrieves a member by DNI.
func (r *PgxMemberRepository) FindMemberByNationalID(ctx context.Context, nationalID string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE national_id = $1;`
	return r.scanMember(r.Pool.QueryRow(ctx, query, nationalID), nationalID)
}

func (r *PgxMemberRepository) scanMember(row pgx.Row, id string) (*domain.Member, error) {
	var m models.Member
	var phone sql.NullString
	err := row.Scan(&m.MemberID, &m.NationalID, &m.FirstName, &m.LastName, &phone, &m.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: member %s", apperrors.ErrNotFound, id)
		}
		return nil, apperrors.NewAppError(500, "failed to scan member "+id, err)
	}
	if phone.Valid {
		m.Phone = phone.String
	}
	member := mapping.ToDomainMember(m)
	return &member, nil
}
