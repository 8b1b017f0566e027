package pgsql

import (
	"context"

	"github.com/fittrack/gym_backoffice/internal/apperrors"
	"github.com/fittrack/gym_backoffice/internal/core/domain"
	portsrepo "github.com/fittrack/gym_backoffice/internal/core/ports/repositories"
	"github.com/fittrack/gym_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAttendanceRepository appends check-in events.
type PgxAttendanceRepository struct {
	BaseRepository
}

func newPgxAttendanceRepository(pool *pgxpool.Pool) portsrepo.AttendanceWriter {
	return &PgxAttendanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AttendanceWriter = (*PgxAttendanceRepository)(nil)

// SaveAttendance inserts one check-in row.
func (r *PgxAttendanceRepository) SaveAttendance(ctx context.Context, record domain.AttendanceRecord) error {
	modelRecord := mapping.ToModelAttendance(record)

	query := `
		INSERT INTO attendances (attendance_id, member_id, checked_in_at)
		VALUES ($1, $2, $3);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelRecord.AttendanceID,
		modelRecord.MemberID,
		modelRecord.CheckedInAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save attendance "+modelRecord.AttendanceID, err)
	}
	return nil
}
