package services

import (
	"context"

	"github.com/fittrack/gym_backoffice/internal/core/domain"
)

// AttendanceSvcFacade is the attendance gate: given a DNI it derives the
// membership verdict and logs the check-in. The verdict is advisory only;
// entry is never blocked on subscription status.
type AttendanceSvcFacade interface {
	CheckIn(ctx context.Context, nationalID string) (*domain.CheckInResult, error)
}
