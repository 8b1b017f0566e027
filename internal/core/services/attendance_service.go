package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fittrack/gym_backoffice/internal/apperrors"
	"github.com/fittrack/gym_backoffice/internal/core/domain"
	portsrepo "github.com/fittrack/gym_backoffice/internal/core/ports/repositories"
	portssvc "github.com/fittrack/gym_backoffice/internal/core/ports/services"
	"github.com/fittrack/gym_backoffice/internal/middleware"
)

// Calendar-day cutoffs for the grace policy applied when no subscription
// covers today: up to graceActiveDay the member is still in the payment
// window, up to graceWarningDay the front desk gives a soft reminder, and
// past that the cuota counts as expired.
const (
	graceActiveDay  = 10
	graceWarningDay = 15
)

// attendanceService decides the membership verdict on check-in and logs the
// attendance event. The verdict never blocks entry.
type attendanceService struct {
	memberRepo       portsrepo.MemberReader
	subscriptionRepo portsrepo.SubscriptionReader
	attendanceRepo   portsrepo.AttendanceWriter
	revalidator      portssvc.Revalidator
	now              func() time.Time
}

// AttendanceOption configures an attendanceService.
type AttendanceOption func(*attendanceService)

// WithClock overrides the time source. Used by tests to pin the grace
// windows to specific days of the month.
func WithClock(now func() time.Time) AttendanceOption {
	return func(s *attendanceService) {
		s.now = now
	}
}

// NewAttendanceService creates a new attendance gate.
func NewAttendanceService(memberRepo portsrepo.MemberReader, subscriptionRepo portsrepo.SubscriptionReader, attendanceRepo portsrepo.AttendanceWriter, revalidator portssvc.Revalidator, opts ...AttendanceOption) portssvc.AttendanceSvcFacade {
	s := &attendanceService{
		memberRepo:       memberRepo,
		subscriptionRepo: subscriptionRepo,
		attendanceRepo:   attendanceRepo,
		revalidator:      revalidator,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.AttendanceSvcFacade = (*attendanceService)(nil)

// CheckIn looks up the member by DNI, derives the membership status from the
// latest active subscription or the calendar-day grace windows, and appends
// the attendance record.
func (s *attendanceService) CheckIn(ctx context.Context, nationalID string) (*domain.CheckInResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	nationalID = strings.TrimSpace(nationalID)
	if nationalID == "" {
		return nil, fmt.Errorf("%w: national ID is required", apperrors.ErrValidation)
	}

	member, err := s.memberRepo.FindMemberByNationalID(ctx, nationalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: member with national ID %s", apperrors.ErrNotFound, nationalID)
		}
		logger.Error("Failed to look up member for check-in", slog.String("error", err.Error()))
		return nil, err
	}

	now := s.now()

	subscription, err := s.subscriptionRepo.FindLatestActiveByMember(ctx, member.MemberID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to look up subscription for check-in", slog.String("member_id", member.MemberID), slog.String("error", err.Error()))
		return nil, err
	}

	result := &domain.CheckInResult{
		MemberName: member.DisplayName(),
		Phone:      member.Phone,
	}

	if subscription != nil && subscription.CoversEndOfDay(now) {
		result.Status = domain.StatusActive
		result.HasCoverage = true
		result.DaysRemaining = daysUntil(now, subscription.EndDate)
	} else {
		// No covering subscription: classify by the day of the month.
		switch day := now.Day(); {
		case day <= graceActiveDay:
			result.Status = domain.StatusActive
		case day <= graceWarningDay:
			result.Status = domain.StatusWarning
		default:
			result.Status = domain.StatusExpired
		}
	}

	record := domain.AttendanceRecord{
		AttendanceID: uuid.NewString(),
		MemberID:     member.MemberID,
		CheckedInAt:  now.UTC(),
	}
	if err := s.attendanceRepo.SaveAttendance(ctx, record); err != nil {
		logger.Error("Failed to save attendance record", slog.String("member_id", member.MemberID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Check-in registered",
		slog.String("member_id", member.MemberID),
		slog.String("status", string(result.Status)),
	)
	s.revalidator.Revalidate(ctx, portssvc.RevalidateDashboard, portssvc.RevalidateAttendance)

	return result, nil
}

// daysUntil returns the number of days from now until end, rounded up.
func daysUntil(now, end time.Time) int {
	diff := end.Sub(now)
	return int(math.Ceil(diff.Hours() / 24))
}
