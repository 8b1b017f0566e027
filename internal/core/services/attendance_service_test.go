package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fittrack/gym_backoffice/internal/apperrors"
	"github.com/fittrack/gym_backoffice/internal/core/domain"
	portssvc "github.com/fittrack/gym_backoffice/internal/core/ports/services"
	"github.com/fittrack/gym_backoffice/internal/core/services"
)

// MockAttendanceRepository is a mock type for the AttendanceWriter interface
type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) SaveAttendance(ctx context.Context, record domain.AttendanceRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AttendanceServiceTestSuite struct {
	suite.Suite
	mockMemberRepo       *MockMemberRepository
	mockSubscriptionRepo *MockSubscriptionRepository
	mockAttendanceRepo   *MockAttendanceRepository
	mockRevalidator      *MockRevalidator

	member *domain.Member
}

func (suite *AttendanceServiceTestSuite) SetupTest() {
	suite.mockMemberRepo = new(MockMemberRepository)
	suite.mockSubscriptionRepo = new(MockSubscriptionRepository)
	suite.mockAttendanceRepo = new(MockAttendanceRepository)
	suite.mockRevalidator = new(MockRevalidator)
	suite.mockRevalidator.On("Revalidate", mock.Anything, mock.Anything).Maybe()

	suite.member = &domain.Member{
		MemberID:   uuid.NewString(),
		NationalID: "30123456",
		FirstName:  "Ana",
		LastName:   "Gomez",
		Phone:      "1155554444",
		IsActive:   true,
	}
}

// serviceAt builds the gate with the clock pinned to a fixed instant.
func (suite *AttendanceServiceTestSuite) serviceAt(now time.Time) portssvc.AttendanceSvcFacade {
	return services.NewAttendanceService(
		suite.mockMemberRepo,
		suite.mockSubscriptionRepo,
		suite.mockAttendanceRepo,
		suite.mockRevalidator,
		services.WithClock(func() time.Time { return now }),
	)
}

func (suite *AttendanceServiceTestSuite) expectMemberLookup() {
	suite.mockMemberRepo.On("FindMemberByNationalID", mock.Anything, suite.member.NationalID).Return(suite.member, nil).Once()
}

func (suite *AttendanceServiceTestSuite) expectAttendanceSaved() {
	suite.mockAttendanceRepo.On("SaveAttendance", mock.Anything, mock.MatchedBy(func(r domain.AttendanceRecord) bool {
		return r.MemberID == suite.member.MemberID && !r.CheckedInAt.IsZero()
	})).Return(nil).Once()
}

// --- Covering subscription ---

func (suite *AttendanceServiceTestSuite) TestCheckIn_ActiveSubscription() {
	ctx := context.Background()
	now := time.Date(2026, time.March, 20, 10, 0, 0, 0, time.UTC)
	subscription := &domain.Subscription{
		SubscriptionID: uuid.NewString(),
		MemberID:       suite.member.MemberID,
		EndDate:        now.Add(72 * time.Hour),
		IsActive:       true,
	}

	suite.expectMemberLookup()
	suite.mockSubscriptionRepo.On("FindLatestActiveByMember", mock.Anything, suite.member.MemberID).Return(subscription, nil).Once()
	suite.expectAttendanceSaved()

	result, err := suite.serviceAt(now).CheckIn(ctx, suite.member.NationalID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusActive, result.Status)
	suite.True(result.HasCoverage)
	suite.Equal(3, result.DaysRemaining)
	suite.Equal("Ana Gomez", result.MemberName)
	suite.Equal(suite.member.Phone, result.Phone)
	suite.mockAttendanceRepo.AssertExpectations(suite.T())
}

func (suite *AttendanceServiceTestSuite) TestCheckIn_SubscriptionEndingTodayStillCovers() {
	ctx := context.Background()
	// Check-in at 10:00, subscription end date stamped at midnight today: the
	// end date extends to the end of its calendar day.
	now := time.Date(2026, time.March, 20, 10, 0, 0, 0, time.UTC)
	subscription := &domain.Subscription{
		SubscriptionID: uuid.NewString(),
		MemberID:       suite.member.MemberID,
		EndDate:        time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC),
		IsActive:       true,
	}

	suite.expectMemberLookup()
	suite.mockSubscriptionRepo.On("FindLatestActiveByMember", mock.Anything, suite.member.MemberID).Return(subscription, nil).Once()
	suite.expectAttendanceSaved()

	result, err := suite.serviceAt(now).CheckIn(ctx, suite.member.NationalID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusActive, result.Status)
	suite.True(result.HasCoverage)
}

// --- Grace windows ---

func (suite *AttendanceServiceTestSuite) TestCheckIn_GraceWindows() {
	testCases := []struct {
		name string
		day  int
		want domain.MembershipStatus
	}{
		{"payment window day 5", 5, domain.StatusActive},
		{"payment window boundary day 10", 10, domain.StatusActive},
		{"reminder window day 12", 12, domain.StatusWarning},
		{"reminder boundary day 15", 15, domain.StatusWarning},
		{"expired day 16", 16, domain.StatusExpired},
		{"expired day 28", 28, domain.StatusExpired},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			ctx := context.Background()
			now := time.Date(2026, time.July, tc.day, 9, 30, 0, 0, time.UTC)

			suite.expectMemberLookup()
			suite.mockSubscriptionRepo.On("FindLatestActiveByMember", mock.Anything, suite.member.MemberID).Return(nil, apperrors.ErrNotFound).Once()
			suite.expectAttendanceSaved()

			result, err := suite.serviceAt(now).CheckIn(ctx, suite.member.NationalID)

			suite.Require().NoError(err)
			suite.Equal(tc.want, result.Status)
			suite.False(result.HasCoverage)
			suite.Zero(result.DaysRemaining)
		})
	}
}

func (suite *AttendanceServiceTestSuite) TestCheckIn_LapsedSubscriptionFallsToGraceWindow() {
	ctx := context.Background()
	// Latest subscription ended last month; on day 20 that reads as VENCIDA.
	now := time.Date(2026, time.July, 20, 18, 0, 0, 0, time.UTC)
	subscription := &domain.Subscription{
		SubscriptionID: uuid.NewString(),
		MemberID:       suite.member.MemberID,
		EndDate:        time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC),
		IsActive:       true,
	}

	suite.expectMemberLookup()
	suite.mockSubscriptionRepo.On("FindLatestActiveByMember", mock.Anything, suite.member.MemberID).Return(subscription, nil).Once()
	suite.expectAttendanceSaved()

	result, err := suite.serviceAt(now).CheckIn(ctx, suite.member.NationalID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusExpired, result.Status)
	suite.False(result.HasCoverage)
}

// --- Failure paths ---

func (suite *AttendanceServiceTestSuite) TestCheckIn_BlankNationalID() {
	ctx := context.Background()

	_, err := suite.serviceAt(time.Now()).CheckIn(ctx, "   ")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMemberRepo.AssertNotCalled(suite.T(), "FindMemberByNationalID", mock.Anything, mock.Anything)
}

func (suite *AttendanceServiceTestSuite) TestCheckIn_UnknownMember() {
	ctx := context.Background()

	suite.mockMemberRepo.On("FindMemberByNationalID", mock.Anything, "99999999").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.serviceAt(time.Now()).CheckIn(ctx, "99999999")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAttendanceRepo.AssertNotCalled(suite.T(), "SaveAttendance", mock.Anything, mock.Anything)
}

func (suite *AttendanceServiceTestSuite) TestCheckIn_TrimsNationalID() {
	ctx := context.Background()
	now := time.Date(2026, time.July, 5, 9, 0, 0, 0, time.UTC)

	suite.expectMemberLookup()
	suite.mockSubscriptionRepo.On("FindLatestActiveByMember", mock.Anything, suite.member.MemberID).Return(nil, apperrors.ErrNotFound).Once()
	suite.expectAttendanceSaved()

	result, err := suite.serviceAt(now).CheckIn(ctx, "  30123456  ")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusActive, result.Status)
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

func TestAttendanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AttendanceServiceTestSuite))
}
