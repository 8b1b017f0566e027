package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fittrack/gym_backoffice/internal/apperrors"
	"github.com/fittrack/gym_backoffice/internal/core/domain"
	portssvc "github.com/fittrack/gym_backoffice/internal/core/ports/services"
	"github.com/fittrack/gym_backoffice/internal/core/services"
	"github.com/fittrack/gym_backoffice/internal/dto"
)

// MockSubscriptionRepository is a mock type for the SubscriptionReader interface
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindLatestActiveByMember(ctx context.Context, memberID string) (*domain.Subscription, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

// MockPaymentRepository is a mock type for the PaymentWriter interface
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

// --- Test Suite Setup ---

type PaymentServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo       *MockLedgerRepository
	mockPaymentRepo      *MockPaymentRepository
	mockSubscriptionRepo *MockSubscriptionRepository
	mockRevalidator      *MockRevalidator
	service              portssvc.PaymentSvcFacade

	subscription *domain.Subscription
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockSubscriptionRepo = new(MockSubscriptionRepository)
	suite.mockRevalidator = new(MockRevalidator)
	suite.mockRevalidator.On("Revalidate", mock.Anything, mock.Anything).Maybe()
	suite.service = services.NewPaymentService(suite.mockLedgerRepo, suite.mockPaymentRepo, suite.mockSubscriptionRepo, suite.mockRevalidator)

	suite.subscription = &domain.Subscription{
		SubscriptionID: uuid.NewString(),
		MemberID:       uuid.NewString(),
	}
	suite.mockSubscriptionRepo.On("FindSubscriptionByID", mock.Anything, suite.subscription.SubscriptionID).Return(suite.subscription, nil).Maybe()
}

func (suite *PaymentServiceTestSuite) feeOnlyRequest() dto.RegisterPaymentRequest {
	return dto.RegisterPaymentRequest{
		SubscriptionID: suite.subscription.SubscriptionID,
		FeeAmount:      decimal.NewFromInt(5000),
		Method:         domain.MethodCash,
	}
}

// --- Validation ---

func (suite *PaymentServiceTestSuite) TestRegisterPayment_ValidationFailures() {
	ctx := context.Background()

	testCases := []struct {
		name   string
		mutate func(*dto.RegisterPaymentRequest)
	}{
		{"zero fee", func(r *dto.RegisterPaymentRequest) { r.FeeAmount = decimal.Zero }},
		{"negative fee", func(r *dto.RegisterPaymentRequest) { r.FeeAmount = decimal.NewFromInt(-100) }},
		{"unknown method", func(r *dto.RegisterPaymentRequest) { r.Method = "CHEQUE" }},
		{"zero settlement amount", func(r *dto.RegisterPaymentRequest) {
			r.SettleLedger = &dto.LedgerSettlementRequest{AccountID: uuid.NewString(), Amount: decimal.Zero}
		}},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			req := suite.feeOnlyRequest()
			tc.mutate(&req)
			_, _, err := suite.service.RegisterPayment(ctx, req)
			suite.Require().Error(err)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRegisterPayment_SubscriptionNotFound() {
	ctx := context.Background()
	req := suite.feeOnlyRequest()
	req.SubscriptionID = uuid.NewString()

	suite.mockSubscriptionRepo.On("FindSubscriptionByID", ctx, req.SubscriptionID).Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.RegisterPayment(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

// --- Fee-only payments ---

func (suite *PaymentServiceTestSuite) TestRegisterPayment_FeeOnly() {
	ctx := context.Background()
	req := suite.feeOnlyRequest()
	req.Notes = "Pago de agosto"

	suite.mockLedgerRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockPaymentRepo.On("SavePaymentInTx", ctx, mock.Anything, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Amount.Equal(decimal.NewFromInt(5000)) && p.Notes == "Pago de agosto"
	})).Return(nil).Once()
	suite.mockLedgerRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()

	payment, ledgerApplied, err := suite.service.RegisterPayment(ctx, req)

	suite.Require().NoError(err)
	suite.False(ledgerApplied)
	suite.True(payment.Amount.Equal(decimal.NewFromInt(5000)))
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "FindAccountByIDForUpdate", mock.Anything, mock.Anything, mock.Anything)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

// --- Combined payments ---

func (suite *PaymentServiceTestSuite) TestRegisterPayment_WithSettlement() {
	ctx := context.Background()
	account := &domain.RunningAccount{
		AccountID:     uuid.NewString(),
		MemberID:      suite.subscription.MemberID,
		OwedBalance:   decimal.NewFromInt(100),
		CreditBalance: decimal.Zero,
		State:         domain.AccountActive,
	}
	req := suite.feeOnlyRequest()
	req.SettleLedger = &dto.LedgerSettlementRequest{AccountID: account.AccountID, Amount: decimal.NewFromInt(100)}

	suite.mockLedgerRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockPaymentRepo.On("SavePaymentInTx", ctx, mock.Anything, mock.MatchedBy(func(p domain.Payment) bool {
		// Total charged is fee plus the ledger portion, with the breakdown in
		// the notes.
		return p.Amount.Equal(decimal.NewFromInt(5100)) &&
			p.Notes == "Cuota: $5000.00 + Cuenta Corriente: $100.00 = Total: $5100.00"
	})).Return(nil).Once()
	suite.mockLedgerRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, account.AccountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("AppendMovementInTx", ctx, mock.Anything, mock.MatchedBy(func(mv domain.Movement) bool {
		return mv.Type == domain.MovementPayment && mv.PaymentID != ""
	}), decimalEq(0), decimalEq(0), domain.AccountSettled).Return(nil).Once()
	suite.mockLedgerRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()

	payment, ledgerApplied, err := suite.service.RegisterPayment(ctx, req)

	suite.Require().NoError(err)
	suite.True(ledgerApplied)
	suite.True(payment.Amount.Equal(decimal.NewFromInt(5100)))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRegisterPayment_OverpaymentBecomesCredit() {
	ctx := context.Background()
	account := &domain.RunningAccount{
		AccountID:     uuid.NewString(),
		OwedBalance:   decimal.NewFromInt(100),
		CreditBalance: decimal.Zero,
		State:         domain.AccountActive,
	}
	req := suite.feeOnlyRequest()
	req.SettleLedger = &dto.LedgerSettlementRequest{AccountID: account.AccountID, Amount: decimal.NewFromInt(150)}

	suite.mockLedgerRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockPaymentRepo.On("SavePaymentInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, account.AccountID).Return(account, nil).Once()
	// Unlike the manual PAGO path, the 50 beyond owed stays as credit.
	suite.mockLedgerRepo.On("AppendMovementInTx", ctx, mock.Anything, mock.Anything, decimalEq(0), decimalEq(50), domain.AccountActive).Return(nil).Once()
	suite.mockLedgerRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()

	_, ledgerApplied, err := suite.service.RegisterPayment(ctx, req)

	suite.Require().NoError(err)
	suite.True(ledgerApplied)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRegisterPayment_AppendsUserNotesAfterBreakdown() {
	ctx := context.Background()
	account := &domain.RunningAccount{
		AccountID:   uuid.NewString(),
		OwedBalance: decimal.NewFromInt(100),
		State:       domain.AccountActive,
	}
	req := suite.feeOnlyRequest()
	req.Notes = "Abona con tarjeta del padre"
	req.Method = domain.MethodCard
	req.SettleLedger = &dto.LedgerSettlementRequest{AccountID: account.AccountID, Amount: decimal.NewFromInt(50)}

	suite.mockLedgerRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockPaymentRepo.On("SavePaymentInTx", ctx, mock.Anything, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Notes == "Cuota: $5000.00 + Cuenta Corriente: $50.00 = Total: $5050.00 | Abona con tarjeta del padre"
	})).Return(nil).Once()
	suite.mockLedgerRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, account.AccountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("AppendMovementInTx", ctx, mock.Anything, mock.Anything, decimalEq(50), decimalEq(0), domain.AccountActive).Return(nil).Once()
	suite.mockLedgerRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()

	_, _, err := suite.service.RegisterPayment(ctx, req)

	suite.Require().NoError(err)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

// --- Settlement skip paths ---

func (suite *PaymentServiceTestSuite) TestRegisterPayment_SkipsSettlementWhenAccountMissing() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := suite.feeOnlyRequest()
	req.SettleLedger = &dto.LedgerSettlementRequest{AccountID: accountID, Amount: decimal.NewFromInt(100)}

	suite.mockLedgerRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockPaymentRepo.On("SavePaymentInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, accountID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLedgerRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()

	payment, ledgerApplied, err := suite.service.RegisterPayment(ctx, req)

	// The payment itself still goes through.
	suite.Require().NoError(err)
	suite.False(ledgerApplied)
	suite.NotNil(payment)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendMovementInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRegisterPayment_SkipsSettlementWhenAccountClosed() {
	ctx := context.Background()
	account := &domain.RunningAccount{
		AccountID: uuid.NewString(),
		State:     domain.AccountClosed,
	}
	req := suite.feeOnlyRequest()
	req.SettleLedger = &dto.LedgerSettlementRequest{AccountID: account.AccountID, Amount: decimal.NewFromInt(100)}

	suite.mockLedgerRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockPaymentRepo.On("SavePaymentInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, account.AccountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()

	_, ledgerApplied, err := suite.service.RegisterPayment(ctx, req)

	suite.Require().NoError(err)
	suite.False(ledgerApplied)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendMovementInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Atomicity ---

func (suite *PaymentServiceTestSuite) TestRegisterPayment_RollsBackWhenSettlementFails() {
	ctx := context.Background()
	account := &domain.RunningAccount{
		AccountID:   uuid.NewString(),
		OwedBalance: decimal.NewFromInt(100),
		State:       domain.AccountActive,
	}
	req := suite.feeOnlyRequest()
	req.SettleLedger = &dto.LedgerSettlementRequest{AccountID: account.AccountID, Amount: decimal.NewFromInt(100)}
	storageErr := errors.New("connection reset")

	suite.mockLedgerRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockPaymentRepo.On("SavePaymentInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("FindAccountByIDForUpdate", ctx, mock.Anything, account.AccountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("AppendMovementInTx", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(storageErr).Once()
	suite.mockLedgerRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	payment, ledgerApplied, err := suite.service.RegisterPayment(ctx, req)

	// Settlement failed inside the shared transaction, so the payment insert
	// must not survive either.
	suite.Require().Error(err)
	suite.Nil(payment)
	suite.False(ledgerApplied)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRegisterPayment_RollsBackWhenPaymentInsertFails() {
	ctx := context.Background()
	req := suite.feeOnlyRequest()
	storageErr := errors.New("unique violation")

	suite.mockLedgerRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockPaymentRepo.On("SavePaymentInTx", ctx, mock.Anything, mock.Anything).Return(storageErr).Once()
	suite.mockLedgerRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	payment, _, err := suite.service.RegisterPayment(ctx, req)

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
