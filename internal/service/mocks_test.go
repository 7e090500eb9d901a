package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"coursefund-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockCourseRepo
type MockCourseRepo struct {
	mock.Mock
}

func (m *MockCourseRepo) Create(ctx context.Context, course *domain.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}
func (m *MockCourseRepo) GetByID(ctx context.Context, id int32) (*domain.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}
func (m *MockCourseRepo) Update(ctx context.Context, course *domain.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}
func (m *MockCourseRepo) List(ctx context.Context, approvedOnly bool) ([]domain.Course, error) {
	args := m.Called(ctx, approvedOnly)
	return args.Get(0).([]domain.Course), args.Error(1)
}

// MockFundingRequestRepo
type MockFundingRequestRepo struct {
	mock.Mock
}

func (m *MockFundingRequestRepo) Create(ctx context.Context, req *domain.FundingRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockFundingRequestRepo) GetByID(ctx context.Context, id int32) (*domain.FundingRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundingRequest), args.Error(1)
}
func (m *MockFundingRequestRepo) ListByRequester(ctx context.Context, requesterID int32, page, pageSize int32) ([]domain.FundingRequest, int32, error) {
	args := m.Called(ctx, requesterID, page, pageSize)
	return args.Get(0).([]domain.FundingRequest), args.Get(1).(int32), args.Error(2)
}
func (m *MockFundingRequestRepo) ListByStatus(ctx context.Context, status domain.RequestStatus, page, pageSize int32) ([]domain.FundingRequest, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.FundingRequest), args.Get(1).(int32), args.Error(2)
}
func (m *MockFundingRequestRepo) ListDetailed(ctx context.Context, status string, page, pageSize int32) ([]domain.RequestDetail, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.RequestDetail), args.Get(1).(int32), args.Error(2)
}
func (m *MockFundingRequestRepo) Reject(ctx context.Context, id, reviewerID int32, note string) error {
	args := m.Called(ctx, id, reviewerID, note)
	return args.Error(0)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) CreateTransaction(ctx context.Context, tx *domain.LedgerTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockLedgerRepo) UpdateTransactionStatus(ctx context.Context, id int32, status domain.TransactionStatus, note string) error {
	args := m.Called(ctx, id, status, note)
	return args.Error(0)
}
func (m *MockLedgerRepo) ListTransactions(ctx context.Context, donorID *int32, page, pageSize int32) ([]domain.LedgerTransaction, int32, error) {
	args := m.Called(ctx, donorID, page, pageSize)
	return args.Get(0).([]domain.LedgerTransaction), args.Get(1).(int32), args.Error(2)
}
func (m *MockLedgerRepo) ListAllTransactions(ctx context.Context) ([]domain.LedgerTransaction, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.LedgerTransaction), args.Error(1)
}
func (m *MockLedgerRepo) ApproveWithAllocation(ctx context.Context, requestID, reviewerID int32, approvedAmountCents int64) (*domain.LedgerTransaction, error) {
	args := m.Called(ctx, requestID, reviewerID, approvedAmountCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerTransaction), args.Error(1)
}
func (m *MockLedgerRepo) SponsorRequest(ctx context.Context, requestID, donorID int32, amountCents int64) (*domain.LedgerTransaction, bool, error) {
	args := m.Called(ctx, requestID, donorID, amountCents)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.LedgerTransaction), args.Bool(1), args.Error(2)
}
func (m *MockLedgerRepo) ContributedTotal(ctx context.Context, requestID int32) (int64, error) {
	args := m.Called(ctx, requestID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockLedgerRepo) PoolBalance(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockLedgerRepo) GetStats(ctx context.Context) (*domain.LedgerStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerStats), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendReviewDecisionNotification(ctx context.Context, email, name string, requestID int32, approved bool, note string) error {
	args := m.Called(ctx, email, name, requestID, approved, note)
	return args.Error(0)
}
func (m *MockEmailService) SendRequestFundedNotification(ctx context.Context, email, name string, requestID int32, fundedCents int64) error {
	args := m.Called(ctx, email, name, requestID, fundedCents)
	return args.Error(0)
}
func (m *MockEmailService) SendSponsorshipReceipt(ctx context.Context, email, name string, requestID int32, amountCents int64) error {
	args := m.Called(ctx, email, name, requestID, amountCents)
	return args.Error(0)
}
func (m *MockEmailService) SendAdminNotification(ctx context.Context, adminEmail, subject, message string) error {
	args := m.Called(ctx, adminEmail, subject, message)
	return args.Error(0)
}
