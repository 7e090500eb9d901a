package service

import (
	"context"
	"coursefund-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password string, role domain.UserRole) (*domain.User, string, string, error)
	Login(ctx context.Context, email, password string) (string, string, error)
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	UpdateProfile(ctx context.Context, principal domain.Principal, name, email, phone, school, fieldOfStudy, organization string) error
}

type CourseService interface {
	AddCourse(ctx context.Context, principal domain.Principal, course *domain.Course) error
	GetCourse(ctx context.Context, id int32) (*domain.Course, error)
	ListCourses(ctx context.Context, principal domain.Principal) ([]domain.Course, error)
	UpdateCourse(ctx context.Context, principal domain.Principal, course *domain.Course) error
}

// LedgerService owns every rule connecting FundingRequest status to
// LedgerTransaction amounts, and is the only component permitted to
// mutate either. Each operation takes the caller's principal explicitly
// and checks the role before touching the ledger.
type LedgerService interface {
	SubmitRequest(ctx context.Context, principal domain.Principal, submission domain.RequestSubmission) (*domain.FundingRequest, error)
	ReviewRequest(ctx context.Context, principal domain.Principal, requestID int32, decision domain.ReviewDecision, note string, approvedAmountCents int64) (*domain.FundingRequest, error)
	SponsorRequest(ctx context.Context, principal domain.Principal, requestID int32, amountCents int64) (*domain.LedgerTransaction, error)
	RecordIncomingPayment(ctx context.Context, principal domain.Principal, amountCents int64, note string) (*domain.LedgerTransaction, error)
	UpdateTransactionStatus(ctx context.Context, principal domain.Principal, transactionID int32, status domain.TransactionStatus, note string) error
	ComputeFundingProgress(ctx context.Context, requestID int32) (*domain.FundingProgress, error)

	GetRequest(ctx context.Context, principal domain.Principal, requestID int32) (*domain.FundingRequest, error)
	ListMyRequests(ctx context.Context, principal domain.Principal, page, pageSize int32) ([]domain.FundingRequest, int32, error)
	ListOpenRequests(ctx context.Context, page, pageSize int32) ([]domain.FundingRequest, int32, error)
	ListAllRequests(ctx context.Context, principal domain.Principal, status string, page, pageSize int32) ([]domain.RequestDetail, int32, error)
	ListMyTransactions(ctx context.Context, principal domain.Principal, page, pageSize int32) ([]domain.LedgerTransaction, int32, error)
}

type ReportingService interface {
	GetStats(ctx context.Context, principal domain.Principal) (*domain.LedgerStats, error)
	ExportLedgerCSV(ctx context.Context, principal domain.Principal) ([]byte, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type DocumentService interface {
	GetUploadURL(ctx context.Context, principal domain.Principal, filename string, requestID *int32) (*domain.Document, string, error)
	ConfirmUpload(ctx context.Context, principal domain.Principal, documentID int32) (*domain.Document, error)
	GetDownloadURL(ctx context.Context, principal domain.Principal, documentID int32) (string, error)
	ListMyDocuments(ctx context.Context, principal domain.Principal) ([]domain.Document, error)
}

type EmailService interface {
	SendReviewDecisionNotification(ctx context.Context, email, name string, requestID int32, approved bool, note string) error
	SendRequestFundedNotification(ctx context.Context, email, name string, requestID int32, fundedCents int64) error
	SendSponsorshipReceipt(ctx context.Context, email, name string, requestID int32, amountCents int64) error
	SendAdminNotification(ctx context.Context, adminEmail, subject, message string) error
}
