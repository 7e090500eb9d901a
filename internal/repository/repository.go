package repository

import (
	"context"
	"coursefund-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
}

type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	GetByID(ctx context.Context, id int32) (*domain.Course, error)
	Update(ctx context.Context, course *domain.Course) error
	List(ctx context.Context, approvedOnly bool) ([]domain.Course, error)
}

type FundingRequestRepository interface {
	Create(ctx context.Context, req *domain.FundingRequest) error
	GetByID(ctx context.Context, id int32) (*domain.FundingRequest, error)
	ListByRequester(ctx context.Context, requesterID int32, page, pageSize int32) ([]domain.FundingRequest, int32, error)
	ListByStatus(ctx context.Context, status domain.RequestStatus, page, pageSize int32) ([]domain.FundingRequest, int32, error)
	// ListDetailed is the admin projection joined with requester and course.
	ListDetailed(ctx context.Context, status string, page, pageSize int32) ([]domain.RequestDetail, int32, error)

	// Reject transitions PENDING -> REJECTED if and only if the request
	// is currently PENDING, storing the review note verbatim. Zero rows
	// matched means the request is absent or already reviewed:
	// domain.ErrNotFoundOrAlreadyProcessed.
	Reject(ctx context.Context, id, reviewerID int32, note string) error
}

type LedgerRepository interface {
	// CreateTransaction appends a ledger transaction. Used for pool
	// top-ups; request-linked inserts go through the conditional
	// operations below.
	CreateTransaction(ctx context.Context, tx *domain.LedgerTransaction) error

	// UpdateTransactionStatus rewrites the settlement status and admin
	// note of an existing transaction; a missing id reports
	// domain.ErrNotFoundOrAlreadyProcessed.
	UpdateTransactionStatus(ctx context.Context, id int32, status domain.TransactionStatus, note string) error
	ListTransactions(ctx context.Context, donorID *int32, page, pageSize int32) ([]domain.LedgerTransaction, int32, error)
	ListAllTransactions(ctx context.Context) ([]domain.LedgerTransaction, error)

	// ApproveWithAllocation atomically flips the request from PENDING to
	// APPROVED and records the negative allocation earmark. The status
	// flip is a conditional update; zero rows matched aborts with
	// domain.ErrNotFoundOrAlreadyProcessed and nothing is written.
	ApproveWithAllocation(ctx context.Context, requestID, reviewerID int32, approvedAmountCents int64) (*domain.LedgerTransaction, error)

	// SponsorRequest atomically records a contribution toward an APPROVED
	// request. Inside one database transaction it locks the request row,
	// sums completed contributions, rejects overfunding, inserts the
	// sponsorship, and flips APPROVED -> FUNDED with the funded-amount
	// snapshot when the total reaches the requested amount. Returns the
	// inserted transaction and whether the request became funded.
	SponsorRequest(ctx context.Context, requestID, donorID int32, amountCents int64) (*domain.LedgerTransaction, bool, error)

	// ContributedTotal sums completed positive transactions linked to the
	// request.
	ContributedTotal(ctx context.Context, requestID int32) (int64, error)
	// PoolBalance is the sum of every completed transaction: top-ups and
	// sponsorships in, allocations out.
	PoolBalance(ctx context.Context) (int64, error)
	GetStats(ctx context.Context) (*domain.LedgerStats, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id int32) (*domain.Document, error)
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Document, error)
	Confirm(ctx context.Context, id int32, fileSize int64) error
	DeleteExpiredPending(ctx context.Context) (int64, error)
}
