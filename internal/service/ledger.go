package service

import (
	"context"
	"fmt"
	"strings"

	"coursefund-backend/internal/domain"
	"coursefund-backend/internal/logger"
	"coursefund-backend/internal/repository"
)

type ledgerService struct {
	requestRepo repository.FundingRequestRepository
	ledgerRepo  repository.LedgerRepository
	userRepo    repository.UserRepository
	emailSvc    EmailService
	noteRepo    repository.NotificationRepository
}

func NewLedgerService(
	requestRepo repository.FundingRequestRepository,
	ledgerRepo repository.LedgerRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	noteRepo repository.NotificationRepository,
) LedgerService {
	return &ledgerService{
		requestRepo: requestRepo,
		ledgerRepo:  ledgerRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
		noteRepo:    noteRepo,
	}
}

func (s *ledgerService) SubmitRequest(ctx context.Context, principal domain.Principal, submission domain.RequestSubmission) (*domain.FundingRequest, error) {
	if !principal.Is(domain.UserRoleStudent) {
		return nil, domain.ErrUnauthorized
	}

	verr := domain.NewValidationError()
	if submission.AmountCents <= 0 {
		verr.Add("amount_cents", "must be a positive amount")
	}
	if strings.TrimSpace(submission.Reason) == "" {
		verr.Add("reason", "is required")
	}
	if strings.TrimSpace(submission.CareerRelevance) == "" {
		verr.Add("career_relevance", "is required")
	}
	if strings.TrimSpace(submission.Timeline) == "" {
		verr.Add("timeline", "is required")
	}
	if submission.CourseID == nil && strings.TrimSpace(submission.ProposedTitle) == "" {
		verr.Add("course", "either a catalog course id or a proposed course title is required")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	req := &domain.FundingRequest{
		RequesterID:          principal.UserID,
		CourseID:             submission.CourseID,
		ProposedTitle:        submission.ProposedTitle,
		ProposedProvider:     submission.ProposedProvider,
		RequestedAmountCents: submission.AmountCents,
		Category:             submission.Category,
		Reason:               submission.Reason,
		CareerRelevance:      submission.CareerRelevance,
		Timeline:             submission.Timeline,
		Status:               domain.RequestStatusPending,
	}
	// No transaction is created at submission; money only moves once a
	// reviewer approves.
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	logger.Info("Funding request submitted", "request_id", req.ID, "requester_id", principal.UserID, "amount_cents", req.RequestedAmountCents)
	return req, nil
}

func (s *ledgerService) ReviewRequest(ctx context.Context, principal domain.Principal, requestID int32, decision domain.ReviewDecision, note string, approvedAmountCents int64) (*domain.FundingRequest, error) {
	if !principal.Is(domain.UserRoleAdmin) {
		return nil, domain.ErrUnauthorized
	}

	switch decision {
	case domain.ReviewDecisionApprove:
		if approvedAmountCents <= 0 {
			verr := domain.NewValidationError()
			verr.Add("approved_amount_cents", "must be a positive amount")
			return nil, verr
		}
		if _, err := s.ledgerRepo.ApproveWithAllocation(ctx, requestID, principal.UserID, approvedAmountCents); err != nil {
			return nil, err
		}
	case domain.ReviewDecisionReject:
		// Amount is ignored on reject; the note is stored verbatim.
		if err := s.requestRepo.Reject(ctx, requestID, principal.UserID, note); err != nil {
			return nil, err
		}
	default:
		verr := domain.NewValidationError()
		verr.Add("decision", "must be APPROVE or REJECT")
		return nil, verr
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	s.notifyReviewOutcome(ctx, req, decision == domain.ReviewDecisionApprove, note)
	return req, nil
}

func (s *ledgerService) SponsorRequest(ctx context.Context, principal domain.Principal, requestID int32, amountCents int64) (*domain.LedgerTransaction, error) {
	if !principal.Is(domain.UserRoleDonor) {
		return nil, domain.ErrUnauthorized
	}
	if amountCents <= 0 {
		verr := domain.NewValidationError()
		verr.Add("amount_cents", "must be a positive amount")
		return nil, verr
	}

	contribution, funded, err := s.ledgerRepo.SponsorRequest(ctx, requestID, principal.UserID, amountCents)
	if err != nil {
		return nil, err
	}

	if funded {
		s.notifyFunded(ctx, requestID)
	}
	s.sendSponsorReceipt(ctx, principal.UserID, requestID, amountCents)
	return contribution, nil
}

func (s *ledgerService) RecordIncomingPayment(ctx context.Context, principal domain.Principal, amountCents int64, note string) (*domain.LedgerTransaction, error) {
	if !principal.Is(domain.UserRoleDonor) {
		return nil, domain.ErrUnauthorized
	}
	if amountCents <= 0 {
		verr := domain.NewValidationError()
		verr.Add("amount_cents", "must be a positive amount")
		return nil, verr
	}

	donorID := principal.UserID
	tx := &domain.LedgerTransaction{
		AmountCents: amountCents,
		Type:        domain.TransactionTypeDonation,
		Status:      domain.TransactionStatusCompleted,
		DonorID:     &donorID,
		Note:        note,
	}
	if err := s.ledgerRepo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Pool donation recorded", "donor_id", donorID, "amount_cents", amountCents)
	return tx, nil
}

// UpdateTransactionStatus is the admin correction path for settlement
// state. Amounts, types, and links are immutable; only the status and
// the admin note may change after a transaction is written.
func (s *ledgerService) UpdateTransactionStatus(ctx context.Context, principal domain.Principal, transactionID int32, status domain.TransactionStatus, note string) error {
	if !principal.Is(domain.UserRoleAdmin) {
		return domain.ErrUnauthorized
	}

	switch status {
	case domain.TransactionStatusPending, domain.TransactionStatusCompleted, domain.TransactionStatusFailed:
	default:
		verr := domain.NewValidationError()
		verr.Add("status", fmt.Sprintf("unknown transaction status %q", status))
		return verr
	}

	if err := s.ledgerRepo.UpdateTransactionStatus(ctx, transactionID, status, note); err != nil {
		return err
	}

	logger.Info("Transaction status updated", "transaction_id", transactionID, "status", status, "admin_id", principal.UserID)
	return nil
}

func (s *ledgerService) ComputeFundingProgress(ctx context.Context, requestID int32) (*domain.FundingProgress, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	funded, err := s.ledgerRepo.ContributedTotal(ctx, requestID)
	if err != nil {
		return nil, err
	}

	progress := &domain.FundingProgress{
		RequestID:            requestID,
		RequestedAmountCents: req.RequestedAmountCents,
		FundedAmountCents:    funded,
	}
	if req.RequestedAmountCents > 0 {
		// The ratio is deliberately not clamped: over 100% means the
		// overfunding invariant was violated somewhere and should be
		// visible, not hidden. Display clamping belongs to the caller.
		progress.Percent = float64(funded) / float64(req.RequestedAmountCents) * 100
	}
	return progress, nil
}

func (s *ledgerService) GetRequest(ctx context.Context, principal domain.Principal, requestID int32) (*domain.FundingRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	// Students may only see their own requests.
	if principal.Is(domain.UserRoleStudent) && req.RequesterID != principal.UserID {
		return nil, domain.ErrNotFoundOrAlreadyProcessed
	}
	return req, nil
}

func (s *ledgerService) ListMyRequests(ctx context.Context, principal domain.Principal, page, pageSize int32) ([]domain.FundingRequest, int32, error) {
	if !principal.Is(domain.UserRoleStudent) {
		return nil, 0, domain.ErrUnauthorized
	}
	return s.requestRepo.ListByRequester(ctx, principal.UserID, page, pageSize)
}

func (s *ledgerService) ListOpenRequests(ctx context.Context, page, pageSize int32) ([]domain.FundingRequest, int32, error) {
	return s.requestRepo.ListByStatus(ctx, domain.RequestStatusApproved, page, pageSize)
}

func (s *ledgerService) ListAllRequests(ctx context.Context, principal domain.Principal, status string, page, pageSize int32) ([]domain.RequestDetail, int32, error) {
	if !principal.Is(domain.UserRoleAdmin) {
		return nil, 0, domain.ErrUnauthorized
	}
	return s.requestRepo.ListDetailed(ctx, status, page, pageSize)
}

func (s *ledgerService) ListMyTransactions(ctx context.Context, principal domain.Principal, page, pageSize int32) ([]domain.LedgerTransaction, int32, error) {
	if !principal.Is(domain.UserRoleDonor) {
		return nil, 0, domain.ErrUnauthorized
	}
	donorID := principal.UserID
	return s.ledgerRepo.ListTransactions(ctx, &donorID, page, pageSize)
}

// Notification fan-out below is best effort: a failed email or in-app
// note never fails the ledger operation that triggered it.

func (s *ledgerService) notifyReviewOutcome(ctx context.Context, req *domain.FundingRequest, approved bool, note string) {
	student, err := s.userRepo.GetByID(ctx, req.RequesterID)
	if err != nil {
		logger.Warn("Could not load requester for review notification", "request_id", req.ID, "error", err)
		return
	}

	title := "Funding Request Rejected"
	message := fmt.Sprintf("Your funding request #%d was rejected.", req.ID)
	if note != "" && !approved {
		message += " Reason: " + note
	}
	if approved {
		title = "Funding Request Approved"
		message = fmt.Sprintf("Your funding request #%d was approved and is now open for sponsorship.", req.ID)
	}

	notif := &domain.Notification{
		UserID:  student.ID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"type":       "REQUEST_REVIEWED",
			"request_id": fmt.Sprintf("%d", req.ID),
		},
	}
	if err := s.noteRepo.Create(ctx, notif); err != nil {
		logger.Warn("Failed to create review notification", "request_id", req.ID, "error", err)
	}
	if err := s.emailSvc.SendReviewDecisionNotification(ctx, student.Email, student.Name, req.ID, approved, note); err != nil {
		logger.Warn("Failed to send review decision email", "request_id", req.ID, "error", err)
	}
}

func (s *ledgerService) notifyFunded(ctx context.Context, requestID int32) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		logger.Warn("Could not reload funded request", "request_id", requestID, "error", err)
		return
	}
	student, err := s.userRepo.GetByID(ctx, req.RequesterID)
	if err != nil {
		return
	}

	var fundedCents int64
	if req.FundedAmountCents != nil {
		fundedCents = *req.FundedAmountCents
	}

	notif := &domain.Notification{
		UserID:  student.ID,
		Title:   "Request Fully Funded",
		Message: fmt.Sprintf("Your funding request #%d is fully funded.", req.ID),
		Attributes: map[string]string{
			"type":       "REQUEST_FUNDED",
			"request_id": fmt.Sprintf("%d", req.ID),
		},
	}
	if err := s.noteRepo.Create(ctx, notif); err != nil {
		logger.Warn("Failed to create funded notification", "request_id", req.ID, "error", err)
	}
	if err := s.emailSvc.SendRequestFundedNotification(ctx, student.Email, student.Name, req.ID, fundedCents); err != nil {
		logger.Warn("Failed to send funded email", "request_id", req.ID, "error", err)
	}
}

func (s *ledgerService) sendSponsorReceipt(ctx context.Context, donorID, requestID int32, amountCents int64) {
	donor, err := s.userRepo.GetByID(ctx, donorID)
	if err != nil {
		return
	}
	if err := s.emailSvc.SendSponsorshipReceipt(ctx, donor.Email, donor.Name, requestID, amountCents); err != nil {
		logger.Warn("Failed to send sponsorship receipt", "request_id", requestID, "donor_id", donorID, "error", err)
	}
}
