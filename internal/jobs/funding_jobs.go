package jobs

import (
	"context"
	"fmt"

	"coursefund-backend/internal/domain"
	"coursefund-backend/internal/logger"
)

// SendPendingReviewReminders emails administrators about funding requests
// that have been waiting in PENDING for more than three days
func (jr *JobRunner) SendPendingReviewReminders() {
	jr.runWithRecovery("SendPendingReviewReminders", func() {
		ctx := context.Background()

		query := `
			SELECT id, requester_id, requested_amount_cents, created_on
			FROM funding_requests
			WHERE status = 'PENDING'
			  AND created_on < NOW() - INTERVAL '3 days'
			ORDER BY created_on ASC
		`

		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to query stale pending requests", "error", err)
			return
		}
		defer rows.Close()

		type staleRequest struct {
			ID          int32
			RequesterID int32
			AmountCents int64
			CreatedOn   string
		}

		var stale []staleRequest
		for rows.Next() {
			var r staleRequest
			if err := rows.Scan(&r.ID, &r.RequesterID, &r.AmountCents, &r.CreatedOn); err != nil {
				logger.Error("Failed to scan pending request", "error", err)
				continue
			}
			stale = append(stale, r)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating pending requests", "error", err)
			return
		}

		if len(stale) == 0 {
			logger.Info("No stale pending requests")
			return
		}

		admins, err := jr.store.UserRepository.ListByRole(ctx, domain.UserRoleAdmin)
		if err != nil {
			logger.Error("Failed to list admins for reminders", "error", err)
			return
		}

		body := fmt.Sprintf("%d funding request(s) have been awaiting review for more than 3 days:\n\n", len(stale))
		for _, r := range stale {
			body += fmt.Sprintf("  - request #%d, $%.2f requested, submitted %s\n",
				r.ID, float64(r.AmountCents)/100, r.CreatedOn)
		}

		sent := 0
		for _, admin := range admins {
			if err := jr.services.Email.SendAdminNotification(ctx, admin.Email, "Funding requests awaiting review", body); err != nil {
				logger.Error("Failed to send review reminder", "admin_id", admin.ID, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent pending review reminders", "stale_requests", len(stale), "admins_notified", sent)
	})
}

// SendFundingSummary emails administrators a daily snapshot of the ledger
func (jr *JobRunner) SendFundingSummary() {
	jr.runWithRecovery("SendFundingSummary", func() {
		ctx := context.Background()

		stats, err := jr.store.LedgerRepository.GetStats(ctx)
		if err != nil {
			logger.Error("Failed to compute ledger stats", "error", err)
			return
		}

		admins, err := jr.store.UserRepository.ListByRole(ctx, domain.UserRoleAdmin)
		if err != nil {
			logger.Error("Failed to list admins for summary", "error", err)
			return
		}

		body := fmt.Sprintf(
			"Daily funding summary:\n\n"+
				"  Pending requests:   %d\n"+
				"  Approved requests:  %d\n"+
				"  Funded requests:    %d\n"+
				"  Rejected requests:  %d\n\n"+
				"  Total requested:    $%.2f\n"+
				"  Total approved:     $%.2f\n"+
				"  Total contributed:  $%.2f\n"+
				"  Total donated:      $%.2f\n"+
				"  Pool balance:       $%.2f\n\n"+
				"  Active donors:      %d\n",
			stats.RequestCountByStatus[string(domain.RequestStatusPending)],
			stats.RequestCountByStatus[string(domain.RequestStatusApproved)],
			stats.RequestCountByStatus[string(domain.RequestStatusFunded)],
			stats.RequestCountByStatus[string(domain.RequestStatusRejected)],
			float64(stats.TotalRequestedCents)/100,
			float64(stats.TotalApprovedCents)/100,
			float64(stats.TotalContributedCents)/100,
			float64(stats.TotalDonatedCents)/100,
			float64(stats.PoolBalanceCents)/100,
			stats.DonorCount,
		)

		sent := 0
		for _, admin := range admins {
			if err := jr.services.Email.SendAdminNotification(ctx, admin.Email, "Daily funding summary", body); err != nil {
				logger.Error("Failed to send funding summary", "admin_id", admin.ID, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent funding summary", "admins_notified", sent, "pool_balance_cents", stats.PoolBalanceCents)
	})
}

// CleanupExpiredDocuments removes document records whose upload was never
// confirmed within the grace period
func (jr *JobRunner) CleanupExpiredDocuments() {
	jr.runWithRecovery("CleanupExpiredDocuments", func() {
		ctx := context.Background()

		deleted, err := jr.store.DocumentRepository.DeleteExpiredPending(ctx)
		if err != nil {
			logger.Error("Failed to clean up expired documents", "error", err)
			return
		}

		logger.Info("Cleaned up expired pending documents", "count", deleted)
	})
}
