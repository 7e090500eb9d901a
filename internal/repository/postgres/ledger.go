package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"coursefund-backend/internal/domain"
	"coursefund-backend/internal/logger"
	"coursefund-backend/internal/repository"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

const txColumns = `id, amount_cents, type, status, request_id, donor_id, student_id, COALESCE(note, ''), created_on, updated_on`

const insertTxQuery = `INSERT INTO ledger_transactions (amount_cents, type, status, request_id, donor_id, student_id, note, created_on, updated_on)
          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`

func (r *ledgerRepository) CreateTransaction(ctx context.Context, tx *domain.LedgerTransaction) error {
	now := time.Now()
	err := r.db.QueryRowContext(ctx, insertTxQuery,
		tx.AmountCents, tx.Type, tx.Status, tx.RequestID, tx.DonorID, tx.StudentID, tx.Note, now, now).Scan(&tx.ID)
	if err != nil {
		return err
	}
	tx.CreatedOn = now.Format("2006-01-02")
	tx.UpdatedOn = now.Format("2006-01-02")
	return nil
}

func (r *ledgerRepository) UpdateTransactionStatus(ctx context.Context, id int32, status domain.TransactionStatus, note string) error {
	query := `UPDATE ledger_transactions SET status = $1, note = $2, updated_on = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, status, note, time.Now(), id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFoundOrAlreadyProcessed
	}
	return nil
}

// ApproveWithAllocation flips PENDING -> APPROVED and inserts the
// allocation earmark in one database transaction, so a racing review
// sees either both effects or neither.
func (r *ledgerRepository) ApproveWithAllocation(ctx context.Context, requestID, reviewerID int32, approvedAmountCents int64) (*domain.LedgerTransaction, error) {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer dbTx.Rollback()

	var studentID int32
	approveQuery := `UPDATE funding_requests
	                 SET status = $1, reviewer_id = $2, approved_amount_cents = $3, updated_on = $4
	                 WHERE id = $5 AND status = $6
	                 RETURNING requester_id`
	err = dbTx.QueryRowContext(ctx, approveQuery,
		domain.RequestStatusApproved, reviewerID, approvedAmountCents, time.Now(),
		requestID, domain.RequestStatusPending).Scan(&studentID)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFoundOrAlreadyProcessed
	}
	if err != nil {
		return nil, err
	}

	alloc := &domain.LedgerTransaction{
		AmountCents: -approvedAmountCents,
		Type:        domain.TransactionTypeAllocation,
		Status:      domain.TransactionStatusCompleted,
		RequestID:   &requestID,
		StudentID:   &studentID,
		Note:        fmt.Sprintf("Funds earmarked for request %d", requestID),
	}
	now := time.Now()
	err = dbTx.QueryRowContext(ctx, insertTxQuery,
		alloc.AmountCents, alloc.Type, alloc.Status, alloc.RequestID, alloc.DonorID, alloc.StudentID, alloc.Note, now, now).Scan(&alloc.ID)
	if err != nil {
		return nil, err
	}
	alloc.CreatedOn = now.Format("2006-01-02")
	alloc.UpdatedOn = now.Format("2006-01-02")

	if err := dbTx.Commit(); err != nil {
		return nil, err
	}
	logger.Info("Request approved with allocation", "request_id", requestID, "amount_cents", approvedAmountCents)
	return alloc, nil
}

// SponsorRequest records a donor contribution inside a single database
// transaction. The request row is locked so that two concurrent sponsors
// whose amounts jointly overflow the remaining need cannot both pass the
// overfunding check.
func (r *ledgerRepository) SponsorRequest(ctx context.Context, requestID, donorID int32, amountCents int64) (*domain.LedgerTransaction, bool, error) {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer dbTx.Rollback()

	var requestedCents int64
	var status domain.RequestStatus
	var studentID int32
	lockQuery := `SELECT requested_amount_cents, status, requester_id FROM funding_requests WHERE id = $1 FOR UPDATE`
	err = dbTx.QueryRowContext(ctx, lockQuery, requestID).Scan(&requestedCents, &status, &studentID)
	if err == sql.ErrNoRows {
		return nil, false, domain.ErrNotFoundOrAlreadyProcessed
	}
	if err != nil {
		return nil, false, err
	}
	if status != domain.RequestStatusApproved {
		return nil, false, domain.ErrNotFoundOrAlreadyProcessed
	}

	var contributed int64
	sumQuery := `SELECT COALESCE(SUM(amount_cents), 0) FROM ledger_transactions
	             WHERE request_id = $1 AND status = $2 AND amount_cents > 0`
	if err := dbTx.QueryRowContext(ctx, sumQuery, requestID, domain.TransactionStatusCompleted).Scan(&contributed); err != nil {
		return nil, false, err
	}

	remaining := requestedCents - contributed
	if amountCents > remaining {
		return nil, false, &domain.OverfundingError{
			RequestID:      requestID,
			AttemptedCents: amountCents,
			RemainingCents: remaining,
		}
	}

	// No separate payment-capture step is modeled: contributions land
	// COMPLETED.
	contribution := &domain.LedgerTransaction{
		AmountCents: amountCents,
		Type:        domain.TransactionTypeSponsorship,
		Status:      domain.TransactionStatusCompleted,
		RequestID:   &requestID,
		DonorID:     &donorID,
		StudentID:   &studentID,
	}
	now := time.Now()
	err = dbTx.QueryRowContext(ctx, insertTxQuery,
		contribution.AmountCents, contribution.Type, contribution.Status,
		contribution.RequestID, contribution.DonorID, contribution.StudentID, contribution.Note, now, now).Scan(&contribution.ID)
	if err != nil {
		return nil, false, err
	}
	contribution.CreatedOn = now.Format("2006-01-02")
	contribution.UpdatedOn = now.Format("2006-01-02")

	funded := contributed+amountCents >= requestedCents
	if funded {
		fundQuery := `UPDATE funding_requests
		              SET status = $1, funded_amount_cents = $2, updated_on = $3
		              WHERE id = $4 AND status = $5`
		result, err := dbTx.ExecContext(ctx, fundQuery,
			domain.RequestStatusFunded, contributed+amountCents, now, requestID, domain.RequestStatusApproved)
		if err != nil {
			return nil, false, err
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return nil, false, err
		}
		if rows == 0 {
			return nil, false, domain.ErrNotFoundOrAlreadyProcessed
		}
	}

	if err := dbTx.Commit(); err != nil {
		return nil, false, err
	}
	logger.Info("Sponsorship recorded", "request_id", requestID, "donor_id", donorID, "amount_cents", amountCents, "funded", funded)
	return contribution, funded, nil
}

func (r *ledgerRepository) ContributedTotal(ctx context.Context, requestID int32) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(amount_cents), 0) FROM ledger_transactions
	          WHERE request_id = $1 AND status = $2 AND amount_cents > 0`
	err := r.db.QueryRowContext(ctx, query, requestID, domain.TransactionStatusCompleted).Scan(&total)
	return total, err
}

func (r *ledgerRepository) PoolBalance(ctx context.Context) (int64, error) {
	var balance int64
	query := `SELECT COALESCE(SUM(amount_cents), 0) FROM ledger_transactions WHERE status = $1`
	err := r.db.QueryRowContext(ctx, query, domain.TransactionStatusCompleted).Scan(&balance)
	return balance, err
}

func (r *ledgerRepository) ListTransactions(ctx context.Context, donorID *int32, page, pageSize int32) ([]domain.LedgerTransaction, int32, error) {
	offset := (page - 1) * pageSize

	where := ``
	args := []interface{}{}
	if donorID != nil {
		where = ` WHERE donor_id = $1`
		args = append(args, *donorID)
	}

	var count int32
	countQuery := `SELECT count(*) FROM ledger_transactions` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM ledger_transactions%s ORDER BY created_on DESC LIMIT $%d OFFSET $%d`,
		txColumns, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.LedgerTransaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		txs = append(txs, *tx)
	}
	return txs, count, rows.Err()
}

func (r *ledgerRepository) ListAllTransactions(ctx context.Context) ([]domain.LedgerTransaction, error) {
	query := `SELECT ` + txColumns + ` FROM ledger_transactions ORDER BY created_on, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.LedgerTransaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}
	return txs, rows.Err()
}

func scanTransaction(row interface{ Scan(...interface{}) error }) (*domain.LedgerTransaction, error) {
	tx := &domain.LedgerTransaction{}
	var createdOn, updatedOn time.Time
	err := row.Scan(&tx.ID, &tx.AmountCents, &tx.Type, &tx.Status, &tx.RequestID, &tx.DonorID, &tx.StudentID, &tx.Note, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	tx.CreatedOn = createdOn.Format("2006-01-02")
	tx.UpdatedOn = updatedOn.Format("2006-01-02")
	return tx, nil
}

func (r *ledgerRepository) GetStats(ctx context.Context) (*domain.LedgerStats, error) {
	stats := &domain.LedgerStats{
		RequestCountByStatus: make(map[string]int32),
	}

	rows, err := r.db.QueryContext(ctx, `SELECT status, count(*) FROM funding_requests GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int32
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.RequestCountByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(requested_amount_cents), 0), COALESCE(SUM(approved_amount_cents), 0) FROM funding_requests`).
		Scan(&stats.TotalRequestedCents, &stats.TotalApprovedCents)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM ledger_transactions WHERE type = $1 AND status = $2`,
		domain.TransactionTypeSponsorship, domain.TransactionStatusCompleted).Scan(&stats.TotalContributedCents)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM ledger_transactions WHERE type = $1 AND status = $2`,
		domain.TransactionTypeDonation, domain.TransactionStatusCompleted).Scan(&stats.TotalDonatedCents)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT count(DISTINCT donor_id) FROM ledger_transactions WHERE donor_id IS NOT NULL`).Scan(&stats.DonorCount)
	if err != nil {
		return nil, err
	}

	balance, err := r.PoolBalance(ctx)
	if err != nil {
		return nil, err
	}
	stats.PoolBalanceCents = balance

	return stats, nil
}
