package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"coursefund-backend/internal/domain"
	"coursefund-backend/internal/repository"
)

type fundingRequestRepository struct {
	db *sql.DB
}

func NewFundingRequestRepository(db *sql.DB) repository.FundingRequestRepository {
	return &fundingRequestRepository{db: db}
}

const requestColumns = `id, requester_id, course_id, COALESCE(proposed_title, ''), COALESCE(proposed_provider, ''),
       requested_amount_cents, COALESCE(category, ''), reason, career_relevance, timeline,
       status, reviewer_id, approved_amount_cents, COALESCE(review_note, ''), funded_amount_cents, created_on, updated_on`

func scanRequest(row interface{ Scan(...interface{}) error }) (*domain.FundingRequest, error) {
	req := &domain.FundingRequest{}
	var createdOn, updatedOn time.Time
	err := row.Scan(
		&req.ID, &req.RequesterID, &req.CourseID, &req.ProposedTitle, &req.ProposedProvider,
		&req.RequestedAmountCents, &req.Category, &req.Reason, &req.CareerRelevance, &req.Timeline,
		&req.Status, &req.ReviewerID, &req.ApprovedAmountCents, &req.ReviewNote, &req.FundedAmountCents,
		&createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	req.CreatedOn = createdOn.Format("2006-01-02")
	req.UpdatedOn = updatedOn.Format("2006-01-02")
	return req, nil
}

func (r *fundingRequestRepository) Create(ctx context.Context, req *domain.FundingRequest) error {
	query := `INSERT INTO funding_requests (requester_id, course_id, proposed_title, proposed_provider, requested_amount_cents,
	                                        category, reason, career_relevance, timeline, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		req.RequesterID, req.CourseID, req.ProposedTitle, req.ProposedProvider, req.RequestedAmountCents,
		req.Category, req.Reason, req.CareerRelevance, req.Timeline, req.Status, now, now).Scan(&req.ID)
}

func (r *fundingRequestRepository) GetByID(ctx context.Context, id int32) (*domain.FundingRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM funding_requests WHERE id = $1`
	req, err := scanRequest(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFoundOrAlreadyProcessed
	}
	return req, err
}

func (r *fundingRequestRepository) ListByRequester(ctx context.Context, requesterID int32, page, pageSize int32) ([]domain.FundingRequest, int32, error) {
	return r.list(ctx, `requester_id = $1`, []interface{}{requesterID}, page, pageSize)
}

func (r *fundingRequestRepository) ListByStatus(ctx context.Context, status domain.RequestStatus, page, pageSize int32) ([]domain.FundingRequest, int32, error) {
	return r.list(ctx, `status = $1`, []interface{}{status}, page, pageSize)
}

func (r *fundingRequestRepository) list(ctx context.Context, where string, args []interface{}, page, pageSize int32) ([]domain.FundingRequest, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	countQuery := `SELECT count(*) FROM funding_requests WHERE ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM funding_requests WHERE %s ORDER BY created_on DESC LIMIT $%d OFFSET $%d`,
		requestColumns, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reqs []domain.FundingRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		reqs = append(reqs, *req)
	}
	return reqs, count, rows.Err()
}

func (r *fundingRequestRepository) ListDetailed(ctx context.Context, status string, page, pageSize int32) ([]domain.RequestDetail, int32, error) {
	offset := (page - 1) * pageSize

	where := ``
	args := []interface{}{}
	if status != "" {
		where = ` WHERE r.status = $1`
		args = append(args, status)
	}

	var count int32
	countQuery := `SELECT count(*) FROM funding_requests r` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT r.id, r.requester_id, r.course_id, COALESCE(r.proposed_title, ''), COALESCE(r.proposed_provider, ''),
		       r.requested_amount_cents, COALESCE(r.category, ''), r.reason, r.career_relevance, r.timeline,
		       r.status, r.reviewer_id, r.approved_amount_cents, COALESCE(r.review_note, ''), r.funded_amount_cents,
		       r.created_on, r.updated_on,
		       u.name, u.email, COALESCE(c.title, '')
		FROM funding_requests r
		JOIN users u ON r.requester_id = u.id
		LEFT JOIN courses c ON r.course_id = c.id%s
		ORDER BY r.created_on DESC LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var details []domain.RequestDetail
	for rows.Next() {
		var d domain.RequestDetail
		var createdOn, updatedOn time.Time
		if err := rows.Scan(
			&d.Request.ID, &d.Request.RequesterID, &d.Request.CourseID, &d.Request.ProposedTitle, &d.Request.ProposedProvider,
			&d.Request.RequestedAmountCents, &d.Request.Category, &d.Request.Reason, &d.Request.CareerRelevance, &d.Request.Timeline,
			&d.Request.Status, &d.Request.ReviewerID, &d.Request.ApprovedAmountCents, &d.Request.ReviewNote, &d.Request.FundedAmountCents,
			&createdOn, &updatedOn,
			&d.RequesterName, &d.RequesterMail, &d.CourseTitle); err != nil {
			return nil, 0, err
		}
		d.Request.CreatedOn = createdOn.Format("2006-01-02")
		d.Request.UpdatedOn = updatedOn.Format("2006-01-02")
		details = append(details, d)
	}
	return details, count, rows.Err()
}

func (r *fundingRequestRepository) Reject(ctx context.Context, id, reviewerID int32, note string) error {
	// Conditional update keyed on the current status: a racing second
	// review matches zero rows and observes the taxonomy error.
	query := `UPDATE funding_requests
	          SET status = $1, reviewer_id = $2, review_note = $3, updated_on = $4
	          WHERE id = $5 AND status = $6`
	result, err := r.db.ExecContext(ctx, query,
		domain.RequestStatusRejected, reviewerID, note, time.Now(), id, domain.RequestStatusPending)
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
