package domain

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
	RequestStatusFunded   RequestStatus = "FUNDED"
)

// FundingRequest is a student's ask for money toward a course. A request
// either references a catalog course by id or carries an inline proposed
// course description when no catalog entry exists yet.
type FundingRequest struct {
	ID          int32  `json:"id"`
	RequesterID int32  `json:"requester_id"`
	CourseID    *int32 `json:"course_id,omitempty"`
	// Inline proposed course, used when CourseID is nil.
	ProposedTitle    string `json:"proposed_title,omitempty"`
	ProposedProvider string `json:"proposed_provider,omitempty"`

	RequestedAmountCents int64  `json:"requested_amount_cents"`
	Category             string `json:"category"`
	Reason               string `json:"reason"`
	CareerRelevance      string `json:"career_relevance"`
	Timeline             string `json:"timeline"`

	Status RequestStatus `json:"status"`
	// Review outcome. Reviewer and approved amount are set on approval,
	// the review note on rejection.
	ReviewerID          *int32 `json:"reviewer_id,omitempty"`
	ApprovedAmountCents *int64 `json:"approved_amount_cents,omitempty"`
	ReviewNote          string `json:"review_note,omitempty"`
	// FundedAmountCents is snapshotted when the request transitions to
	// FUNDED and is immutable from then on.
	FundedAmountCents *int64 `json:"funded_amount_cents,omitempty"`

	CreatedOn string `json:"created_on"`
	UpdatedOn string `json:"updated_on"`
}

// RequestSubmission is the payload a student submits to open a request.
type RequestSubmission struct {
	CourseID         *int32 `json:"course_id,omitempty"`
	ProposedTitle    string `json:"proposed_title,omitempty"`
	ProposedProvider string `json:"proposed_provider,omitempty"`
	AmountCents      int64  `json:"amount_cents"`
	Category         string `json:"category"`
	Reason           string `json:"reason"`
	CareerRelevance  string `json:"career_relevance"`
	Timeline         string `json:"timeline"`
}

type ReviewDecision string

const (
	ReviewDecisionApprove ReviewDecision = "APPROVE"
	ReviewDecisionReject  ReviewDecision = "REJECT"
)

// RequestDetail is the admin projection of a request joined with its
// requester and catalog course.
type RequestDetail struct {
	Request       FundingRequest `json:"request"`
	RequesterName string         `json:"requester_name"`
	RequesterMail string         `json:"requester_email"`
	CourseTitle   string         `json:"course_title,omitempty"`
}

// FundingProgress is the derived funding state of a request. Percent is
// the raw ratio, not clamped: a value above 100 signals a data
// inconsistency and is never silently hidden.
type FundingProgress struct {
	RequestID            int32   `json:"request_id"`
	RequestedAmountCents int64   `json:"requested_amount_cents"`
	FundedAmountCents    int64   `json:"funded_amount_cents"`
	Percent              float64 `json:"percent"`
}
