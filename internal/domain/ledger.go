package domain

type TransactionType string

const (
	// TransactionTypeDonation is a general-purpose top-up into the shared
	// pool, not linked to any request.
	TransactionTypeDonation TransactionType = "DONATION"
	// TransactionTypeSponsorship is a donor contribution toward a specific
	// approved request.
	TransactionTypeSponsorship TransactionType = "SPONSORSHIP"
	// TransactionTypeAllocation is the negative earmark recorded when an
	// admin approves a request.
	TransactionTypeAllocation TransactionType = "ALLOCATION"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// LedgerTransaction is a signed money-movement record. Positive amounts
// are inbound (donations, sponsorships), negative amounts are
// allocations earmarked against an approved request. Transactions are
// never deleted; only status and the admin note may change after
// creation (financial audit trail).
type LedgerTransaction struct {
	ID          int32             `json:"id"`
	AmountCents int64             `json:"amount_cents"`
	Type        TransactionType   `json:"type"`
	Status      TransactionStatus `json:"status"`
	RequestID   *int32            `json:"request_id,omitempty"`
	DonorID     *int32            `json:"donor_id,omitempty"`
	StudentID   *int32            `json:"student_id,omitempty"`
	Note        string            `json:"note"`
	CreatedOn   string            `json:"created_on"`
	UpdatedOn   string            `json:"updated_on"`
}

// LedgerStats is the admin dashboard projection over the ledger. Reads
// are lock-free and may observe a transiently stale snapshot.
type LedgerStats struct {
	RequestCountByStatus  map[string]int32 `json:"request_count_by_status"`
	TotalRequestedCents   int64            `json:"total_requested_cents"`
	TotalApprovedCents    int64            `json:"total_approved_cents"`
	TotalContributedCents int64            `json:"total_contributed_cents"`
	TotalDonatedCents     int64            `json:"total_donated_cents"`
	PoolBalanceCents      int64            `json:"pool_balance_cents"`
	DonorCount            int32            `json:"donor_count"`
}
