package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"coursefund-backend/internal/domain"
	"coursefund-backend/internal/repository"
)

type reportingService struct {
	ledgerRepo repository.LedgerRepository
}

func NewReportingService(ledgerRepo repository.LedgerRepository) ReportingService {
	return &reportingService{ledgerRepo: ledgerRepo}
}

func (s *reportingService) GetStats(ctx context.Context, principal domain.Principal) (*domain.LedgerStats, error) {
	if !principal.Is(domain.UserRoleAdmin) {
		return nil, domain.ErrUnauthorized
	}
	// Dashboard reads run without locking and may observe a transiently
	// stale snapshot.
	return s.ledgerRepo.GetStats(ctx)
}

func (s *reportingService) ExportLedgerCSV(ctx context.Context, principal domain.Principal) ([]byte, error) {
	if !principal.Is(domain.UserRoleAdmin) {
		return nil, domain.ErrUnauthorized
	}

	txs, err := s.ledgerRepo.ListAllTransactions(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "amount_cents", "type", "status", "request_id", "donor_id", "student_id", "note", "created_on"}); err != nil {
		return nil, err
	}
	for _, tx := range txs {
		record := []string{
			fmt.Sprintf("%d", tx.ID),
			fmt.Sprintf("%d", tx.AmountCents),
			string(tx.Type),
			string(tx.Status),
			formatOptionalID(tx.RequestID),
			formatOptionalID(tx.DonorID),
			formatOptionalID(tx.StudentID),
			tx.Note,
			tx.CreatedOn,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatOptionalID(id *int32) string {
	if id == nil {
		return ""
	}
	return fmt.Sprintf("%d", *id)
}
