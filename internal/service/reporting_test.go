package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursefund-backend/internal/domain"
	"coursefund-backend/internal/service"
)

func TestReportingService_GetStats(t *testing.T) {
	ctx := context.Background()

	t.Run("AdminOnly", func(t *testing.T) {
		repo := new(MockLedgerRepo)
		svc := service.NewReportingService(repo)

		_, err := svc.GetStats(ctx, donorPrincipal)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(MockLedgerRepo)
		svc := service.NewReportingService(repo)
		stats := &domain.LedgerStats{
			RequestCountByStatus: map[string]int32{"PENDING": 3, "FUNDED": 1},
			PoolBalanceCents:     150000,
			DonorCount:           4,
		}
		repo.On("GetStats", ctx).Return(stats, nil)

		got, err := svc.GetStats(ctx, adminPrincipal)
		require.NoError(t, err)
		assert.Equal(t, int64(150000), got.PoolBalanceCents)
		assert.Equal(t, int32(3), got.RequestCountByStatus["PENDING"])
	})
}

func TestReportingService_ExportLedgerCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("AdminOnly", func(t *testing.T) {
		repo := new(MockLedgerRepo)
		svc := service.NewReportingService(repo)

		_, err := svc.ExportLedgerCSV(ctx, studentPrincipal)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("SignedAmountsPreserved", func(t *testing.T) {
		repo := new(MockLedgerRepo)
		svc := service.NewReportingService(repo)
		requestID := int32(1)
		donorID := int32(20)
		txs := []domain.LedgerTransaction{
			{ID: 1, AmountCents: 250000, Type: domain.TransactionTypeDonation, Status: domain.TransactionStatusCompleted, DonorID: &donorID, Note: "annual gift", CreatedOn: "2026-08-01"},
			{ID: 2, AmountCents: -100000, Type: domain.TransactionTypeAllocation, Status: domain.TransactionStatusCompleted, RequestID: &requestID, CreatedOn: "2026-08-02"},
		}
		repo.On("ListAllTransactions", ctx).Return(txs, nil)

		out, err := svc.ExportLedgerCSV(ctx, adminPrincipal)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(string(out)), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "id,amount_cents,type,status,request_id,donor_id,student_id,note,created_on", lines[0])
		assert.Contains(t, lines[1], "250000")
		assert.Contains(t, lines[2], "-100000")
		assert.Contains(t, lines[2], "ALLOCATION")
	})
}
