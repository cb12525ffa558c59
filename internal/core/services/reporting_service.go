package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/uctoflow/ledger-engine/internal/apperrors"
	"github.com/uctoflow/ledger-engine/internal/core/domain"
	portsrepo "github.com/uctoflow/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/uctoflow/ledger-engine/internal/core/ports/services"
	"github.com/uctoflow/ledger-engine/internal/utils/accounting"
)

// reportingService aggregates posted entries into balances and statements.
// Drafts never contribute; a reversed original and its mirror net to zero.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// Balances aggregates per-account posted totals over the period.
func (s *reportingService) Balances(ctx context.Context, tenantID string, period domain.Period, accountIDs []string) ([]domain.AccountBalance, error) {
	balances, err := s.reportingRepo.GetAccountBalances(ctx, tenantID, period, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate account balances", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to aggregate balances: %w", err)
	}

	for i := range balances {
		balances[i].NetBalance = accounting.NetBalance(balances[i].AccountType, balances[i].DebitTotal, balances[i].CreditTotal)
	}
	return balances, nil
}

// IsBalanced runs the ledger-wide sanity check over the period. Every posted
// entry balanced individually at post time, so the global totals must agree
// within the rounding epsilon; a failure signals data corruption.
func (s *reportingService) IsBalanced(ctx context.Context, tenantID string, period domain.Period) (*domain.LedgerCheck, error) {
	debitTotal, creditTotal, err := s.reportingRepo.GetLedgerTotals(ctx, tenantID, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute ledger totals", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to compute ledger totals: %w", err)
	}

	difference := debitTotal.Sub(creditTotal)
	balanced := accounting.WithinEpsilon(difference)
	if !balanced {
		s.LogError(ctx, apperrors.ErrIntegrity, "Ledger totals out of balance",
			slog.String("tenant_id", tenantID),
			slog.String("difference", difference.String()))
	}

	return &domain.LedgerCheck{
		DebitTotal:  debitTotal,
		CreditTotal: creditTotal,
		Difference:  difference,
		Balanced:    balanced,
	}, nil
}

// TrialBalance builds the trial balance as of period.To.
func (s *reportingService) TrialBalance(ctx context.Context, tenantID string, period domain.Period) ([]domain.TrialBalanceRow, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, tenantID, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to build trial balance", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to build trial balance: %w", err)
	}
	return rows, nil
}

// ProfitAndLoss builds the P&L report over the period range.
func (s *reportingService) ProfitAndLoss(ctx context.Context, tenantID string, period domain.Period) (*domain.PAndLReport, error) {
	revenue, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, tenantID, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to build profit and loss report", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to build profit and loss report: %w", err)
	}

	totalRevenue := decimal.Zero
	for _, r := range revenue {
		totalRevenue = totalRevenue.Add(r.NetAmount)
	}
	totalExpenses := decimal.Zero
	for _, e := range expenses {
		totalExpenses = totalExpenses.Add(e.NetAmount)
	}

	return &domain.PAndLReport{
		Revenue:   revenue,
		Expenses:  expenses,
		NetProfit: totalRevenue.Sub(totalExpenses),
	}, nil
}

// BalanceSheet builds the balance sheet as of period.To.
func (s *reportingService) BalanceSheet(ctx context.Context, tenantID string, period domain.Period) (*domain.BalanceSheetReport, error) {
	assets, liabilities, err := s.reportingRepo.GetBalanceSheetData(ctx, tenantID, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to build balance sheet", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to build balance sheet: %w", err)
	}

	totalAssets := decimal.Zero
	for _, a := range assets {
		totalAssets = totalAssets.Add(a.NetAmount)
	}
	totalLiabilities := decimal.Zero
	for _, l := range liabilities {
		totalLiabilities = totalLiabilities.Add(l.NetAmount)
	}

	return &domain.BalanceSheetReport{
		Assets:           assets,
		Liabilities:      liabilities,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
	}, nil
}
