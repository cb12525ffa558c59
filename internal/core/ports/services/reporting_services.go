package services

import (
	"context"

	"github.com/uctoflow/ledger-engine/internal/core/domain"
)

// ReportingSvcFacade is the aggregation engine surface. All results consider
// POSTED entries only.
type ReportingSvcFacade interface {
	// Balances aggregates per-account totals over the period. accountIDs
	// narrows the result; empty means all accounts with postings.
	Balances(ctx context.Context, tenantID string, period domain.Period, accountIDs []string) ([]domain.AccountBalance, error)

	// IsBalanced runs the global sanity check: the signed sum across all
	// accounts must net to zero if every entry was validated correctly.
	// Regulatory exports require this to pass before building.
	IsBalanced(ctx context.Context, tenantID string, period domain.Period) (*domain.LedgerCheck, error)

	// TrialBalance builds the trial balance as of period.To.
	TrialBalance(ctx context.Context, tenantID string, period domain.Period) ([]domain.TrialBalanceRow, error)

	// ProfitAndLoss builds the P&L report over the period range.
	ProfitAndLoss(ctx context.Context, tenantID string, period domain.Period) (*domain.PAndLReport, error)

	// BalanceSheet builds the balance sheet as of period.To.
	BalanceSheet(ctx context.Context, tenantID string, period domain.Period) (*domain.BalanceSheetReport, error)
}
