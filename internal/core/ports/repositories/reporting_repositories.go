package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/uctoflow/ledger-engine/internal/core/domain"
)

// ReportingRepository serves aggregated balances to statements and exports.
// All queries consider POSTED entries only; drafts never contribute and a
// reversed original plus its mirror always net to zero together.
type ReportingRepository interface {
	// GetAccountBalances aggregates per-account debit/credit totals over the
	// period. accountIDs narrows the result; empty means all accounts.
	GetAccountBalances(ctx context.Context, tenantID string, period domain.Period, accountIDs []string) ([]domain.AccountBalance, error)

	// GetLedgerTotals returns the ledger-wide debit and credit totals over
	// the period, used by the global balance sanity check.
	GetLedgerTotals(ctx context.Context, tenantID string, period domain.Period) (debitTotal, creditTotal decimal.Decimal, err error)

	// GetTrialBalanceData retrieves trial balance rows as of a date.
	GetTrialBalanceData(ctx context.Context, tenantID string, period domain.Period) ([]domain.TrialBalanceRow, error)

	// GetProfitAndLossData retrieves net revenue and expense rows for a period.
	GetProfitAndLossData(ctx context.Context, tenantID string, period domain.Period) (revenue, expenses []domain.AccountAmount, err error)

	// GetBalanceSheetData retrieves net asset and liability rows as of a date.
	GetBalanceSheetData(ctx context.Context, tenantID string, period domain.Period) (assets, liabilities []domain.AccountAmount, err error)
}
