package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is an aggregation window. A nil From means "as of To" (everything
// dated on or before the cutoff); a set From bounds the window to [From, To].
type Period struct {
	From *time.Time `json:"from,omitempty"`
	To   time.Time  `json:"to"`
}

// AccountBalance holds the aggregated posted totals of one account over a
// period.
type AccountBalance struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Analytic    string          `json:"analytic"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
	NetBalance  decimal.Decimal `json:"netBalance"`
}

// LedgerCheck is the result of the global balance sanity check.
type LedgerCheck struct {
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
	Difference  decimal.Decimal `json:"difference"`
	Balanced    bool            `json:"balanced"`
}

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// AccountAmount represents an account with its net amount for financial
// reports.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// PAndLReport represents a profit and loss report over a period.
type PAndLReport struct {
	Revenue   []AccountAmount `json:"revenue"`
	Expenses  []AccountAmount `json:"expenses"`
	NetProfit decimal.Decimal `json:"netProfit"`
}

// BalanceSheetReport represents a balance sheet as of a date.
type BalanceSheetReport struct {
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
}
