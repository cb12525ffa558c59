package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/uctoflow/ledger-engine/internal/core/domain"
)

const dateLayout = "2006-01-02"

// PeriodParams defines the aggregation window query parameters. With only
// `to` set the window is "as of" (entry date <= to); with `from` also set it
// is the closed range [from, to].
type PeriodParams struct {
	From *string `form:"from"` // YYYY-MM-DD
	To   string  `form:"to" binding:"required"`
}

// ToPeriod parses the query params into a domain period.
func (p PeriodParams) ToPeriod() (domain.Period, error) {
	to, err := time.Parse(dateLayout, p.To)
	if err != nil {
		return domain.Period{}, err
	}
	period := domain.Period{To: to}
	if p.From != nil && *p.From != "" {
		from, err := time.Parse(dateLayout, *p.From)
		if err != nil {
			return domain.Period{}, err
		}
		period.From = &from
	}
	return period, nil
}

// BalancesParams defines the account balances query parameters.
type BalancesParams struct {
	PeriodParams
	AccountIDs []string `form:"accountID"`
}

// AccountBalanceResponse is one row of the balances report.
type AccountBalanceResponse struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Analytic    string          `json:"analytic,omitempty"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
	NetBalance  decimal.Decimal `json:"netBalance"`
}

// BalancesResponse wraps the balances report.
type BalancesResponse struct {
	From     *string                  `json:"from,omitempty"`
	To       string                   `json:"to"`
	Balances []AccountBalanceResponse `json:"balances"`
}

// LedgerCheckResponse is the result of the global balance sanity check.
type LedgerCheckResponse struct {
	Balanced    bool            `json:"balanced"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
	Difference  decimal.Decimal `json:"difference"`
}

// TrialBalanceRowResponse represents a row in the trial balance report.
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response.
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// AccountAmountResponse represents an account with its amount in a report.
type AccountAmountResponse struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// ProfitAndLossResponse represents the profit and loss report response.
type ProfitAndLossResponse struct {
	FromDate string                  `json:"fromDate"`
	ToDate   string                  `json:"toDate"`
	Revenue  []AccountAmountResponse `json:"revenue"`
	Expenses []AccountAmountResponse `json:"expenses"`
	Summary  struct {
		TotalRevenue  decimal.Decimal `json:"totalRevenue"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		NetProfit     decimal.Decimal `json:"netProfit"`
	} `json:"summary"`
}

// BalanceSheetResponse represents the balance sheet report response.
type BalanceSheetResponse struct {
	AsOf        string                  `json:"asOf"`
	Assets      []AccountAmountResponse `json:"assets"`
	Liabilities []AccountAmountResponse `json:"liabilities"`
	Summary     struct {
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	} `json:"summary"`
}

// ToBalancesResponse converts domain balances to the report DTO.
func ToBalancesResponse(balances []domain.AccountBalance, period domain.Period) BalancesResponse {
	resp := BalancesResponse{
		To:       period.To.Format(dateLayout),
		Balances: make([]AccountBalanceResponse, len(balances)),
	}
	if period.From != nil {
		from := period.From.Format(dateLayout)
		resp.From = &from
	}
	for i, b := range balances {
		resp.Balances[i] = AccountBalanceResponse{
			AccountID:   b.AccountID,
			Code:        b.Code,
			Analytic:    b.Analytic,
			AccountName: b.AccountName,
			AccountType: string(b.AccountType),
			DebitTotal:  b.DebitTotal,
			CreditTotal: b.CreditTotal,
			NetBalance:  b.NetBalance,
		}
	}
	return resp
}

// ToLedgerCheckResponse converts a domain ledger check to its DTO.
func ToLedgerCheckResponse(check *domain.LedgerCheck) LedgerCheckResponse {
	return LedgerCheckResponse{
		Balanced:    check.Balanced,
		DebitTotal:  check.DebitTotal,
		CreditTotal: check.CreditTotal,
		Difference:  check.Difference,
	}
}

// ToTrialBalanceResponse converts domain trial balance rows to the report DTO.
func ToTrialBalanceResponse(rows []domain.TrialBalanceRow, asOf time.Time) TrialBalanceResponse {
	response := TrialBalanceResponse{
		AsOf: asOf.Format(dateLayout),
		Rows: make([]TrialBalanceRowResponse, len(rows)),
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i, row := range rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			Code:        row.Code,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			Debit:       row.Debit,
			Credit:      row.Credit,
		}
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}
	response.Totals.Debit = totalDebit
	response.Totals.Credit = totalCredit
	return response
}

// ToProfitAndLossResponse converts a domain P&L report to the report DTO.
func ToProfitAndLossResponse(report *domain.PAndLReport, from, to time.Time) ProfitAndLossResponse {
	response := ProfitAndLossResponse{
		FromDate: from.Format(dateLayout),
		ToDate:   to.Format(dateLayout),
		Revenue:  make([]AccountAmountResponse, len(report.Revenue)),
		Expenses: make([]AccountAmountResponse, len(report.Expenses)),
	}

	totalRevenue := decimal.Zero
	for i, rev := range report.Revenue {
		response.Revenue[i] = AccountAmountResponse{
			AccountID: rev.AccountID,
			Code:      rev.Code,
			Name:      rev.Name,
			Amount:    rev.NetAmount,
		}
		totalRevenue = totalRevenue.Add(rev.NetAmount)
	}

	totalExpenses := decimal.Zero
	for i, exp := range report.Expenses {
		response.Expenses[i] = AccountAmountResponse{
			AccountID: exp.AccountID,
			Code:      exp.Code,
			Name:      exp.Name,
			Amount:    exp.NetAmount,
		}
		totalExpenses = totalExpenses.Add(exp.NetAmount)
	}

	response.Summary.TotalRevenue = totalRevenue
	response.Summary.TotalExpenses = totalExpenses
	response.Summary.NetProfit = report.NetProfit
	return response
}

// ToBalanceSheetResponse converts a domain balance sheet to the report DTO.
func ToBalanceSheetResponse(report *domain.BalanceSheetReport, asOf time.Time) BalanceSheetResponse {
	response := BalanceSheetResponse{
		AsOf:        asOf.Format(dateLayout),
		Assets:      make([]AccountAmountResponse, len(report.Assets)),
		Liabilities: make([]AccountAmountResponse, len(report.Liabilities)),
	}

	for i, asset := range report.Assets {
		response.Assets[i] = AccountAmountResponse{
			AccountID: asset.AccountID,
			Code:      asset.Code,
			Name:      asset.Name,
			Amount:    asset.NetAmount,
		}
	}
	for i, liability := range report.Liabilities {
		response.Liabilities[i] = AccountAmountResponse{
			AccountID: liability.AccountID,
			Code:      liability.Code,
			Name:      liability.Name,
			Amount:    liability.NetAmount,
		}
	}

	response.Summary.TotalAssets = report.TotalAssets
	response.Summary.TotalLiabilities = report.TotalLiabilities
	return response
}
