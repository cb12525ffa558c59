package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/uctoflow/ledger-engine/internal/core/domain"
)

// BalanceEpsilon absorbs two-decimal rounding on EUR books: an entry is
// balanced iff |debit total - credit total| < 0.005.
var BalanceEpsilon = decimal.RequireFromString("0.005")

// EntryTotals sums the debit and credit sides of a line set in book currency.
// The foreign-currency fields on a line are informational and ignored here.
func EntryTotals(lines []domain.JournalLine) (debitTotal, creditTotal decimal.Decimal) {
	debitTotal = decimal.Zero
	creditTotal = decimal.Zero
	for _, line := range lines {
		if line.Side == domain.Debit {
			debitTotal = debitTotal.Add(line.Amount)
		} else {
			creditTotal = creditTotal.Add(line.Amount)
		}
	}
	return debitTotal, creditTotal
}

// BalanceDifference returns debit total minus credit total for a line set.
func BalanceDifference(lines []domain.JournalLine) decimal.Decimal {
	debitTotal, creditTotal := EntryTotals(lines)
	return debitTotal.Sub(creditTotal)
}

// IsBalanced reports whether the line set nets to zero within BalanceEpsilon.
func IsBalanced(lines []domain.JournalLine) bool {
	return WithinEpsilon(BalanceDifference(lines))
}

// WithinEpsilon reports whether a difference is small enough to count as zero.
func WithinEpsilon(difference decimal.Decimal) bool {
	return difference.Abs().LessThan(BalanceEpsilon)
}

// NetBalance computes the directional net of aggregated totals for an
// account type: debit-normal accounts net debit-minus-credit, credit-normal
// accounts the reverse.
func NetBalance(accountType domain.AccountType, debitTotal, creditTotal decimal.Decimal) decimal.Decimal {
	switch accountType {
	case domain.Asset, domain.Expense:
		return debitTotal.Sub(creditTotal)
	default:
		return creditTotal.Sub(debitTotal)
	}
}
