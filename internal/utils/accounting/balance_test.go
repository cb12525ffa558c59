package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/uctoflow/ledger-engine/internal/core/domain"
)

func line(side domain.LineSide, amount string) domain.JournalLine {
	return domain.JournalLine{Side: side, Amount: decimal.RequireFromString(amount)}
}

func TestEntryTotals(t *testing.T) {
	lines := []domain.JournalLine{
		line(domain.Debit, "1000.00"),
		line(domain.Debit, "200.00"),
		line(domain.Credit, "1200.00"),
	}

	debit, credit := EntryTotals(lines)
	assert.True(t, debit.Equal(decimal.RequireFromString("1200.00")))
	assert.True(t, credit.Equal(decimal.RequireFromString("1200.00")))

	debit, credit = EntryTotals(nil)
	assert.True(t, debit.IsZero())
	assert.True(t, credit.IsZero())
}

func TestIsBalanced_EpsilonBoundary(t *testing.T) {
	tests := []struct {
		name     string
		debit    string
		credit   string
		balanced bool
	}{
		{"exact match", "1200.00", "1200.00", true},
		{"rounding residue below epsilon", "100.004", "100.00", true},
		{"residue exactly at epsilon", "100.005", "100.00", false},
		{"one cent off", "100.01", "100.00", false},
		{"credit heavy", "100.00", "100.004", true},
		{"grossly unbalanced", "1200.00", "1199.00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := []domain.JournalLine{
				line(domain.Debit, tt.debit),
				line(domain.Credit, tt.credit),
			}
			assert.Equal(t, tt.balanced, IsBalanced(lines))
		})
	}
}

func TestBalanceDifference(t *testing.T) {
	lines := []domain.JournalLine{
		line(domain.Debit, "1200.00"),
		line(domain.Credit, "1199.50"),
	}
	assert.True(t, BalanceDifference(lines).Equal(decimal.RequireFromString("0.50")))
}

func TestNetBalance(t *testing.T) {
	debitTotal := decimal.RequireFromString("1500.00")
	creditTotal := decimal.RequireFromString("300.00")

	assert.True(t, NetBalance(domain.Asset, debitTotal, creditTotal).Equal(decimal.RequireFromString("1200.00")))
	assert.True(t, NetBalance(domain.Expense, debitTotal, creditTotal).Equal(decimal.RequireFromString("1200.00")))
	assert.True(t, NetBalance(domain.Liability, debitTotal, creditTotal).Equal(decimal.RequireFromString("-1200.00")))
	assert.True(t, NetBalance(domain.Revenue, debitTotal, creditTotal).Equal(decimal.RequireFromString("-1200.00")))
}
