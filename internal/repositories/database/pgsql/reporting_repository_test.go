package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uctoflow/ledger-engine/internal/core/domain"
	portsrepo "github.com/uctoflow/ledger-engine/internal/core/ports/repositories"
)

func TestPeriodClause_AsOf(t *testing.T) {
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	clause, args := periodClause(domain.Period{To: to}, []any{"tenant-1"})

	assert.Equal(t, " AND e.entry_date <= $2", clause)
	require.Len(t, args, 2)
	assert.Equal(t, to, args[1])
}

func TestPeriodClause_Window(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	clause, args := periodClause(domain.Period{From: &from, To: to}, []any{"tenant-1"})

	assert.Equal(t, " AND e.entry_date >= $2 AND e.entry_date <= $3", clause)
	require.Len(t, args, 3)
	assert.Equal(t, from, args[1])
	assert.Equal(t, to, args[2])
}

func TestPeriodClause_PlaceholderOffset(t *testing.T) {
	// netAmountsByType binds three values before the date window.
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	preBound := []any{"tenant-1", "DEBIT", domain.Asset}

	clause, args := periodClause(domain.Period{From: &from, To: to}, preBound)

	assert.Equal(t, " AND e.entry_date >= $4 AND e.entry_date <= $5", clause)
	require.Len(t, args, 5)
}

// testPool connects to the database named by PGSQL_TEST_URL and applies the
// migrations. Tests that need a live database skip when the variable is unset.
func testPool(t *testing.T, ctx context.Context) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("PGSQL_TEST_URL")
	if dsn == "" {
		t.Skip("PGSQL_TEST_URL not set; skipping database test")
	}

	migrationDB, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	defer migrationDB.Close()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	require.NoError(t, err)
	m, err := migrate.NewWithDatabaseInstance("file://../../../../migrations", "postgres", driver)
	require.NoError(t, err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

type reportingFixture struct {
	repos      portsrepo.RepositoryProvider
	tenantID   string
	receivable domain.Account
	revenue    domain.Account
	audit      domain.AuditFields
}

func seedReportingFixture(t *testing.T, ctx context.Context, pool *pgxpool.Pool) *reportingFixture {
	t.Helper()

	now := time.Now().UTC()
	f := &reportingFixture{
		repos:    NewRepositoryProvider(pool),
		tenantID: uuid.NewString(),
		audit: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "test-user",
			LastUpdatedAt: now,
			LastUpdatedBy: "test-user",
		},
	}

	require.NoError(t, f.repos.TenantRepo.SaveTenant(ctx, domain.Tenant{
		TenantID:     f.tenantID,
		Name:         "Testovacia firma s.r.o.",
		CurrencyCode: "EUR",
		IsActive:     true,
		AuditFields:  f.audit,
	}))

	f.receivable = domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    f.tenantID,
		Code:        "311",
		Name:        "Odberatelia",
		AccountType: domain.Asset,
		IsActive:    true,
		AuditFields: f.audit,
	}
	f.revenue = domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    f.tenantID,
		Code:        "602",
		Name:        "Trzby za sluzby",
		AccountType: domain.Revenue,
		IsActive:    true,
		AuditFields: f.audit,
	}
	require.NoError(t, f.repos.AccountRepo.SaveAccount(ctx, f.receivable))
	require.NoError(t, f.repos.AccountRepo.SaveAccount(ctx, f.revenue))
	return f
}

// saveDraft writes a balanced two-line draft dated entryDate.
func (f *reportingFixture) saveDraft(t *testing.T, ctx context.Context, entryDate time.Time, amount string) domain.JournalEntry {
	t.Helper()

	amt := decimal.RequireFromString(amount)
	entry := domain.JournalEntry{
		EntryID:      uuid.NewString(),
		TenantID:     f.tenantID,
		DocumentType: domain.DocInvoiceIssued,
		EntryDate:    entryDate,
		Description:  "Invoice " + entryDate.Format("2006-01-02"),
		Status:       domain.Draft,
		TotalDebit:   amt,
		TotalCredit:  amt,
		Version:      1,
		AuditFields:  f.audit,
	}
	lines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entry.EntryID, Position: 1, AccountID: f.receivable.AccountID, Side: domain.Debit, Amount: amt, AuditFields: f.audit},
		{LineID: uuid.NewString(), EntryID: entry.EntryID, Position: 2, AccountID: f.revenue.AccountID, Side: domain.Credit, Amount: amt, AuditFields: f.audit},
	}
	require.NoError(t, f.repos.EntryRepo.SaveDraftEntry(ctx, entry, lines))
	return entry
}

func (f *reportingFixture) postEntry(t *testing.T, ctx context.Context, entry domain.JournalEntry) {
	t.Helper()
	postedAt := time.Now().UTC()
	_, err := f.repos.EntryRepo.PostEntry(ctx, entry, entry.EntryDate.Year(), postedAt, "test-user")
	require.NoError(t, err)
}

// reverse posts a storno mirror of the given entry with the lines flipped.
func (f *reportingFixture) reverse(t *testing.T, ctx context.Context, entryID string, stornoDate time.Time) {
	t.Helper()

	original, err := f.repos.EntryRepo.FindEntryByID(ctx, entryID)
	require.NoError(t, err)
	lines, err := f.repos.EntryRepo.FindLinesByEntryID(ctx, entryID)
	require.NoError(t, err)

	mirror := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		TenantID:        f.tenantID,
		DocumentType:    original.DocumentType,
		EntryDate:       stornoDate,
		Description:     "Storno: " + original.Description,
		Status:          domain.Posted,
		TotalDebit:      original.TotalCredit,
		TotalCredit:     original.TotalDebit,
		OriginalEntryID: &original.EntryID,
		Version:         1,
		AuditFields:     f.audit,
	}
	mirrorLines := make([]domain.JournalLine, 0, len(lines))
	for _, line := range lines {
		mirrorLines = append(mirrorLines, domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     mirror.EntryID,
			Position:    line.Position,
			AccountID:   line.AccountID,
			Side:        line.Side.Flipped(),
			Amount:      line.Amount,
			AuditFields: f.audit,
		})
	}

	_, err = f.repos.EntryRepo.ReverseEntry(ctx, *original, mirror, mirrorLines, stornoDate.Year(), time.Now().UTC(), "test-user")
	require.NoError(t, err)
}

func balanceByAccount(balances []domain.AccountBalance, accountID string) (domain.AccountBalance, bool) {
	for _, b := range balances {
		if b.AccountID == accountID {
			return b, true
		}
	}
	return domain.AccountBalance{}, false
}

// TestReportingRepository_AggregationAgainstDatabase exercises the SQL
// aggregation layer end to end: drafts never contribute, the entry-date
// window and the as-of cutoff bound what does, and a reversed entry nets to
// zero against its mirror.
//
// Fixture timeline (one tenant, accounts 311/602):
//   - Feb 10: 300.00 posted, later reversed by a mirror dated Apr 1
//   - Mar 15: 1200.00 posted
//   - Mar 20: 500.00 left as a draft
func TestReportingRepository_AggregationAgainstDatabase(t *testing.T) {
	ctx := context.Background()
	pool := testPool(t, ctx)
	f := seedReportingFixture(t, ctx, pool)

	februaryEntry := f.saveDraft(t, ctx, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), "300.00")
	f.postEntry(t, ctx, februaryEntry)
	f.reverse(t, ctx, februaryEntry.EntryID, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

	marchEntry := f.saveDraft(t, ctx, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), "1200.00")
	f.postEntry(t, ctx, marchEntry)

	f.saveDraft(t, ctx, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), "500.00")

	marchStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	marchEnd := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	aprilStart := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	aprilEnd := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
	yearStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("drafts are excluded", func(t *testing.T) {
		balances, err := f.repos.ReportingRepo.GetAccountBalances(ctx, f.tenantID, domain.Period{From: &marchStart, To: marchEnd}, nil)
		require.NoError(t, err)

		receivable, found := balanceByAccount(balances, f.receivable.AccountID)
		require.True(t, found)
		// 1200 posted in March; the 500 draft contributes nothing.
		assert.True(t, receivable.DebitTotal.Equal(decimal.RequireFromString("1200.00")),
			"expected 1200.00 debit, got %s", receivable.DebitTotal)
		assert.True(t, receivable.CreditTotal.IsZero())
	})

	t.Run("as-of cutoff includes everything up to the date", func(t *testing.T) {
		balances, err := f.repos.ReportingRepo.GetAccountBalances(ctx, f.tenantID, domain.Period{To: marchEnd}, nil)
		require.NoError(t, err)

		receivable, found := balanceByAccount(balances, f.receivable.AccountID)
		require.True(t, found)
		// February 300 plus March 1200; the April mirror is past the cutoff.
		assert.True(t, receivable.DebitTotal.Equal(decimal.RequireFromString("1500.00")),
			"expected 1500.00 debit, got %s", receivable.DebitTotal)
		assert.True(t, receivable.CreditTotal.IsZero())
	})

	t.Run("window bounds on both ends", func(t *testing.T) {
		balances, err := f.repos.ReportingRepo.GetAccountBalances(ctx, f.tenantID, domain.Period{From: &aprilStart, To: aprilEnd}, nil)
		require.NoError(t, err)

		receivable, found := balanceByAccount(balances, f.receivable.AccountID)
		require.True(t, found)
		// Only the storno mirror falls in April.
		assert.True(t, receivable.DebitTotal.IsZero())
		assert.True(t, receivable.CreditTotal.Equal(decimal.RequireFromString("300.00")),
			"expected 300.00 credit, got %s", receivable.CreditTotal)
	})

	t.Run("reversal nets to zero across the mirror", func(t *testing.T) {
		period := domain.Period{From: &yearStart, To: aprilEnd}

		balances, err := f.repos.ReportingRepo.GetAccountBalances(ctx, f.tenantID, period, nil)
		require.NoError(t, err)
		receivable, found := balanceByAccount(balances, f.receivable.AccountID)
		require.True(t, found)
		// 300 + 1200 debit against the mirror's 300 credit: net 1200.
		assert.True(t, receivable.DebitTotal.Sub(receivable.CreditTotal).Equal(decimal.RequireFromString("1200.00")),
			"expected net 1200.00, got %s", receivable.DebitTotal.Sub(receivable.CreditTotal))

		revenue, expenses, err := f.repos.ReportingRepo.GetProfitAndLossData(ctx, f.tenantID, period)
		require.NoError(t, err)
		assert.Empty(t, expenses)
		require.Len(t, revenue, 1)
		assert.True(t, revenue[0].NetAmount.Equal(decimal.RequireFromString("1200.00")),
			"expected net revenue 1200.00, got %s", revenue[0].NetAmount)
	})

	t.Run("ledger totals stay balanced", func(t *testing.T) {
		debit, credit, err := f.repos.ReportingRepo.GetLedgerTotals(ctx, f.tenantID, domain.Period{From: &yearStart, To: aprilEnd})
		require.NoError(t, err)

		assert.True(t, debit.Equal(credit), "debit %s != credit %s", debit, credit)
		assert.True(t, debit.Equal(decimal.RequireFromString("1800.00")),
			"expected 1800.00 total, got %s", debit)
	})
}
