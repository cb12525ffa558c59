package pgsql

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/uctoflow/ledger-engine/internal/apperrors"
	"github.com/uctoflow/ledger-engine/internal/core/domain"
	portsrepo "github.com/uctoflow/ledger-engine/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for aggregated reporting
// queries. Every query here excludes drafts: only entries that went through
// the posting validation contribute, and a reversed original together with
// its mirror nets to zero.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// periodClause renders the entry-date window condition starting at the given
// placeholder index and appends the bound values to args.
func periodClause(period domain.Period, args []any) (string, []any) {
	if period.From != nil {
		clause := ` AND e.entry_date >= $` + strconv.Itoa(len(args)+1) + ` AND e.entry_date <= $` + strconv.Itoa(len(args)+2)
		return clause, append(args, *period.From, period.To)
	}
	clause := ` AND e.entry_date <= $` + strconv.Itoa(len(args)+1)
	return clause, append(args, period.To)
}

// GetAccountBalances aggregates per-account debit/credit totals over the period.
func (r *PgxReportingRepository) GetAccountBalances(ctx context.Context, tenantID string, period domain.Period, accountIDs []string) ([]domain.AccountBalance, error) {
	query := `
		SELECT a.account_id, a.code, a.analytic, a.name, a.account_type,
		       COALESCE(SUM(CASE WHEN l.side = 'DEBIT' THEN l.amount ELSE 0 END), 0) AS debit_total,
		       COALESCE(SUM(CASE WHEN l.side = 'CREDIT' THEN l.amount ELSE 0 END), 0) AS credit_total
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE e.tenant_id = $1 AND e.status != 'DRAFT'
	`
	args := []any{tenantID}

	var clause string
	clause, args = periodClause(period, args)
	query += clause

	if len(accountIDs) > 0 {
		query += ` AND a.account_id = ANY($` + strconv.Itoa(len(args)+1) + `)`
		args = append(args, accountIDs)
	}
	query += `
		GROUP BY a.account_id, a.code, a.analytic, a.name, a.account_type
		ORDER BY a.code, a.analytic;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account balances for tenant "+tenantID, err)
	}
	defer rows.Close()

	balances := []domain.AccountBalance{}
	for rows.Next() {
		var b domain.AccountBalance
		err := rows.Scan(
			&b.AccountID,
			&b.Code,
			&b.Analytic,
			&b.AccountName,
			&b.AccountType,
			&b.DebitTotal,
			&b.CreditTotal,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account balance row", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account balance rows", err)
	}
	return balances, nil
}

// GetLedgerTotals returns the ledger-wide debit and credit totals over the period.
func (r *PgxReportingRepository) GetLedgerTotals(ctx context.Context, tenantID string, period domain.Period) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN l.side = 'DEBIT' THEN l.amount ELSE 0 END), 0) AS debit_total,
		       COALESCE(SUM(CASE WHEN l.side = 'CREDIT' THEN l.amount ELSE 0 END), 0) AS credit_total
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.tenant_id = $1 AND e.status != 'DRAFT'
	`
	args := []any{tenantID}

	var clause string
	clause, args = periodClause(period, args)
	query += clause + ";"

	var debitTotal, creditTotal decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&debitTotal, &creditTotal); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to query ledger totals for tenant "+tenantID, err)
	}
	return debitTotal, creditTotal, nil
}

// GetTrialBalanceData retrieves trial balance rows as of period.To. Each
// account shows on the side of its net movement.
func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, tenantID string, period domain.Period) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       GREATEST(SUM(CASE WHEN l.side = 'DEBIT' THEN l.amount ELSE -l.amount END), 0) AS debit,
		       GREATEST(SUM(CASE WHEN l.side = 'CREDIT' THEN l.amount ELSE -l.amount END), 0) AS credit
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE e.tenant_id = $1 AND e.status != 'DRAFT'
	`
	args := []any{tenantID}

	var clause string
	clause, args = periodClause(period, args)
	query += clause + `
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance for tenant "+tenantID, err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		err := rows.Scan(
			&row.AccountID,
			&row.Code,
			&row.AccountName,
			&row.AccountType,
			&row.Debit,
			&row.Credit,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows", err)
	}
	return result, nil
}

// netAmountsByType aggregates net amounts per account for one account type.
// The sign convention favors the account type's natural side.
func (r *PgxReportingRepository) netAmountsByType(ctx context.Context, tenantID string, period domain.Period, accountType domain.AccountType) ([]domain.AccountAmount, error) {
	naturalSide := "DEBIT"
	if accountType == domain.Liability || accountType == domain.Revenue {
		naturalSide = "CREDIT"
	}

	query := `
		SELECT a.account_id, a.code, a.name,
		       COALESCE(SUM(CASE WHEN l.side = $2 THEN l.amount ELSE -l.amount END), 0) AS net_amount
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE e.tenant_id = $1 AND e.status != 'DRAFT' AND a.account_type = $3
	`
	args := []any{tenantID, naturalSide, accountType}

	var clause string
	clause, args = periodClause(period, args)
	query += clause + `
		GROUP BY a.account_id, a.code, a.name
		ORDER BY a.code;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query net amounts for tenant "+tenantID, err)
	}
	defer rows.Close()

	amounts := []domain.AccountAmount{}
	for rows.Next() {
		var a domain.AccountAmount
		if err := rows.Scan(&a.AccountID, &a.Code, &a.Name, &a.NetAmount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan net amount row", err)
		}
		amounts = append(amounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating net amount rows", err)
	}
	return amounts, nil
}

// GetProfitAndLossData retrieves net revenue and expense rows for a period.
func (r *PgxReportingRepository) GetProfitAndLossData(ctx context.Context, tenantID string, period domain.Period) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	revenue, err := r.netAmountsByType(ctx, tenantID, period, domain.Revenue)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := r.netAmountsByType(ctx, tenantID, period, domain.Expense)
	if err != nil {
		return nil, nil, err
	}
	return revenue, expenses, nil
}

// GetBalanceSheetData retrieves net asset and liability rows as of period.To.
func (r *PgxReportingRepository) GetBalanceSheetData(ctx context.Context, tenantID string, period domain.Period) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	assets, err := r.netAmountsByType(ctx, tenantID, period, domain.Asset)
	if err != nil {
		return nil, nil, err
	}
	liabilities, err := r.netAmountsByType(ctx, tenantID, period, domain.Liability)
	if err != nil {
		return nil, nil, err
	}
	return assets, liabilities, nil
}
