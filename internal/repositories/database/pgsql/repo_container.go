package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/uctoflow/ledger-engine/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx-backed repositories over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	numberingRepo := newPgxNumberingRepository(dbPool)
	entryRepo := newPgxEntryRepository(dbPool, numberingRepo)
	templateRepo := newPgxTemplateRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)
	currencyRepo := newPgxCurrencyRepository(dbPool)
	tenantRepo := newPgxTenantRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		EntryRepo:     entryRepo,
		NumberingRepo: numberingRepo,
		TemplateRepo:  templateRepo,
		ReportingRepo: reportingRepo,
		CurrencyRepo:  currencyRepo,
		TenantRepo:    tenantRepo,
	}
}
