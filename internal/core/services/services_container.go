package services

import (
	portsrepo "github.com/uctoflow/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/uctoflow/ledger-engine/internal/core/ports/services"
)

// NewServiceContainer wires all services over the repository provider.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.AccountRepo)
	currencySvc := NewCurrencyService(repos.CurrencyRepo)
	entrySvc := NewEntryService(repos.EntryRepo, accountSvc, currencySvc)
	templateSvc := NewTemplateService(repos.TemplateRepo, accountSvc, entrySvc)
	reportingSvc := NewReportingService(repos.ReportingRepo)
	tenantSvc := NewTenantService(repos.TenantRepo)

	return &portssvc.ServiceContainer{
		Account:   accountSvc,
		Entry:     entrySvc,
		Template:  templateSvc,
		Reporting: reportingSvc,
		Currency:  currencySvc,
		Tenant:    tenantSvc,
	}
}
