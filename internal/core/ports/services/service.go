package services

// ServiceContainer holds all service interfaces needed by the handlers.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Entry     EntrySvcFacade
	Template  TemplateSvcFacade
	Reporting ReportingSvcFacade
	Currency  CurrencySvcFacade
	Tenant    TenantSvcFacade
}
