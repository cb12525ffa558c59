package domain

// Tenant represents one bookkeeping entity (a company whose books are kept).
// Accounts, entries, templates and numbering sequences are all tenant-scoped.
type Tenant struct {
	TenantID       string `json:"tenantID"`       // Primary Key (UUID)
	Name           string `json:"name"`
	RegistrationID string `json:"registrationID"` // IČO
	TaxID          string `json:"taxID"`          // DIČ
	CurrencyCode   string `json:"currencyCode"`   // Book currency, "EUR"
	IsActive       bool   `json:"isActive"`
	AuditFields
}
