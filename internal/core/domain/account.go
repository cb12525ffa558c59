package domain

// AccountType defines the fundamental accounting classification of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents one entry of a tenant's chart of accounts.
// The (TenantID, Code, Analytic) triple is unique; once an account is
// referenced by a posted line it may be disabled but never deleted or
// renumbered.
type Account struct {
	AccountID   string      `json:"accountID"`   // Primary Key (UUID)
	TenantID    string      `json:"tenantID"`    // FK -> tenants.tenant_id
	Code        string      `json:"code"`        // Synthetic 3-digit code, e.g. "311"
	Analytic    string      `json:"analytic"`    // Optional analytic suffix, e.g. "100"
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	TaxRelevant bool        `json:"taxRelevant"`
	OffBalance  bool        `json:"offBalance"` // Off-balance-sheet account
	IsActive    bool        `json:"isActive"`
	AuditFields
}

// FullCode returns the account code with its analytic suffix, if any.
func (a Account) FullCode() string {
	if a.Analytic == "" {
		return a.Code
	}
	return a.Code + "." + a.Analytic
}
