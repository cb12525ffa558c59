package domain

import "github.com/shopspring/decimal"

// TemplateAmountKind distinguishes fixed-amount blueprint lines from
// percentage-of-base lines.
type TemplateAmountKind string

const (
	AmountFixed   TemplateAmountKind = "FIXED"
	AmountPercent TemplateAmountKind = "PERCENT"
)

// PostingTemplate is a reusable blueprint for prefilling common transaction
// patterns. It only seeds drafts and has no lifecycle coupling of its own.
type PostingTemplate struct {
	TemplateID   string         `json:"templateID"` // Primary Key (UUID)
	TenantID     string         `json:"tenantID"`
	Name         string         `json:"name"`
	DocumentType DocumentType   `json:"documentType"`
	Lines        []TemplateLine `json:"lines,omitempty"`
	AuditFields
}

// TemplateLine is one ordered blueprint line of a posting template. The
// account is referenced by code+analytic and resolved against the chart of
// accounts at apply time.
type TemplateLine struct {
	TemplateLineID string             `json:"templateLineID"`
	TemplateID     string             `json:"templateID"`
	Position       int                `json:"position"`
	AccountCode    string             `json:"accountCode"`
	Analytic       string             `json:"analytic"`
	Side           LineSide           `json:"side"`
	AmountKind     TemplateAmountKind `json:"amountKind"`
	Amount         decimal.Decimal    `json:"amount"`  // Fixed amount, used when AmountKind == FIXED
	Percent        decimal.Decimal    `json:"percent"` // Percentage of base, used when AmountKind == PERCENT
	Description    string             `json:"description"`
}
