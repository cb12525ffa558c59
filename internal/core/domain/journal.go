package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// LineSide indicates whether a journal line is a debit or a credit.
type LineSide string

const (
	Debit  LineSide = "DEBIT"
	Credit LineSide = "CREDIT"
)

// DocumentType classifies the source document an entry records. The value
// also scopes sequential numbering together with tenant and fiscal year.
type DocumentType string

const (
	DocInvoiceIssued   DocumentType = "FA" // faktúra vydaná
	DocInvoiceReceived DocumentType = "DF" // došlá faktúra
	DocBankStatement   DocumentType = "BV" // bankový výpis
	DocCashVoucher     DocumentType = "PD" // pokladničný doklad
	DocInternal        DocumentType = "ID" // interný doklad
)

// FormatEntryNumber renders the human-facing document number assigned at
// post time, e.g. "FA-2024-000042". The sequence is gapless per
// (tenant, document type, fiscal year).
func FormatEntryNumber(documentType DocumentType, fiscalYear int, sequence int64) string {
	return fmt.Sprintf("%s-%d-%06d", documentType, fiscalYear, sequence)
}

// JournalEntry represents a single balanced financial event composed of
// multiple lines. Stored totals always equal the sum of the entry's lines;
// once posted, every field except the status transition itself is frozen.
type JournalEntry struct {
	EntryID      string       `json:"entryID"`      // Primary Key (UUID)
	TenantID     string       `json:"tenantID"`     // FK -> tenants.tenant_id
	EntryNumber  string       `json:"entryNumber"`  // Assigned at post, e.g. "FA-2024-000042"
	DocumentType DocumentType `json:"documentType"`
	EntryDate    time.Time    `json:"entryDate"`
	Description  string       `json:"description"`
	Status       EntryStatus  `json:"status"`

	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`

	SourceDocumentID *string `json:"sourceDocumentID,omitempty"` // Optional link to a captured document

	// Reversal cross-references. OriginalEntryID is set on a mirror entry,
	// ReversingEntryID on the entry it compensates.
	OriginalEntryID  *string `json:"originalEntryID,omitempty"`
	ReversingEntryID *string `json:"reversingEntryID,omitempty"`

	PostedAt *time.Time `json:"postedAt,omitempty"`
	Version  int64      `json:"version"` // Optimistic concurrency token

	Lines []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine represents a single debit or credit within a journal entry.
// Amount is always in the tenant (book) currency; the foreign-currency
// triple is informational and either fully present or fully absent.
type JournalLine struct {
	LineID    string          `json:"lineID"`  // Primary Key (UUID)
	EntryID   string          `json:"entryID"` // FK -> journal_entries.entry_id
	Position  int             `json:"position"`
	AccountID string          `json:"accountID"` // Empty on unresolved template lines
	Side      LineSide        `json:"side"`
	Amount    decimal.Decimal `json:"amount"` // Book currency, > 0

	FxAmount   *decimal.Decimal `json:"fxAmount,omitempty"`
	FxCurrency *string          `json:"fxCurrency,omitempty"`
	FxRate     *decimal.Decimal `json:"fxRate,omitempty"`

	CostCenter  string `json:"costCenter,omitempty"`
	Description string `json:"description,omitempty"`
	AuditFields
}

// HasForeignCurrency reports whether the line carries a complete
// foreign-currency triple.
func (l JournalLine) HasForeignCurrency() bool {
	return l.FxAmount != nil && l.FxCurrency != nil && l.FxRate != nil
}

// FlippedSide returns the opposite side of the line, used when building
// a compensating (storno) entry.
func (s LineSide) Flipped() LineSide {
	if s == Debit {
		return Credit
	}
	return Debit
}
