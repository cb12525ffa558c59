package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/uctoflow/ledger-engine/internal/core/domain"
)

// CreateLineRequest defines one line of a draft entry. The foreign-currency
// triple must be fully present or fully absent.
type CreateLineRequest struct {
	AccountID   string           `json:"accountID" binding:"required"`
	Side        domain.LineSide  `json:"side" binding:"required,oneof=DEBIT CREDIT"`
	Amount      decimal.Decimal  `json:"amount" binding:"required"`
	FxAmount    *decimal.Decimal `json:"fxAmount"`
	FxCurrency  *string          `json:"fxCurrency"`
	FxRate      *decimal.Decimal `json:"fxRate"`
	CostCenter  string           `json:"costCenter"`
	Description string           `json:"description"`
}

// CreateEntryRequest defines the data needed to create a draft journal entry.
type CreateEntryRequest struct {
	DocumentType     domain.DocumentType `json:"documentType" binding:"required,oneof=FA DF BV PD ID"`
	Date             time.Time           `json:"date" binding:"required"`
	Description      string              `json:"description" binding:"required"`
	SourceDocumentID *string             `json:"sourceDocumentID"`
	Lines            []CreateLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateEntryRequest replaces the editable fields of a draft entry. The full
// line set is replaced; posted entries reject any update.
type UpdateEntryRequest struct {
	Date             *time.Time          `json:"date"`
	Description      *string             `json:"description"`
	SourceDocumentID *string             `json:"sourceDocumentID"`
	Lines            []CreateLineRequest `json:"lines" binding:"omitempty,min=1,dive"`
	Version          int64               `json:"version" binding:"required"`
}

// ReverseEntryRequest carries the optional storno date; defaults to today.
type ReverseEntryRequest struct {
	Date *time.Time `json:"date"`
}

// LineResponse defines the data returned for a journal line.
type LineResponse struct {
	LineID      string           `json:"lineID"`
	Position    int              `json:"position"`
	AccountID   string           `json:"accountID"`
	Side        domain.LineSide  `json:"side"`
	Amount      decimal.Decimal  `json:"amount"`
	FxAmount    *decimal.Decimal `json:"fxAmount,omitempty"`
	FxCurrency  *string          `json:"fxCurrency,omitempty"`
	FxRate      *decimal.Decimal `json:"fxRate,omitempty"`
	CostCenter  string           `json:"costCenter,omitempty"`
	Description string           `json:"description,omitempty"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID          string              `json:"entryID"`
	TenantID         string              `json:"tenantID"`
	EntryNumber      string              `json:"entryNumber,omitempty"`
	DocumentType     domain.DocumentType `json:"documentType"`
	Date             time.Time           `json:"date"`
	Description      string              `json:"description"`
	Status           domain.EntryStatus  `json:"status"`
	TotalDebit       decimal.Decimal     `json:"totalDebit"`
	TotalCredit      decimal.Decimal     `json:"totalCredit"`
	SourceDocumentID *string             `json:"sourceDocumentID,omitempty"`
	OriginalEntryID  *string             `json:"originalEntryID,omitempty"`
	ReversingEntryID *string             `json:"reversingEntryID,omitempty"`
	PostedAt         *time.Time          `json:"postedAt,omitempty"`
	Version          int64               `json:"version"`
	Lines            []LineResponse      `json:"lines,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	CreatedBy        string              `json:"createdBy"`
}

// ListEntriesParams defines query parameters for listing journal entries.
type ListEntriesParams struct {
	Limit         int     `form:"limit,default=20"`
	NextToken     *string `form:"nextToken"`
	IncludeDrafts bool    `form:"includeDrafts,default=false"`
	IncludeLines  bool    `form:"includeLines,default=false"`
}

// ListEntriesResponse wraps a page of journal entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ListLinesParams defines query parameters for listing lines by account.
type ListLinesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListLinesResponse wraps a page of journal lines.
type ListLinesResponse struct {
	Lines     []LineResponse `json:"lines"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToLineResponse converts a domain.JournalLine to LineResponse DTO.
func ToLineResponse(line *domain.JournalLine) LineResponse {
	return LineResponse{
		LineID:      line.LineID,
		Position:    line.Position,
		AccountID:   line.AccountID,
		Side:        line.Side,
		Amount:      line.Amount,
		FxAmount:    line.FxAmount,
		FxCurrency:  line.FxCurrency,
		FxRate:      line.FxRate,
		CostCenter:  line.CostCenter,
		Description: line.Description,
	}
}

// ToLineResponses converts a slice of domain.JournalLine to []LineResponse.
func ToLineResponses(lines []domain.JournalLine) []LineResponse {
	responses := make([]LineResponse, len(lines))
	for i := range lines {
		responses[i] = ToLineResponse(&lines[i])
	}
	return responses
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:          e.EntryID,
		TenantID:         e.TenantID,
		EntryNumber:      e.EntryNumber,
		DocumentType:     e.DocumentType,
		Date:             e.EntryDate,
		Description:      e.Description,
		Status:           e.Status,
		TotalDebit:       e.TotalDebit,
		TotalCredit:      e.TotalCredit,
		SourceDocumentID: e.SourceDocumentID,
		OriginalEntryID:  e.OriginalEntryID,
		ReversingEntryID: e.ReversingEntryID,
		PostedAt:         e.PostedAt,
		Version:          e.Version,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = ToLineResponses(e.Lines)
	}
	return resp
}
