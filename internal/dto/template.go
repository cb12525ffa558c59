package dto

import (
	"github.com/shopspring/decimal"

	"github.com/uctoflow/ledger-engine/internal/core/domain"
)

// CreateTemplateLineRequest defines one blueprint line of a posting template.
type CreateTemplateLineRequest struct {
	AccountCode string                    `json:"accountCode" binding:"required,len=3,numeric"`
	Analytic    string                    `json:"analytic" binding:"omitempty,max=6,numeric"`
	Side        domain.LineSide           `json:"side" binding:"required,oneof=DEBIT CREDIT"`
	AmountKind  domain.TemplateAmountKind `json:"amountKind" binding:"required,oneof=FIXED PERCENT"`
	Amount      decimal.Decimal           `json:"amount"`
	Percent     decimal.Decimal           `json:"percent"`
	Description string                    `json:"description"`
}

// CreateTemplateRequest defines the data needed to create a posting template.
type CreateTemplateRequest struct {
	Name         string                      `json:"name" binding:"required"`
	DocumentType domain.DocumentType         `json:"documentType" binding:"required,oneof=FA DF BV PD ID"`
	Lines        []CreateTemplateLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ApplyTemplateRequest defines the data needed to expand a template into a draft.
type ApplyTemplateRequest struct {
	Date        string `json:"date" binding:"required" example:"2024-03-15"`
	Description string `json:"description"`
}

// TemplateLineResponse defines the data returned for a blueprint line.
type TemplateLineResponse struct {
	TemplateLineID string                    `json:"templateLineID"`
	Position       int                       `json:"position"`
	AccountCode    string                    `json:"accountCode"`
	Analytic       string                    `json:"analytic,omitempty"`
	Side           domain.LineSide           `json:"side"`
	AmountKind     domain.TemplateAmountKind `json:"amountKind"`
	Amount         decimal.Decimal           `json:"amount"`
	Percent        decimal.Decimal           `json:"percent"`
	Description    string                    `json:"description,omitempty"`
}

// TemplateResponse defines the data returned for a posting template.
type TemplateResponse struct {
	TemplateID   string                 `json:"templateID"`
	TenantID     string                 `json:"tenantID"`
	Name         string                 `json:"name"`
	DocumentType domain.DocumentType    `json:"documentType"`
	Lines        []TemplateLineResponse `json:"lines"`
}

// ListTemplatesResponse wraps the list of templates.
type ListTemplatesResponse struct {
	Templates []TemplateResponse `json:"templates"`
}

// ToTemplateResponse converts a domain.PostingTemplate to TemplateResponse DTO.
func ToTemplateResponse(t *domain.PostingTemplate) TemplateResponse {
	lines := make([]TemplateLineResponse, len(t.Lines))
	for i, l := range t.Lines {
		lines[i] = TemplateLineResponse{
			TemplateLineID: l.TemplateLineID,
			Position:       l.Position,
			AccountCode:    l.AccountCode,
			Analytic:       l.Analytic,
			Side:           l.Side,
			AmountKind:     l.AmountKind,
			Amount:         l.Amount,
			Percent:        l.Percent,
			Description:    l.Description,
		}
	}
	return TemplateResponse{
		TemplateID:   t.TemplateID,
		TenantID:     t.TenantID,
		Name:         t.Name,
		DocumentType: t.DocumentType,
		Lines:        lines,
	}
}

// ToListTemplatesResponse converts domain templates to the list DTO.
func ToListTemplatesResponse(templates []domain.PostingTemplate) ListTemplatesResponse {
	res := make([]TemplateResponse, len(templates))
	for i := range templates {
		res[i] = ToTemplateResponse(&templates[i])
	}
	return ListTemplatesResponse{Templates: res}
}
