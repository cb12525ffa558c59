package services

import (
	"context"
	"time"

	"github.com/uctoflow/ledger-engine/internal/core/domain"
	"github.com/uctoflow/ledger-engine/internal/dto"
)

// TemplateSvcFacade manages posting templates and their expansion into drafts.
type TemplateSvcFacade interface {
	// CreateTemplate persists a new posting template.
	CreateTemplate(ctx context.Context, tenantID string, req dto.CreateTemplateRequest, creatorUserID string) (*domain.PostingTemplate, error)

	// GetTemplate retrieves a template with its blueprint lines.
	GetTemplate(ctx context.Context, tenantID string, templateID string) (*domain.PostingTemplate, error)

	// ListTemplates retrieves the tenant's templates.
	ListTemplates(ctx context.Context, tenantID string) ([]domain.PostingTemplate, error)

	// ApplyTemplate expands a template into a new draft entry. Unresolved
	// account codes yield lines with an empty account reference and a
	// fallback label instead of failing the expansion; percentage lines
	// expand with zero amount.
	ApplyTemplate(ctx context.Context, tenantID string, templateID string, date time.Time, description string, userID string) (*domain.JournalEntry, error)
}
