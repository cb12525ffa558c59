package repositories

import (
	"context"

	"github.com/uctoflow/ledger-engine/internal/core/domain"
)

// TemplateRepositoryFacade defines persistence for posting templates.
type TemplateRepositoryFacade interface {
	// SaveTemplate persists a template with its blueprint lines.
	SaveTemplate(ctx context.Context, template domain.PostingTemplate) error

	// FindTemplateByID retrieves a template including its blueprint lines.
	FindTemplateByID(ctx context.Context, templateID string) (*domain.PostingTemplate, error)

	// ListTemplates retrieves all templates of a tenant.
	ListTemplates(ctx context.Context, tenantID string) ([]domain.PostingTemplate, error)
}
