package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/uctoflow/ledger-engine/internal/apperrors"
	"github.com/uctoflow/ledger-engine/internal/core/domain"
	portsrepo "github.com/uctoflow/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/uctoflow/ledger-engine/internal/core/ports/services"
	"github.com/uctoflow/ledger-engine/internal/dto"
)

var ErrTemplateEmpty = errors.New("template must have at least one line")

type templateService struct {
	BaseService
	templateRepo portsrepo.TemplateRepositoryFacade
	accountSvc   portssvc.AccountSvcFacade
	entrySvc     portssvc.EntrySvcFacade
}

// NewTemplateService creates a new posting template service.
func NewTemplateService(templateRepo portsrepo.TemplateRepositoryFacade, accountSvc portssvc.AccountSvcFacade, entrySvc portssvc.EntrySvcFacade) portssvc.TemplateSvcFacade {
	return &templateService{
		templateRepo: templateRepo,
		accountSvc:   accountSvc,
		entrySvc:     entrySvc,
	}
}

var _ portssvc.TemplateSvcFacade = (*templateService)(nil)

// CreateTemplate persists a new posting template with its blueprint lines.
// Account codes are stored as written; they resolve at apply time, so a
// template may reference codes added to the chart later.
func (s *templateService) CreateTemplate(ctx context.Context, tenantID string, req dto.CreateTemplateRequest, creatorUserID string) (*domain.PostingTemplate, error) {
	if len(req.Lines) == 0 {
		return nil, ErrTemplateEmpty
	}

	now := time.Now().UTC()
	templateID := uuid.NewString()

	lines := make([]domain.TemplateLine, len(req.Lines))
	for i, lr := range req.Lines {
		if lr.AmountKind == domain.AmountFixed && lr.Amount.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: template line %d has negative amount", apperrors.ErrValidation, i+1)
		}
		lines[i] = domain.TemplateLine{
			TemplateLineID: uuid.NewString(),
			TemplateID:     templateID,
			Position:       i + 1,
			AccountCode:    lr.AccountCode,
			Analytic:       lr.Analytic,
			Side:           lr.Side,
			AmountKind:     lr.AmountKind,
			Amount:         lr.Amount,
			Percent:        lr.Percent,
			Description:    lr.Description,
		}
	}

	template := domain.PostingTemplate{
		TemplateID:   templateID,
		TenantID:     tenantID,
		Name:         req.Name,
		DocumentType: req.DocumentType,
		Lines:        lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.templateRepo.SaveTemplate(ctx, template); err != nil {
		s.LogError(ctx, err, "Failed to save template", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	s.LogInfo(ctx, "Template created", slog.String("template_id", templateID), slog.String("name", req.Name))
	return &template, nil
}

// GetTemplate retrieves a template with its blueprint lines.
func (s *templateService) GetTemplate(ctx context.Context, tenantID string, templateID string) (*domain.PostingTemplate, error) {
	template, err := s.templateRepo.FindTemplateByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if template.TenantID != tenantID {
		return nil, apperrors.ErrNotFound
	}
	return template, nil
}

// ListTemplates retrieves the tenant's templates.
func (s *templateService) ListTemplates(ctx context.Context, tenantID string) ([]domain.PostingTemplate, error) {
	templates, err := s.templateRepo.ListTemplates(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list templates", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to retrieve templates: %w", err)
	}
	return templates, nil
}

// ApplyTemplate expands a template into a new draft entry dated at the given
// date. Codes resolve against the current chart of accounts; a line whose
// code no longer resolves comes out with an empty account reference and a
// marked description so the bookkeeper can fix it before posting. Percentage
// lines expand with a zero amount to be filled in on the draft.
func (s *templateService) ApplyTemplate(ctx context.Context, tenantID string, templateID string, date time.Time, description string, userID string) (*domain.JournalEntry, error) {
	template, err := s.GetTemplate(ctx, tenantID, templateID)
	if err != nil {
		return nil, err
	}
	if len(template.Lines) == 0 {
		return nil, ErrTemplateEmpty
	}

	lineReqs := make([]dto.CreateLineRequest, len(template.Lines))
	for i, tl := range template.Lines {
		lineDesc := tl.Description
		accountID := ""

		account, err := s.accountSvc.LookupAccountByCode(ctx, tenantID, tl.AccountCode, tl.Analytic)
		switch {
		case err == nil:
			accountID = account.AccountID
		case errors.Is(err, apperrors.ErrNotFound):
			fullCode := tl.AccountCode
			if tl.Analytic != "" {
				fullCode = tl.AccountCode + "." + tl.Analytic
			}
			lineDesc = strings.TrimSpace(fmt.Sprintf("[unresolved account %s] %s", fullCode, lineDesc))
			s.LogWarn(ctx, "Template line references unknown account code",
				slog.String("template_id", templateID),
				slog.String("account_code", fullCode))
		default:
			return nil, fmt.Errorf("failed to resolve account code %s: %w", tl.AccountCode, err)
		}

		amount := decimal.Zero
		if tl.AmountKind == domain.AmountFixed {
			amount = tl.Amount
		}

		lineReqs[i] = dto.CreateLineRequest{
			AccountID:   accountID,
			Side:        tl.Side,
			Amount:      amount,
			Description: lineDesc,
		}
	}

	if description == "" {
		description = template.Name
	}

	entry, err := s.entrySvc.CreateDraftEntry(ctx, tenantID, dto.CreateEntryRequest{
		DocumentType: template.DocumentType,
		Date:         date,
		Description:  description,
		Lines:        lineReqs,
	}, userID)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Template applied",
		slog.String("template_id", templateID),
		slog.String("entry_id", entry.EntryID))
	return entry, nil
}
