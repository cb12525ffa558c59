package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uctoflow/ledger-engine/internal/apperrors"
	"github.com/uctoflow/ledger-engine/internal/core/domain"
	portsrepo "github.com/uctoflow/ledger-engine/internal/core/ports/repositories"
)

type PgxTemplateRepository struct {
	BaseRepository
}

// newPgxTemplateRepository creates a new repository for posting templates.
func newPgxTemplateRepository(pool *pgxpool.Pool) portsrepo.TemplateRepositoryFacade {
	return &PgxTemplateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TemplateRepositoryFacade = (*PgxTemplateRepository)(nil)

// SaveTemplate persists a template with its blueprint lines in one transaction.
func (r *PgxTemplateRepository) SaveTemplate(ctx context.Context, template domain.PostingTemplate) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	templateQuery := `
		INSERT INTO posting_templates (template_id, tenant_id, name, document_type, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, templateQuery,
		template.TemplateID,
		template.TenantID,
		template.Name,
		template.DocumentType,
		template.CreatedAt,
		template.CreatedBy,
		template.LastUpdatedAt,
		template.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert template "+template.TemplateID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO template_lines (template_line_id, template_id, position, account_code, analytic, side, amount_kind, amount, percent, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, line := range template.Lines {
		batch.Queue(lineQuery,
			line.TemplateLineID,
			line.TemplateID,
			line.Position,
			line.AccountCode,
			line.Analytic,
			line.Side,
			line.AmountKind,
			line.Amount,
			line.Percent,
			line.Description,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for template "+template.TemplateID, err)
	}

	return r.Commit(ctx, tx)
}

// FindTemplateByID retrieves a template including its blueprint lines.
func (r *PgxTemplateRepository) FindTemplateByID(ctx context.Context, templateID string) (*domain.PostingTemplate, error) {
	query := `
		SELECT template_id, tenant_id, name, document_type, created_at, created_by, last_updated_at, last_updated_by
		FROM posting_templates
		WHERE template_id = $1;
	`
	var t domain.PostingTemplate
	err := r.Pool.QueryRow(ctx, query, templateID).Scan(
		&t.TemplateID,
		&t.TenantID,
		&t.Name,
		&t.DocumentType,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find template by ID "+templateID, err)
	}

	lines, err := r.findTemplateLines(ctx, templateID)
	if err != nil {
		return nil, err
	}
	t.Lines = lines
	return &t, nil
}

func (r *PgxTemplateRepository) findTemplateLines(ctx context.Context, templateID string) ([]domain.TemplateLine, error) {
	query := `
		SELECT template_line_id, template_id, position, account_code, analytic, side, amount_kind, amount, percent, description
		FROM template_lines
		WHERE template_id = $1
		ORDER BY position;
	`
	rows, err := r.Pool.Query(ctx, query, templateID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for template "+templateID, err)
	}
	defer rows.Close()

	lines := []domain.TemplateLine{}
	for rows.Next() {
		var l domain.TemplateLine
		err := rows.Scan(
			&l.TemplateLineID,
			&l.TemplateID,
			&l.Position,
			&l.AccountCode,
			&l.Analytic,
			&l.Side,
			&l.AmountKind,
			&l.Amount,
			&l.Percent,
			&l.Description,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan template line row", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating template line rows", err)
	}
	return lines, nil
}

// ListTemplates retrieves all templates of a tenant with their lines.
func (r *PgxTemplateRepository) ListTemplates(ctx context.Context, tenantID string) ([]domain.PostingTemplate, error) {
	query := `
		SELECT template_id, tenant_id, name, document_type, created_at, created_by, last_updated_at, last_updated_by
		FROM posting_templates
		WHERE tenant_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query templates for tenant "+tenantID, err)
	}
	defer rows.Close()

	templates := []domain.PostingTemplate{}
	for rows.Next() {
		var t domain.PostingTemplate
		err := rows.Scan(
			&t.TemplateID,
			&t.TenantID,
			&t.Name,
			&t.DocumentType,
			&t.CreatedAt,
			&t.CreatedBy,
			&t.LastUpdatedAt,
			&t.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan template row", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating template rows", err)
	}

	for i := range templates {
		lines, err := r.findTemplateLines(ctx, templates[i].TemplateID)
		if err != nil {
			return nil, err
		}
		templates[i].Lines = lines
	}
	return templates, nil
}
