package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uctoflow/ledger-engine/internal/apperrors"
	"github.com/uctoflow/ledger-engine/internal/core/domain"
	portsrepo "github.com/uctoflow/ledger-engine/internal/core/ports/repositories"
)

const tenantColumns = `tenant_id, name, registration_id, tax_id, currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxTenantRepository struct {
	BaseRepository
}

// newPgxTenantRepository creates a new repository for tenant data.
func newPgxTenantRepository(pool *pgxpool.Pool) portsrepo.TenantRepositoryFacade {
	return &PgxTenantRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TenantRepositoryFacade = (*PgxTenantRepository)(nil)

func scanTenant(row pgx.Row) (*domain.Tenant, error) {
	var t domain.Tenant
	err := row.Scan(
		&t.TenantID,
		&t.Name,
		&t.RegistrationID,
		&t.TaxID,
		&t.CurrencyCode,
		&t.IsActive,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SaveTenant persists a new tenant.
func (r *PgxTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	query := `
		INSERT INTO tenants (` + tenantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		tenant.TenantID,
		tenant.Name,
		tenant.RegistrationID,
		tenant.TaxID,
		tenant.CurrencyCode,
		tenant.IsActive,
		tenant.CreatedAt,
		tenant.CreatedBy,
		tenant.LastUpdatedAt,
		tenant.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert tenant "+tenant.TenantID, err)
	}
	return nil
}

// FindTenantByID retrieves a tenant by its unique identifier.
func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE tenant_id = $1;`
	tenant, err := scanTenant(r.Pool.QueryRow(ctx, query, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find tenant by ID "+tenantID, err)
	}
	return tenant, nil
}

// ListTenants retrieves all tenants.
func (r *PgxTenantRepository) ListTenants(ctx context.Context) ([]domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tenants", err)
	}
	defer rows.Close()

	tenants := []domain.Tenant{}
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan tenant row", err)
		}
		tenants = append(tenants, *tenant)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating tenant rows", err)
	}
	return tenants, nil
}

// DeactivateTenant marks a tenant inactive.
func (r *PgxTenantRepository) DeactivateTenant(ctx context.Context, tenantID string, userID string, now time.Time) error {
	query := `
		UPDATE tenants
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE tenant_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, tenantID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate tenant "+tenantID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
