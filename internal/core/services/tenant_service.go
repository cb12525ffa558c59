package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/uctoflow/ledger-engine/internal/core/domain"
	portsrepo "github.com/uctoflow/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/uctoflow/ledger-engine/internal/core/ports/services"
	"github.com/uctoflow/ledger-engine/internal/dto"
)

// defaultTenantCurrency is the bookkeeping currency used when a tenant does
// not name one. Slovak entities keep books in EUR.
const defaultTenantCurrency = "EUR"

type tenantService struct {
	BaseService
	tenantRepo portsrepo.TenantRepositoryFacade
}

// NewTenantService creates a new tenant service.
func NewTenantService(tenantRepo portsrepo.TenantRepositoryFacade) portssvc.TenantSvcFacade {
	return &tenantService{tenantRepo: tenantRepo}
}

var _ portssvc.TenantSvcFacade = (*tenantService)(nil)

// CreateTenant registers a new tenant with its own chart, numbering and books.
func (s *tenantService) CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error) {
	now := time.Now().UTC()
	currencyCode := req.CurrencyCode
	if currencyCode == "" {
		currencyCode = defaultTenantCurrency
	}

	tenant := domain.Tenant{
		TenantID:       uuid.NewString(),
		Name:           req.Name,
		RegistrationID: req.RegistrationID,
		TaxID:          req.TaxID,
		CurrencyCode:   currencyCode,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.tenantRepo.SaveTenant(ctx, tenant); err != nil {
		s.LogError(ctx, err, "Failed to save tenant", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save tenant: %w", err)
	}

	s.LogInfo(ctx, "Tenant created", slog.String("tenant_id", tenant.TenantID), slog.String("name", tenant.Name))
	return &tenant, nil
}

// GetTenantByID retrieves a tenant.
func (s *tenantService) GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	return s.tenantRepo.FindTenantByID(ctx, tenantID)
}

// ListTenants retrieves all tenants.
func (s *tenantService) ListTenants(ctx context.Context) ([]domain.Tenant, error) {
	tenants, err := s.tenantRepo.ListTenants(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tenants")
		return nil, fmt.Errorf("failed to retrieve tenants: %w", err)
	}
	return tenants, nil
}

// DisableTenant marks a tenant inactive. Its books stay readable; the tenant
// and its history are never deleted.
func (s *tenantService) DisableTenant(ctx context.Context, tenantID string, userID string) error {
	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if !tenant.IsActive {
		return nil // already disabled, idempotent
	}

	if err := s.tenantRepo.DeactivateTenant(ctx, tenantID, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to disable tenant", slog.String("tenant_id", tenantID))
		return fmt.Errorf("failed to disable tenant: %w", err)
	}

	s.LogInfo(ctx, "Tenant disabled", slog.String("tenant_id", tenantID), slog.String("name", tenant.Name))
	return nil
}
