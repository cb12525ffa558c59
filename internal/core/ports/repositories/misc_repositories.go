package repositories

import (
	"context"
	"time"

	"github.com/uctoflow/ledger-engine/internal/core/domain"
)

// CurrencyRepositoryFacade defines persistence for the currency registry.
type CurrencyRepositoryFacade interface {
	// SaveCurrency persists a new currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// FindCurrencyByCode retrieves a currency by its ISO code.
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all registered currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// TenantRepositoryFacade defines persistence for tenants.
type TenantRepositoryFacade interface {
	// SaveTenant persists a new tenant.
	SaveTenant(ctx context.Context, tenant domain.Tenant) error

	// FindTenantByID retrieves a tenant by its unique identifier.
	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// ListTenants retrieves all tenants.
	ListTenants(ctx context.Context) ([]domain.Tenant, error)

	// DeactivateTenant marks a tenant inactive.
	DeactivateTenant(ctx context.Context, tenantID string, userID string, now time.Time) error
}
