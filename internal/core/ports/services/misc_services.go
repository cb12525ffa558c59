package services

import (
	"context"

	"github.com/uctoflow/ledger-engine/internal/core/domain"
	"github.com/uctoflow/ledger-engine/internal/dto"
)

// CurrencySvcFacade manages the currency registry.
type CurrencySvcFacade interface {
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// TenantSvcFacade manages tenants.
type TenantSvcFacade interface {
	CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error)
	GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)
	ListTenants(ctx context.Context) ([]domain.Tenant, error)
	DisableTenant(ctx context.Context, tenantID string, userID string) error
}
