package dto

import "github.com/uctoflow/ledger-engine/internal/core/domain"

// CreateCurrencyRequest defines the data needed to register a currency.
type CreateCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,len=3,alpha"`
	Symbol       string `json:"symbol" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Precision    int    `json:"precision" binding:"min=0,max=8"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Precision    int    `json:"precision"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode: c.CurrencyCode,
		Symbol:       c.Symbol,
		Name:         c.Name,
		Precision:    c.Precision,
	}
}

// CreateTenantRequest defines the data needed to create a tenant.
type CreateTenantRequest struct {
	Name           string `json:"name" binding:"required"`
	RegistrationID string `json:"registrationID"`
	TaxID          string `json:"taxID"`
	CurrencyCode   string `json:"currencyCode" binding:"omitempty,len=3,alpha"`
}

// TenantResponse defines the data returned for a tenant.
type TenantResponse struct {
	TenantID       string `json:"tenantID"`
	Name           string `json:"name"`
	RegistrationID string `json:"registrationID,omitempty"`
	TaxID          string `json:"taxID,omitempty"`
	CurrencyCode   string `json:"currencyCode"`
	IsActive       bool   `json:"isActive"`
}

// ToTenantResponse converts a domain.Tenant to TenantResponse DTO.
func ToTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		TenantID:       t.TenantID,
		Name:           t.Name,
		RegistrationID: t.RegistrationID,
		TaxID:          t.TaxID,
		CurrencyCode:   t.CurrencyCode,
		IsActive:       t.IsActive,
	}
}
