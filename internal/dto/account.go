package dto

import (
	"time"

	"github.com/uctoflow/ledger-engine/internal/core/domain"
)

// RegisterAccountRequest defines the data needed to register a chart-of-accounts entry.
type RegisterAccountRequest struct {
	Code        string             `json:"code" binding:"required,len=3,numeric"`
	Analytic    string             `json:"analytic" binding:"omitempty,max=6,numeric"`
	Name        string             `json:"name" binding:"required"`
	AccountType domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY REVENUE EXPENSE"`
	TaxRelevant bool               `json:"taxRelevant"`
	OffBalance  bool               `json:"offBalance"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string             `json:"accountID"`
	TenantID    string             `json:"tenantID"`
	Code        string             `json:"code"`
	Analytic    string             `json:"analytic,omitempty"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"accountType"`
	TaxRelevant bool               `json:"taxRelevant"`
	OffBalance  bool               `json:"offBalance"`
	IsActive    bool               `json:"isActive"`
	CreatedAt   time.Time          `json:"createdAt"`
	CreatedBy   string             `json:"createdBy"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// LookupAccountParams defines query parameters for the strict code lookup.
type LookupAccountParams struct {
	Code     string `form:"code" binding:"required"`
	Analytic string `form:"analytic"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   acc.AccountID,
		TenantID:    acc.TenantID,
		Code:        acc.Code,
		Analytic:    acc.Analytic,
		Name:        acc.Name,
		AccountType: acc.AccountType,
		TaxRelevant: acc.TaxRelevant,
		OffBalance:  acc.OffBalance,
		IsActive:    acc.IsActive,
		CreatedAt:   acc.CreatedAt,
		CreatedBy:   acc.CreatedBy,
	}
}

// ToListAccountsResponse converts a slice of domain.Account to the list DTO.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return ListAccountsResponse{Accounts: res}
}
