package services

import (
	"context"

	"github.com/uctoflow/ledger-engine/internal/core/domain"
	"github.com/uctoflow/ledger-engine/internal/dto"
)

// AccountSvcFacade is the chart-of-accounts registry surface.
type AccountSvcFacade interface {
	// RegisterAccount adds a new account to the tenant's chart of accounts.
	RegisterAccount(ctx context.Context, tenantID string, req dto.RegisterAccountRequest, creatorUserID string) (*domain.Account, error)

	// GetAccountByID retrieves a single account.
	GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error)

	// LookupAccountByCode is the strict code+analytic lookup: it returns the
	// account or apperrors.ErrNotFound, never a loosely matched fallback.
	LookupAccountByCode(ctx context.Context, tenantID, code, analytic string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts, keyed by ID.
	GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a page of the tenant's chart of accounts.
	ListAccounts(ctx context.Context, tenantID string, limit, offset int) ([]domain.Account, error)

	// DisableAccount marks an account inactive for future postings. Historic
	// postings are unaffected; accounts are never deleted or renumbered.
	DisableAccount(ctx context.Context, tenantID string, accountID string, userID string) error
}
