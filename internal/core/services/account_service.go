package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/uctoflow/ledger-engine/internal/apperrors"
	"github.com/uctoflow/ledger-engine/internal/core/domain"
	portsrepo "github.com/uctoflow/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/uctoflow/ledger-engine/internal/core/ports/services"
	"github.com/uctoflow/ledger-engine/internal/dto"
)

var (
	ErrDuplicateAccount = errors.New("account with this code already exists")
	ErrInvalidCode      = errors.New("account code must be a 3-digit synthetic code")
)

// accountService implements the chart-of-accounts registry.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

// RegisterAccount adds a new account to the tenant's chart of accounts.
func (s *accountService) RegisterAccount(ctx context.Context, tenantID string, req dto.RegisterAccountRequest, creatorUserID string) (*domain.Account, error) {
	if len(req.Code) != 3 || !isDigits(req.Code) {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidCode, req.Code)
	}
	if req.Analytic != "" && !isDigits(req.Analytic) {
		return nil, fmt.Errorf("%w: analytic suffix %q is not numeric", apperrors.ErrValidation, req.Analytic)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    tenantID,
		Code:        req.Code,
		Analytic:    req.Analytic,
		Name:        req.Name,
		AccountType: req.AccountType,
		TaxRelevant: req.TaxRelevant,
		OffBalance:  req.OffBalance,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s in tenant %s", ErrDuplicateAccount, account.FullCode(), tenantID)
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("tenant_id", tenantID), slog.String("code", account.FullCode()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account registered", slog.String("account_id", account.AccountID), slog.String("code", account.FullCode()))
	return &account, nil
}

// GetAccountByID retrieves a single account, scoped to the tenant.
func (s *accountService) GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.TenantID != tenantID {
		// Obscure existence across tenants.
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// LookupAccountByCode is the strict code+analytic lookup used by editing
// surfaces and the template applier.
func (s *accountService) LookupAccountByCode(ctx context.Context, tenantID, code, analytic string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByCode(ctx, tenantID, code, analytic)
}

// GetAccountsByIDs retrieves multiple accounts, keyed by ID. Accounts from
// other tenants are dropped from the result set.
func (s *accountService) GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts by IDs", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for id, acc := range accountsMap {
		if acc.TenantID != tenantID {
			delete(accountsMap, id)
		}
	}
	return accountsMap, nil
}

// ListAccounts retrieves a page of the tenant's chart of accounts.
func (s *accountService) ListAccounts(ctx context.Context, tenantID string, limit, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.accountRepo.ListAccounts(ctx, tenantID, limit, offset)
}

// DisableAccount marks an account inactive for future postings. Historical
// postings keep referencing it; accounts are never deleted or renumbered.
func (s *accountService) DisableAccount(ctx context.Context, tenantID string, accountID string, userID string) error {
	account, err := s.GetAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return nil // already disabled, idempotent
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to disable account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to disable account: %w", err)
	}

	s.LogInfo(ctx, "Account disabled", slog.String("account_id", accountID), slog.String("code", account.FullCode()))
	return nil
}
