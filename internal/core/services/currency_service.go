package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/uctoflow/ledger-engine/internal/apperrors"
	"github.com/uctoflow/ledger-engine/internal/core/domain"
	portsrepo "github.com/uctoflow/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/uctoflow/ledger-engine/internal/core/ports/services"
	"github.com/uctoflow/ledger-engine/internal/dto"
)

var ErrDuplicateCurrency = errors.New("currency code already registered")

type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new currency service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// CreateCurrency registers a new currency in the shared registry.
func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	now := time.Now().UTC()
	currency := domain.Currency{
		CurrencyCode: strings.ToUpper(req.CurrencyCode),
		Symbol:       req.Symbol,
		Name:         req.Name,
		Precision:    req.Precision,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCurrency, currency.CurrencyCode)
		}
		s.LogError(ctx, err, "Failed to save currency", slog.String("currency_code", currency.CurrencyCode))
		return nil, fmt.Errorf("failed to save currency: %w", err)
	}

	s.LogInfo(ctx, "Currency created", slog.String("currency_code", currency.CurrencyCode))
	return &currency, nil
}

// GetCurrencyByCode retrieves a currency by its ISO code.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	return s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(currencyCode))
}

// ListCurrencies retrieves all registered currencies.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("failed to retrieve currencies: %w", err)
	}
	return currencies, nil
}
