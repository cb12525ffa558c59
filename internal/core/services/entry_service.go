package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/uctoflow/ledger-engine/internal/apperrors"
	"github.com/uctoflow/ledger-engine/internal/core/domain"
	portsrepo "github.com/uctoflow/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/uctoflow/ledger-engine/internal/core/ports/services"
	"github.com/uctoflow/ledger-engine/internal/dto"
	"github.com/uctoflow/ledger-engine/internal/utils/accounting"
)

var (
	ErrUnbalancedEntry = errors.New("entry lines do not balance")
	ErrEmptyEntry      = errors.New("entry has no lines")
	ErrInvalidAmount   = errors.New("line amount must be positive")
	ErrUnknownAccount  = errors.New("line references an unknown or disabled account")
	ErrPartialFx       = errors.New("foreign-currency fields must be fully present or fully absent")
	ErrUnknownCurrency = errors.New("line references an unregistered currency code")
	ErrPostingState    = errors.New("operation not permitted in current entry status")
	ErrAlreadyReversed = errors.New("entry has already been reversed")
)

// postRetries bounds the internal retry loop on optimistic-concurrency
// conflicts before the error surfaces to the caller.
const postRetries = 3

// entryService implements the posting engine: draft lifecycle, the balancing
// validator, the one-way post transition and reversal-as-compensation.
type entryService struct {
	BaseService
	entryRepo   portsrepo.EntryRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	currencySvc portssvc.CurrencySvcFacade
}

// NewEntryService creates a new journal entry service.
func NewEntryService(entryRepo portsrepo.EntryRepositoryFacade, accountSvc portssvc.AccountSvcFacade, currencySvc portssvc.CurrencySvcFacade) portssvc.EntrySvcFacade {
	return &entryService{
		entryRepo:   entryRepo,
		accountSvc:  accountSvc,
		currencySvc: currencySvc,
	}
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// buildLines converts line requests into domain lines for the given entry,
// assigning IDs and positions and rejecting partial foreign-currency triples.
func buildLines(entryID string, reqs []dto.CreateLineRequest, now time.Time, userID string) ([]domain.JournalLine, error) {
	lines := make([]domain.JournalLine, len(reqs))
	for i, lr := range reqs {
		fxCount := 0
		if lr.FxAmount != nil {
			fxCount++
		}
		if lr.FxCurrency != nil {
			fxCount++
		}
		if lr.FxRate != nil {
			fxCount++
		}
		if fxCount != 0 && fxCount != 3 {
			return nil, fmt.Errorf("%w: line %d", ErrPartialFx, i+1)
		}

		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			Position:    i + 1,
			AccountID:   lr.AccountID,
			Side:        lr.Side,
			Amount:      lr.Amount,
			FxAmount:    lr.FxAmount,
			FxCurrency:  lr.FxCurrency,
			FxRate:      lr.FxRate,
			CostCenter:  lr.CostCenter,
			Description: lr.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}
	return lines, nil
}

// CreateDraftEntry records a new entry in DRAFT status. Drafts may be
// unbalanced; the balancing validator runs at post time.
func (s *entryService) CreateDraftEntry(ctx context.Context, tenantID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if req.Description == "" {
		return nil, fmt.Errorf("%w: entry description is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines, err := buildLines(entryID, req.Lines, now, creatorUserID)
	if err != nil {
		return nil, err
	}

	totalDebit, totalCredit := accounting.EntryTotals(lines)
	entry := domain.JournalEntry{
		EntryID:          entryID,
		TenantID:         tenantID,
		DocumentType:     req.DocumentType,
		EntryDate:        req.Date,
		Description:      req.Description,
		Status:           domain.Draft,
		TotalDebit:       totalDebit,
		TotalCredit:      totalCredit,
		SourceDocumentID: req.SourceDocumentID,
		Version:          1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.entryRepo.SaveDraftEntry(ctx, entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to save draft entry", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to save draft entry: %w", err)
	}

	s.LogInfo(ctx, "Draft entry created", slog.String("entry_id", entryID), slog.String("tenant_id", tenantID))
	entry.Lines = lines
	return &entry, nil
}

// getTenantEntry fetches an entry and verifies tenant ownership.
func (s *entryService) getTenantEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.TenantID != tenantID {
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

// GetEntry retrieves an entry with its lines.
func (s *entryService) GetEntry(ctx context.Context, tenantID string, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.getTenantEntry(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, apperrors.ErrInternal)
	}

	// Read-back integrity check: stored totals must equal the line sums.
	debit, credit := accounting.EntryTotals(lines)
	if !debit.Equal(entry.TotalDebit) || !credit.Equal(entry.TotalCredit) {
		s.LogError(ctx, apperrors.ErrIntegrity, "Stored totals disagree with lines",
			slog.String("entry_id", entryID),
			slog.String("stored_debit", entry.TotalDebit.String()),
			slog.String("line_debit", debit.String()))
		return nil, fmt.Errorf("%w: totals/lines mismatch on entry %s", apperrors.ErrIntegrity, entryID)
	}

	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a page of the tenant's entries.
func (s *entryService) ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	entries, nextToken, err := s.entryRepo.ListEntriesByTenant(ctx, tenantID, params.Limit, params.NextToken, params.IncludeDrafts)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	var linesMap map[string][]domain.JournalLine
	if params.IncludeLines && len(entries) > 0 {
		entryIDs := make([]string, len(entries))
		for i, e := range entries {
			entryIDs[i] = e.EntryID
		}
		linesMap, err = s.entryRepo.FindLinesByEntryIDs(ctx, entryIDs)
		if err != nil {
			s.LogWarn(ctx, "Failed to fetch lines for entry page", slog.String("error", err.Error()))
			// Continue without lines rather than failing the whole request.
		}
	}

	responses := make([]dto.EntryResponse, len(entries))
	for i := range entries {
		if linesMap != nil {
			entries[i].Lines = linesMap[entries[i].EntryID]
		}
		responses[i] = dto.ToEntryResponse(&entries[i])
	}

	return &dto.ListEntriesResponse{Entries: responses, NextToken: nextToken}, nil
}

// UpdateDraftEntry replaces header fields and/or the full line set of a draft.
func (s *entryService) UpdateDraftEntry(ctx context.Context, tenantID string, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.getTenantEntry(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: entry %s is %s; post-time corrections go through reversal", ErrPostingState, entryID, entry.Status)
	}

	now := time.Now().UTC()
	if req.Date != nil {
		entry.EntryDate = *req.Date
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.SourceDocumentID != nil {
		entry.SourceDocumentID = req.SourceDocumentID
	}

	var lines []domain.JournalLine
	if req.Lines != nil {
		lines, err = buildLines(entryID, req.Lines, now, userID)
		if err != nil {
			return nil, err
		}
	} else {
		lines, err = s.entryRepo.FindLinesByEntryID(ctx, entryID)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, err)
		}
	}

	entry.TotalDebit, entry.TotalCredit = accounting.EntryTotals(lines)
	entry.Version = req.Version
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	if err := s.entryRepo.ReplaceDraftEntry(ctx, *entry, lines); err != nil {
		if errors.Is(err, apperrors.ErrConcurrentModification) {
			s.LogWarn(ctx, "Draft update lost a concurrent race", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Draft entry updated", slog.String("entry_id", entryID))
	entry.Version++
	entry.Lines = lines
	return entry, nil
}

// validateForPosting runs the balancing validator over the full line set:
// non-empty, positive amounts, known active accounts of this tenant, and
// debit/credit totals equal within the rounding epsilon.
func (s *entryService) validateForPosting(ctx context.Context, tenantID string, lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return ErrEmptyEntry
	}

	accountIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: position %d has amount %s", ErrInvalidAmount, line.Position, line.Amount.String())
		}
		if line.AccountID == "" {
			return fmt.Errorf("%w: position %d has no account reference", ErrUnknownAccount, line.Position)
		}
		accountIDs = append(accountIDs, line.AccountID)
	}

	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, tenantID, uniqueStrings(accountIDs))
	if err != nil {
		return fmt.Errorf("failed to fetch accounts for validation: %w", err)
	}
	for _, line := range lines {
		acc, found := accountsMap[line.AccountID]
		if !found {
			return fmt.Errorf("%w: position %d references account %s", ErrUnknownAccount, line.Position, line.AccountID)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: position %d references disabled account %s", ErrUnknownAccount, line.Position, acc.FullCode())
		}
	}

	seenCurrencies := make(map[string]bool)
	for _, line := range lines {
		if line.FxCurrency == nil || seenCurrencies[*line.FxCurrency] {
			continue
		}
		if _, err := s.currencySvc.GetCurrencyByCode(ctx, *line.FxCurrency); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: position %d references currency %s", ErrUnknownCurrency, line.Position, *line.FxCurrency)
			}
			return fmt.Errorf("failed to look up currency %s for validation: %w", *line.FxCurrency, err)
		}
		seenCurrencies[*line.FxCurrency] = true
	}

	difference := accounting.BalanceDifference(lines)
	if !accounting.WithinEpsilon(difference) {
		debit, credit := accounting.EntryTotals(lines)
		return fmt.Errorf("%w: debit %s, credit %s, difference %s",
			ErrUnbalancedEntry, debit.String(), credit.String(), difference.String())
	}

	return nil
}

// PostEntry validates and finalizes a draft into the immutable financial
// record. The number assignment, timestamp and status flip commit in one
// transaction; a concurrent post of the same entry is retried on fresh state
// a bounded number of times.
func (s *entryService) PostEntry(ctx context.Context, tenantID string, entryID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.getTenantEntry(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		if entry.Status != domain.Draft {
			return nil, fmt.Errorf("%w: entry %s is %s, expected DRAFT", ErrPostingState, entryID, entry.Status)
		}

		lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, err)
		}
		if err := s.validateForPosting(ctx, tenantID, lines); err != nil {
			// The entry stays DRAFT; the caller fixes the lines and retries.
			return nil, err
		}

		postedAt := time.Now().UTC()
		number, err := s.entryRepo.PostEntry(ctx, *entry, entry.EntryDate.Year(), postedAt, userID)
		if err == nil {
			s.LogInfo(ctx, "Entry posted",
				slog.String("entry_id", entryID),
				slog.String("entry_number", number))
			entry.Status = domain.Posted
			entry.EntryNumber = number
			entry.PostedAt = &postedAt
			entry.Version++
			entry.Lines = lines
			return entry, nil
		}

		if !errors.Is(err, apperrors.ErrConcurrentModification) || attempt+1 >= postRetries {
			s.LogError(ctx, err, "Failed to post entry", slog.String("entry_id", entryID))
			return nil, err
		}

		// Lost a race; re-read and re-check state before retrying.
		s.LogWarn(ctx, "Concurrent modification during post, re-reading entry",
			slog.String("entry_id", entryID), slog.Int("attempt", attempt+1))
		entry, err = s.getTenantEntry(ctx, tenantID, entryID)
		if err != nil {
			return nil, err
		}
	}
}

// buildMirrorEntry produces the compensating storno entry for a posted
// original: identical lines with every side flipped, same amounts, accounts
// and currency fields, born POSTED and cross-referenced to the original.
func buildMirrorEntry(original *domain.JournalEntry, originalLines []domain.JournalLine, stornoDate time.Time, now time.Time, userID string) (domain.JournalEntry, []domain.JournalLine) {
	mirrorID := uuid.NewString()

	mirrorLines := make([]domain.JournalLine, len(originalLines))
	for i, line := range originalLines {
		mirrorLines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     mirrorID,
			Position:    line.Position,
			AccountID:   line.AccountID,
			Side:        line.Side.Flipped(),
			Amount:      line.Amount,
			FxAmount:    line.FxAmount,
			FxCurrency:  line.FxCurrency,
			FxRate:      line.FxRate,
			CostCenter:  line.CostCenter,
			Description: line.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	mirror := domain.JournalEntry{
		EntryID:          mirrorID,
		TenantID:         original.TenantID,
		DocumentType:     original.DocumentType,
		EntryDate:        stornoDate,
		Description:      fmt.Sprintf("Storno: %s", original.Description),
		Status:           domain.Posted,
		TotalDebit:       original.TotalCredit, // sides flipped, totals swap
		TotalCredit:      original.TotalDebit,
		SourceDocumentID: original.SourceDocumentID,
		OriginalEntryID:  &original.EntryID,
		Version:          1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	return mirror, mirrorLines
}

// ReverseEntry creates the compensating mirror entry for a posted entry and
// flips the original to REVERSED. Both sides of the operation commit in one
// transaction, so no dangling "reversed with no reversal" state can exist.
// The mirror is an ordinary posted entry and may itself be reversed later.
func (s *entryService) ReverseEntry(ctx context.Context, tenantID string, entryID string, req dto.ReverseEntryRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.getTenantEntry(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		if entry.Status == domain.Reversed {
			return nil, fmt.Errorf("%w: entry %s", ErrAlreadyReversed, entryID)
		}
		if entry.Status != domain.Posted {
			return nil, fmt.Errorf("%w: entry %s is %s, expected POSTED", ErrPostingState, entryID, entry.Status)
		}

		originalLines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, err)
		}

		now := time.Now().UTC()
		stornoDate := now
		if req.Date != nil {
			stornoDate = *req.Date
		}

		mirror, mirrorLines := buildMirrorEntry(entry, originalLines, stornoDate, now, userID)

		number, err := s.entryRepo.ReverseEntry(ctx, *entry, mirror, mirrorLines, stornoDate.Year(), now, userID)
		if err == nil {
			s.LogInfo(ctx, "Entry reversed",
				slog.String("entry_id", entryID),
				slog.String("mirror_entry_id", mirror.EntryID),
				slog.String("mirror_number", number))
			mirror.EntryNumber = number
			mirror.PostedAt = &now
			mirror.Lines = mirrorLines
			return &mirror, nil
		}

		if !errors.Is(err, apperrors.ErrConcurrentModification) || attempt+1 >= postRetries {
			s.LogError(ctx, err, "Failed to reverse entry", slog.String("entry_id", entryID))
			return nil, err
		}

		s.LogWarn(ctx, "Concurrent modification during reversal, re-reading entry",
			slog.String("entry_id", entryID), slog.Int("attempt", attempt+1))
		entry, err = s.getTenantEntry(ctx, tenantID, entryID)
		if err != nil {
			return nil, err
		}
	}
}

// DeleteDraftEntry removes a draft. Posted history is append-only.
func (s *entryService) DeleteDraftEntry(ctx context.Context, tenantID string, entryID string, userID string) error {
	entry, err := s.getTenantEntry(ctx, tenantID, entryID)
	if err != nil {
		return err
	}
	if entry.Status != domain.Draft {
		return fmt.Errorf("%w: entry %s is %s and cannot be deleted; create a reversal instead", ErrPostingState, entryID, entry.Status)
	}

	if err := s.entryRepo.DeleteDraftEntry(ctx, entryID, entry.Version); err != nil {
		s.LogError(ctx, err, "Failed to delete draft entry", slog.String("entry_id", entryID))
		return err
	}

	s.LogInfo(ctx, "Draft entry deleted", slog.String("entry_id", entryID))
	return nil
}

// ListLinesByAccount retrieves posted lines hitting one account, newest first.
func (s *entryService) ListLinesByAccount(ctx context.Context, tenantID string, accountID string, params dto.ListLinesParams) (*dto.ListLinesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	lines, nextToken, err := s.entryRepo.ListLinesByAccountID(ctx, tenantID, accountID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list lines by account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve lines: %w", err)
	}

	return &dto.ListLinesResponse{
		Lines:     dto.ToLineResponses(lines),
		NextToken: nextToken,
	}, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
