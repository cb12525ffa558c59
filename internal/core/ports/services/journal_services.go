package services

import (
	"context"

	"github.com/uctoflow/ledger-engine/internal/core/domain"
	"github.com/uctoflow/ledger-engine/internal/dto"
)

// EntrySvcFacade is the posting engine surface: draft creation and editing,
// the one-way post and reverse transitions, and posted-line queries.
type EntrySvcFacade interface {
	// CreateDraftEntry records a new entry in DRAFT status. Drafts may be
	// unbalanced; the balancing validator runs at post time.
	CreateDraftEntry(ctx context.Context, tenantID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// GetEntry retrieves an entry with its lines.
	GetEntry(ctx context.Context, tenantID string, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of the tenant's entries.
	ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// UpdateDraftEntry replaces header fields and/or the full line set of a
	// draft. Posted and reversed entries reject updates with ErrPostingState.
	UpdateDraftEntry(ctx context.Context, tenantID string, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error)

	// PostEntry validates balance and account references, assigns the next
	// document number and transitions the draft to POSTED. One atomic
	// transaction; concurrent posts of the same entry lose with
	// ErrConcurrentModification after bounded internal retries.
	PostEntry(ctx context.Context, tenantID string, entryID string, userID string) (*domain.JournalEntry, error)

	// ReverseEntry creates the compensating mirror entry (storno) for a
	// posted entry and flips the original to REVERSED, atomically.
	ReverseEntry(ctx context.Context, tenantID string, entryID string, req dto.ReverseEntryRequest, userID string) (*domain.JournalEntry, error)

	// DeleteDraftEntry removes a draft. Posted history is append-only:
	// deleting a posted entry fails with ErrPostingState, pointing the
	// caller to reversal instead.
	DeleteDraftEntry(ctx context.Context, tenantID string, entryID string, userID string) error

	// ListLinesByAccount retrieves posted lines hitting one account.
	ListLinesByAccount(ctx context.Context, tenantID string, accountID string, params dto.ListLinesParams) (*dto.ListLinesResponse, error)
}
