package repositories

import (
	"context"
	"time"

	"github.com/uctoflow/ledger-engine/internal/core/domain"
)

// EntryReader defines read operations for journal entry data.
type EntryReader interface {
	// FindEntryByID retrieves a specific journal entry (header only).
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByTenant retrieves a paginated list of entries for a tenant
	// using token-based keyset pagination. Draft entries are included only
	// when includeDrafts is set.
	ListEntriesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string, includeDrafts bool) ([]domain.JournalEntry, *string, error)
}

// EntryWriter defines write operations governing the entry lifecycle. Every
// method is a single atomic database transaction; no reader ever observes an
// entry whose stored totals disagree with its stored lines.
type EntryWriter interface {
	// SaveDraftEntry persists a new draft entry together with its lines and
	// derived totals.
	SaveDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// ReplaceDraftEntry atomically replaces the header fields and full line
	// set of a draft, recomputing stored totals. The update is a check-and-set
	// on (status=DRAFT, version); a lost race surfaces as
	// apperrors.ErrConcurrentModification, a non-draft status as
	// apperrors.ErrConflict.
	ReplaceDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// PostEntry transitions a draft to POSTED: assigns the next sequence
	// number for (tenant, documentType, fiscalYear), stamps postedAt and
	// performs the status check-and-set, all in one transaction. Returns the
	// assigned entry number.
	PostEntry(ctx context.Context, entry domain.JournalEntry, fiscalYear int, postedAt time.Time, userID string) (string, error)

	// ReverseEntry atomically inserts the already-POSTED mirror entry with
	// its lines (numbering it like any posted entry) and flips the original
	// to REVERSED with the cross-reference set. Either both commit or
	// neither does.
	ReverseEntry(ctx context.Context, original domain.JournalEntry, mirror domain.JournalEntry, mirrorLines []domain.JournalLine, fiscalYear int, postedAt time.Time, userID string) (string, error)

	// DeleteDraftEntry removes a draft entry and its lines. Only drafts may
	// be deleted; posted history is append-only.
	DeleteDraftEntry(ctx context.Context, entryID string, expectedVersion int64) error
}

// LineReader defines read operations for journal line data.
type LineReader interface {
	// FindLinesByEntryID retrieves all lines of a single entry in position order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error)

	// ListLinesByAccountID retrieves a paginated list of posted lines hitting
	// a specific account, newest first.
	ListLinesByAccountID(ctx context.Context, tenantID, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error)
}

// EntryRepositoryFacade combines all journal-entry repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
	LineReader
}
