package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uctoflow/ledger-engine/internal/apperrors"
	"github.com/uctoflow/ledger-engine/internal/core/domain"
	portsrepo "github.com/uctoflow/ledger-engine/internal/core/ports/repositories"
	"github.com/uctoflow/ledger-engine/internal/utils/pagination"
)

const entryColumns = `entry_id, tenant_id, entry_number, document_type, entry_date, description, status, total_debit, total_credit, source_document_id, original_entry_id, reversing_entry_id, posted_at, version, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, position, account_id, side, amount, fx_amount, fx_currency, fx_rate, cost_center, description, created_at, created_by, last_updated_at, last_updated_by`

const insertLineQuery = `
	INSERT INTO journal_lines (` + lineColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
`

type PgxEntryRepository struct {
	BaseRepository
	numberingRepo portsrepo.NumberingRepository
}

// newPgxEntryRepository creates a new repository for journal entry and line data.
func newPgxEntryRepository(pool *pgxpool.Pool, numberingRepo portsrepo.NumberingRepository) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
		numberingRepo:  numberingRepo,
	}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryFacade
var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	var entryNumber *string
	err := row.Scan(
		&e.EntryID,
		&e.TenantID,
		&entryNumber,
		&e.DocumentType,
		&e.EntryDate,
		&e.Description,
		&e.Status,
		&e.TotalDebit,
		&e.TotalCredit,
		&e.SourceDocumentID,
		&e.OriginalEntryID,
		&e.ReversingEntryID,
		&e.PostedAt,
		&e.Version,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if entryNumber != nil {
		e.EntryNumber = *entryNumber
	}
	return &e, nil
}

func scanLine(row pgx.Row) (*domain.JournalLine, error) {
	var l domain.JournalLine
	err := row.Scan(
		&l.LineID,
		&l.EntryID,
		&l.Position,
		&l.AccountID,
		&l.Side,
		&l.Amount,
		&l.FxAmount,
		&l.FxCurrency,
		&l.FxRate,
		&l.CostCenter,
		&l.Description,
		&l.CreatedAt,
		&l.CreatedBy,
		&l.LastUpdatedAt,
		&l.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func queueLineInserts(batch *pgx.Batch, lines []domain.JournalLine) {
	for _, line := range lines {
		batch.Queue(insertLineQuery,
			line.LineID,
			line.EntryID,
			line.Position,
			line.AccountID,
			line.Side,
			line.Amount,
			line.FxAmount,
			line.FxCurrency,
			line.FxRate,
			line.CostCenter,
			line.Description,
			line.CreatedAt,
			line.CreatedBy,
			line.LastUpdatedAt,
			line.LastUpdatedBy,
		)
	}
}

// classifyWriteConflict distinguishes why a guarded entry update matched no
// rows: the entry is gone, it left the expected status, or only its version
// moved (a concurrent writer won the race).
func classifyWriteConflict(ctx context.Context, tx pgx.Tx, entryID string, expectedStatus domain.EntryStatus) error {
	var status domain.EntryStatus
	err := tx.QueryRow(ctx, `SELECT status FROM journal_entries WHERE entry_id = $1;`, entryID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to re-check entry status "+entryID, err)
	}
	if status != expectedStatus {
		return apperrors.ErrConflict
	}
	return apperrors.ErrConcurrentModification
}

// SaveDraftEntry persists a new draft entry together with its lines and
// derived totals in one transaction.
func (r *PgxEntryRepository) SaveDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, NULL, $3, $4, $5, $6, $7, $8, $9, $10, NULL, NULL, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, entryQuery,
		entry.EntryID,
		entry.TenantID,
		entry.DocumentType,
		entry.EntryDate,
		entry.Description,
		entry.Status,
		entry.TotalDebit,
		entry.TotalCredit,
		entry.SourceDocumentID,
		entry.OriginalEntryID,
		entry.Version,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert entry "+entry.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, lines)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for entry "+entry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// ReplaceDraftEntry atomically replaces the header fields and full line set
// of a draft. The header update is a check-and-set on (status=DRAFT, version).
func (r *PgxEntryRepository) ReplaceDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	updateQuery := `
		UPDATE journal_entries
		SET entry_date = $3, description = $4, source_document_id = $5,
		    total_debit = $6, total_credit = $7,
		    version = version + 1, last_updated_at = $8, last_updated_by = $9
		WHERE entry_id = $1 AND status = 'DRAFT' AND version = $2;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		entry.EntryID,
		entry.Version,
		entry.EntryDate,
		entry.Description,
		entry.SourceDocumentID,
		entry.TotalDebit,
		entry.TotalCredit,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update entry "+entry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return classifyWriteConflict(ctx, tx, entry.EntryID, domain.Draft)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entry.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to clear lines for entry "+entry.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, lines)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for entry "+entry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// PostEntry transitions a draft to POSTED in one transaction: the sequence
// advance, the number assignment, the posted_at stamp and the status
// check-and-set commit together or not at all.
func (r *PgxEntryRepository) PostEntry(ctx context.Context, entry domain.JournalEntry, fiscalYear int, postedAt time.Time, userID string) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	sequence, err := r.numberingRepo.NextSequenceInTx(ctx, tx, entry.TenantID, string(entry.DocumentType), fiscalYear)
	if err != nil {
		return "", err
	}
	entryNumber := domain.FormatEntryNumber(entry.DocumentType, fiscalYear, sequence)

	updateQuery := `
		UPDATE journal_entries
		SET status = 'POSTED', entry_number = $3, posted_at = $4,
		    version = version + 1, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1 AND status = 'DRAFT' AND version = $2;
	`
	tag, err := tx.Exec(ctx, updateQuery, entry.EntryID, entry.Version, entryNumber, postedAt, userID)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to post entry "+entry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		// Rolling back releases the just-taken sequence value as well.
		return "", classifyWriteConflict(ctx, tx, entry.EntryID, domain.Draft)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return entryNumber, nil
}

// ReverseEntry inserts the already-POSTED mirror entry with its lines and
// flips the original to REVERSED with the cross-reference set, atomically.
func (r *PgxEntryRepository) ReverseEntry(ctx context.Context, original domain.JournalEntry, mirror domain.JournalEntry, mirrorLines []domain.JournalLine, fiscalYear int, postedAt time.Time, userID string) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	// Flip the original first so a concurrent reversal loses before the
	// mirror is numbered.
	flipQuery := `
		UPDATE journal_entries
		SET status = 'REVERSED', reversing_entry_id = $3,
		    version = version + 1, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1 AND status = 'POSTED' AND version = $2;
	`
	tag, err := tx.Exec(ctx, flipQuery, original.EntryID, original.Version, mirror.EntryID, postedAt, userID)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to mark entry reversed "+original.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return "", classifyWriteConflict(ctx, tx, original.EntryID, domain.Posted)
	}

	sequence, err := r.numberingRepo.NextSequenceInTx(ctx, tx, mirror.TenantID, string(mirror.DocumentType), fiscalYear)
	if err != nil {
		return "", err
	}
	entryNumber := domain.FormatEntryNumber(mirror.DocumentType, fiscalYear, sequence)

	mirrorQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, 'POSTED', $7, $8, $9, $10, NULL, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, mirrorQuery,
		mirror.EntryID,
		mirror.TenantID,
		entryNumber,
		mirror.DocumentType,
		mirror.EntryDate,
		mirror.Description,
		mirror.TotalDebit,
		mirror.TotalCredit,
		mirror.SourceDocumentID,
		mirror.OriginalEntryID,
		postedAt,
		mirror.Version,
		mirror.CreatedAt,
		mirror.CreatedBy,
		mirror.LastUpdatedAt,
		mirror.LastUpdatedBy,
	)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to insert mirror entry "+mirror.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, mirrorLines)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return "", apperrors.NewAppError(500, "failed to insert mirror lines for entry "+mirror.EntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return entryNumber, nil
}

// DeleteDraftEntry removes a draft entry and its lines. The delete is guarded
// on (status=DRAFT, version); posted history is append-only.
func (r *PgxEntryRepository) DeleteDraftEntry(ctx context.Context, entryID string, expectedVersion int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for entry "+entryID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1 AND status = 'DRAFT' AND version = $2;`, entryID, expectedVersion)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return classifyWriteConflict(ctx, tx, entryID, domain.Draft)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a specific journal entry (header only).
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}
	return entry, nil
}

// ListEntriesByTenant retrieves a paginated list of entries for a tenant
// using token-based keyset pagination, newest first.
func (r *PgxEntryRepository) ListEntriesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string, includeDrafts bool) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1`
	if !includeDrafts {
		baseQuery += ` AND status != 'DRAFT'`
	}
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	args := []any{tenantID}
	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		baseQuery += ` AND (entry_date, created_at) < ($2, $3)`
		args = append(args, lastEntryDate, lastCreatedAt)
	}
	query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for tenant "+tenantID, err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &token
	}
	return entries, nextTokenVal, nil
}

// FindLinesByEntryID retrieves all lines of a single entry in position order.
func (r *PgxEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = $1 ORDER BY position;`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		lines = append(lines, *line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, err)
	}
	return lines, nil
}

// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
func (r *PgxEntryRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.JournalLine{}, nil
	}

	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = ANY($1) ORDER BY entry_id, position;`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entries", err)
	}
	defer rows.Close()

	linesMap := make(map[string][]domain.JournalLine, len(entryIDs))
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row", err)
		}
		linesMap[line.EntryID] = append(linesMap[line.EntryID], *line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows", err)
	}
	return linesMap, nil
}

// ListLinesByAccountID retrieves a paginated list of posted lines hitting a
// specific account, newest first by entry date.
func (r *PgxEntryRepository) ListLinesByAccountID(ctx context.Context, tenantID, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT l.line_id, l.entry_id, l.position, l.account_id, l.side, l.amount,
		       l.fx_amount, l.fx_currency, l.fx_rate, l.cost_center, l.description,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by,
		       e.entry_date
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE l.account_id = $1 AND e.tenant_id = $2 AND e.status IN ('POSTED', 'REVERSED')
	`
	orderByClause := `ORDER BY e.entry_date DESC, l.created_at DESC`

	args := []any{accountID, tenantID}
	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		baseQuery += ` AND (e.entry_date, l.created_at) < ($3, $4)`
		args = append(args, lastEntryDate, lastCreatedAt)
	}
	query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query lines for account "+accountID, err)
	}
	defer rows.Close()

	type lineWithDate struct {
		line      domain.JournalLine
		entryDate time.Time
	}
	results := make([]lineWithDate, 0, fetchLimit)
	for rows.Next() {
		var item lineWithDate
		err := rows.Scan(
			&item.line.LineID,
			&item.line.EntryID,
			&item.line.Position,
			&item.line.AccountID,
			&item.line.Side,
			&item.line.Amount,
			&item.line.FxAmount,
			&item.line.FxCurrency,
			&item.line.FxRate,
			&item.line.CostCenter,
			&item.line.Description,
			&item.line.CreatedAt,
			&item.line.CreatedBy,
			&item.line.LastUpdatedAt,
			&item.line.LastUpdatedBy,
			&item.entryDate,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan line row for account "+accountID, err)
		}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating line rows for account "+accountID, err)
	}

	var nextTokenVal *string
	if len(results) > limit {
		results = results[:limit]
		last := results[limit-1]
		token := pagination.EncodeToken(last.entryDate, last.line.CreatedAt)
		nextTokenVal = &token
	}

	lines := make([]domain.JournalLine, len(results))
	for i, item := range results {
		lines[i] = item.line
	}
	return lines, nextTokenVal, nil
}
