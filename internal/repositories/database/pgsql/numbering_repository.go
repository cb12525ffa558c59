package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uctoflow/ledger-engine/internal/apperrors"
	portsrepo "github.com/uctoflow/ledger-engine/internal/core/ports/repositories"
)

type PgxNumberingRepository struct {
	BaseRepository
}

// newPgxNumberingRepository creates the document sequence counter repository.
func newPgxNumberingRepository(pool *pgxpool.Pool) portsrepo.NumberingRepository {
	return &PgxNumberingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.NumberingRepository = (*PgxNumberingRepository)(nil)

// NextSequenceInTx increments the counter for (tenant, document type, fiscal
// year) inside the caller's transaction and returns the new value. The upsert
// takes a row lock, so two concurrent postings of the same tuple serialize
// here and can never observe the same value. Rolling back the enclosing
// transaction releases the value before any committed posting sees it, which
// keeps committed numbering gapless.
func (r *PgxNumberingRepository) NextSequenceInTx(ctx context.Context, tx pgx.Tx, tenantID string, documentType string, fiscalYear int) (int64, error) {
	query := `
		INSERT INTO document_sequences (tenant_id, document_type, fiscal_year, last_value)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (tenant_id, document_type, fiscal_year)
		DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value;
	`
	var value int64
	if err := tx.QueryRow(ctx, query, tenantID, documentType, fiscalYear).Scan(&value); err != nil {
		return 0, apperrors.NewAppError(500, "failed to advance document sequence", err)
	}
	return value, nil
}
