package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// NumberingRepository hands out unique, strictly increasing sequence values
// per (tenant, document type, fiscal year). The increment must be a
// transactionally guarded persisted counter, never an in-process variable:
// the ledger is shared by many workers and replicas.
type NumberingRepository interface {
	// NextSequenceInTx increments and returns the counter for the tuple
	// inside the caller's transaction, so a rolled-back posting never burns
	// a number that was observed by a committed one.
	NextSequenceInTx(ctx context.Context, tx pgx.Tx, tenantID string, documentType string, fiscalYear int) (int64, error)
}
