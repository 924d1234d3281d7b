package ports

import (
	"context"

	"github.com/kobopay/bvn-bulk-service/internal/core/domain"
)

// RecordRepository is the persistence port for per record state. ClaimBatch is
// the concurrency control point of the whole processing loop: the selection of
// pending rows and their transition to IN_PROGRESS must be atomic with respect
// to any other concurrent claimant.
type RecordRepository interface {
	// HasUnprocessed tells whether any record of the bulk still has a NULL or
	// PENDING job status.
	HasUnprocessed(ctx context.Context, bulkFk int64) (bool, error)
	// ClaimBatch atomically claims up to limit pending records, oldest first,
	// flipping them to IN_PROGRESS. Rows locked by a concurrent claimant are
	// skipped, never double claimed.
	ClaimBatch(ctx context.Context, bulkFk int64, limit int) ([]domain.Record, error)
	// Resolve writes the terminal outcome of one record.
	Resolve(ctx context.Context, pk int64, outcome domain.Outcome) error
	// CountIncomplete counts records of the bulk whose job status is not COMPLETED.
	CountIncomplete(ctx context.Context, bulkFk int64) (int, error)
	// Count counts all records belonging to the bulk.
	Count(ctx context.Context, bulkFk int64) (int, error)
}
