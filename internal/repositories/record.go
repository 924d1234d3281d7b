package repositories

import (
	"context"

	"github.com/jackc/pgx/v4"

	"github.com/kobopay/bvn-bulk-service/internal/core/domain"
	"github.com/kobopay/bvn-bulk-service/internal/db"
)

// RecordRepository is a postgres repository for bulk records
type RecordRepository struct {
	q db.Querier
}

// NewRecord creates a new RecordRepository
func NewRecord(conn db.Storage) *RecordRepository {
	return &RecordRepository{q: conn.Pgx}
}

// HasUnprocessed tells whether the bulk still owns pending records
func (r *RecordRepository) HasUnprocessed(ctx context.Context, bulkFk int64) (bool, error) {
	sql := `SELECT COUNT(*) FROM bulk_records
	        WHERE bulk_fk = $1 AND (job_status IS NULL OR job_status = $2)`

	var total int
	if err := r.q.QueryRow(ctx, sql, bulkFk, domain.JobStatusPending).Scan(&total); err != nil {
		return false, err
	}
	return total > 0, nil
}

// ClaimBatch claims up to limit pending records oldest first, flipping them to
// IN_PROGRESS inside one transaction. FOR UPDATE SKIP LOCKED guarantees that a
// row is handed to exactly one concurrent claimant.
func (r *RecordRepository) ClaimBatch(ctx context.Context, bulkFk int64, limit int) ([]domain.Record, error) {
	var claimed []domain.Record

	err := r.q.BeginFunc(ctx, func(tx pgx.Tx) error {
		sql := `SELECT pk, search_parameter, created_date
		        FROM bulk_records
		        WHERE (job_status IS NULL OR job_status = $2)
		        AND bulk_fk = $1
		        ORDER BY created_date ASC
		        LIMIT $3
		        FOR UPDATE SKIP LOCKED`

		rows, err := tx.Query(ctx, sql, bulkFk, domain.JobStatusPending, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			record := domain.Record{BulkFk: bulkFk, JobStatus: domain.JobStatusInProgress}
			if err := rows.Scan(&record.PK, &record.SearchParameter, &record.CreatedDate); err != nil {
				return err
			}
			claimed = append(claimed, record)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		if len(claimed) == 0 {
			return nil
		}

		pks := make([]int64, len(claimed))
		for i, record := range claimed {
			pks[i] = record.PK
		}

		update := `UPDATE bulk_records
		           SET job_status = $2, modified_date = now()
		           WHERE pk = ANY($1)`
		_, err = tx.Exec(ctx, update, pks, domain.JobStatusInProgress)
		return err
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

// Resolve writes the terminal outcome of a record. Records already COMPLETED
// are left untouched.
func (r *RecordRepository) Resolve(ctx context.Context, pk int64, outcome domain.Outcome) error {
	sql := `UPDATE bulk_records
	        SET job_status = $2,
	            status = $3,
	            transaction_status = $4,
	            retrieval_mode = $5,
	            failure_reason = $6,
	            modified_date = now()
	        WHERE pk = $1 AND job_status IS DISTINCT FROM $7`

	_, err := r.q.Exec(ctx, sql, pk,
		outcome.JobStatus,
		outcome.Status,
		outcome.TransactionStatus,
		outcome.RetrievalMode,
		outcome.FailureReason,
		domain.JobStatusCompleted,
	)
	return err
}

// CountIncomplete counts records of the bulk not yet COMPLETED
func (r *RecordRepository) CountIncomplete(ctx context.Context, bulkFk int64) (int, error) {
	sql := `SELECT COUNT(*) FROM bulk_records
	        WHERE bulk_fk = $1 AND (job_status IS NULL OR job_status <> $2)`

	var total int
	if err := r.q.QueryRow(ctx, sql, bulkFk, domain.JobStatusCompleted).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// Count counts all records belonging to the bulk
func (r *RecordRepository) Count(ctx context.Context, bulkFk int64) (int, error) {
	sql := `SELECT COUNT(*) FROM bulk_records WHERE bulk_fk = $1`

	var total int
	if err := r.q.QueryRow(ctx, sql, bulkFk).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
