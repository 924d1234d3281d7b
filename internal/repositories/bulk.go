package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/kobopay/bvn-bulk-service/internal/core/domain"
	"github.com/kobopay/bvn-bulk-service/internal/db"
)

// ErrBulkNotFound is returned when a bulk verification job is not found
var ErrBulkNotFound = errors.New("bulk verification not found")

// BulkRepository is a postgres repository for bulk verification jobs
type BulkRepository struct {
	q db.Querier
}

// NewBulk creates a new BulkRepository
func NewBulk(conn db.Storage) *BulkRepository {
	return &BulkRepository{q: conn.Pgx}
}

// GetByPK returns a bulk verification job by primary key
func (r *BulkRepository) GetByPK(ctx context.Context, pk int64) (*domain.BulkVerification, error) {
	sql := `SELECT pk, bulk_id, COALESCE(status, ''), service_mode, wrapper_fk, file_name,
	               completion_date, expiry_date, created_date, modified_date
	        FROM bulk_verifications
	        WHERE pk = $1`

	var bulk domain.BulkVerification
	err := r.q.QueryRow(ctx, sql, pk).Scan(
		&bulk.PK,
		&bulk.BulkID,
		&bulk.Status,
		&bulk.ServiceMode,
		&bulk.WrapperFk,
		&bulk.FileName,
		&bulk.CompletionDate,
		&bulk.ExpiryDate,
		&bulk.CreatedDate,
		&bulk.ModifiedDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBulkNotFound
		}
		return nil, err
	}
	return &bulk, nil
}

// UpdateStatus sets the job status and refreshes the modified date
func (r *BulkRepository) UpdateStatus(ctx context.Context, pk int64, status domain.BulkStatus) error {
	sql := `UPDATE bulk_verifications SET status = $2, modified_date = now() WHERE pk = $1`
	tag, err := r.q.Exec(ctx, sql, pk, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBulkNotFound
	}
	return nil
}

// Complete marks the job COMPLETED with its completion and expiry dates
func (r *BulkRepository) Complete(ctx context.Context, pk int64, completion, expiry time.Time) error {
	sql := `UPDATE bulk_verifications
	        SET status = $2, completion_date = $3, expiry_date = $4, modified_date = $3
	        WHERE pk = $1`
	tag, err := r.q.Exec(ctx, sql, pk, domain.BulkStatusCompleted, completion, expiry)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBulkNotFound
	}
	return nil
}
