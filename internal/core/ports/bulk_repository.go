package ports

import (
	"context"
	"time"

	"github.com/kobopay/bvn-bulk-service/internal/core/domain"
)

// BulkRepository is the persistence port for bulk verification jobs
type BulkRepository interface {
	GetByPK(ctx context.Context, pk int64) (*domain.BulkVerification, error)
	UpdateStatus(ctx context.Context, pk int64, status domain.BulkStatus) error
	Complete(ctx context.Context, pk int64, completion, expiry time.Time) error
}
