package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/kobopay/bvn-bulk-service/internal/core/domain"
)

type bulkInMemory struct {
	mu    sync.Mutex
	bulks map[int64]domain.BulkVerification
}

// NewBulkInMemory returns a BulkRepository implemented in memory convenient for testing
func NewBulkInMemory() *bulkInMemory {
	return &bulkInMemory{bulks: make(map[int64]domain.BulkVerification)}
}

// Save stores a bulk job. Test seeding helper, not part of the port.
func (r *bulkInMemory) Save(_ context.Context, bulk domain.BulkVerification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bulks[bulk.PK] = bulk
}

func (r *bulkInMemory) GetByPK(_ context.Context, pk int64) (*domain.BulkVerification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if bulk, found := r.bulks[pk]; found {
		return &bulk, nil
	}
	return nil, ErrBulkNotFound
}

func (r *bulkInMemory) UpdateStatus(_ context.Context, pk int64, status domain.BulkStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	bulk, found := r.bulks[pk]
	if !found {
		return ErrBulkNotFound
	}
	bulk.Status = status
	bulk.ModifiedDate = time.Now()
	r.bulks[pk] = bulk
	return nil
}

func (r *bulkInMemory) Complete(_ context.Context, pk int64, completion, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	bulk, found := r.bulks[pk]
	if !found {
		return ErrBulkNotFound
	}
	bulk.Status = domain.BulkStatusCompleted
	bulk.CompletionDate = &completion
	bulk.ExpiryDate = &expiry
	bulk.ModifiedDate = completion
	r.bulks[pk] = bulk
	return nil
}
