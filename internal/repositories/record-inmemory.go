package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kobopay/bvn-bulk-service/internal/core/domain"
)

type recordInMemory struct {
	mu      sync.Mutex
	records map[int64]domain.Record
}

// NewRecordInMemory returns a RecordRepository implemented in memory convenient
// for testing. The claim step holds the same exactly-once guarantee as the
// postgres implementation, enforced by the repository mutex.
func NewRecordInMemory() *recordInMemory {
	return &recordInMemory{records: make(map[int64]domain.Record)}
}

// Save stores a record. Test seeding helper, not part of the port.
func (r *recordInMemory) Save(_ context.Context, record domain.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.PK] = record
}

// Get returns a record by pk. Test inspection helper, not part of the port.
func (r *recordInMemory) Get(_ context.Context, pk int64) (*domain.Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record, found := r.records[pk]; found {
		return &record, true
	}
	return nil, false
}

func (r *recordInMemory) HasUnprocessed(_ context.Context, bulkFk int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range r.records {
		if record.BulkFk == bulkFk && pending(record.JobStatus) {
			return true, nil
		}
	}
	return false, nil
}

func (r *recordInMemory) ClaimBatch(_ context.Context, bulkFk int64, limit int) ([]domain.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var claimable []domain.Record
	for _, record := range r.records {
		if record.BulkFk == bulkFk && pending(record.JobStatus) {
			claimable = append(claimable, record)
		}
	}
	sort.Slice(claimable, func(i, j int) bool {
		if claimable[i].CreatedDate.Equal(claimable[j].CreatedDate) {
			return claimable[i].PK < claimable[j].PK
		}
		return claimable[i].CreatedDate.Before(claimable[j].CreatedDate)
	})
	if len(claimable) > limit {
		claimable = claimable[:limit]
	}

	for i, record := range claimable {
		record.JobStatus = domain.JobStatusInProgress
		record.ModifiedDate = time.Now()
		r.records[record.PK] = record
		claimable[i] = record
	}
	return claimable, nil
}

func (r *recordInMemory) Resolve(_ context.Context, pk int64, outcome domain.Outcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, found := r.records[pk]
	if !found || record.JobStatus == domain.JobStatusCompleted {
		return nil
	}
	record.JobStatus = outcome.JobStatus
	record.Status = outcome.Status
	record.TransactionStatus = outcome.TransactionStatus
	record.RetrievalMode = outcome.RetrievalMode
	record.FailureReason = outcome.FailureReason
	record.ModifiedDate = time.Now()
	r.records[pk] = record
	return nil
}

func (r *recordInMemory) CountIncomplete(_ context.Context, bulkFk int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, record := range r.records {
		if record.BulkFk == bulkFk && record.JobStatus != domain.JobStatusCompleted {
			total++
		}
	}
	return total, nil
}

func (r *recordInMemory) Count(_ context.Context, bulkFk int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, record := range r.records {
		if record.BulkFk == bulkFk {
			total++
		}
	}
	return total, nil
}

func pending(status domain.JobStatus) bool {
	return status == "" || status == domain.JobStatusPending
}
