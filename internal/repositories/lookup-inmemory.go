package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/kobopay/bvn-bulk-service/internal/core/domain"
)

type lookupInMemory struct {
	mu      sync.Mutex
	entries map[string]domain.LookupEntry
}

// NewLookupInMemory returns a LookupRepository implemented in memory convenient for testing
func NewLookupInMemory() *lookupInMemory {
	return &lookupInMemory{entries: make(map[string]domain.LookupEntry)}
}

func (r *lookupInMemory) Get(_ context.Context, searchParameter string) (*domain.LookupEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, found := r.entries[searchParameter]; found {
		return &entry, nil
	}
	return nil, ErrLookupEntryNotFound
}

func (r *lookupInMemory) Upsert(_ context.Context, entry domain.LookupEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	if existing, found := r.entries[entry.SearchParameter]; found {
		entry.CreatedDate = existing.CreatedDate
	} else {
		entry.CreatedDate = now
	}
	entry.ModifiedDate = now
	r.entries[entry.SearchParameter] = entry
	return nil
}
