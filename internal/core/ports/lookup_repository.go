package ports

import (
	"context"

	"github.com/kobopay/bvn-bulk-service/internal/core/domain"
)

// LookupRepository is the persistence port for the identity lookup table
type LookupRepository interface {
	Get(ctx context.Context, searchParameter string) (*domain.LookupEntry, error)
	Upsert(ctx context.Context, entry domain.LookupEntry) error
}
