package ports

import (
	"context"

	"github.com/kobopay/bvn-bulk-service/internal/core/domain"
)

// VerificationProvider resolves an identifier against the verification backend.
// A transport failure returns a nil response together with the error; the
// caller classifies both.
type VerificationProvider interface {
	Lookup(ctx context.Context, bvn string) (*domain.ProviderResponse, error)
}
