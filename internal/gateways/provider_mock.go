package gateways

import (
	"context"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/kobopay/bvn-bulk-service/internal/core/domain"
	"github.com/kobopay/bvn-bulk-service/internal/core/ports"
)

const (
	mockMinIdentifierLen = 11
	mockErrorChance      = 0.9 // draws above this simulate a provider server error
	mockMinLatency       = 10 * time.Millisecond
	mockMaxLatency       = 100 * time.Millisecond
)

var mockIdentity = domain.ProviderIdentity{
	FirstName:   "JUSTIN",
	MiddleName:  "ABEL",
	LastName:    "ADAM",
	Gender:      "Male",
	PhoneNumber: "08144618246",
	DOB:         "1901-06-15",
	PhotoID:     "https://randomuser.me/api/portraits/men/91.jpg",
}

// MockProvider simulates the verification provider with weighted random
// outcomes and a small random latency to emulate network variance.
type MockProvider struct {
	mu    sync.Mutex
	rnd   *rand.Rand
	sleep func(d time.Duration)
}

// MockProviderOption configures a MockProvider instance.
type MockProviderOption func(*MockProvider)

// WithMockSeed makes the outcome sequence deterministic. For tests.
func WithMockSeed(seed int64) MockProviderOption {
	return func(p *MockProvider) {
		p.rnd = rand.New(rand.NewSource(seed))
	}
}

// WithMockSleep replaces the latency sleep. For tests.
func WithMockSleep(sleep func(d time.Duration)) MockProviderOption {
	return func(p *MockProvider) {
		if sleep != nil {
			p.sleep = sleep
		}
	}
}

// NewMockProvider creates a simulated provider.
func NewMockProvider(opts ...MockProviderOption) ports.VerificationProvider {
	p := &MockProvider{
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep: time.Sleep,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Lookup returns a deterministic rejection for identifiers shorter than 11
// characters. Otherwise 10% of calls simulate a server error; the remaining 90%
// split evenly between a successful match and a successful call without match.
func (p *MockProvider) Lookup(_ context.Context, bvn string) (*domain.ProviderResponse, error) {
	p.mu.Lock()
	chance := p.rnd.Float64()
	latency := mockMinLatency + time.Duration(p.rnd.Int63n(int64(mockMaxLatency-mockMinLatency)+1))
	p.mu.Unlock()

	p.sleep(latency)

	if len(bvn) < mockMinIdentifierLen {
		return &domain.ProviderResponse{
			StatusCode: http.StatusBadRequest,
			Status:     "failed",
			Message:    "Invalid bvn. please check and try again",
		}, nil
	}

	switch {
	case chance > mockErrorChance:
		return &domain.ProviderResponse{StatusCode: http.StatusInternalServerError}, nil
	case chance > 0.5:
		identity := mockIdentity
		return &domain.ProviderResponse{
			StatusCode: http.StatusOK,
			Status:     "successful",
			Message:    "Lookup Successful",
			Data:       &identity,
		}, nil
	default:
		return &domain.ProviderResponse{
			StatusCode: http.StatusBadRequest,
			Status:     "failed",
			Message:    "Sorry, lookup failed. Please check the details and try again",
		}, nil
	}
}
