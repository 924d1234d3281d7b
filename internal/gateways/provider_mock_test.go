package gateways

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noSleep(time.Duration) {}

func TestMockProviderShortIdentifier(t *testing.T) {
	provider := NewMockProvider(WithMockSeed(1), WithMockSleep(noSleep))

	// Too short identifiers are rejected regardless of the random draw.
	for i := 0; i < 50; i++ {
		resp, err := provider.Lookup(context.Background(), "1234567890")
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "failed", resp.Status)
		assert.False(t, resp.Successful())
	}
}

func TestMockProviderOutcomeDistribution(t *testing.T) {
	provider := NewMockProvider(WithMockSeed(42), WithMockSleep(noSleep))

	var matched, noMatch, broken int
	for i := 0; i < 1000; i++ {
		resp, err := provider.Lookup(context.Background(), "12345678901")
		require.NoError(t, err)
		require.NotNil(t, resp)

		switch resp.StatusCode {
		case http.StatusOK:
			require.True(t, resp.Successful())
			require.NotNil(t, resp.Data)
			assert.NotEmpty(t, resp.Data.FirstName)
			matched++
		case http.StatusBadRequest:
			assert.Nil(t, resp.Data)
			noMatch++
		case http.StatusInternalServerError:
			broken++
		default:
			t.Fatalf("unexpected status code %d", resp.StatusCode)
		}
	}

	// Roughly 40% match, 50% no match, 10% server error.
	assert.InDelta(t, 400, matched, 75)
	assert.InDelta(t, 500, noMatch, 75)
	assert.InDelta(t, 100, broken, 50)
}

func TestMockProviderIsDeterministicPerSeed(t *testing.T) {
	a := NewMockProvider(WithMockSeed(7), WithMockSleep(noSleep))
	b := NewMockProvider(WithMockSeed(7), WithMockSleep(noSleep))

	for i := 0; i < 100; i++ {
		respA, err := a.Lookup(context.Background(), "12345678901")
		require.NoError(t, err)
		respB, err := b.Lookup(context.Background(), "12345678901")
		require.NoError(t, err)
		assert.Equal(t, respA.StatusCode, respB.StatusCode)
	}
}
