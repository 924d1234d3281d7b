package health

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	iRedis "github.com/kobopay/bvn-bulk-service/internal/redis"
)

const (
	cache = "cache"
	db    = "db"
)

// Ping reports whether a backing service is reachable.
type Ping interface {
	Ping(ctx context.Context) error
}

// Status holds the set of monitored backends.
type Status struct {
	pingers map[string]Ping
}

// New builds a Status over the given backends. The database pool and the
// redis connection are recognised by type; anything else is ignored.
func New(pingers ...Ping) *Status {
	m := make(map[string]Ping)

	for _, p := range pingers {
		switch t := p.(type) {
		case *pgxpool.Pool:
			m[db] = t
		case iRedis.Wrapper:
			m[cache] = t
		}
	}

	return &Status{pingers: m}
}

// Status pings every monitored backend and reports each one's reachability.
func (h *Status) Status(ctx context.Context) map[string]bool {
	m := make(map[string]bool, len(h.pingers))

	for key, val := range h.pingers {
		m[key] = val.Ping(ctx) == nil
	}

	return m
}
