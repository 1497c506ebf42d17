package health

import (
	"context"
	"time"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	db Pinger
}

// NewService constructs a health service. db may be nil when the ledger is
// held in memory.
func NewService(db Pinger) *Service {
	return &Service{db: db}
}

// Status reports overall health and, when a database is configured, whether
// it answers a ping.
func (s *Service) Status(ctx context.Context) (map[string]any, bool) {
	if s == nil || s.db == nil {
		return map[string]any{"ok": true}, true
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		return map[string]any{"ok": false, "database": "unreachable"}, false
	}
	return map[string]any{"ok": true, "database": "ok"}, true
}
