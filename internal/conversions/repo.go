package conversions

import "context"

const (
	DefaultListLimit = 20
	MaxListLimit     = 50
)

// Repo persists conversion ledger entries.
type Repo interface {
	Create(ctx context.Context, c Conversion) error
	ListRecent(ctx context.Context, limit int) ([]Conversion, error)
}

// ClampLimit bounds a requested page size to (0, MaxListLimit].
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
