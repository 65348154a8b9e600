package search

import (
	"context"

	"github.com/greenplate/vendex/internal/domain/geo"
	"github.com/greenplate/vendex/internal/domain/search/result"
)

// Geocoder resolves free-text addresses to coordinates. Resolution is the
// only network call on the search path and must honor context deadlines.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (geo.Location, error)
}

// QueryLog persists ranked queries for offline analysis. Writes are
// best-effort: the orchestrator never blocks a response on them.
type QueryLog interface {
	Record(ctx context.Context, q result.RankedQuery) error
}
