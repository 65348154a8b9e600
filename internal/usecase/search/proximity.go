package search

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/greenplate/vendex/internal/domain/geo"
	"github.com/greenplate/vendex/internal/domain/search/result"
	"github.com/greenplate/vendex/internal/domain/search/strategy"
	"github.com/greenplate/vendex/internal/domain/vendor"
	"github.com/greenplate/vendex/internal/metrics"
)

// DefaultRadiusMiles is the proximity search radius.
const DefaultRadiusMiles = 0.75

// searchByProximity geocodes the query and returns vendors within
// radiusMiles of it, nearest first. The bounding box only prunes
// candidates; the Haversine distance decides admission. Vendors without
// coordinates are excluded outright.
func searchByProximity(
	ctx context.Context, geocoder Geocoder, addressQuery string,
	radiusMiles float64, pool []vendor.Vendor,
) result.Result {
	start := time.Now()
	loc, err := geocoder.Resolve(ctx, addressQuery)
	metrics.ObserveGeocodeDuration(time.Since(start).Seconds(), err == nil)
	if err != nil {
		return result.Failed(strategy.Address, err)
	}

	box := geo.NewBoundingBox(loc.Point, radiusMiles)

	type match struct {
		id     uuid.UUID
		meters float64
	}
	var matches []match
	for i := range pool {
		p := pool[i].Location()
		if p == nil || !box.Contains(*p) {
			continue
		}
		meters := geo.Haversine(loc.Point, *p)
		if geo.MetersToMiles(meters) <= radiusMiles {
			matches = append(matches, match{id: pool[i].ID(), meters: meters})
		}
	}

	// Stable: equidistant vendors keep candidate-pool order.
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].meters < matches[j].meters })

	ids := make([]uuid.UUID, len(matches))
	for i, m := range matches {
		ids[i] = m.id
	}

	summary := fmt.Sprintf(
		"Found %d results where address is near %q",
		len(ids), addressQuery,
	)
	return result.New(strategy.Address, summary, ids)
}
