package search

import (
	"context"
	"testing"

	"github.com/greenplate/vendex/internal/domain/geo"
	"github.com/greenplate/vendex/internal/domain/search/result"
	"github.com/greenplate/vendex/internal/domain/vendor"
)

// --- Mocks ---

type mockGeocoder struct {
	loc   geo.Location
	err   error
	calls int
}

func (m *mockGeocoder) Resolve(_ context.Context, _ string) (geo.Location, error) {
	m.calls++
	if m.err != nil {
		return geo.Location{}, m.err
	}
	return m.loc, nil
}

type mockQueryLog struct {
	recorded chan result.RankedQuery
	err      error
}

func newMockQueryLog() *mockQueryLog {
	return &mockQueryLog{recorded: make(chan result.RankedQuery, 16)}
}

func (m *mockQueryLog) Record(_ context.Context, q result.RankedQuery) error {
	m.recorded <- q
	return m.err
}

// --- Fixtures ---

func makeVendor(t *testing.T, name string, cuisineTags, featureTags []string, loc *geo.Point) vendor.Vendor {
	t.Helper()
	v, err := vendor.New(name, "", "", "", "", cuisineTags, featureTags)
	if err != nil {
		t.Fatalf("vendor.New(%q): %v", name, err)
	}
	v.Approve()
	if loc != nil {
		if err := v.SetLocation(geo.Location{Point: *loc}); err != nil {
			t.Fatalf("SetLocation: %v", err)
		}
	}
	return v
}

// examplePool is the worked example pool: A matches by name, B by tag and
// proximity, C by tag only (no coordinates).
func examplePool(t *testing.T) []vendor.Vendor {
	t.Helper()
	// B sits ~0.5 miles north of the reference point used in tests.
	bLoc := &geo.Point{Lat: 39.9526 + 0.5/69.0, Lon: -75.1652}
	return []vendor.Vendor{
		makeVendor(t, "Veggie Grill", nil, nil, nil),
		makeVendor(t, "Taco Bell", []string{"mexican"}, nil, bLoc),
		makeVendor(t, "Casa Verde", []string{"mexican"}, nil, nil),
	}
}

func testReferencePoint() geo.Point {
	return geo.Point{Lat: 39.9526, Lon: -75.1652}
}
