package chi

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/greenplate/vendex/internal/domain"
	"github.com/greenplate/vendex/internal/domain/geo"
	domtag "github.com/greenplate/vendex/internal/domain/tag"
	domven "github.com/greenplate/vendex/internal/domain/vendor"
	healthuc "github.com/greenplate/vendex/internal/usecase/health"
	searchuc "github.com/greenplate/vendex/internal/usecase/search"
	taguc "github.com/greenplate/vendex/internal/usecase/tag"
	vendoruc "github.com/greenplate/vendex/internal/usecase/vendor"
)

// --- Vendor repository mock ---

type memVendorRepo struct {
	mu            sync.Mutex
	vendors       map[uuid.UUID]domven.Vendor
	order         []uuid.UUID
	neighborhoods map[string]struct{}
}

func newMemVendorRepo() *memVendorRepo {
	return &memVendorRepo{
		vendors:       make(map[uuid.UUID]domven.Vendor),
		neighborhoods: make(map[string]struct{}),
	}
}

func (m *memVendorRepo) Create(_ context.Context, v *domven.Vendor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.vendors {
		if strings.EqualFold(existing.Name(), v.Name()) {
			return domain.ErrVendorExists
		}
	}
	m.vendors[v.ID()] = *v
	m.order = append(m.order, v.ID())
	return nil
}

func (m *memVendorRepo) Get(_ context.Context, id uuid.UUID) (domven.Vendor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vendors[id]
	if !ok {
		return domven.Vendor{}, domain.ErrVendorNotFound
	}
	return v, nil
}

func (m *memVendorRepo) Update(_ context.Context, v *domven.Vendor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vendors[v.ID()]; !ok {
		return domain.ErrVendorNotFound
	}
	m.vendors[v.ID()] = *v
	return nil
}

func (m *memVendorRepo) Approve(_ context.Context, id uuid.UUID) (domven.Vendor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vendors[id]
	if !ok {
		return domven.Vendor{}, domain.ErrVendorNotFound
	}
	v.Approve()
	m.vendors[id] = v
	return v, nil
}

func (m *memVendorRepo) Pool(_ context.Context, pool domven.Pool) ([]domven.Vendor, error) {
	if !pool.IsValid() {
		return nil, domain.ErrInvalidPool
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domven.Vendor
	for _, id := range m.order {
		v := m.vendors[id]
		switch pool {
		case domven.PoolApproved:
			if !v.IsApproved() {
				continue
			}
		case domven.PoolPending:
			if v.IsApproved() {
				continue
			}
		}
		out = append(out, v)
	}
	return out, nil
}

func (m *memVendorRepo) AddNeighborhood(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.neighborhoods[name] = struct{}{}
	return nil
}

func (m *memVendorRepo) Neighborhoods(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.neighborhoods))
	for n := range m.neighborhoods {
		out = append(out, n)
	}
	return out, nil
}

// --- Tag repository mock ---

type memTagRepo struct {
	mu   sync.Mutex
	tags map[string]domtag.Tag
}

func newMemTagRepo() *memTagRepo {
	return &memTagRepo{tags: make(map[string]domtag.Tag)}
}

func (m *memTagRepo) Create(_ context.Context, t *domtag.Tag) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tags[t.Name()]; ok {
		return domain.ErrTagExists
	}
	m.tags[t.Name()] = *t
	return nil
}

func (m *memTagRepo) GetByName(_ context.Context, name string) (domtag.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tags[name]
	if !ok {
		return domtag.Tag{}, domain.ErrTagNotFound
	}
	return t, nil
}

func (m *memTagRepo) List(_ context.Context) ([]domtag.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domtag.Tag, 0, len(m.tags))
	for _, t := range m.tags {
		out = append(out, t)
	}
	return out, nil
}

// --- Geocoder and health mocks ---

type mockGeocoder struct {
	loc geo.Location
	err error
}

func (m *mockGeocoder) Resolve(_ context.Context, _ string) (geo.Location, error) {
	if m.err != nil {
		return geo.Location{}, m.err
	}
	return m.loc, nil
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubGeoChecker struct{ err error }

func (s stubGeoChecker) HealthCheck(context.Context) error { return s.err }

// --- Test server ---

type testEnv struct {
	srv        *httptest.Server
	vendorRepo *memVendorRepo
	geocoder   *mockGeocoder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	vendorRepo := newMemVendorRepo()
	gc := &mockGeocoder{loc: geo.Location{
		Point:        geo.Point{Lat: 39.9526, Lon: -75.1652},
		Neighborhood: "Fishtown",
	}}

	server := NewServer(
		searchuc.New(gc, nil, searchuc.DefaultRadiusMiles),
		vendoruc.New(vendorRepo, gc),
		taguc.New(newMemTagRepo()),
		healthuc.New(stubPinger{}, stubGeoChecker{}),
		zap.NewNop(),
	)
	srv := httptest.NewServer(server.Router())
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, vendorRepo: vendorRepo, geocoder: gc}
}
