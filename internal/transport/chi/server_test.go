package chi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/greenplate/vendex/internal/domain"
	healthuc "github.com/greenplate/vendex/internal/usecase/health"
	searchuc "github.com/greenplate/vendex/internal/usecase/search"
	taguc "github.com/greenplate/vendex/internal/usecase/tag"
	vendoruc "github.com/greenplate/vendex/internal/usecase/vendor"
)

func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp
}

func createVendor(t *testing.T, env *testEnv, req createVendorRequest) vendorJSON {
	t.Helper()
	var created vendorJSON
	resp := doJSON(t, http.MethodPost, env.srv.URL+"/vendors", req, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create vendor %q: status %d", req.Name, resp.StatusCode)
	}
	return created
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	var body map[string]any
	resp := doJSON(t, http.MethodGet, env.srv.URL+"/healthz", nil, &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v", body["status"])
	}
}

func TestHealthz_Degraded(t *testing.T) {
	server := NewServer(
		searchuc.New(&mockGeocoder{}, nil, searchuc.DefaultRadiusMiles),
		vendoruc.New(newMemVendorRepo(), &mockGeocoder{}),
		taguc.New(newMemTagRepo()),
		healthuc.New(stubPinger{err: domain.ErrGeocodeFailed}, nil),
		zap.NewNop(),
	)
	srv := httptest.NewServer(server.Router())
	defer srv.Close()

	resp := doJSON(t, http.MethodGet, srv.URL+"/healthz", nil, nil)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
}

func TestCreateVendor(t *testing.T) {
	env := newTestEnv(t)

	created := createVendor(t, env, createVendorRequest{
		Name:        "Casa Verde",
		Address:     "742 Green St",
		CuisineTags: []string{"Mexican"},
	})

	if created.Approved {
		t.Error("new vendor must start pending")
	}
	if created.Latitude == nil || *created.Latitude != 39.9526 {
		t.Errorf("latitude = %v, want geocoded value", created.Latitude)
	}
	if created.Neighborhood != "Fishtown" {
		t.Errorf("neighborhood = %q", created.Neighborhood)
	}
	if len(created.CuisineTags) != 1 || created.CuisineTags[0] != "mexican" {
		t.Errorf("cuisine tags = %v", created.CuisineTags)
	}
}

func TestCreateVendor_GeocodeFailureTolerated(t *testing.T) {
	env := newTestEnv(t)
	env.geocoder.err = domain.ErrGeocodeFailed

	created := createVendor(t, env, createVendorRequest{
		Name:    "Casa Verde",
		Address: "742 Green St",
	})
	if created.Latitude != nil {
		t.Error("vendor must be stored without coordinates when geocoding fails")
	}
}

func TestCreateVendor_Duplicate(t *testing.T) {
	env := newTestEnv(t)
	createVendor(t, env, createVendorRequest{Name: "Casa Verde"})

	resp := doJSON(t, http.MethodPost, env.srv.URL+"/vendors", createVendorRequest{Name: "casa verde"}, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
}

func TestCreateVendor_Validation(t *testing.T) {
	env := newTestEnv(t)

	resp := doJSON(t, http.MethodPost, env.srv.URL+"/vendors", createVendorRequest{}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty name: status = %d, want 400", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodPost, env.srv.URL+"/vendors", bytes.NewReader([]byte("{not json")))
	raw, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer func() { _ = raw.Body.Close() }()
	if raw.StatusCode != http.StatusBadRequest {
		t.Fatalf("garbage body: status = %d, want 400", raw.StatusCode)
	}
}

func TestGetVendor(t *testing.T) {
	env := newTestEnv(t)
	created := createVendor(t, env, createVendorRequest{Name: "Casa Verde"})

	var got vendorJSON
	resp := doJSON(t, http.MethodGet, env.srv.URL+"/vendors/"+created.ID, nil, &got)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got.Name != "Casa Verde" {
		t.Errorf("name = %q", got.Name)
	}
}

func TestGetVendor_Errors(t *testing.T) {
	env := newTestEnv(t)

	resp := doJSON(t, http.MethodGet, env.srv.URL+"/vendors/not-a-uuid", nil, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad id: status = %d, want 400", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, env.srv.URL+"/vendors/0e1aa9fb-0f27-4038-a7ee-4ba024d7c8e9", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown id: status = %d, want 404", resp.StatusCode)
	}
}

func TestApproveVendor(t *testing.T) {
	env := newTestEnv(t)
	created := createVendor(t, env, createVendorRequest{Name: "Casa Verde"})

	var approved vendorJSON
	resp := doJSON(t, http.MethodPost, env.srv.URL+"/vendors/"+created.ID+"/approve", nil, &approved)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !approved.Approved {
		t.Error("vendor not approved")
	}
}

func TestListVendors_DefaultsToApprovedPool(t *testing.T) {
	env := newTestEnv(t)
	createVendor(t, env, createVendorRequest{Name: "Pending Place"})
	public := createVendor(t, env, createVendorRequest{Name: "Public Place"})
	doJSON(t, http.MethodPost, env.srv.URL+"/vendors/"+public.ID+"/approve", nil, nil)

	var list vendorListResponse
	doJSON(t, http.MethodGet, env.srv.URL+"/vendors", nil, &list)
	if list.Count != 1 || list.Vendors[0].Name != "Public Place" {
		t.Fatalf("list = %+v", list)
	}

	doJSON(t, http.MethodGet, env.srv.URL+"/vendors?pool=all", nil, &list)
	if list.Count != 2 {
		t.Fatalf("all pool count = %d", list.Count)
	}
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)
	veggie := createVendor(t, env, createVendorRequest{Name: "Veggie Grill"})
	doJSON(t, http.MethodPost, env.srv.URL+"/vendors/"+veggie.ID+"/approve", nil, nil)

	var body searchResponseJSON
	resp := doJSON(t, http.MethodGet, env.srv.URL+"/search?q=Veggie", nil, &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body.Count != 1 || body.Vendors[0].Name != "Veggie Grill" {
		t.Fatalf("search body = %+v", body)
	}
	if len(body.Ranking) != 3 || body.Ranking[0] != "name" {
		t.Errorf("ranking = %v", body.Ranking)
	}
	if len(body.Strategies) != 3 {
		t.Errorf("strategies = %v", body.Strategies)
	}
}

func TestSearch_ExcludesPendingByDefault(t *testing.T) {
	env := newTestEnv(t)
	createVendor(t, env, createVendorRequest{Name: "Veggie Grill"})

	var body searchResponseJSON
	doJSON(t, http.MethodGet, env.srv.URL+"/search?q=Veggie", nil, &body)
	if body.Count != 0 {
		t.Fatalf("pending vendor leaked into default search: %+v", body)
	}

	doJSON(t, http.MethodGet, env.srv.URL+"/search?q=Veggie&pool=all", nil, &body)
	if body.Count != 1 {
		t.Fatalf("all pool count = %d", body.Count)
	}
}

func TestSearch_Validation(t *testing.T) {
	env := newTestEnv(t)

	resp := doJSON(t, http.MethodGet, env.srv.URL+"/search", nil, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing q: status = %d, want 400", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, env.srv.URL+"/search?q=x&pool=bogus", nil, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad pool: status = %d, want 400", resp.StatusCode)
	}
}

func TestTags(t *testing.T) {
	env := newTestEnv(t)

	var created tagJSON
	resp := doJSON(t, http.MethodPost, env.srv.URL+"/tags", createTagRequest{Name: "Mexican", Kind: "cuisine"}, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if created.Name != "mexican" {
		t.Errorf("name = %q, want lowercased", created.Name)
	}

	resp = doJSON(t, http.MethodPost, env.srv.URL+"/tags", createTagRequest{Name: "mexican", Kind: "cuisine"}, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate: status = %d, want 409", resp.StatusCode)
	}

	var list tagListResponse
	doJSON(t, http.MethodGet, env.srv.URL+"/tags", nil, &list)
	if list.Count != 1 {
		t.Fatalf("list count = %d", list.Count)
	}
}

func TestNeighborhoods(t *testing.T) {
	env := newTestEnv(t)
	createVendor(t, env, createVendorRequest{Name: "Casa Verde", Address: "742 Green St"})

	var body map[string]any
	doJSON(t, http.MethodGet, env.srv.URL+"/neighborhoods", nil, &body)
	names, _ := body["neighborhoods"].([]any)
	if len(names) != 1 || names[0] != "Fishtown" {
		t.Fatalf("neighborhoods = %v", body)
	}
}
