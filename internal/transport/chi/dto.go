package chi

import (
	"encoding/json"
	"net/http"
	"time"

	domtag "github.com/greenplate/vendex/internal/domain/tag"
	domven "github.com/greenplate/vendex/internal/domain/vendor"
	searchuc "github.com/greenplate/vendex/internal/usecase/search"
)

type createVendorRequest struct {
	Name        string   `json:"name"`
	Address     string   `json:"address,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Website     string   `json:"website,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	CuisineTags []string `json:"cuisine_tags,omitempty"`
	FeatureTags []string `json:"feature_tags,omitempty"`
}

type createTagRequest struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Description string `json:"description,omitempty"`
}

type vendorJSON struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Website      string   `json:"website,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Neighborhood string   `json:"neighborhood,omitempty"`
	Approved     bool     `json:"approved"`
	CuisineTags  []string `json:"cuisine_tags,omitempty"`
	FeatureTags  []string `json:"feature_tags,omitempty"`
	CreatedAt    string   `json:"created_at"`
}

type vendorListResponse struct {
	Vendors []vendorJSON `json:"vendors"`
	Count   int          `json:"count"`
}

type tagJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Description string `json:"description,omitempty"`
}

type tagListResponse struct {
	Tags  []tagJSON `json:"tags"`
	Count int       `json:"count"`
}

type strategyResultJSON struct {
	Strategy string `json:"strategy"`
	Count    int    `json:"count"`
	Summary  string `json:"summary,omitempty"`
	Failed   bool   `json:"failed,omitempty"`
}

type searchResponseJSON struct {
	Query      string               `json:"query"`
	Count      int                  `json:"count"`
	Ranking    []string             `json:"ranking"`
	Vendors    []vendorJSON         `json:"vendors"`
	Summaries  []string             `json:"summaries"`
	Strategies []strategyResultJSON `json:"strategies"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func vendorToJSON(v *domven.Vendor) vendorJSON {
	out := vendorJSON{
		ID:           v.ID().String(),
		Name:         v.Name(),
		Address:      v.Address(),
		Phone:        v.Phone(),
		Website:      v.Website(),
		Notes:        v.Notes(),
		Neighborhood: v.Neighborhood(),
		Approved:     v.IsApproved(),
		CuisineTags:  v.CuisineTags(),
		FeatureTags:  v.FeatureTags(),
		CreatedAt:    v.CreatedAt().Format(time.RFC3339Nano),
	}
	if loc := v.Location(); loc != nil {
		lat, lon := loc.Lat, loc.Lon
		out.Latitude = &lat
		out.Longitude = &lon
	}
	return out
}

func tagToJSON(t *domtag.Tag) tagJSON {
	return tagJSON{
		ID:          t.ID().String(),
		Name:        t.Name(),
		Kind:        string(t.Kind()),
		Description: t.Description(),
	}
}

func searchResponseToJSON(resp *searchuc.Response) searchResponseJSON {
	out := searchResponseJSON{
		Query:     resp.Query,
		Count:     resp.Count(),
		Summaries: resp.Summaries(),
	}

	out.Ranking = make([]string, len(resp.Ranking))
	for i, st := range resp.Ranking {
		out.Ranking[i] = string(st)
	}

	out.Vendors = make([]vendorJSON, len(resp.Vendors))
	for i := range resp.Vendors {
		out.Vendors[i] = vendorToJSON(&resp.Vendors[i])
	}

	out.Strategies = make([]strategyResultJSON, len(resp.Results))
	for i := range resp.Results {
		r := &resp.Results[i]
		out.Strategies[i] = strategyResultJSON{
			Strategy: string(r.Strategy()),
			Count:    r.Count(),
			Summary:  r.Summary(),
			Failed:   r.IsFailed(),
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
