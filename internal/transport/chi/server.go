// Package chi wires the vendex HTTP API.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/greenplate/vendex/internal/domain"
	domtag "github.com/greenplate/vendex/internal/domain/tag"
	domven "github.com/greenplate/vendex/internal/domain/vendor"
	"github.com/greenplate/vendex/internal/logger"
	"github.com/greenplate/vendex/internal/metrics"
	healthuc "github.com/greenplate/vendex/internal/usecase/health"
	searchuc "github.com/greenplate/vendex/internal/usecase/search"
	taguc "github.com/greenplate/vendex/internal/usecase/tag"
	vendoruc "github.com/greenplate/vendex/internal/usecase/vendor"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server exposes the search and vendor usecases over HTTP.
type Server struct {
	search        *searchuc.Service
	vendors       *vendoruc.Service
	tags          *taguc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	vendors *vendoruc.Service,
	tags *taguc.Service,
	health *healthuc.Service,
	log *zap.Logger,
) *Server {
	s := &Server{
		search:  search,
		vendors: vendors,
		tags:    tags,
		health:  health,
		logger:  log,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrVendorNotFound, http.StatusNotFound, "vendor_not_found"),
		sentinelHandler(domain.ErrVendorExists, http.StatusConflict, "vendor_already_exists"),
		sentinelHandler(domain.ErrTagNotFound, http.StatusNotFound, "tag_not_found"),
		sentinelHandler(domain.ErrTagExists, http.StatusConflict, "tag_already_exists"),
		sentinelHandler(domain.ErrInvalidPool, http.StatusBadRequest, "invalid_pool"),
		sentinelHandler(domain.ErrInvalidCoordinates, http.StatusBadRequest, "invalid_coordinates"),
	}
	return s
}

// Router builds the chi router with middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(metrics.Middleware())
	r.Use(s.loggerMiddleware())

	r.Get("/healthz", s.Healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/search", s.Search)

	r.Route("/vendors", func(r chi.Router) {
		r.Post("/", s.CreateVendor)
		r.Get("/", s.ListVendors)
		r.Get("/{id}", s.GetVendor)
		r.Post("/{id}/approve", s.ApproveVendor)
	})

	r.Route("/tags", func(r chi.Router) {
		r.Post("/", s.CreateTag)
		r.Get("/", s.ListTags)
	})

	r.Get("/neighborhoods", s.Neighborhoods)

	return r
}

func (s *Server) loggerMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.ContextWithLogger(r.Context(), s.logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Search handles GET /search?q=...&pool=approved|pending|all.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "query parameter q is required")
		return
	}

	pool := domven.Pool(r.URL.Query().Get("pool"))
	if pool == "" {
		pool = domven.PoolApproved
	}
	if !pool.IsValid() {
		writeError(w, http.StatusBadRequest, "invalid_pool", "pool must be approved, pending or all")
		return
	}

	candidates, err := s.vendors.Pool(r.Context(), pool)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp := s.search.Search(r.Context(), query, candidates)
	writeJSON(w, http.StatusOK, searchResponseToJSON(&resp))
}

// CreateVendor handles POST /vendors.
func (s *Server) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var req createVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "Vendor name is required")
		return
	}

	v, err := s.vendors.Register(r.Context(), vendoruc.RegisterInput{
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		Website:     req.Website,
		Notes:       req.Notes,
		CuisineTags: req.CuisineTags,
		FeatureTags: req.FeatureTags,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, vendorToJSON(&v))
}

// ListVendors handles GET /vendors?pool=....
func (s *Server) ListVendors(w http.ResponseWriter, r *http.Request) {
	pool := domven.Pool(r.URL.Query().Get("pool"))
	if pool == "" {
		pool = domven.PoolApproved
	}

	vendors, err := s.vendors.Pool(r.Context(), pool)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]vendorJSON, len(vendors))
	for i := range vendors {
		items[i] = vendorToJSON(&vendors[i])
	}
	writeJSON(w, http.StatusOK, vendorListResponse{Vendors: items, Count: len(items)})
}

// GetVendor handles GET /vendors/{id}.
func (s *Server) GetVendor(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid vendor id")
		return
	}

	v, err := s.vendors.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vendorToJSON(&v))
}

// ApproveVendor handles POST /vendors/{id}/approve.
func (s *Server) ApproveVendor(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid vendor id")
		return
	}

	v, err := s.vendors.Approve(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vendorToJSON(&v))
}

// CreateTag handles POST /tags.
func (s *Server) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	t, err := s.tags.Create(r.Context(), req.Name, domtag.Kind(req.Kind), req.Description)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tagToJSON(&t))
}

// ListTags handles GET /tags.
func (s *Server) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.tags.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]tagJSON, len(tags))
	for i := range tags {
		items[i] = tagToJSON(&tags[i])
	}
	writeJSON(w, http.StatusOK, tagListResponse{Tags: items, Count: len(items)})
}

// Neighborhoods handles GET /neighborhoods.
func (s *Server) Neighborhoods(w http.ResponseWriter, r *http.Request) {
	names, err := s.vendors.Neighborhoods(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"neighborhoods": names, "count": len(names)})
}

// Healthz handles GET /healthz.
func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{"status": report.Status, "checks": report.Checks})
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}
