// Package vendex embeds the vendor search engine in-process: the same
// store, strategies and orchestrator the HTTP server uses, wired behind
// one client.
package vendex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/greenplate/vendex/internal/db"
	dbRedis "github.com/greenplate/vendex/internal/db/redis"
	domtag "github.com/greenplate/vendex/internal/domain/tag"
	domven "github.com/greenplate/vendex/internal/domain/vendor"
	"github.com/greenplate/vendex/internal/logger"
	querylogrepo "github.com/greenplate/vendex/internal/repository/querylog"
	tagrepo "github.com/greenplate/vendex/internal/repository/tag"
	vendorrepo "github.com/greenplate/vendex/internal/repository/vendor"
	"github.com/greenplate/vendex/internal/transport/geocode"
	searchuc "github.com/greenplate/vendex/internal/usecase/search"
	taguc "github.com/greenplate/vendex/internal/usecase/tag"
	vendoruc "github.com/greenplate/vendex/internal/usecase/vendor"
)

const defaultReadinessTimeout = 10 * time.Second

// Re-exported types so callers outside the module can name results.
type (
	// Vendor is a listed business.
	Vendor = domven.Vendor
	// Pool selects the candidate set a search runs over.
	Pool = domven.Pool
	// Tag is a cuisine or feature tag.
	Tag = domtag.Tag
	// TagKind distinguishes cuisine from feature tags.
	TagKind = domtag.Kind
	// SearchResponse is the merged outcome of one search.
	SearchResponse = searchuc.Response
	// RegisterInput holds the fields of a vendor submission.
	RegisterInput = vendoruc.RegisterInput
)

// Pool and kind constants.
const (
	PoolApproved = domven.PoolApproved
	PoolPending  = domven.PoolPending
	PoolAll      = domven.PoolAll

	TagCuisine = domtag.Cuisine
	TagFeature = domtag.Feature
)

// Client is the vendex SDK entry point.
type Client struct {
	store     db.Store
	searchSvc *searchuc.Service
	vendorSvc *vendoruc.Service
	tagSvc    *taguc.Service
	cfg       *clientConfig
}

// New creates a vendex Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{radiusMiles: searchuc.DefaultRadiusMiles}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("vendex: database address required (use WithRedis)")
	}
	if cfg.geocoder == nil && cfg.geocodeURL == "" {
		return nil, errors.New("vendex: geocoder required (use WithGeocoderURL or WithGeocoder)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("vendex: create redis store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("vendex: database not ready: %w", err)
	}

	geocoder := cfg.geocoder
	if geocoder == nil {
		geocoder = geocode.NewClient(cfg.geocodeURL, cfg.geocodeUserAgent, cfg.geocodeTimeout)
	}

	vendorRepo := vendorrepo.New(store, cfg.keyPrefix)
	tagRepo := tagrepo.New(store, cfg.keyPrefix)
	queryLog := querylogrepo.New(store, cfg.keyPrefix, cfg.queryLogCap)

	return &Client{
		store:     store,
		searchSvc: searchuc.New(geocoder, queryLog, cfg.radiusMiles),
		vendorSvc: vendoruc.New(vendorRepo, geocoder),
		tagSvc:    taguc.New(tagRepo),
		cfg:       cfg,
	}, nil
}

// Close releases the database connection.
func (c *Client) Close() {
	c.store.Close()
}

// Search runs the multi-strategy search over the selected pool.
func (c *Client) Search(ctx context.Context, query string, pool Pool) (SearchResponse, error) {
	ctx = c.withLogger(ctx)
	candidates, err := c.vendorSvc.Pool(ctx, pool)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("vendex: load candidate pool: %w", err)
	}
	return c.searchSvc.Search(ctx, query, candidates), nil
}

// AddVendor registers a pending vendor, geocoding its address.
func (c *Client) AddVendor(ctx context.Context, in RegisterInput) (Vendor, error) {
	return c.vendorSvc.Register(c.withLogger(ctx), in)
}

// GetVendor returns a vendor by ID.
func (c *Client) GetVendor(ctx context.Context, id uuid.UUID) (Vendor, error) {
	return c.vendorSvc.Get(c.withLogger(ctx), id)
}

// ApproveVendor moves a vendor into the public pool.
func (c *Client) ApproveVendor(ctx context.Context, id uuid.UUID) (Vendor, error) {
	return c.vendorSvc.Approve(c.withLogger(ctx), id)
}

// Vendors returns a snapshot of the selected candidate pool.
func (c *Client) Vendors(ctx context.Context, pool Pool) ([]Vendor, error) {
	return c.vendorSvc.Pool(c.withLogger(ctx), pool)
}

// AddTag creates a tag in the registry.
func (c *Client) AddTag(ctx context.Context, name string, kind TagKind, description string) (Tag, error) {
	return c.tagSvc.Create(c.withLogger(ctx), name, kind, description)
}

// Tags lists all tags sorted by name.
func (c *Client) Tags(ctx context.Context) ([]Tag, error) {
	return c.tagSvc.List(c.withLogger(ctx))
}

// Neighborhoods lists every neighborhood recorded by geocoding.
func (c *Client) Neighborhoods(ctx context.Context) ([]string, error) {
	return c.vendorSvc.Neighborhoods(c.withLogger(ctx))
}

func (c *Client) withLogger(ctx context.Context) context.Context {
	if c.cfg.logger == nil {
		return ctx
	}
	return logger.ContextWithLogger(ctx, c.cfg.logger)
}
