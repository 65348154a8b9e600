// Package search runs the three matching strategies over a candidate pool
// and merges their results into one ranked, deduplicated vendor list.
package search

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/greenplate/vendex/internal/domain/search/result"
	"github.com/greenplate/vendex/internal/domain/search/strategy"
	"github.com/greenplate/vendex/internal/domain/vendor"
	"github.com/greenplate/vendex/internal/logger"
	"github.com/greenplate/vendex/internal/metrics"
)

const queryLogTimeout = 3 * time.Second

// Service orchestrates the name, tag and proximity strategies.
type Service struct {
	geocoder    Geocoder
	queryLog    QueryLog
	radiusMiles float64
}

// New creates a search service. queryLog may be nil to disable logging.
// radiusMiles <= 0 is legal and means exact-point matching only, so the
// default applies only to negative values passed by mistake.
func New(geocoder Geocoder, queryLog QueryLog, radiusMiles float64) *Service {
	if radiusMiles < 0 {
		radiusMiles = DefaultRadiusMiles
	}
	return &Service{geocoder: geocoder, queryLog: queryLog, radiusMiles: radiusMiles}
}

// Response is the outcome of one search call.
type Response struct {
	Query   string
	Ranking []strategy.Strategy
	// Vendors is the merged, deduplicated result in presentation order.
	Vendors []vendor.Vendor
	// Results holds one entry per strategy in ranking order. Failed
	// strategies are flagged and carry no summary.
	Results []result.Result
}

// Count returns the merged result size.
func (r *Response) Count() int { return len(r.Vendors) }

// Summaries returns the summary lines of the successful strategies.
func (r *Response) Summaries() []string {
	out := make([]string, 0, len(r.Results))
	for i := range r.Results {
		if !r.Results[i].IsFailed() {
			out = append(out, r.Results[i].Summary())
		}
	}
	return out
}

// Search runs every strategy against the candidate pool, logs the ranked
// query, and merges the match sets. Strategy-local failures never fail
// the whole search: a query where everything fails returns an empty
// result, indistinguishable from zero matches.
func (s *Service) Search(ctx context.Context, query string, pool []vendor.Vendor) Response {
	log := logger.FromContext(ctx)

	tokens, tokErr := Tokenize(query)
	if tokErr != nil {
		log.Debug("query tokenization failed", zap.String("query", query), zap.Error(tokErr))
	}

	ranking := Rank(query)

	// The three strategies are independent; run them concurrently and
	// join. A slow or failed proximity lookup must not suppress name/tag
	// results.
	var nameRes, tagRes, addrRes result.Result
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		if tokErr != nil {
			nameRes = result.Failed(strategy.Name, tokErr)
			return
		}
		nameRes = searchByName(tokens, pool)
	}()
	go func() {
		defer wg.Done()
		if tokErr != nil {
			tagRes = result.Failed(strategy.Tag, tokErr)
			return
		}
		tagRes = searchByTags(tokens, pool)
	}()
	go func() {
		defer wg.Done()
		addrRes = searchByProximity(ctx, s.geocoder, query, s.radiusMiles, pool)
	}()
	wg.Wait()

	s.recordQuery(ctx, query, ranking)

	byStrategy := map[strategy.Strategy]result.Result{
		strategy.Name:    nameRes,
		strategy.Tag:     tagRes,
		strategy.Address: addrRes,
	}

	results := make([]result.Result, 0, len(ranking))
	for _, st := range ranking {
		r := byStrategy[st]
		results = append(results, r)
		if r.IsFailed() {
			metrics.RecordStrategyFailure(string(st))
			log.Info("search strategy failed",
				zap.String("strategy", string(st)),
				zap.String("query", query),
				zap.Error(r.Err()),
			)
			continue
		}
		metrics.RecordStrategyResult(string(st), r.Count())
	}

	return Response{
		Query:   query,
		Ranking: ranking,
		Vendors: mergeResults(ranking, byStrategy, pool),
		Results: results,
	}
}

// recordQuery persists the ranked query fire-and-forget. The caller's
// response never waits on log durability, and write errors are swallowed.
func (s *Service) recordQuery(ctx context.Context, query string, ranking []strategy.Strategy) {
	if s.queryLog == nil {
		return
	}

	entry := result.RankedQuery{
		Query:     query,
		Ranking:   ranking,
		CreatedAt: time.Now().UTC(),
	}
	log := logger.FromContext(ctx)
	bg := context.WithoutCancel(ctx)
	go func() {
		logCtx, cancel := context.WithTimeout(bg, queryLogTimeout)
		defer cancel()
		if err := s.queryLog.Record(logCtx, entry); err != nil {
			metrics.RecordQueryLogFailure()
			log.Warn("query log write failed", zap.String("query", query), zap.Error(err))
		}
	}()
}

// mergeResults builds the final vendor sequence: strategies contribute in
// ranking order, proximity keeps its nearest-first internal order, name
// and tag keep the stable candidate-pool order, and every vendor appears
// at most once. Vendors outside the pool never appear.
func mergeResults(
	ranking []strategy.Strategy,
	byStrategy map[strategy.Strategy]result.Result,
	pool []vendor.Vendor,
) []vendor.Vendor {
	byID := make(map[uuid.UUID]*vendor.Vendor, len(pool))
	for i := range pool {
		byID[pool[i].ID()] = &pool[i]
	}

	seen := make(map[uuid.UUID]struct{})
	var merged []vendor.Vendor
	for _, st := range ranking {
		r, ok := byStrategy[st]
		if !ok || r.IsFailed() {
			continue
		}
		for _, id := range r.VendorIDs() {
			v, inPool := byID[id]
			if !inPool {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			merged = append(merged, *v)
		}
	}
	return merged
}
