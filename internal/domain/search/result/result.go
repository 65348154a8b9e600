// Package result holds per-strategy search outcomes.
package result

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/greenplate/vendex/internal/domain/search/strategy"
)

// Result is the outcome of running one strategy over a candidate pool.
// It is ephemeral: built per query, never persisted.
type Result struct {
	strat     strategy.Strategy
	summary   string
	vendorIDs []uuid.UUID
	failed    bool
	err       error
}

// New creates a successful strategy result. For the address strategy the
// IDs are ordered nearest-first; for name and tag the order is the stable
// candidate-pool order.
func New(strat strategy.Strategy, summary string, vendorIDs []uuid.UUID) Result {
	return Result{strat: strat, summary: summary, vendorIDs: vendorIDs}
}

// Failed creates a failed strategy result. A failed strategy contributes
// no vendors and no summary line, but the failure stays visible to callers.
func Failed(strat strategy.Strategy, err error) Result {
	return Result{strat: strat, failed: true, err: err}
}

// Strategy returns the strategy that produced this result.
func (r *Result) Strategy() strategy.Strategy { return r.strat }

// Count returns the number of matched vendors.
func (r *Result) Count() int { return len(r.vendorIDs) }

// Summary returns the human-readable summary line, empty when failed.
func (r *Result) Summary() string { return r.summary }

// VendorIDs returns the matched vendor identities.
func (r *Result) VendorIDs() []uuid.UUID { return r.vendorIDs }

// IsFailed reports whether the strategy failed rather than matched nothing.
func (r *Result) IsFailed() bool { return r.failed }

// Err returns the failure cause, nil for successful results.
func (r *Result) Err() error { return r.err }

// RankedQuery is a raw query plus the predicted strategy order. It is
// persisted for offline analysis of how well the ranker guesses intent.
type RankedQuery struct {
	Query     string
	Ranking   []strategy.Strategy
	CreatedAt time.Time
}

// RankingSummary renders the ranking as a comma-joined string for storage.
func (q RankedQuery) RankingSummary() string {
	parts := make([]string, len(q.Ranking))
	for i, s := range q.Ranking {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}
