// Package querylog persists ranked queries for offline ranking analysis.
package querylog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/greenplate/vendex/internal/db"
	"github.com/greenplate/vendex/internal/domain/search/result"
	"github.com/greenplate/vendex/internal/domain/search/strategy"
)

const defaultCap = 10_000

// store is the consumer interface for the query log (ISP).
type store interface {
	db.ListStore
}

// Repo implements usecase/search.QueryLog over a capped list.
type Repo struct {
	store  store
	prefix string
	cap    int64
}

// New creates a query log. maxEntries <= 0 selects the default cap.
func New(s store, prefix string, maxEntries int64) *Repo {
	if prefix == "" {
		prefix = "vendex:"
	}
	if maxEntries <= 0 {
		maxEntries = defaultCap
	}
	return &Repo{store: s, prefix: prefix, cap: maxEntries}
}

func (r *Repo) key() string { return r.prefix + "querylog" }

type entryDTO struct {
	Query     string `json:"query"`
	Ranking   string `json:"ranking"`
	CreatedAt int64  `json:"created_at"`
}

// Record appends a ranked query, trimming the log to its cap.
func (r *Repo) Record(ctx context.Context, q result.RankedQuery) error {
	data, err := json.Marshal(entryDTO{
		Query:     q.Query,
		Ranking:   q.RankingSummary(),
		CreatedAt: q.CreatedAt.UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("marshal query log entry: %w", err)
	}

	if err := r.store.LPush(ctx, r.key(), string(data)); err != nil {
		return fmt.Errorf("append query log: %w", err)
	}
	if err := r.store.LTrim(ctx, r.key(), 0, r.cap-1); err != nil {
		return fmt.Errorf("trim query log: %w", err)
	}
	return nil
}

// Recent returns up to n logged queries, newest first.
func (r *Repo) Recent(ctx context.Context, n int64) ([]result.RankedQuery, error) {
	if n <= 0 {
		n = 100
	}
	raw, err := r.store.LRange(ctx, r.key(), 0, n-1)
	if err != nil {
		return nil, fmt.Errorf("read query log: %w", err)
	}

	entries := make([]result.RankedQuery, 0, len(raw))
	for _, item := range raw {
		var dto entryDTO
		if err := json.Unmarshal([]byte(item), &dto); err != nil {
			return nil, fmt.Errorf("unmarshal query log entry: %w", err)
		}
		entries = append(entries, result.RankedQuery{
			Query:     dto.Query,
			Ranking:   parseRanking(dto.Ranking),
			CreatedAt: time.Unix(0, dto.CreatedAt).UTC(),
		})
	}
	return entries, nil
}

func parseRanking(summary string) []strategy.Strategy {
	if summary == "" {
		return nil
	}
	var out []strategy.Strategy
	for _, part := range strings.Split(summary, ",") {
		if s := strategy.Strategy(part); s.IsValid() {
			out = append(out, s)
		}
	}
	return out
}
