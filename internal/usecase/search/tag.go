package search

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/greenplate/vendex/internal/domain/search/result"
	"github.com/greenplate/vendex/internal/domain/search/strategy"
	"github.com/greenplate/vendex/internal/domain/vendor"
)

// searchByTags matches vendors where any cuisine or feature tag name
// contains any token as a case-insensitive substring. Matching is against
// tag names only, never descriptions. A vendor tagged by several matching
// tags still appears once: the check is per vendor, so the result is a
// set by construction.
func searchByTags(tokens []string, pool []vendor.Vendor) result.Result {
	var ids []uuid.UUID
	for i := range pool {
		v := &pool[i]
		if tagsMatch(v.CuisineTags(), tokens) || tagsMatch(v.FeatureTags(), tokens) {
			ids = append(ids, v.ID())
		}
	}

	// The ", " joiner is deliberate; name search joins with " or ".
	summary := fmt.Sprintf(
		"Found %d results with tags matching %q",
		len(ids), strings.Join(tokens, ", "),
	)
	return result.New(strategy.Tag, summary, ids)
}

func tagsMatch(tagNames, tokens []string) bool {
	for _, name := range tagNames {
		name = strings.ToLower(name)
		for _, tok := range tokens {
			if tok == "" {
				continue
			}
			if strings.Contains(name, strings.ToLower(tok)) {
				return true
			}
		}
	}
	return false
}
