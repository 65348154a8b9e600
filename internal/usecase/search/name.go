package search

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/greenplate/vendex/internal/domain/search/result"
	"github.com/greenplate/vendex/internal/domain/search/strategy"
	"github.com/greenplate/vendex/internal/domain/vendor"
)

// searchByName matches vendors whose name contains any token as a
// case-insensitive substring. An empty token list matches nothing.
func searchByName(tokens []string, pool []vendor.Vendor) result.Result {
	var ids []uuid.UUID
	for i := range pool {
		if nameMatches(pool[i].Name(), tokens) {
			ids = append(ids, pool[i].ID())
		}
	}

	summary := fmt.Sprintf(
		"Found %d results where name contains %s",
		len(ids), joinQuoted(tokens, " or "),
	)
	return result.New(strategy.Name, summary, ids)
}

func nameMatches(name string, tokens []string) bool {
	name = strings.ToLower(name)
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if strings.Contains(name, strings.ToLower(tok)) {
			return true
		}
	}
	return false
}

// joinQuoted renders tokens as `"a" or "b"` for summaries.
func joinQuoted(tokens []string, sep string) string {
	quoted := make([]string, len(tokens))
	for i, tok := range tokens {
		quoted[i] = fmt.Sprintf("%q", tok)
	}
	return strings.Join(quoted, sep)
}
