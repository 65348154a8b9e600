package search

import (
	"sort"
	"strings"

	"github.com/greenplate/vendex/internal/domain/search/strategy"
)

// streetSuffixes are tokens that strongly suggest an address query.
var streetSuffixes = map[string]struct{}{
	"st": {}, "street": {},
	"ave": {}, "avenue": {},
	"rd": {}, "road": {},
	"blvd": {}, "boulevard": {},
	"ln": {}, "lane": {},
	"dr": {}, "drive": {},
	"pl": {}, "place": {},
	"ct": {}, "court": {},
	"way": {}, "pike": {},
}

const shortTokenLen = 12

// Rank scores the raw query and returns strategies ordered by predicted
// intent. The ranking only decides presentation order; every strategy
// runs regardless. Ties keep the fixed default order (name, tag,
// address), and the output is deterministic for a given query.
func Rank(query string) []strategy.Strategy {
	fields := strings.Fields(strings.ToLower(query))

	scores := map[strategy.Strategy]int{}
	for _, f := range fields {
		if strings.ContainsAny(f, "0123456789") {
			scores[strategy.Address] += 2
		}
		if _, ok := streetSuffixes[strings.Trim(f, ".,#")]; ok {
			scores[strategy.Address] += 2
		}
	}

	// Address signals outrank the shape-based guesses: "broad street" is
	// an address even though it is also two short alphabetic tokens.
	if scores[strategy.Address] == 0 {
		switch {
		case len(fields) == 1 && len(fields[0]) <= shortTokenLen:
			scores[strategy.Name] += 2
		case len(fields) >= 2 && allShortAlpha(fields):
			scores[strategy.Tag] += 2
		}
	}

	order := strategy.DefaultOrder()
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})
	return order
}

func allShortAlpha(fields []string) bool {
	for _, f := range fields {
		if len(f) > shortTokenLen {
			return false
		}
		for _, r := range f {
			if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
				return false
			}
		}
	}
	return true
}
