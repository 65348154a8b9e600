package search

import (
	"fmt"

	shellwords "github.com/mattn/go-shellwords"

	"github.com/greenplate/vendex/internal/domain"
)

// Tokenize splits a query into shell-style tokens: whitespace-separated,
// with quoted phrases kept as single tokens. An empty query yields no
// tokens. Unbalanced quotes return domain.ErrMalformedQuery.
func Tokenize(query string) ([]string, error) {
	tokens, err := shellwords.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedQuery, err)
	}
	return tokens, nil
}
