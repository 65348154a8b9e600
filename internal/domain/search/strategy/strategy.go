// Package strategy names the matching strategies a query can run.
package strategy

// Strategy identifies one matching algorithm.
type Strategy string

// Strategy constants.
const (
	// Name matches vendor names by substring.
	Name Strategy = "name"
	// Tag matches cuisine and feature tag names by substring.
	Tag Strategy = "tag"
	// Address matches vendors by geographic proximity to a geocoded address.
	Address Strategy = "address"
)

// IsValid checks if the strategy is one of the supported values.
func (s Strategy) IsValid() bool {
	return s == Name || s == Tag || s == Address
}

// DefaultOrder is the fixed tie-break presentation order.
func DefaultOrder() []Strategy {
	return []Strategy{Name, Tag, Address}
}
