// Package domain holds the entities and errors shared across vendex.
package domain

import "errors"

var (
	// ErrMalformedQuery signals a query that cannot be tokenized (unbalanced quotes).
	ErrMalformedQuery = errors.New("malformed query")
	// ErrGeocodeFailed signals that an address could not be resolved to coordinates.
	ErrGeocodeFailed = errors.New("geocode failed")
	// ErrVendorNotFound signals a missing vendor.
	ErrVendorNotFound = errors.New("vendor not found")
	// ErrVendorExists signals a duplicate vendor name.
	ErrVendorExists = errors.New("vendor already exists")
	// ErrTagNotFound signals a missing tag.
	ErrTagNotFound = errors.New("tag not found")
	// ErrTagExists signals a duplicate tag name.
	ErrTagExists = errors.New("tag already exists")
	// ErrInvalidCoordinates signals a latitude/longitude pair out of range,
	// or a pair where only one of the two is present.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	// ErrInvalidPool signals an unknown candidate pool selector.
	ErrInvalidPool = errors.New("invalid candidate pool")
)
