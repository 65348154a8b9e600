// Package tag defines the cuisine and feature tags attached to vendors.
package tag

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind distinguishes tag categories.
type Kind string

const (
	// Cuisine tags describe what a vendor serves ("mexican", "pizza").
	Cuisine Kind = "cuisine"
	// Feature tags describe how a vendor operates ("open late", "delivery").
	Feature Kind = "feature"
)

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	return k == Cuisine || k == Feature
}

// Tag is an immutable tag value object.
type Tag struct {
	id          uuid.UUID
	name        string
	kind        Kind
	description string
	createdAt   time.Time
}

// New validates and creates a Tag. Names are stored lowercased; matching
// against them is case-insensitive by construction.
func New(name string, kind Kind, description string) (Tag, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Tag{}, fmt.Errorf("tag name is required")
	}
	if len(name) > 255 {
		return Tag{}, fmt.Errorf("tag name too long (max 255)")
	}
	if !kind.IsValid() {
		return Tag{}, fmt.Errorf("unknown tag kind %q", kind)
	}
	return Tag{
		id:          uuid.New(),
		name:        name,
		kind:        kind,
		description: description,
		createdAt:   time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Tag from stored fields without validation.
func Reconstruct(id uuid.UUID, name string, kind Kind, description string, createdAt time.Time) Tag {
	return Tag{id: id, name: name, kind: kind, description: description, createdAt: createdAt}
}

// ID returns the tag identifier.
func (t *Tag) ID() uuid.UUID { return t.id }

// Name returns the unique short name.
func (t *Tag) Name() string { return t.name }

// Kind returns the tag category.
func (t *Tag) Kind() Kind { return t.kind }

// Description returns the human-readable description.
func (t *Tag) Description() string { return t.description }

// CreatedAt returns the creation timestamp.
func (t *Tag) CreatedAt() time.Time { return t.createdAt }
