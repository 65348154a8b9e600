// Package tag manages the cuisine/feature tag registry.
package tag

import (
	"context"
	"fmt"

	domtag "github.com/greenplate/vendex/internal/domain/tag"
)

// Service coordinates tag registry operations.
type Service struct {
	repo Repository
}

// New creates a tag service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new tag.
func (s *Service) Create(ctx context.Context, name string, kind domtag.Kind, description string) (domtag.Tag, error) {
	t, err := domtag.New(name, kind, description)
	if err != nil {
		return domtag.Tag{}, fmt.Errorf("new tag: %w", err)
	}
	if err := s.repo.Create(ctx, &t); err != nil {
		return domtag.Tag{}, fmt.Errorf("create tag: %w", err)
	}
	return t, nil
}

// Get returns a tag by its unique name.
func (s *Service) Get(ctx context.Context, name string) (domtag.Tag, error) {
	return s.repo.GetByName(ctx, name)
}

// List returns all tags sorted by name.
func (s *Service) List(ctx context.Context) ([]domtag.Tag, error) {
	return s.repo.List(ctx)
}
