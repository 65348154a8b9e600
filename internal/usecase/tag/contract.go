package tag

import (
	"context"

	domtag "github.com/greenplate/vendex/internal/domain/tag"
)

// Repository defines the storage contract for tags.
type Repository interface {
	Create(ctx context.Context, t *domtag.Tag) error
	GetByName(ctx context.Context, name string) (domtag.Tag, error)
	List(ctx context.Context) ([]domtag.Tag, error)
}
