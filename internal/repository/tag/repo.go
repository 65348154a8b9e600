// Package tag implements the tag registry over db.Store.
package tag

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/greenplate/vendex/internal/db"
	"github.com/greenplate/vendex/internal/domain"
	domtag "github.com/greenplate/vendex/internal/domain/tag"
)

// store is the consumer interface for tag persistence (ISP).
type store interface {
	db.KVStore
	db.SetStore
}

// Repo implements usecase/vendor.TagRepository.
type Repo struct {
	store  store
	prefix string
}

// New creates a tag repository. prefix namespaces all keys.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = "vendex:"
	}
	return &Repo{store: s, prefix: prefix}
}

type tagDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Description string `json:"description,omitempty"`
	CreatedAt   int64  `json:"created_at"`
}

func (r *Repo) tagKey(id uuid.UUID) string { return r.prefix + "tag:" + id.String() }
func (r *Repo) nameKey(name string) string { return r.prefix + "tag:name:" + name }
func (r *Repo) registryKey() string        { return r.prefix + "tags" }

// Create stores a new tag, claiming its unique name.
func (r *Repo) Create(ctx context.Context, t *domtag.Tag) error {
	claimed, err := r.store.SetNX(ctx, r.nameKey(t.Name()), []byte(t.ID().String()))
	if err != nil {
		return fmt.Errorf("claim tag name %q: %w", t.Name(), err)
	}
	if !claimed {
		return domain.ErrTagExists
	}

	data, err := json.Marshal(tagDTO{
		ID:          t.ID().String(),
		Name:        t.Name(),
		Kind:        string(t.Kind()),
		Description: t.Description(),
		CreatedAt:   t.CreatedAt().UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("marshal tag %s: %w", t.Name(), err)
	}
	if err := r.store.Set(ctx, r.tagKey(t.ID()), data); err != nil {
		return fmt.Errorf("store tag %s: %w", t.Name(), err)
	}
	if err := r.store.SAdd(ctx, r.registryKey(), t.ID().String()); err != nil {
		return fmt.Errorf("register tag %s: %w", t.Name(), err)
	}
	return nil
}

// GetByName returns a tag by its unique lowercase name.
func (r *Repo) GetByName(ctx context.Context, name string) (domtag.Tag, error) {
	raw, err := r.store.Get(ctx, r.nameKey(name))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domtag.Tag{}, domain.ErrTagNotFound
		}
		return domtag.Tag{}, fmt.Errorf("get tag name %q: %w", name, err)
	}
	id, err := uuid.Parse(string(raw))
	if err != nil {
		return domtag.Tag{}, fmt.Errorf("parse tag id %q: %w", raw, err)
	}
	return r.get(ctx, id)
}

// List returns all tags sorted by name.
func (r *Repo) List(ctx context.Context) ([]domtag.Tag, error) {
	ids, err := r.store.SMembers(ctx, r.registryKey())
	if err != nil {
		return nil, fmt.Errorf("read tag registry: %w", err)
	}

	tags := make([]domtag.Tag, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse tag registry member %q: %w", raw, err)
		}
		t, err := r.get(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrTagNotFound) {
				continue
			}
			return nil, err
		}
		tags = append(tags, t)
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i].Name() < tags[j].Name() })
	return tags, nil
}

func (r *Repo) get(ctx context.Context, id uuid.UUID) (domtag.Tag, error) {
	raw, err := r.store.Get(ctx, r.tagKey(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domtag.Tag{}, domain.ErrTagNotFound
		}
		return domtag.Tag{}, fmt.Errorf("get tag %s: %w", id, err)
	}

	var dto tagDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return domtag.Tag{}, fmt.Errorf("unmarshal tag %s: %w", id, err)
	}
	tid, err := uuid.Parse(dto.ID)
	if err != nil {
		return domtag.Tag{}, fmt.Errorf("parse tag id %q: %w", dto.ID, err)
	}
	return domtag.Reconstruct(
		tid, dto.Name, domtag.Kind(dto.Kind), dto.Description,
		time.Unix(0, dto.CreatedAt).UTC(),
	), nil
}
