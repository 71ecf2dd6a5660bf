package service

import (
	"context"
	"strconv"

	"github.com/deppfellow/menu-service/internal/cache"
	"github.com/deppfellow/menu-service/internal/errs"
	"github.com/deppfellow/menu-service/internal/logger"
	"github.com/deppfellow/menu-service/internal/model"
	"github.com/deppfellow/menu-service/internal/repository"
	"github.com/deppfellow/menu-service/internal/server"
)

// ResourceService exposes the five CRUD operations of one resource family.
type ResourceService[P model.Payload, S any, V any] struct {
	server *server.Server
	repo   *repository.Repository[P, S, V]
	cache  *cache.Cache
}

func NewResourceService[P model.Payload, S any, V any](s *server.Server, repo *repository.Repository[P, S, V], readCache *cache.Cache) *ResourceService[P, S, V] {
	return &ResourceService[P, S, V]{
		server: s,
		repo:   repo,
		cache:  readCache,
	}
}

// HasParent reports whether ListByParent is available for this family.
func (s *ResourceService[P, S, V]) HasParent() bool {
	return s.repo.HasParent()
}

// Create stores payload and returns the stored record (without id).
func (s *ResourceService[P, S, V]) Create(ctx context.Context, payload P) (*S, error) {
	stored, err := s.repo.Create(ctx, payload)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, s.repo.Table())

	logger.FromContext(ctx, s.server.Logger).Debug().
		Str("table", s.repo.Table()).
		Msg("record created")

	return stored, nil
}

// List returns every record.
func (s *ResourceService[P, S, V]) List(ctx context.Context) ([]V, error) {
	return cache.GetOrLoad(ctx, s.cache, s.repo.Table(), "all", s.repo.List)
}

// ListByParent returns the records belonging to parentID, or an empty slice.
func (s *ResourceService[P, S, V]) ListByParent(ctx context.Context, parentID int64) ([]V, error) {
	if !s.repo.HasParent() {
		return nil, errs.NewNotFoundError("Route not found", false, nil)
	}

	variant := "parent:" + strconv.FormatInt(parentID, 10)
	return cache.GetOrLoad(ctx, s.cache, s.repo.Table(), variant, func(ctx context.Context) ([]V, error) {
		return s.repo.ListByParent(ctx, parentID)
	})
}

// Update replaces record id with payload and returns it as read back.
// A missing id surfaces as a not-found error through the global error handler.
func (s *ResourceService[P, S, V]) Update(ctx context.Context, id int64, payload P) (*V, error) {
	updated, err := s.repo.Update(ctx, id, payload)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, s.repo.Table())

	logger.FromContext(ctx, s.server.Logger).Debug().
		Str("table", s.repo.Table()).
		Int64("id", id).
		Msg("record updated")

	return updated, nil
}

// Delete removes record id.
func (s *ResourceService[P, S, V]) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, s.repo.Table())

	logger.FromContext(ctx, s.server.Logger).Debug().
		Str("table", s.repo.Table()).
		Int64("id", id).
		Msg("record deleted")

	return nil
}
