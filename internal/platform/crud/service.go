// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package crud

import (
	"context"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/taibuivan/civicportal/internal/platform/sec"
	"github.com/taibuivan/civicportal/internal/platform/validate"
	"github.com/taibuivan/civicportal/pkg/pagination"
)

type page[T any] struct {
	items []*T
	total int
}

// Service applies the resource rules around a [Repository].
type Service[T any] struct {
	repo     Repository[T]
	resource Resource[T]
	logger   *slog.Logger

	// lists is nil when list caching is disabled.
	lists *cache.Cache
}

// Option configures a [Service].
type Option func(*serviceOptions)

type serviceOptions struct {
	listCacheTTL time.Duration
}

// WithListCache caches list pages for ttl. Any write flushes the cache.
// Use it only for lists that anonymous readers see identically.
func WithListCache(ttl time.Duration) Option {
	return func(options *serviceOptions) {
		options.listCacheTTL = ttl
	}
}

func NewService[T any](repo Repository[T], resource Resource[T], logger *slog.Logger, opts ...Option) *Service[T] {
	options := serviceOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	service := &Service[T]{repo: repo, resource: resource, logger: logger}
	if options.listCacheTTL > 0 {
		service.lists = cache.New(options.listCacheTTL, 2*options.listCacheTTL)
	}
	return service
}

// Resource returns the description the service was built from.
func (service *Service[T]) Resource() Resource[T] {
	return service.resource
}

func (service *Service[T]) List(ctx context.Context, params pagination.Params) ([]*T, int, error) {
	if service.lists != nil {
		if cached, found := service.lists.Get(params.Key()); found {
			hit := cached.(page[T])
			return hit.items, hit.total, nil
		}
	}

	items, total, err := service.repo.List(ctx, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, err
	}

	if service.lists != nil {
		service.lists.SetDefault(params.Key(), page[T]{items: items, total: total})
	}
	return items, total, nil
}

func (service *Service[T]) Get(ctx context.Context, id int64) (*T, error) {
	return service.repo.Get(ctx, id)
}

// Create stamps, validates and stores a new record.
func (service *Service[T]) Create(ctx context.Context, item *T, principal *sec.Principal) error {
	*service.resource.Key(item) = 0
	if service.resource.Stamp != nil {
		service.resource.Stamp(item, principal)
	}

	if err := service.validate(item); err != nil {
		return err
	}

	if err := service.repo.Create(ctx, item); err != nil {
		return err
	}
	service.invalidate()

	service.logger.InfoContext(ctx, service.resource.Event+"_created", slog.Int64("id", *service.resource.Key(item)))
	return nil
}

// Replace overwrites every writable field of record id with item.
func (service *Service[T]) Replace(ctx context.Context, id int64, item *T) error {
	stored, err := service.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	return service.save(ctx, id, item, stored)
}

// Patch applies apply to a copy of the stored record, then saves it.
// apply usually decodes a partial JSON body onto the copy.
//
// The copy is shallow: record types hold values only (pgtype wrappers for
// nullable columns), never pointers, maps or slices.
func (service *Service[T]) Patch(ctx context.Context, id int64, apply func(*T) error) (*T, error) {
	stored, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *stored
	if err := apply(&updated); err != nil {
		return nil, err
	}

	if err := service.save(ctx, id, &updated, stored); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (service *Service[T]) save(ctx context.Context, id int64, updated, stored *T) error {
	*service.resource.Key(updated) = id
	if service.resource.Keep != nil {
		service.resource.Keep(updated, stored)
	}

	if err := service.validate(updated); err != nil {
		return err
	}

	if err := service.repo.Update(ctx, updated); err != nil {
		return err
	}
	service.invalidate()

	service.logger.InfoContext(ctx, service.resource.Event+"_updated", slog.Int64("id", id))
	return nil
}

func (service *Service[T]) Delete(ctx context.Context, id int64) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}
	service.invalidate()

	service.logger.WarnContext(ctx, service.resource.Event+"_deleted", slog.Int64("id", id))
	return nil
}

func (service *Service[T]) validate(item *T) error {
	if service.resource.Validate == nil {
		return nil
	}
	validator := &validate.Validator{}
	service.resource.Validate(item, validator)
	return validator.Err()
}

func (service *Service[T]) invalidate() {
	if service.lists != nil {
		service.lists.Flush()
	}
}
