/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package querysculptor

import (
	"context"
	"sync"

	"github.com/tomoncle/querysculptor/database"
	"github.com/tomoncle/querysculptor/repository"
	"github.com/tomoncle/querysculptor/sculptor"
	"github.com/tomoncle/querysculptor/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

type Service[T any] interface {
	// List returns the entities matching spec.
	List(ctx context.Context, spec sculptor.Sculptor[T]) ([]*T, error)

	// FindAll hands the prepared select of spec to fn.
	FindAll(ctx context.Context, spec sculptor.Sculptor[T], page *types.PageRequest, fn repository.QueryFunc) error

	// Page returns one window of the entities matching spec.
	Page(ctx context.Context, spec sculptor.Sculptor[T], page *types.PageRequest) (*types.PaginationResult[*T], error)

	// Get returns the single entity matching spec.
	Get(ctx context.Context, spec sculptor.Sculptor[T]) (*T, error)

	// Exists reports whether any entity matches spec.
	Exists(ctx context.Context, spec sculptor.Sculptor[T]) (bool, error)

	// Count returns the number of entities matching spec.
	Count(ctx context.Context, spec sculptor.Sculptor[T]) (int, error)

	// Update applies mutator to the entities matching spec.
	Update(ctx context.Context, spec sculptor.Sculptor[T], mutator repository.Mutator) (int64, error)

	// Delete removes the entities matching spec.
	Delete(ctx context.Context, spec sculptor.Sculptor[T]) (int64, error)

	// Save inserts one or more new entities.
	Save(ctx context.Context, model ...*T) error

	// SaveOrUpdate upserts entities based on fields and conflict keys.
	SaveOrUpdate(ctx context.Context, fields []string, conflictKeys []string, model ...*T) error
}

type baseServiceImpl[T any] struct {
	mu      sync.Mutex
	repo    *repository.Repository[T]
	db      *bun.DB
	tenants *database.TenantRegistry
	opts    []repository.Option
}

// NewService returns a Service over the global database. The service may be
// created before InitDB runs; its repository is rebuilt whenever the global
// database or tenant registry changes. When InitDB registered tenants, every
// call is routed to the tenant found in its context.
func NewService[T any](opts ...repository.Option) Service[T] {
	return &baseServiceImpl[T]{opts: opts}
}

func (s *baseServiceImpl[T]) baseRepo() *repository.Repository[T] {
	db := database.GetDB()
	tenants := database.GetTenantRegistry()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.repo != nil && s.db == db && s.tenants == tenants {
		return s.repo
	}
	var dialect schema.Dialect
	if db != nil {
		dialect = db.Dialect()
	}
	var sessions database.SessionProvider = database.NewSessions(nil)
	if tenants != nil {
		sessions = tenants.Sessions()
	} else if global := database.GetSessions(); global != nil {
		sessions = global
	}
	s.repo = repository.NewRepositoryWithSessions[T](sessions, dialect, s.opts...)
	s.db, s.tenants = db, tenants
	return s.repo
}

func (s *baseServiceImpl[T]) List(ctx context.Context, spec sculptor.Sculptor[T]) ([]*T, error) {
	return s.baseRepo().List(ctx, spec)
}

func (s *baseServiceImpl[T]) FindAll(ctx context.Context, spec sculptor.Sculptor[T], page *types.PageRequest, fn repository.QueryFunc) error {
	return s.baseRepo().FindAll(ctx, spec, page, fn)
}

func (s *baseServiceImpl[T]) Page(ctx context.Context, spec sculptor.Sculptor[T], page *types.PageRequest) (*types.PaginationResult[*T], error) {
	return s.baseRepo().FindPage(ctx, spec, page)
}

func (s *baseServiceImpl[T]) Get(ctx context.Context, spec sculptor.Sculptor[T]) (*T, error) {
	return s.baseRepo().FindOne(ctx, spec)
}

func (s *baseServiceImpl[T]) Exists(ctx context.Context, spec sculptor.Sculptor[T]) (bool, error) {
	return s.baseRepo().Exists(ctx, spec)
}

func (s *baseServiceImpl[T]) Count(ctx context.Context, spec sculptor.Sculptor[T]) (int, error) {
	return s.baseRepo().Count(ctx, spec)
}

func (s *baseServiceImpl[T]) Update(ctx context.Context, spec sculptor.Sculptor[T], mutator repository.Mutator) (int64, error) {
	return s.baseRepo().Update(ctx, spec, mutator)
}

func (s *baseServiceImpl[T]) Delete(ctx context.Context, spec sculptor.Sculptor[T]) (int64, error) {
	return s.baseRepo().Delete(ctx, spec)
}

func (s *baseServiceImpl[T]) Save(ctx context.Context, model ...*T) error {
	return s.baseRepo().Create(ctx, model...)
}

func (s *baseServiceImpl[T]) SaveOrUpdate(ctx context.Context, fields []string, conflictKeys []string, model ...*T) error {
	return s.baseRepo().Upsert(ctx, fields, conflictKeys, model...)
}
