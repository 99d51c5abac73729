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

package repository

import (
	"context"

	"github.com/tomoncle/querysculptor/sculptor"
	"github.com/tomoncle/querysculptor/types"
	"github.com/uptrace/bun"
)

// QueryFunc receives the prepared select query of FindAll. The query is bound
// to the read scope and must not be used after the function returns.
type QueryFunc func(ctx context.Context, q *bun.SelectQuery) error

// Mutator adds the assignments of an update, e.g. q.Set("name = ?", name).
type Mutator func(q *bun.UpdateQuery)

// Executor runs specifications against the store.
type Executor[T any] interface {
	// List returns every entity matching spec.
	List(ctx context.Context, spec sculptor.Sculptor[T]) ([]*T, error)

	// FindAll prepares a select for spec, windowed and ordered when req is
	// paged, and hands it to fn.
	FindAll(ctx context.Context, spec sculptor.Sculptor[T], req *types.PageRequest, fn QueryFunc) error

	// FindPage scans the requested window and wraps it with its metadata.
	FindPage(ctx context.Context, spec sculptor.Sculptor[T], req *types.PageRequest) (*types.PaginationResult[*T], error)

	// FindOne returns the single matching entity, sql.ErrNoRows when none
	// matches and ErrNonUniqueResult when several do.
	FindOne(ctx context.Context, spec sculptor.Sculptor[T]) (*T, error)

	Exists(ctx context.Context, spec sculptor.Sculptor[T]) (bool, error)

	Count(ctx context.Context, spec sculptor.Sculptor[T]) (int, error)

	// Delete removes the matching rows and returns how many were affected.
	Delete(ctx context.Context, spec sculptor.Sculptor[T]) (int64, error)

	// Update applies mutator to the matching rows and returns how many were
	// affected.
	Update(ctx context.Context, spec sculptor.Sculptor[T], mutator Mutator) (int64, error)
}

// Writer inserts entities.
type Writer[T any] interface {
	Create(ctx context.Context, entity ...*T) error

	// Upsert inserts entities, updating fields of rows that collide on
	// conflictKeys. Without conflictKeys the primary key is used.
	Upsert(ctx context.Context, fields []string, conflictKeys []string, entity ...*T) error
}
