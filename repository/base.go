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
	"database/sql"
	"fmt"

	"github.com/tomoncle/querysculptor/database"
	"github.com/tomoncle/querysculptor/sculptor"
	"github.com/tomoncle/querysculptor/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

// Repository is the bun-backed Executor and Writer of T.
type Repository[T any] struct {
	sessions   database.SessionProvider
	dialect    schema.Dialect
	descriptor Descriptor
	logger     database.Logger
}

var (
	_ Executor[struct{}] = (*Repository[struct{}])(nil)
	_ Writer[struct{}]   = (*Repository[struct{}])(nil)
)

type options struct {
	descriptor Descriptor
	logger     database.Logger
}

// Option configures a Repository.
type Option func(*options)

// WithDescriptor replaces the default ModelDescriptor. A nil descriptor makes
// every operation fail with ErrConfiguration.
func WithDescriptor(d Descriptor) Option {
	return func(o *options) { o.descriptor = d }
}

// WithStrictDescriptor requires T to declare a table name and a primary key.
func WithStrictDescriptor[T any]() Option {
	return WithDescriptor(ModelDescriptor[T]{Strict: true})
}

func WithLogger(logger database.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// NewRepository returns a repository running every operation on db.
func NewRepository[T any](db *bun.DB, opts ...Option) *Repository[T] {
	sessions := database.NewSessions(db)
	var dialect schema.Dialect
	if db != nil {
		dialect = db.Dialect()
	}
	r := NewRepositoryWithSessions[T](sessions, dialect, opts...)
	sessions.SetLogger(r.logger)
	return r
}

// NewRepositoryWithSessions returns a repository drawing its units of work
// from sessions. dialect is used to resolve the descriptor before a unit of
// work is opened.
func NewRepositoryWithSessions[T any](sessions database.SessionProvider, dialect schema.Dialect, opts ...Option) *Repository[T] {
	o := &options{descriptor: ModelDescriptor[T]{}, logger: database.GetLogger()}
	for _, opt := range opts {
		opt(o)
	}
	return &Repository[T]{
		sessions:   sessions,
		dialect:    dialect,
		descriptor: o.descriptor,
		logger:     o.logger,
	}
}

func (r *Repository[T]) List(ctx context.Context, spec sculptor.Sculptor[T]) ([]*T, error) {
	table, err := r.prepare("list", spec)
	if err != nil {
		return nil, err
	}
	var items []*T
	err = r.inTransaction(ctx, "list", table, func(ctx context.Context, db bun.IDB) error {
		qc, err := carve(sculptor.KindSelect, db, &items, spec)
		if err != nil {
			return err
		}
		return qc.Select().Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository[T]) FindAll(ctx context.Context, spec sculptor.Sculptor[T], req *types.PageRequest, fn QueryFunc) error {
	if fn == nil {
		return fmt.Errorf("%w: find_all: nil query function", ErrInvalidArgument)
	}
	return r.findAll(ctx, "find_all", spec, req, nil, fn)
}

// FindPage counts the matching rows, then scans the requested window. The
// scan is skipped when nothing matches or the window is empty. An unpaged
// request reports the total as its page size.
func (r *Repository[T]) FindPage(ctx context.Context, spec sculptor.Sculptor[T], req *types.PageRequest) (*types.PaginationResult[*T], error) {
	var (
		items = make([]*T, 0)
		total int
	)
	count := func(ctx context.Context, q *bun.SelectQuery) error {
		var err error
		total, err = q.Count(ctx)
		return err
	}
	scan := func(ctx context.Context, q *bun.SelectQuery) error {
		if total == 0 || req.GetPaging().Size() == 0 {
			return nil
		}
		return q.Scan(ctx, &items)
	}
	if err := r.findAll(ctx, "find_page", spec, req, count, scan); err != nil {
		return nil, err
	}
	paging := req.GetPaging()
	size := int64(paging.Size())
	if paging.IsUnPaged() {
		size = int64(total)
	}
	return types.NewPaginationResult(items, paging.Index(), size, int64(total)), nil
}

// findAll runs before on the filtered query and fn on its ordered window.
// Sort columns are checked before either runs.
func (r *Repository[T]) findAll(ctx context.Context, op string, spec sculptor.Sculptor[T], req *types.PageRequest, before, fn QueryFunc) error {
	if req == nil {
		return fmt.Errorf("%w: %s: nil page request", ErrInvalidArgument, op)
	}
	table, err := r.prepare(op, spec)
	if err != nil {
		return err
	}
	return r.inReadScope(ctx, op, table, func(ctx context.Context, db bun.IDB) error {
		qc, err := carve(sculptor.KindSelect, db, nil, spec)
		if err != nil {
			return err
		}
		q := qc.Select()
		paging := req.GetPaging()
		if paging.IsPaged() {
			if err := order(q, db.Dialect(), qc.Root(), req.GetSort()); err != nil {
				return err
			}
		}
		if before != nil {
			if err := before(ctx, q); err != nil {
				return err
			}
		}
		bound(q, paging)
		return fn(ctx, q)
	})
}

func (r *Repository[T]) FindOne(ctx context.Context, spec sculptor.Sculptor[T]) (*T, error) {
	table, err := r.prepare("find_one", spec)
	if err != nil {
		return nil, err
	}
	var items []*T
	err = r.inTransaction(ctx, "find_one", table, func(ctx context.Context, db bun.IDB) error {
		qc, err := carve(sculptor.KindSelect, db, &items, spec)
		if err != nil {
			return err
		}
		return qc.Select().Limit(2).Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	switch len(items) {
	case 0:
		return nil, sql.ErrNoRows
	case 1:
		return items[0], nil
	default:
		return nil, ErrNonUniqueResult
	}
}

func (r *Repository[T]) Exists(ctx context.Context, spec sculptor.Sculptor[T]) (bool, error) {
	table, err := r.prepare("exists", spec)
	if err != nil {
		return false, err
	}
	var exists bool
	err = r.inReadScope(ctx, "exists", table, func(ctx context.Context, db bun.IDB) error {
		qc, err := carve(sculptor.KindSelect, db, nil, spec)
		if err != nil {
			return err
		}
		exists, err = qc.Select().Exists(ctx)
		return err
	})
	return exists, err
}

func (r *Repository[T]) Count(ctx context.Context, spec sculptor.Sculptor[T]) (int, error) {
	table, err := r.prepare("count", spec)
	if err != nil {
		return 0, err
	}
	var count int
	err = r.inReadScope(ctx, "count", table, func(ctx context.Context, db bun.IDB) error {
		qc, err := carve(sculptor.KindSelect, db, nil, spec)
		if err != nil {
			return err
		}
		count, err = qc.Select().Count(ctx)
		return err
	})
	return count, err
}

func (r *Repository[T]) Delete(ctx context.Context, spec sculptor.Sculptor[T]) (int64, error) {
	table, err := r.prepare("delete", spec)
	if err != nil {
		return 0, err
	}
	var affected int64
	err = r.inTransaction(ctx, "delete", table, func(ctx context.Context, db bun.IDB) error {
		qc, err := carve(sculptor.KindDelete, db, nil, spec)
		if err != nil {
			return err
		}
		res, err := qc.Delete().Exec(ctx)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	r.logger.Debug("Rows deleted", "table", table.Name, "rows", affected)
	return affected, nil
}

func (r *Repository[T]) Update(ctx context.Context, spec sculptor.Sculptor[T], mutator Mutator) (int64, error) {
	if mutator == nil {
		return 0, fmt.Errorf("%w: update: nil mutator", ErrInvalidArgument)
	}
	table, err := r.prepare("update", spec)
	if err != nil {
		return 0, err
	}
	var affected int64
	err = r.inTransaction(ctx, "update", table, func(ctx context.Context, db bun.IDB) error {
		qc, err := carve(sculptor.KindUpdate, db, nil, spec)
		if err != nil {
			return err
		}
		q := qc.Update()
		mutator(q)
		res, err := q.Exec(ctx)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	r.logger.Debug("Rows updated", "table", table.Name, "rows", affected)
	return affected, nil
}

// prepare checks spec and resolves the descriptor. Nothing touches the store
// before it succeeds.
func (r *Repository[T]) prepare(op string, spec sculptor.Sculptor[T]) (*schema.Table, error) {
	if spec == nil {
		return nil, fmt.Errorf("%w: %s: nil specification", ErrInvalidArgument, op)
	}
	return r.describe(op)
}

func (r *Repository[T]) describe(op string) (*schema.Table, error) {
	if r.descriptor == nil {
		return nil, fmt.Errorf("%w: %s: no entity descriptor", ErrConfiguration, op)
	}
	if r.dialect == nil {
		return nil, fmt.Errorf("%s: database not initialized", op)
	}
	return r.descriptor.Describe(r.dialect)
}

func (r *Repository[T]) inTransaction(ctx context.Context, op string, table *schema.Table, fn database.SessionFunc) error {
	r.logger.Debug("Executing operation", "op", op, "scope", "transaction", "table", table.Name)
	return r.sessions.RunInTransaction(ctx, fn)
}

func (r *Repository[T]) inReadScope(ctx context.Context, op string, table *schema.Table, fn database.SessionFunc) error {
	r.logger.Debug("Executing operation", "op", op, "scope", "read", "table", table.Name)
	return r.sessions.RunInReadScope(ctx, fn)
}

// carve builds a fresh context of kind and filters it by the predicate spec
// produces. A predicate referring to unknown fields is reported instead.
func carve[T any](kind sculptor.Kind, db bun.IDB, model any, spec sculptor.Sculptor[T]) (*sculptor.QueryContext[T], error) {
	qc, err := sculptor.NewContext[T](kind, db, model)
	if err != nil {
		return nil, err
	}
	cb := sculptor.NewBuilder(db.Dialect())
	p := spec.CarveCondition(qc.Root(), qc, cb)
	if err := cb.Err(); err != nil {
		return nil, err
	}
	qc.Filter(p)
	return qc, nil
}
