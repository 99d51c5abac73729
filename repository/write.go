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
	"fmt"
	"slices"
	"strings"

	"github.com/tomoncle/querysculptor/sculptor"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/feature"
)

// Create inserts the entities in one statement. Generated keys are written
// back into them.
func (r *Repository[T]) Create(ctx context.Context, entity ...*T) error {
	if len(entity) == 0 {
		return fmt.Errorf("%w: create: no entities", ErrInvalidArgument)
	}
	table, err := r.describe("create")
	if err != nil {
		return err
	}
	return r.inTransaction(ctx, "create", table, func(ctx context.Context, db bun.IDB) error {
		entities := slices.Clone(entity)
		_, err := db.NewInsert().Model(&entities).Exec(ctx)
		return err
	})
}

// Upsert inserts the entities and overwrites fields on rows colliding on
// conflictKeys. Fields and keys may be column or Go field names.
func (r *Repository[T]) Upsert(ctx context.Context, fields []string, conflictKeys []string, entity ...*T) error {
	if len(fields) == 0 {
		return fmt.Errorf("%w: upsert: fields cannot be empty", ErrInvalidArgument)
	}
	if len(entity) == 0 {
		return fmt.Errorf("%w: upsert: no entities", ErrInvalidArgument)
	}
	table, err := r.describe("upsert")
	if err != nil {
		return err
	}
	if len(conflictKeys) == 0 {
		if len(table.PKs) == 0 {
			return fmt.Errorf("%w: upsert: %s has no primary key", ErrConfiguration, table.Name)
		}
		for _, pk := range table.PKs {
			conflictKeys = append(conflictKeys, pk.Name)
		}
	}
	features := r.dialect.Features()
	if !features.Has(feature.InsertOnConflict) && !features.Has(feature.InsertOnDuplicateKey) {
		return fmt.Errorf("%w: upsert: dialect %s has no conflict clause", ErrUnsupported, r.dialect.Name())
	}
	return r.inTransaction(ctx, "upsert", table, func(ctx context.Context, db bun.IDB) error {
		root := sculptor.NewRoot[T](db.Dialect())
		columns, err := resolveColumns(root, fields)
		if err != nil {
			return err
		}
		keys, err := resolveColumns(root, conflictKeys)
		if err != nil {
			return err
		}
		entities := slices.Clone(entity)
		if features.Has(feature.InsertOnConflict) {
			return upsertOnConflict(ctx, db, columns, keys, entities)
		}
		return upsertOnDuplicateKey(ctx, db, columns, entities)
	})
}

func resolveColumns[T any](root *sculptor.Root[T], names []string) ([]string, error) {
	columns := make([]string, len(names))
	for i, name := range names {
		path := root.Get(name)
		if err := path.Err(); err != nil {
			return nil, err
		}
		columns[i] = path.Column()
	}
	return columns, nil
}

func upsertOnConflict[T any](ctx context.Context, db bun.IDB, columns, keys []string, entities []*T) error {
	list, args := identList(keys)
	q := db.NewInsert().
		Model(&entities).
		On("CONFLICT ("+list+") DO UPDATE", args...)
	for _, c := range columns {
		q.Set("? = EXCLUDED.?", bun.Ident(c), bun.Ident(c))
	}
	_, err := q.Exec(ctx)
	return err
}

func upsertOnDuplicateKey[T any](ctx context.Context, db bun.IDB, columns []string, entities []*T) error {
	q := db.NewInsert().
		Model(&entities).
		On("DUPLICATE KEY UPDATE")
	for _, c := range columns {
		q.Set("? = VALUES(?)", bun.Ident(c), bun.Ident(c))
	}
	_, err := q.Exec(ctx)
	return err
}

func identList(names []string) (string, []any) {
	placeholders := make([]string, len(names))
	args := make([]any, len(names))
	for i, name := range names {
		placeholders[i] = "?"
		args[i] = bun.Ident(name)
	}
	return strings.Join(placeholders, ", "), args
}
