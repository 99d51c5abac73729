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

package sculptor

import (
	"fmt"

	"github.com/uptrace/bun"
)

// ContextBuilder allocates a fresh QueryContext of one kind.
//
// model is handed to bun's Model; nil selects (*T)(nil), which is enough for
// updates, deletes, counts and existence checks.
type ContextBuilder[T any] interface {
	Kind() Kind
	Build(db bun.IDB, model any) *QueryContext[T]
}

type SelectContext[T any] struct{}

func (SelectContext[T]) Kind() Kind { return KindSelect }

func (SelectContext[T]) Build(db bun.IDB, model any) *QueryContext[T] {
	return &QueryContext[T]{
		kind: KindSelect,
		root: NewRoot[T](db.Dialect()),
		sel:  db.NewSelect().Model(modelOrNil[T](model)),
	}
}

type UpdateContext[T any] struct{}

func (UpdateContext[T]) Kind() Kind { return KindUpdate }

func (UpdateContext[T]) Build(db bun.IDB, model any) *QueryContext[T] {
	return &QueryContext[T]{
		kind: KindUpdate,
		root: NewRoot[T](db.Dialect()),
		upd:  db.NewUpdate().Model(modelOrNil[T](model)),
	}
}

type DeleteContext[T any] struct{}

func (DeleteContext[T]) Kind() Kind { return KindDelete }

func (DeleteContext[T]) Build(db bun.IDB, model any) *QueryContext[T] {
	return &QueryContext[T]{
		kind: KindDelete,
		root: NewRoot[T](db.Dialect()),
		del:  db.NewDelete().Model(modelOrNil[T](model)),
	}
}

// ContextBuilderFor returns the strategy for kind.
func ContextBuilderFor[T any](kind Kind) (ContextBuilder[T], error) {
	switch kind {
	case KindSelect:
		return SelectContext[T]{}, nil
	case KindUpdate:
		return UpdateContext[T]{}, nil
	case KindDelete:
		return DeleteContext[T]{}, nil
	default:
		return nil, fmt.Errorf("%w: no context builder for %s", ErrIllegalState, kind)
	}
}

// NewContext builds a context of the given kind against db.
func NewContext[T any](kind Kind, db bun.IDB, model any) (*QueryContext[T], error) {
	b, err := ContextBuilderFor[T](kind)
	if err != nil {
		return nil, err
	}
	return b.Build(db, model), nil
}

func modelOrNil[T any](model any) any {
	if model == nil {
		return (*T)(nil)
	}
	return model
}
