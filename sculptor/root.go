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
	"reflect"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

// Root identifies the model a query is built for.
type Root[T any] struct {
	table *schema.Table
}

// NewRoot resolves the bun table of T for the given dialect.
func NewRoot[T any](dialect schema.Dialect) *Root[T] {
	return &Root[T]{table: dialect.Tables().Get(reflect.TypeFor[T]())}
}

func (r *Root[T]) Table() *schema.Table { return r.table }

// Name returns the SQL table name.
func (r *Root[T]) Name() string { return r.table.Name }

// Get returns the column path for a field. Both the SQL column name and the
// Go struct field name are accepted. Unknown fields yield a path carrying
// ErrUnknownField, which the Builder records when the path is used.
func (r *Root[T]) Get(field string) Path {
	if f, ok := r.table.FieldMap[field]; ok {
		return Path{column: f.Name}
	}
	for _, f := range r.table.Fields {
		if f.GoName == field {
			return Path{column: f.Name}
		}
	}
	return Path{
		column: field,
		err:    fmt.Errorf("%w: %q on table %s", ErrUnknownField, field, r.table.Name),
	}
}

// Path is a reference to a column of the root model.
type Path struct {
	column string
	err    error
}

func (p Path) Column() string { return p.column }

func (p Path) Err() error { return p.err }

func (p Path) ident() bun.Ident { return bun.Ident(p.column) }
