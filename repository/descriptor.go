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
	"fmt"
	"reflect"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

// Descriptor resolves the table an executor works on.
type Descriptor interface {
	Describe(dialect schema.Dialect) (*schema.Table, error)
}

// ModelDescriptor describes the bun model T. In Strict mode the model must
// embed bun.BaseModel with an explicit table tag and declare a primary key.
type ModelDescriptor[T any] struct {
	Strict bool
}

var baseModelType = reflect.TypeFor[bun.BaseModel]()

func (d ModelDescriptor[T]) Describe(dialect schema.Dialect) (*schema.Table, error) {
	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrConfiguration, typ)
	}
	table := dialect.Tables().Get(typ)
	if !d.Strict {
		return table, nil
	}
	if !hasTableTag(typ) {
		return nil, fmt.Errorf("%w: %s does not declare a table name", ErrConfiguration, typ)
	}
	if len(table.PKs) == 0 {
		return nil, fmt.Errorf("%w: %s has no primary key", ErrConfiguration, typ)
	}
	return table, nil
}

// hasTableTag reports whether the bun.BaseModel field of typ names a table,
// either as the bare first tag element or through the table option.
func hasTableTag(typ reflect.Type) bool {
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.Type != baseModelType {
			continue
		}
		for j, part := range strings.Split(f.Tag.Get("bun"), ",") {
			part = strings.TrimSpace(part)
			if name, ok := strings.CutPrefix(part, "table:"); ok && name != "" {
				return true
			}
			if j == 0 && part != "" && part != "-" && !strings.Contains(part, ":") {
				return true
			}
		}
	}
	return false
}
