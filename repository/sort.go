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
	"github.com/tomoncle/querysculptor/sculptor"
	"github.com/tomoncle/querysculptor/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/schema"
)

// bound limits q to the rows of paging. bun drops LIMIT 0, so an empty
// window is expressed as a false condition instead.
func bound(q *bun.SelectQuery, paging types.Paging) {
	switch {
	case paging.IsUnPaged():
	case paging.Size() == 0:
		q.Where("1 = 0")
	default:
		q.Limit(paging.Size()).Offset(paging.Offset())
	}
}

// order appends one ORDER BY key per column, first column first. MySQL has
// no NULLS FIRST/LAST, so an IS NULL key is put in front of the column.
func order[T any](q *bun.SelectQuery, d schema.Dialect, root *sculptor.Root[T], sort types.Sort) error {
	mysql := d.Name() == dialect.MySQL
	for _, c := range sort.Columns() {
		col, err := sortColumn(root, sort, c.Name)
		if err != nil {
			return err
		}
		if c.NullPrecedence == types.NullsUnset {
			q.OrderExpr("? "+c.Direction.String(), col)
			continue
		}
		if mysql {
			nullsKey := "ASC"
			if c.NullPrecedence == types.NullsFirst {
				nullsKey = "DESC"
			}
			q.OrderExpr("(? IS NULL) "+nullsKey, col)
			q.OrderExpr("? "+c.Direction.String(), col)
			continue
		}
		q.OrderExpr("? "+c.Direction.String()+" "+c.NullPrecedence.String(), col)
	}
	return nil
}

func sortColumn[T any](root *sculptor.Root[T], sort types.Sort, name string) (schema.QueryAppender, error) {
	if !sort.IsEscapingEnabled() {
		return bun.Safe(name), nil
	}
	path := root.Get(name)
	if err := path.Err(); err != nil {
		return nil, err
	}
	return bun.Ident(path.Column()), nil
}
