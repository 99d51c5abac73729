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
	"reflect"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/schema"
)

// Predicate is a boolean SQL condition. A nil *Predicate stands for
// "no constraint".
type Predicate struct {
	query schema.QueryWithArgs
}

// Query returns the condition in a form bun can embed as a query argument,
// e.g. q.Where("?", p.Query()).
func (p *Predicate) Query() schema.QueryWithArgs { return p.query }

func newPredicate(query string, args ...any) *Predicate {
	return &Predicate{query: bun.SafeQuery(query, args...)}
}

// Builder creates predicates for one query. It is not safe for concurrent
// use; the executor allocates one per operation.
//
// Errors are deferred the way bun query builders defer them: the first
// failure is kept and reported by Err, and the predicate returned in its
// place matches nothing.
type Builder struct {
	dialect schema.Dialect
	err     error
}

func NewBuilder(dialect schema.Dialect) *Builder {
	return &Builder{dialect: dialect}
}

func (b *Builder) Dialect() schema.Dialect { return b.dialect }

// Err returns the first error recorded while building predicates.
func (b *Builder) Err() error { return b.err }

func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Conjunction matches every row.
func (b *Builder) Conjunction() *Predicate { return newPredicate("1 = 1") }

// Disjunction matches no row.
func (b *Builder) Disjunction() *Predicate { return newPredicate("1 = 0") }

// And joins two predicates. A nil operand is ignored.
func (b *Builder) And(x, y *Predicate) *Predicate {
	return b.join("(? AND ?)", x, y)
}

// Or joins two predicates. A nil operand is ignored.
func (b *Builder) Or(x, y *Predicate) *Predicate {
	return b.join("(? OR ?)", x, y)
}

func (b *Builder) join(format string, x, y *Predicate) *Predicate {
	switch {
	case x == nil:
		return y
	case y == nil:
		return x
	}
	return newPredicate(format, x.query, y.query)
}

// Not negates p. Negating nil stays nil.
func (b *Builder) Not(p *Predicate) *Predicate {
	if p == nil {
		return nil
	}
	return newPredicate("NOT (?)", p.query)
}

// Equal compares a column with a value. A nil value renders IS NULL.
func (b *Builder) Equal(path Path, value any) *Predicate {
	if value == nil {
		return b.IsNull(path)
	}
	return b.leaf(path, "? = ?", value)
}

// NotEqual is the negation of Equal. A nil value renders IS NOT NULL.
func (b *Builder) NotEqual(path Path, value any) *Predicate {
	if value == nil {
		return b.IsNotNull(path)
	}
	return b.leaf(path, "? <> ?", value)
}

func (b *Builder) GreaterThan(path Path, value any) *Predicate {
	return b.leaf(path, "? > ?", value)
}

func (b *Builder) GreaterThanOrEqual(path Path, value any) *Predicate {
	return b.leaf(path, "? >= ?", value)
}

func (b *Builder) LessThan(path Path, value any) *Predicate {
	return b.leaf(path, "? < ?", value)
}

func (b *Builder) LessThanOrEqual(path Path, value any) *Predicate {
	return b.leaf(path, "? <= ?", value)
}

// Between matches lower <= column <= upper.
func (b *Builder) Between(path Path, lower, upper any) *Predicate {
	return b.leaf(path, "? BETWEEN ? AND ?", lower, upper)
}

func (b *Builder) Like(path Path, pattern string) *Predicate {
	return b.leaf(path, "? LIKE ?", pattern)
}

// ILike is a case-insensitive Like. PostgreSQL gets ILIKE, other dialects
// compare lower-cased values.
func (b *Builder) ILike(path Path, pattern string) *Predicate {
	if b.dialect != nil && b.dialect.Name() == dialect.PG {
		return b.leaf(path, "? ILIKE ?", pattern)
	}
	return b.leaf(path, "lower(?) LIKE lower(?)", pattern)
}

// In matches any element of values, which must be a slice or array.
// An empty list matches nothing.
func (b *Builder) In(path Path, values any) *Predicate {
	rv := reflect.ValueOf(values)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return b.leaf(path, "? IN (?)", bun.In([]any{values}))
	}
	if rv.Len() == 0 {
		if path.err != nil {
			b.setErr(path.err)
		}
		return b.Disjunction()
	}
	return b.leaf(path, "? IN (?)", bun.In(values))
}

func (b *Builder) IsNull(path Path) *Predicate {
	return b.leaf(path, "? IS NULL")
}

func (b *Builder) IsNotNull(path Path) *Predicate {
	return b.leaf(path, "? IS NOT NULL")
}

// Expr wraps a raw SQL condition with bun placeholders.
func (b *Builder) Expr(query string, args ...any) *Predicate {
	return newPredicate(query, args...)
}

func (b *Builder) leaf(path Path, query string, args ...any) *Predicate {
	if path.err != nil {
		b.setErr(path.err)
		return b.Disjunction()
	}
	return newPredicate(query, append([]any{path.ident()}, args...)...)
}
