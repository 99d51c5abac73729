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

// Kind is the statement shape a QueryContext wraps.
type Kind int

const (
	KindSelect Kind = iota
	KindUpdate
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "SELECT"
	case KindUpdate:
		return "UPDATE"
	case KindDelete:
		return "DELETE"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// QueryContext holds exactly one bun query together with the root it was
// built for. Only the accessor matching Kind may be called; the others panic
// with an error wrapping ErrIllegalState.
type QueryContext[T any] struct {
	kind Kind
	root *Root[T]
	sel  *bun.SelectQuery
	upd  *bun.UpdateQuery
	del  *bun.DeleteQuery
}

func (qc *QueryContext[T]) Kind() Kind { return qc.kind }

func (qc *QueryContext[T]) Root() *Root[T] { return qc.root }

func (qc *QueryContext[T]) Select() *bun.SelectQuery {
	qc.mustBe(KindSelect)
	return qc.sel
}

func (qc *QueryContext[T]) Update() *bun.UpdateQuery {
	qc.mustBe(KindUpdate)
	return qc.upd
}

func (qc *QueryContext[T]) Delete() *bun.DeleteQuery {
	qc.mustBe(KindDelete)
	return qc.del
}

func (qc *QueryContext[T]) mustBe(kind Kind) {
	if qc.kind != kind {
		panic(fmt.Errorf("%w: %s query requested from a %s context", ErrIllegalState, kind, qc.kind))
	}
}

// Filter attaches p as the WHERE condition of the wrapped query. A nil p
// leaves a select unfiltered; updates and deletes get an always-true
// condition since bun refuses to run them without a WHERE clause.
func (qc *QueryContext[T]) Filter(p *Predicate) {
	if p != nil {
		qc.where("?", p.query)
		return
	}
	if qc.kind != KindSelect {
		qc.where("1 = 1")
	}
}

func (qc *QueryContext[T]) where(query string, args ...any) {
	switch qc.kind {
	case KindSelect:
		qc.sel.Where(query, args...)
	case KindUpdate:
		qc.upd.Where(query, args...)
	case KindDelete:
		qc.del.Where(query, args...)
	}
}
