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
	"iter"
	"reflect"
	"slices"
)

// Sculptor carves a filter condition for model T. Returning nil means the
// sculptor does not constrain the query.
type Sculptor[T any] func(root *Root[T], qc *QueryContext[T], cb *Builder) *Predicate

// CarveCondition evaluates s. A nil sculptor carves nil.
func (s Sculptor[T]) CarveCondition(root *Root[T], qc *QueryContext[T], cb *Builder) *Predicate {
	if s == nil {
		return nil
	}
	return s(root, qc, cb)
}

// And combines s and other with AND.
func (s Sculptor[T]) And(other Sculptor[T]) Sculptor[T] {
	return compose(s, other, (*Builder).And)
}

// Or combines s and other with OR.
func (s Sculptor[T]) Or(other Sculptor[T]) Sculptor[T] {
	return compose(s, other, (*Builder).Or)
}

// compose evaluates lhs then rhs. A nil side yields the other side unchanged;
// combiner runs only when both are present.
func compose[T any](lhs, rhs Sculptor[T], combiner func(*Builder, *Predicate, *Predicate) *Predicate) Sculptor[T] {
	return func(root *Root[T], qc *QueryContext[T], cb *Builder) *Predicate {
		left := lhs.CarveCondition(root, qc, cb)
		right := rhs.CarveCondition(root, qc, cb)
		if left == nil {
			return right
		}
		if right == nil {
			return left
		}
		return combiner(cb, left, right)
	}
}

// Conjunction matches every row.
func Conjunction[T any]() Sculptor[T] {
	return func(_ *Root[T], _ *QueryContext[T], cb *Builder) *Predicate {
		return cb.Conjunction()
	}
}

// Where returns s, or a sculptor without constraint when s is nil.
func Where[T any](s Sculptor[T]) Sculptor[T] {
	if s == nil {
		return func(*Root[T], *QueryContext[T], *Builder) *Predicate { return nil }
	}
	return s
}

// IfNotNull returns s when value is not nil and Conjunction otherwise.
// Typed nils such as a nil *string count as nil.
func IfNotNull[T any](s Sculptor[T], value any) Sculptor[T] {
	if isNil(value) {
		return Conjunction[T]()
	}
	return s
}

// IfNotEmpty returns s when value is a non-empty string, slice, array or map
// and Conjunction otherwise. Values of other kinds only need to be non-nil.
func IfNotEmpty[T any](s Sculptor[T], value any) Sculptor[T] {
	if isEmpty(value) {
		return Conjunction[T]()
	}
	return s
}

// Not negates s. The negation of "no constraint" is still no constraint.
func Not[T any](s Sculptor[T]) Sculptor[T] {
	if s == nil {
		return Where[T](nil)
	}
	return func(root *Root[T], qc *QueryContext[T], cb *Builder) *Predicate {
		return cb.Not(s(root, qc, cb))
	}
}

// AllOf joins sculptors with AND. No sculptors means no constraint.
func AllOf[T any](sculptors ...Sculptor[T]) Sculptor[T] {
	return AllOfSeq(slices.Values(sculptors))
}

// AnyOf joins sculptors with OR. No sculptors means no constraint.
func AnyOf[T any](sculptors ...Sculptor[T]) Sculptor[T] {
	return AnyOfSeq(slices.Values(sculptors))
}

func AllOfSeq[T any](seq iter.Seq[Sculptor[T]]) Sculptor[T] {
	acc := Where[T](nil)
	for s := range seq {
		acc = acc.And(s)
	}
	return acc
}

func AnyOfSeq[T any](seq iter.Seq[Sculptor[T]]) Sculptor[T] {
	acc := Where[T](nil)
	for s := range seq {
		acc = acc.Or(s)
	}
	return acc
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

func isEmpty(value any) bool {
	if isNil(value) {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	}
	return false
}
