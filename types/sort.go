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

package types

// Column is a single ordering key.
type Column struct {
	Name           string
	Direction      Direction
	NullPrecedence NullPrecedence
}

// Sort is an immutable, ordered list of columns. The first column is the
// primary sort key. Every modifier returns a new Sort.
type Sort struct {
	columns          []Column
	escapingDisabled bool
}

// EmptySort returns a Sort without columns.
func EmptySort() Sort {
	return Sort{}
}

// SortBy orders ascending by each of the given columns.
func SortBy(columns ...string) Sort {
	return Ascending.sort(columns)
}

// SortByColumn orders by a single column in the given direction.
func SortByColumn(name string, direction Direction) Sort {
	return EmptySort().AndDirection(name, direction)
}

// SortByNulls orders by a single column with explicit null placement.
func SortByNulls(name string, direction Direction, nulls NullPrecedence) Sort {
	return EmptySort().AndNulls(name, direction, nulls)
}

// SortAscending is an alias of SortBy.
func SortAscending(columns ...string) Sort {
	return SortBy(columns...)
}

// SortDescending orders descending by each of the given columns.
func SortDescending(columns ...string) Sort {
	return Descending.sort(columns)
}

func (d Direction) sort(columns []string) Sort {
	s := EmptySort()
	for _, c := range columns {
		s = s.AndDirection(c, d)
	}
	return s
}

// And appends an ascending column.
func (s Sort) And(name string) Sort {
	return s.AndDirection(name, Ascending)
}

// AndDirection appends a column with the given direction.
func (s Sort) AndDirection(name string, direction Direction) Sort {
	return s.AndNulls(name, direction, NullsUnset)
}

// AndNulls appends a column with direction and null placement.
func (s Sort) AndNulls(name string, direction Direction, nulls NullPrecedence) Sort {
	out := s.clone(1)
	out.columns = append(out.columns, Column{Name: name, Direction: direction, NullPrecedence: nulls})
	return out
}

// WithDirection sets the direction of every column.
func (s Sort) WithDirection(direction Direction) Sort {
	out := s.clone(0)
	for i := range out.columns {
		out.columns[i].Direction = direction
	}
	return out
}

func (s Sort) Ascending() Sort { return s.WithDirection(Ascending) }

func (s Sort) Descending() Sort { return s.WithDirection(Descending) }

// DisableEscaping makes column names render verbatim instead of as quoted
// identifiers, so expressions such as lower(name) can be used.
func (s Sort) DisableEscaping() Sort {
	out := s.clone(0)
	out.escapingDisabled = true
	return out
}

func (s Sort) IsEscapingEnabled() bool { return !s.escapingDisabled }

// Columns returns a copy of the ordering columns.
func (s Sort) Columns() []Column {
	return append([]Column(nil), s.columns...)
}

func (s Sort) IsEmpty() bool { return len(s.columns) == 0 }

func (s Sort) clone(extra int) Sort {
	columns := make([]Column, len(s.columns), len(s.columns)+extra)
	copy(columns, s.columns)
	return Sort{columns: columns, escapingDisabled: s.escapingDisabled}
}
