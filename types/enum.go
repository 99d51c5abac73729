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

// Common illegal/default values used by enums.
const (
	IllegalValue = -1
	IllegalName  = "unknown"
	IllegalDesc  = "unknown"
)

// BaseEnum represents a basic enum contract used by domain types.
type BaseEnum interface {
	IsValid() bool
	Number() int
	String() string
	Desc() string
	Name() string
}

// Direction is the ordering direction of a sort column.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

var _ BaseEnum = Ascending

func (d Direction) IsValid() bool { return d == Ascending || d == Descending }

func (d Direction) Number() int {
	if !d.IsValid() {
		return IllegalValue
	}
	return int(d)
}

func (d Direction) Name() string {
	switch d {
	case Ascending:
		return "ASCENDING"
	case Descending:
		return "DESCENDING"
	default:
		return IllegalName
	}
}

func (d Direction) Desc() string {
	switch d {
	case Ascending:
		return "smallest value first"
	case Descending:
		return "largest value first"
	default:
		return IllegalDesc
	}
}

// String returns the SQL keyword of the direction.
func (d Direction) String() string {
	if d == Descending {
		return "DESC"
	}
	return "ASC"
}

// NullPrecedence controls where NULL values are placed in an ordering.
// The zero value leaves the decision to the database.
type NullPrecedence int

const (
	NullsUnset NullPrecedence = iota
	NullsFirst
	NullsLast
)

var _ BaseEnum = NullsFirst

func (n NullPrecedence) IsValid() bool { return n >= NullsUnset && n <= NullsLast }

func (n NullPrecedence) Number() int {
	if !n.IsValid() {
		return IllegalValue
	}
	return int(n)
}

func (n NullPrecedence) Name() string {
	switch n {
	case NullsUnset:
		return "UNSET"
	case NullsFirst:
		return "NULLS_FIRST"
	case NullsLast:
		return "NULLS_LAST"
	default:
		return IllegalName
	}
}

func (n NullPrecedence) Desc() string {
	switch n {
	case NullsUnset:
		return "database default"
	case NullsFirst:
		return "nulls before values"
	case NullsLast:
		return "nulls after values"
	default:
		return IllegalDesc
	}
}

// String returns the SQL clause of the precedence, empty when unset.
func (n NullPrecedence) String() string {
	switch n {
	case NullsFirst:
		return "NULLS FIRST"
	case NullsLast:
		return "NULLS LAST"
	default:
		return ""
	}
}
