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

package main

import (
	"github.com/tomoncle/querysculptor/database"
	"github.com/tomoncle/querysculptor/sculptor"
	"github.com/uptrace/bun"
)

type Animal struct {
	bun.BaseModel `bun:"table:animal,alias:a"`

	ID   int64  `bun:"id,pk,autoincrement" json:"id"`
	Name string `bun:"name,notnull" json:"name"`
}

func init() {
	database.RegisterModel[Animal](0)
}

func hasID(id int64) sculptor.Sculptor[Animal] {
	return func(root *sculptor.Root[Animal], _ *sculptor.QueryContext[Animal], cb *sculptor.Builder) *sculptor.Predicate {
		return cb.Equal(root.Get("id"), id)
	}
}

func hasName(name string) sculptor.Sculptor[Animal] {
	return func(root *sculptor.Root[Animal], _ *sculptor.QueryContext[Animal], cb *sculptor.Builder) *sculptor.Predicate {
		return cb.Equal(root.Get("name"), name)
	}
}

// nameContains matches names containing fragment, ignoring case.
func nameContains(fragment string) sculptor.Sculptor[Animal] {
	return func(root *sculptor.Root[Animal], _ *sculptor.QueryContext[Animal], cb *sculptor.Builder) *sculptor.Predicate {
		return cb.ILike(root.Get("name"), "%"+fragment+"%")
	}
}

// filter narrows by id and name fragment; zero values do not constrain.
func filter(id int64, fragment string) sculptor.Sculptor[Animal] {
	var byID sculptor.Sculptor[Animal]
	if id > 0 {
		byID = hasID(id)
	}
	return sculptor.AllOf(
		sculptor.Where(byID),
		sculptor.IfNotEmpty(nameContains(fragment), fragment),
	)
}
