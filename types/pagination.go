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

import "encoding/json"

// PaginationResult holds one window of items along with display metadata.
// It can only be built by NewPaginationResult.
type PaginationResult[T any] struct {
	items           []T
	page            int
	size            int64
	totalItems      int64
	totalPages      int
	hasNextPage     bool
	hasPreviousPage bool
}

// NewPaginationResult computes the display metadata for a window of items.
// page is the 0-based index the items were fetched from. The display page is
// never clamped against the page count, so a window past the end keeps its
// page number and reports no next page.
func NewPaginationResult[T any](items []T, page int, size int64, totalItems int64) *PaginationResult[T] {
	if items == nil {
		items = make([]T, 0)
	}
	r := &PaginationResult[T]{
		items:      items,
		page:       max(page+1, 1),
		size:       size,
		totalItems: totalItems,
	}
	if size != 0 {
		r.totalPages = int(ceilDiv(totalItems, size))
	}
	r.hasNextPage = r.page < r.totalPages
	r.hasPreviousPage = r.page > 1
	return r
}

// ceilDiv rounds the quotient toward positive infinity.
func ceilDiv(x, y int64) int64 {
	q := x / y
	if x%y != 0 && (x^y) >= 0 {
		q++
	}
	return q
}

func (r *PaginationResult[T]) Items() []T { return r.items }

// Page is the 1-based display page.
func (r *PaginationResult[T]) Page() int { return r.page }

func (r *PaginationResult[T]) Size() int64 { return r.size }

func (r *PaginationResult[T]) TotalItems() int64 { return r.totalItems }

func (r *PaginationResult[T]) TotalPages() int { return r.totalPages }

func (r *PaginationResult[T]) HasNextPage() bool { return r.hasNextPage }

func (r *PaginationResult[T]) HasPreviousPage() bool { return r.hasPreviousPage }

// MapPagination converts the items of a result and keeps its metadata.
func MapPagination[T, R any](r *PaginationResult[T], fn func(T) R) *PaginationResult[R] {
	items := make([]R, len(r.items))
	for i, item := range r.items {
		items[i] = fn(item)
	}
	return &PaginationResult[R]{
		items:           items,
		page:            r.page,
		size:            r.size,
		totalItems:      r.totalItems,
		totalPages:      r.totalPages,
		hasNextPage:     r.hasNextPage,
		hasPreviousPage: r.hasPreviousPage,
	}
}

type paginationJSON[T any] struct {
	Items           []T   `json:"items"`
	Page            int   `json:"page"`
	Size            int64 `json:"size"`
	TotalItems      int64 `json:"total_items"`
	TotalPages      int   `json:"total_pages"`
	HasNextPage     bool  `json:"has_next_page"`
	HasPreviousPage bool  `json:"has_previous_page"`
}

// MarshalJSON implements json.Marshaler.
func (r *PaginationResult[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(paginationJSON[T]{
		Items:           r.items,
		Page:            r.page,
		Size:            r.size,
		TotalItems:      r.totalItems,
		TotalPages:      r.totalPages,
		HasNextPage:     r.hasNextPage,
		HasPreviousPage: r.hasPreviousPage,
	})
}
