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

// UnPagedSize marks a Paging that selects the whole result set.
const UnPagedSize = -1

// Paging is an immutable result window. Callers pass 1-based page numbers;
// the stored index is 0-based and never negative.
type Paging struct {
	index int
	size  int
}

// NewPaging builds a window for the given 1-based page and page size.
// A size of UnPagedSize (or anything below it) yields an unpaged window
// with index 0.
func NewPaging(page int, size int) Paging {
	if size <= UnPagedSize {
		return Paging{index: 0, size: UnPagedSize}
	}
	return Paging{index: max(page-1, 0), size: size}
}

// PagingOf is an alias of NewPaging.
func PagingOf(page int, size int) Paging {
	return NewPaging(page, size)
}

// PagingOfSize returns the first page of the given size.
func PagingOfSize(size int) Paging {
	return NewPaging(0, size)
}

// UnPaged returns a window covering every row.
func UnPaged() Paging {
	return Paging{index: 0, size: UnPagedSize}
}

func (p Paging) Index() int { return p.index }

func (p Paging) Size() int { return p.size }

// Offset is the number of rows skipped before the window starts.
func (p Paging) Offset() int {
	if p.IsUnPaged() {
		return 0
	}
	return p.index * p.size
}

func (p Paging) IsPaged() bool { return p.size != UnPagedSize }

func (p Paging) IsUnPaged() bool { return !p.IsPaged() }

// Next returns the following window.
func (p Paging) Next() Paging {
	return p.WithIndex(p.index + 1)
}

// Previous returns the preceding window, or p itself on the first page.
func (p Paging) Previous() Paging {
	if p.index == 0 {
		return p
	}
	return p.WithIndex(p.index - 1)
}

// First returns the first window, or p itself when already there.
func (p Paging) First() Paging {
	if p.index == 0 {
		return p
	}
	return p.WithIndex(0)
}

// WithIndex rebinds the window to a 0-based index. Negative indexes clamp
// to 0 and unpaged windows always stay at 0.
func (p Paging) WithIndex(index int) Paging {
	if p.IsUnPaged() {
		return p
	}
	index = max(index, 0)
	if index == p.index {
		return p
	}
	return Paging{index: index, size: p.size}
}

// PageRequest pairs a result window with an ordering.
type PageRequest struct {
	paging Paging
	sort   Sort
}

// NewPageRequest creates a request with both paging and sort.
func NewPageRequest(paging Paging, sort Sort) *PageRequest {
	return &PageRequest{paging: paging, sort: sort}
}

// NewPageRequestWithPaging creates a request with an empty sort.
func NewPageRequestWithPaging(paging Paging) *PageRequest {
	return NewPageRequest(paging, EmptySort())
}

// NewPageRequestWithSort creates an unpaged request with the given sort.
func NewPageRequestWithSort(sort Sort) *PageRequest {
	return NewPageRequest(UnPaged(), sort)
}

// NewDefaultPageRequest creates a request for a 1-based page without ordering.
func NewDefaultPageRequest(page int, size int) *PageRequest {
	return NewPageRequestWithPaging(NewPaging(page, size))
}

func (r *PageRequest) GetPaging() Paging { return r.paging }

func (r *PageRequest) GetSort() Sort { return r.sort }
