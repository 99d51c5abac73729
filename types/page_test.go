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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagingNormalizesIndex(t *testing.T) {
	cases := []struct {
		name      string
		page      int
		size      int
		wantIndex int
		wantSize  int
		paged     bool
	}{
		{"first page", 1, 10, 0, 10, true},
		{"third page", 3, 10, 2, 10, true},
		{"zero page clamps", 0, 10, 0, 10, true},
		{"negative page clamps", -4, 10, 0, 10, true},
		{"unpaged forces index", 7, UnPagedSize, 0, UnPagedSize, false},
		{"size below sentinel", 3, -9, 0, UnPagedSize, false},
		{"zero size is paged", 2, 0, 1, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPaging(tc.page, tc.size)
			assert.Equal(t, tc.wantIndex, p.Index())
			assert.Equal(t, tc.wantSize, p.Size())
			assert.Equal(t, tc.paged, p.IsPaged())
			assert.Equal(t, !tc.paged, p.IsUnPaged())
		})
	}
}

func TestPagingOfSize(t *testing.T) {
	p := PagingOfSize(-1)
	assert.False(t, p.IsPaged())
	assert.Equal(t, 0, p.Index())

	p = PagingOfSize(25)
	assert.True(t, p.IsPaged())
	assert.Equal(t, 0, p.Index())
	assert.Equal(t, 25, p.Size())
}

func TestPagingNavigation(t *testing.T) {
	p := PagingOf(1, 10)

	assert.Equal(t, p, p.Previous(), "previous on the first page is a no-op")
	assert.Equal(t, p, p.First())

	next := p.Next()
	assert.Equal(t, 1, next.Index())
	assert.Equal(t, 10, next.Offset())
	assert.Equal(t, 0, p.Index(), "original value is untouched")

	assert.Equal(t, 2, next.Next().Index())
	assert.Equal(t, 0, next.Previous().Index())
	assert.Equal(t, 0, next.Next().First().Index())

	assert.Equal(t, 5, p.WithIndex(5).Index())
	assert.Equal(t, 0, p.WithIndex(-3).Index())
	assert.Equal(t, p, p.WithIndex(0))
}

func TestUnPagedNavigationStaysAtZero(t *testing.T) {
	p := UnPaged()
	assert.Equal(t, 0, p.Next().Index())
	assert.Equal(t, 0, p.WithIndex(4).Index())
	assert.Equal(t, 0, p.Offset())
}

func TestPageRequestDefaults(t *testing.T) {
	r := NewPageRequestWithPaging(PagingOf(2, 5))
	assert.True(t, r.GetSort().IsEmpty())
	assert.Equal(t, 1, r.GetPaging().Index())

	r = NewPageRequestWithSort(SortBy("name"))
	assert.True(t, r.GetPaging().IsUnPaged())
	assert.Len(t, r.GetSort().Columns(), 1)

	r = NewDefaultPageRequest(1, 20)
	assert.Equal(t, 20, r.GetPaging().Size())
}
