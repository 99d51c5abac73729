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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recoverError(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	fn()
	return nil
}

func TestContextKindMismatchPanics(t *testing.T) {
	db := newTestDB(t)

	for _, kind := range []Kind{KindSelect, KindUpdate, KindDelete} {
		qc, err := NewContext[animal](kind, db, nil)
		require.NoError(t, err)
		assert.Equal(t, kind, qc.Kind())
		assert.NotNil(t, qc.Root())

		accessors := map[Kind]func(){
			KindSelect: func() { qc.Select() },
			KindUpdate: func() { qc.Update() },
			KindDelete: func() { qc.Delete() },
		}
		for other, access := range accessors {
			if other == kind {
				assert.NotPanics(t, access)
				continue
			}
			err := recoverError(access)
			assert.True(t, errors.Is(err, ErrIllegalState), "%s context read as %s: %v", kind, other, err)
		}
	}
}

func TestContextsAreFresh(t *testing.T) {
	db := newTestDB(t)
	a, err := NewContext[animal](KindSelect, db, nil)
	require.NoError(t, err)
	b, err := NewContext[animal](KindSelect, db, nil)
	require.NoError(t, err)

	a.Filter(NewBuilder(db.Dialect()).Conjunction())
	assert.NotSame(t, a.Select(), b.Select())
	assert.NotContains(t, b.Select().String(), "WHERE")
}

func TestUnknownKind(t *testing.T) {
	_, err := NewContext[animal](Kind(42), newTestDB(t), nil)
	assert.ErrorIs(t, err, ErrIllegalState)
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestMutationFilters(t *testing.T) {
	db := newTestDB(t)
	cb := NewBuilder(db.Dialect())

	del, err := NewContext[animal](KindDelete, db, nil)
	require.NoError(t, err)
	del.Filter(nil)
	assert.Contains(t, del.Delete().String(), "WHERE (1 = 1)")

	upd, err := NewContext[animal](KindUpdate, db, nil)
	require.NoError(t, err)
	upd.Update().Set("name = ?", "dog")
	upd.Filter(cb.Equal(upd.Root().Get("name"), "cat"))
	query := upd.Update().String()
	assert.Contains(t, query, `SET name = 'dog'`)
	assert.Contains(t, query, `WHERE ("name" = 'cat')`)
}
