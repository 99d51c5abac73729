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

package database

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestIsSqlError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		isSQL  bool
		expect SQLError
	}{
		{"nil", nil, false, UnknownErr},
		{"no rows", sql.ErrNoRows, true, NoRowsErr},
		{"wrapped no rows", fmt.Errorf("find: %w", sql.ErrNoRows), true, NoRowsErr},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, true, DuplicateKeyErr},
		{"mysql missing table", &mysql.MySQLError{Number: 1146}, true, NoTableErr},
		{"mysql unmapped", &mysql.MySQLError{Number: 9999}, true, UnknownErr},
		{"postgres duplicate", errors.New(`pq: duplicate key value violates unique constraint "animal_pkey"`), true, DuplicateKeyErr},
		{"postgres undefined column", errors.New(`ERROR: column "age" does not exist (SQLSTATE 42703)`), true, NoColumnErr},
		{"postgres relation exists", errors.New(`pq: relation "animal" already exists`), true, ExistTableErr},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: animal.name (2067)"), true, DuplicateKeyErr},
		{"sqlite no table", errors.New("SQL logic error: no such table: animal (1)"), true, NoTableErr},
		{"sqlite not null", errors.New("NOT NULL constraint failed: animal.name"), true, NotNullViolationErr},
		{"other", errors.New("connection refused"), false, UnknownErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isSQL, kind := IsSqlError(tt.err)
			assert.Equal(t, tt.isSQL, isSQL)
			assert.Equal(t, tt.expect, kind)
		})
	}
}

func TestSQLErrorString(t *testing.T) {
	assert.Equal(t, "duplicate key", DuplicateKeyErr.String())
	assert.Equal(t, "no rows", NoRowsErr.String())
	assert.Equal(t, "unknown", SQLError(99).String())
}
