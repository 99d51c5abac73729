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
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

func newMockSessions(t *testing.T) (*Sessions, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := bun.NewDB(sqlDB, pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return NewSessions(db), mock
}

func TestRunInTransactionCommits(t *testing.T) {
	sessions, mock := newMockSessions(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM animal").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := sessions.RunInTransaction(context.Background(), func(ctx context.Context, db bun.IDB) error {
		_, err := db.ExecContext(ctx, "DELETE FROM animal")
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTransactionRollsBack(t *testing.T) {
	sessions, mock := newMockSessions(t)
	boom := errors.New("boom")
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := sessions.RunInTransaction(context.Background(), func(context.Context, bun.IDB) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInReadScopeOpensNoTransaction(t *testing.T) {
	sessions, mock := newMockSessions(t)
	mock.ExpectExec("UPDATE animal").WillReturnResult(sqlmock.NewResult(0, 1))

	called := false
	err := sessions.RunInReadScope(context.Background(), func(ctx context.Context, db bun.IDB) error {
		called = true
		_, err := db.ExecContext(ctx, "UPDATE animal SET name = 'x'")
		return err
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInReadScopeReturnsCallbackError(t *testing.T) {
	sessions, mock := newMockSessions(t)
	boom := errors.New("boom")

	err := sessions.RunInReadScope(context.Background(), func(context.Context, bun.IDB) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionsWithoutDatabase(t *testing.T) {
	sessions := NewSessions(nil)
	fn := func(context.Context, bun.IDB) error {
		t.Fatal("callback must not run")
		return nil
	}
	assert.EqualError(t, sessions.RunInTransaction(context.Background(), fn), "database not initialized")
	assert.EqualError(t, sessions.RunInReadScope(context.Background(), fn), "database not initialized")
}
