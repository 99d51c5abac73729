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
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SessionFunc runs statements against a scoped handle. The handle must not
// be used after the function returns.
type SessionFunc func(ctx context.Context, db bun.IDB) error

// SessionProvider hands out units of work.
//
// RunInTransaction commits when fn returns nil and rolls back otherwise.
// RunInReadScope pins a single pooled connection for the duration of fn
// without opening a transaction.
type SessionProvider interface {
	RunInTransaction(ctx context.Context, fn SessionFunc) error
	RunInReadScope(ctx context.Context, fn SessionFunc) error
}

// Sessions is the SessionProvider over a single bun database.
type Sessions struct {
	db        *bun.DB
	txOptions *sql.TxOptions
	logger    Logger
}

var _ SessionProvider = (*Sessions)(nil)

// NewSessions returns a session provider for db using the global logger.
func NewSessions(db *bun.DB) *Sessions {
	return &Sessions{db: db, logger: GetLogger()}
}

func (s *Sessions) SetLogger(logger Logger) { s.logger = logger }

// SetTxOptions sets the isolation level and read-only flag of transactions.
func (s *Sessions) SetTxOptions(opts *sql.TxOptions) { s.txOptions = opts }

func (s *Sessions) DB() *bun.DB { return s.db }

func (s *Sessions) RunInTransaction(ctx context.Context, fn SessionFunc) error {
	if s.db == nil {
		return fmt.Errorf("database not initialized")
	}
	id := uuid.NewString()
	s.logger.Debug("Unit of work started", "id", id, "scope", "transaction")
	err := s.db.RunInTx(ctx, s.txOptions, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, &tx)
	})
	s.finish(id, "transaction", err)
	return err
}

func (s *Sessions) RunInReadScope(ctx context.Context, fn SessionFunc) error {
	if s.db == nil {
		return fmt.Errorf("database not initialized")
	}
	id := uuid.NewString()
	s.logger.Debug("Unit of work started", "id", id, "scope", "read")
	conn, err := s.db.Conn(ctx)
	if err != nil {
		s.finish(id, "read", err)
		return err
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			s.logger.Warn("Failed to release connection", "id", id, "error", closeErr)
		}
	}()
	err = fn(ctx, &conn)
	s.finish(id, "read", err)
	return err
}

func (s *Sessions) finish(id, scope string, err error) {
	if err != nil {
		s.logger.Debug("Unit of work failed", "id", id, "scope", scope, "error", err)
		return
	}
	s.logger.Debug("Unit of work completed", "id", id, "scope", scope)
}
