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
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
)

func TestQueryHookPrintsStatements(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	hook := NewQueryHook(&out, "QS_TEST_QUERY_HOOK")

	hook.AfterQuery(ctx, &bun.QueryEvent{Query: "SELECT 1", StartTime: time.Now()})
	assert.Contains(t, out.String(), "SELECT 1")

	out.Reset()
	hook.AfterQuery(ctx, &bun.QueryEvent{Query: "DELETE FROM animal", StartTime: time.Now(), Err: errors.New("boom")})
	assert.Contains(t, out.String(), "DELETE FROM animal")
	assert.Contains(t, out.String(), "boom")
}

func TestQueryHookEnvironment(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	hook := NewQueryHook(&out, "QS_TEST_QUERY_HOOK")

	t.Setenv("QS_TEST_QUERY_HOOK", "0")
	hook.AfterQuery(ctx, &bun.QueryEvent{Query: "SELECT 1", StartTime: time.Now()})
	assert.Empty(t, out.String())

	t.Setenv("QS_TEST_QUERY_HOOK", "1")
	hook.AfterQuery(ctx, &bun.QueryEvent{Query: "SELECT 1", StartTime: time.Now()})
	assert.Empty(t, out.String(), "successful statements are only printed in verbose mode")
	hook.AfterQuery(ctx, &bun.QueryEvent{Query: "SELECT 2", StartTime: time.Now(), Err: errors.New("boom")})
	assert.Contains(t, out.String(), "SELECT 2")
}

func TestQueryHookSilentMode(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	hook := NewQueryHook(&out, "")

	EnableBunSqlSilent(true)
	defer EnableBunSqlSilent(false)
	hook.AfterQuery(ctx, &bun.QueryEvent{Query: "SELECT 1", StartTime: time.Now()})
	assert.Empty(t, out.String())
}
