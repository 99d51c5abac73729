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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	path := writeFile(t, "db.yaml", `
connection_config:
  type: postgres
  host: db.internal
  port: 5432
  dbname: zoo
  slow_query_time: 500ms
data_migrate_config:
  enable_migrate_on_startup: true
tenants:
  acme:
    type: sqlite
    dbname: acme
`)
	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.ConnectionConfig.Type)
	assert.Equal(t, "db.internal", cfg.ConnectionConfig.Host)
	assert.Equal(t, 5432, cfg.ConnectionConfig.Port)
	assert.Equal(t, "zoo", cfg.ConnectionConfig.DBName)
	assert.Equal(t, 500*time.Millisecond, cfg.ConnectionConfig.SlowQueryTime)
	assert.True(t, cfg.DataMigrateConfig.EnableMigrateOnStartup)
	// unset keys keep their defaults
	assert.Equal(t, 100, cfg.ConnectionConfig.MaxOpenConns)

	require.Contains(t, cfg.Tenants, "acme")
	assert.Equal(t, "sqlite", cfg.Tenants["acme"].Type)
	assert.Equal(t, "acme", cfg.Tenants["acme"].DBName)
}

func TestLoadConfigFileErrors(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = LoadConfigFile(writeFile(t, "bad.yaml", "connection_config: [unterminated"))
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestFactoryOverridesFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "override.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_SLOW_QUERY_TIME", "1s")

	cfg := DefaultConnectionConfig()
	cfg.Type = "postgres"
	_, err := NewDatabaseFactory().CreateFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "override.internal", cfg.Host)
	assert.Equal(t, 6543, cfg.Port)
	assert.Equal(t, time.Second, cfg.SlowQueryTime)

	cfg.Type = "oracle"
	_, err = NewDatabaseFactory().CreateFromConfig(cfg)
	assert.ErrorContains(t, err, "unsupported database type: oracle")
}

func TestFactoryTenantConfig(t *testing.T) {
	t.Setenv("DB_EU_WEST_NAME", "eu.db")
	t.Setenv("DB_NAME", "ignored.db")

	cfg, err := NewDatabaseFactory().TenantConfig("eu-west", ConnectionConfig{Type: "sqlite", DBName: "base.db"})
	require.NoError(t, err)
	assert.Equal(t, "eu.db", cfg.DBName)

	_, err = NewDatabaseFactory().TenantConfig("x", ConnectionConfig{Type: "oracle"})
	assert.ErrorContains(t, err, "unsupported database type")
}
