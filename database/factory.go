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
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// BaseDatabaseFactory creates and manages a configured database manager and
// provides helpers for initialization, health checks, and statistics.
type BaseDatabaseFactory struct {
	manager AbstractDatabaseManager
	logger  Logger
}

// NewDatabaseFactory returns a new database factory using the global logger.
func NewDatabaseFactory() *BaseDatabaseFactory {
	return &BaseDatabaseFactory{
		logger: GetLogger(),
	}
}

var supportedTypes = []string{"mysql", "postgres", "sqlite"}

// CreateFromConfig constructs a database manager from the given connection
// configuration, applying DB_* environment overrides.
func (f *BaseDatabaseFactory) CreateFromConfig(cfg *ConnectionConfig) (AbstractDatabaseManager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}
	if !slices.Contains(supportedTypes, cfg.Type) {
		return nil, fmt.Errorf("unsupported database type: %s, supported types: %v", cfg.Type, supportedTypes)
	}
	applyEnvOverrides(cfg, "DB_")

	manager := NewDatabaseManager(cfg)
	manager.SetLogger(f.logger)

	f.manager = manager
	return manager, nil
}

// TenantConfig returns cfg with the DB_<TENANT>_* environment overrides of
// tenant id applied, e.g. DB_ACME_HOST for tenant "acme".
func (f *BaseDatabaseFactory) TenantConfig(id string, cfg ConnectionConfig) (ConnectionConfig, error) {
	if !slices.Contains(supportedTypes, cfg.Type) {
		return cfg, fmt.Errorf("tenant %q: unsupported database type: %s", id, cfg.Type)
	}
	applyEnvOverrides(&cfg, tenantEnvPrefix(id))
	return cfg, nil
}

func tenantEnvPrefix(id string) string {
	return "DB_" + strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(id)) + "_"
}

// envOverride assigns one environment value; malformed values are ignored.
type envOverride struct {
	key   string
	apply func(cfg *ConnectionConfig, value string)
}

var envOverrides = []envOverride{
	{"HOST", func(c *ConnectionConfig, v string) { c.Host = v }},
	{"PORT", intOverride(func(c *ConnectionConfig, n int) { c.Port = n })},
	{"USERNAME", func(c *ConnectionConfig, v string) { c.Username = v }},
	{"PASSWORD", func(c *ConnectionConfig, v string) { c.Password = v }},
	{"NAME", func(c *ConnectionConfig, v string) { c.DBName = v }},
	{"SSLMODE", func(c *ConnectionConfig, v string) { c.SSLMode = v }},
	{"MAX_IDLE_CONNS", intOverride(func(c *ConnectionConfig, n int) { c.MaxIdleConns = n })},
	{"MAX_OPEN_CONNS", intOverride(func(c *ConnectionConfig, n int) { c.MaxOpenConns = n })},
	{"CONN_MAX_LIFETIME", intOverride(func(c *ConnectionConfig, n int) { c.ConnMaxLifetime = time.Duration(n) * time.Second })},
	{"ENABLE_RECONNECT", func(c *ConnectionConfig, v string) { c.EnableReconnect = v == "true" }},
	{"RECONNECT_INTERVAL", intOverride(func(c *ConnectionConfig, n int) { c.ReconnectInterval = time.Duration(n) * time.Second })},
	{"ENABLE_QUERY_LOG", func(c *ConnectionConfig, v string) { c.EnableQueryLog = v == "true" }},
	{"SLOW_QUERY_TIME", func(c *ConnectionConfig, v string) {
		if d, err := time.ParseDuration(v); err == nil {
			c.SlowQueryTime = d
		}
	}},
}

func intOverride(set func(*ConnectionConfig, int)) func(*ConnectionConfig, string) {
	return func(c *ConnectionConfig, v string) {
		if n, err := strconv.Atoi(v); err == nil {
			set(c, n)
		}
	}
}

func applyEnvOverrides(cfg *ConnectionConfig, prefix string) {
	for _, o := range envOverrides {
		if value := os.Getenv(prefix + o.key); value != "" {
			o.apply(cfg, value)
		}
	}
}

// InitializeDatabase connects to the database and optionally runs migrations.
func (f *BaseDatabaseFactory) InitializeDatabase(ctx context.Context, runMigrations bool) error {
	if f.manager == nil {
		return fmt.Errorf("database manager not created")
	}

	// Connect to database
	if err := f.manager.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	// Run migrations
	if runMigrations {
		if err := f.manager.RunMigrations(ctx); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
	}
	f.logger.Info("Database initialization completed!")
	return nil
}

// GetManager returns the underlying database manager.
func (f *BaseDatabaseFactory) GetManager() AbstractDatabaseManager {
	return f.manager
}

// GetDB returns the Bun database instance, or nil if not initialized.
func (f *BaseDatabaseFactory) GetDB() *bun.DB {
	if f.manager == nil {
		return nil
	}
	return f.manager.GetDB()
}

// SetLogger sets the logger on the factory and the underlying manager.
func (f *BaseDatabaseFactory) SetLogger(logger Logger) {
	f.logger = logger
	if f.manager != nil {
		f.manager.SetLogger(logger)
	}
}

// Close closes the database connection managed by the factory.
func (f *BaseDatabaseFactory) Close() error {
	if f.manager == nil {
		return nil
	}
	return f.manager.Disconnect()
}

// GetHealthStatus returns the current database health status from the manager.
func (f *BaseDatabaseFactory) GetHealthStatus(ctx context.Context) *HealthStatus {
	if f.manager == nil {
		return &HealthStatus{
			Healthy:       false,
			Connected:     false,
			LastError:     "Database manager not initialized",
			LastCheckTime: time.Now(),
		}
	}
	return f.manager.HealthCheck(ctx)
}

// GetStats returns database connection statistics from the manager.
func (f *BaseDatabaseFactory) GetStats() *DBStats {
	if f.manager == nil {
		return &DBStats{}
	}
	return f.manager.GetStats()
}
