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
	"fmt"
	"sync"

	"github.com/uptrace/bun"
)

var (
	globalFactory  *BaseDatabaseFactory
	globalTenants  *TenantRegistry
	globalSessions *Sessions
	globalMu       sync.Mutex
	DB             *bun.DB
)

// GetDB returns the global Bun database instance.
func GetDB() *bun.DB {
	if globalFactory != nil {
		return globalFactory.GetDB()
	}
	return DB
}

// GetDatabaseManager returns the global database manager.
func GetDatabaseManager() AbstractDatabaseManager {
	if globalFactory != nil {
		return globalFactory.GetManager()
	}
	return nil
}

// GetDatabaseFactory returns the global database factory.
func GetDatabaseFactory() *BaseDatabaseFactory {
	return globalFactory
}

// InitDB initializes the global database using the provided configuration.
func InitDB(cfg *Config) (*bun.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}
	return InitDatabaseWithOptions(cfg, cfg.DataMigrateConfig.EnableMigrateOnStartup)
}

// InitDatabaseWithOptions initializes the database and optionally runs migrations.
func InitDatabaseWithOptions(cfg *Config, runMigrations bool) (*bun.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}
	globalFactory = NewDatabaseFactory()
	manager, err := globalFactory.CreateFromConfig(&cfg.ConnectionConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}

	ctx := context.Background()
	if err := globalFactory.InitializeDatabase(ctx, runMigrations); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	DB = manager.GetDB()
	DB.RegisterModel(RegisteredModelInstances()...)

	tenants := NewTenantRegistry(nil)
	tenants.SetMigrateOnConnect(runMigrations)
	tenants.RegisterDB(DefaultTenant, DB)
	for id, tenantCfg := range cfg.Tenants {
		resolved, err := globalFactory.TenantConfig(id, tenantCfg)
		if err != nil {
			return nil, err
		}
		tenants.Register(id, resolved)
	}
	globalMu.Lock()
	globalTenants, globalSessions = tenants, nil
	globalMu.Unlock()
	return DB, nil
}

// GetSessions returns a SessionProvider over the global database. It is nil
// until the database has been initialized.
func GetSessions() *Sessions {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalSessions == nil {
		db := GetDB()
		if db == nil {
			return nil
		}
		globalSessions = NewSessions(db)
	}
	return globalSessions
}

// GetTenantRegistry returns the tenant registry built by InitDB.
func GetTenantRegistry() *TenantRegistry {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalTenants
}

// CloseDB closes the global database and every tenant connection. GetDB
// returns nil afterwards.
func CloseDB() error {
	globalMu.Lock()
	tenants, factory := globalTenants, globalFactory
	globalTenants, globalSessions = nil, nil
	globalFactory, DB = nil, nil
	globalMu.Unlock()

	var err error
	if tenants != nil {
		err = tenants.Close()
	}
	if factory != nil {
		err = errors.Join(err, factory.Close())
	}
	return err
}

// GetHealthStatus returns the current database health status.
func GetHealthStatus(ctx context.Context) *HealthStatus {
	if globalFactory != nil {
		return globalFactory.GetHealthStatus(ctx)
	}
	return &HealthStatus{
		Healthy:   false,
		Connected: false,
		LastError: "Database not initialized",
	}
}

// GetDatabaseStats returns global database statistics.
func GetDatabaseStats() *DBStats {
	if globalFactory != nil {
		return globalFactory.GetStats()
	}
	return &DBStats{}
}

// RunMigrations executes migrations against the global database.
func RunMigrations() error {
	if globalFactory == nil {
		return fmt.Errorf("database not initialized")
	}
	manager := globalFactory.GetManager()
	if manager == nil {
		return fmt.Errorf("database manager not initialized")
	}
	return manager.RunMigrations(context.Background())
}
