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

// DefaultTenant is used when the context carries no tenant.
const DefaultTenant = "default"

type tenantKey struct{}

// WithTenant returns a context routed to the tenant id.
func WithTenant(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, tenantKey{}, id)
}

// TenantFromContext returns the tenant of ctx, or DefaultTenant.
func TenantFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(tenantKey{}).(string); ok && id != "" {
		return id
	}
	return DefaultTenant
}

// tenant holds one tenant's connection. mu serializes connecting it so other
// tenants are never blocked by a slow connect or migration.
type tenant struct {
	mu       sync.Mutex
	config   *ConnectionConfig
	manager  AbstractDatabaseManager
	db       *bun.DB
	sessions *Sessions
}

// TenantRegistry maps tenant IDs to databases. Configured tenants connect
// lazily on first use; unknown tenants resolve to the default tenant.
type TenantRegistry struct {
	mu      sync.Mutex
	tenants map[string]*tenant
	logger  Logger
	migrate bool
}

// NewTenantRegistry registers defaultConfig as DefaultTenant. A nil config
// leaves the default tenant unset until Register or RegisterDB is called.
func NewTenantRegistry(defaultConfig *ConnectionConfig) *TenantRegistry {
	r := &TenantRegistry{tenants: make(map[string]*tenant), logger: GetLogger()}
	if defaultConfig != nil {
		r.Register(DefaultTenant, *defaultConfig)
	}
	return r
}

func (r *TenantRegistry) SetLogger(logger Logger) { r.logger = logger }

// SetMigrateOnConnect makes lazily connected tenants run migrations before
// their first unit of work.
func (r *TenantRegistry) SetMigrateOnConnect(migrate bool) { r.migrate = migrate }

// Register adds a tenant connected from cfg on first use.
func (r *TenantRegistry) Register(id string, cfg ConnectionConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tenants[id] = &tenant{config: &cfg}
}

// RegisterDB adds a tenant served by an already opened database. The
// registry does not close it.
func (r *TenantRegistry) RegisterDB(id string, db *bun.DB) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tenants[id] = &tenant{db: db, sessions: NewSessions(db)}
}

// Resolve returns the database of tenant id, connecting it if necessary.
func (r *TenantRegistry) Resolve(ctx context.Context, id string) (*bun.DB, error) {
	db, _, err := r.resolve(ctx, id)
	return db, err
}

func (r *TenantRegistry) lookup(id string) (*tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tenants[id]; ok {
		return t, nil
	}
	t, ok := r.tenants[DefaultTenant]
	if !ok {
		return nil, fmt.Errorf("unknown tenant %q and no default tenant", id)
	}
	r.logger.Debug("Tenant not registered, using default", "tenant", id)
	return t, nil
}

func (r *TenantRegistry) resolve(ctx context.Context, id string) (*bun.DB, *Sessions, error) {
	t, err := r.lookup(id)
	if err != nil {
		return nil, nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.db != nil {
		return t.db, t.sessions, nil
	}
	if t.config == nil {
		return nil, nil, fmt.Errorf("tenant %q: no database", id)
	}

	manager := NewDatabaseManager(t.config)
	manager.SetLogger(r.logger)
	if err := manager.Connect(ctx); err != nil {
		return nil, nil, fmt.Errorf("tenant %q: %w", id, err)
	}
	if r.migrate {
		if err := manager.RunMigrations(ctx); err != nil {
			_ = manager.Disconnect()
			return nil, nil, fmt.Errorf("tenant %q: %w", id, err)
		}
	}
	t.manager = manager
	t.db = manager.GetDB()
	t.db.RegisterModel(RegisteredModelInstances()...)
	t.sessions = NewSessions(t.db)
	t.sessions.SetLogger(r.logger)
	return t.db, t.sessions, nil
}

// Sessions returns a SessionProvider routing every unit of work to the
// tenant found in its context.
func (r *TenantRegistry) Sessions() SessionProvider {
	return &TenantSessions{registry: r}
}

// Close disconnects every tenant the registry connected itself.
func (r *TenantRegistry) Close() error {
	r.mu.Lock()
	tenants := make(map[string]*tenant, len(r.tenants))
	for id, t := range r.tenants {
		tenants[id] = t
	}
	r.mu.Unlock()

	var errs []error
	for id, t := range tenants {
		t.mu.Lock()
		if t.manager != nil {
			if err := t.manager.Disconnect(); err != nil {
				errs = append(errs, fmt.Errorf("tenant %q: %w", id, err))
			}
			t.manager, t.db, t.sessions = nil, nil, nil
		}
		t.mu.Unlock()
	}
	return errors.Join(errs...)
}

// TenantSessions is the SessionProvider returned by TenantRegistry.Sessions.
type TenantSessions struct {
	registry *TenantRegistry
}

var _ SessionProvider = (*TenantSessions)(nil)

func (s *TenantSessions) RunInTransaction(ctx context.Context, fn SessionFunc) error {
	_, sessions, err := s.registry.resolve(ctx, TenantFromContext(ctx))
	if err != nil {
		return err
	}
	return sessions.RunInTransaction(ctx, fn)
}

func (s *TenantSessions) RunInReadScope(ctx context.Context, fn SessionFunc) error {
	_, sessions, err := s.registry.resolve(ctx, TenantFromContext(ctx))
	if err != nil {
		return err
	}
	return sessions.RunInReadScope(ctx, fn)
}
