// Package repository executes sculptor specifications against a bun
// database. Every operation validates its arguments, resolves the entity
// descriptor, opens a unit of work from a database.SessionProvider, builds a
// fresh query context, attaches the carved predicate and releases the unit
// of work before returning. It also keeps insert and upsert helpers for
// writing entities.
package repository
