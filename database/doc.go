// Package database provides connection management on top of Bun together
// with the unit-of-work scopes used by the repository: a transaction scope
// for statements that must be atomic and a read scope pinned to a single
// connection. It also carries configuration loading, per-tenant connection
// routing, migrations of registered models, query hooks and driver error
// classification.
package database
