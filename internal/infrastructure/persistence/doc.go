// Package persistence provides database repository implementations.
// It uses GORM as the ORM layer to store sites, contracts and invoices in
// SQLite or PostgreSQL, maps driver errors onto the billing sentinels, and
// offers a unit of work that binds the repositories to one transaction.
package persistence
