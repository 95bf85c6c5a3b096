// Package sqlite provides a SQLite-based implementation of driven.DraftStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Draft and published note records live in a
// single kv table; multi-key reads and writes run inside one transaction so a viewer
// never observes half of a publish.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.revisify/data/revisify.db
//
// # Change Notification
//
// The store does not push changes. Viewers poll it.
package sqlite
