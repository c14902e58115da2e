// Package sqlite provides the SQLite-backed session store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. One database file holds one analyst session: the current
// video, saved annotations, the axial category registry, parsed documents and
// codebook rows. Ordered collections keep an explicit position column so row
// order survives a reload.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.methodosync/data/session.db
//
// # Thread Safety
//
// All operations are thread-safe. Saves replace the session inside a single
// transaction, and SQLite runs in WAL mode.
package sqlite
