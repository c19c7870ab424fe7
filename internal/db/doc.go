// Package db is the data-access layer for FlowerPassword.
//
// It persists two things: the history of codes a user has derived
// passwords for, and a small key/value settings table used by the
// preferences package. Derived passwords are never stored.
//
// Backends
//   - sqlite (default, modernc.org/sqlite, pure Go)
//   - postgres (pgx stdlib driver)
//   - mysql (go-sql-driver/mysql)
//
// All backends share one Bun-based implementation, `BunStore`. Schema
// changes live in embedded SQL files under migrations/<type> and are
// applied by RunMigrations when a store is opened.
//
// Testing notes
//   - Use `New("sqlite", "file:<name>?mode=memory&cache=shared")` for a
//     real store with migrations applied.
//   - `SetDefaultStore` lets tests inject a store into package-level
//     helpers without opening a database.
package db
