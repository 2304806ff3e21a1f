// Package sqlite provides an embedded SQLite implementation of
// store.TaskStore using the pure-Go modernc.org/sqlite driver.
//
// Task identifiers are the table's autoincrement integer keys rendered as
// decimal strings.
package sqlite
