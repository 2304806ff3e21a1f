// Package postgres provides the PostgreSQL implementation of store.TaskStore.
// It handles query execution over database/sql with the pgx driver and maps
// PostgreSQL error codes onto the store error vocabulary.
package postgres
