// Package store defines the persistence interface for tasks and the errors
// every storage back end reports. Concrete implementations live under
// internal/platform (mongo, postgres, sqlite, memory).
package store
