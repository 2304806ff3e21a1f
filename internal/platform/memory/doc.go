// Package memory provides an in-process implementation of store.TaskStore.
// It backs the memory:// database URL for local runs and is the fake store
// used by handler and router tests.
package memory
