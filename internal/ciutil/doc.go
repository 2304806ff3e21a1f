// Package ciutil detects continuous integration environments and resolves
// the connection strings used by database integration tests.
package ciutil
