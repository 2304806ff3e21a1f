// Package middleware provides HTTP middleware for request tracing and
// request-scoped logging.
package middleware
