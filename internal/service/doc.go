// Package service provides the application-level task operations that sit
// between the HTTP handlers and the task store.
//
// Service methods return sentinel errors for expected conditions
// (ErrTaskNotFound, domain validation errors) and wrap everything else in a
// TaskServiceError so callers can use errors.Is and errors.As.
package service
