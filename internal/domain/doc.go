// Package domain contains the core business entities of the task tracker
// and the validation rules they enforce, independent of any storage or
// delivery mechanism.
package domain
