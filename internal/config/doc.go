// Package config handles configuration loading, parsing, and validation
// from environment variables, an optional config file and an optional
// dotenv file. It provides type-safe access to the settings the server,
// the task store and the HTTP layer need.
package config
