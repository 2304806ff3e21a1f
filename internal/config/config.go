package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   yaml:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database" validate:"required"`
	CORS     CORSConfig     `mapstructure:"cors"     yaml:"cors"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"             yaml:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level"        yaml:"log_level"        validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains the task store connection settings.
// The URL scheme selects the storage back end.
type DatabaseConfig struct {
	URL string `mapstructure:"url" yaml:"url" validate:"required"`
	// Name and Collection only apply to MongoDB.
	Name           string        `mapstructure:"name"            yaml:"name"            validate:"required"`
	Collection     string        `mapstructure:"collection"      yaml:"collection"      validate:"required"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" yaml:"connect_timeout" validate:"gt=0"`
}

// CORSConfig contains cross-origin settings for the HTTP API.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins" validate:"min=1,dive,required"`
}
