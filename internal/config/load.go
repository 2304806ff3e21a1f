package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "TASKS"

// LegacyDatabaseURLEnv is the variable older deployments use for the
// task store connection string.
const LegacyDatabaseURLEnv = "MONGO_URL"

// DefaultEnvFile is the dotenv file read from the working directory.
const DefaultEnvFile = ".env"

// LoadOptions controls where Load looks for configuration besides the
// environment.
type LoadOptions struct {
	// ConfigFile is an optional YAML (or any viper-supported) file.
	ConfigFile string
	// EnvFile is an optional dotenv file. Its entries are exported to the
	// process environment unless the variable is already set.
	EnvFile string
}

// Load reads configuration from the environment and the default dotenv file.
func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{EnvFile: DefaultEnvFile})
}

// LoadWithOptions reads configuration from defaults, an optional config file,
// an optional dotenv file and environment variables. Environment variables
// take precedence over values from the config file.
// Returns a populated Config or an error if loading or validation fails.
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	if opts.EnvFile != "" {
		if err := loadDotenv(opts.EnvFile); err != nil {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("database.url", EnvPrefix+"_DATABASE_URL", LegacyDatabaseURLEnv); err != nil {
		return nil, fmt.Errorf("failed to bind database url: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.name", "task_db")
	v.SetDefault("database.collection", "tasks")
	v.SetDefault("database.connect_timeout", 10*time.Second)

	v.SetDefault("cors.allowed_origins", []string{"*"})
}

// loadDotenv exports the entries of a dotenv file into the process
// environment. Variables that are already set to a non-empty value win.
// A missing file is not an error.
func loadDotenv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	dotenv := viper.New()
	dotenv.SetConfigFile(path)
	dotenv.SetConfigType("env")
	if err := dotenv.ReadInConfig(); err != nil {
		return err
	}

	for _, key := range dotenv.AllKeys() {
		name := strings.ToUpper(key)
		if os.Getenv(name) != "" {
			continue
		}
		if err := os.Setenv(name, dotenv.GetString(key)); err != nil {
			return err
		}
	}
	return nil
}
