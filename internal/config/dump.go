package config

import (
	"fmt"
	"io"

	"github.com/phrazzld/tasktracker/internal/redact"
	"gopkg.in/yaml.v3"
)

// WriteYAML writes cfg to w as YAML. The database URL is redacted so the
// output is safe to paste into bug reports.
func WriteYAML(w io.Writer, cfg *Config) error {
	safe := *cfg
	safe.Database.URL = redact.String(cfg.Database.URL)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&safe); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}
