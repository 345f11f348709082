package config

import (
	"fmt"
	"strings"
)

var logLevels = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"}

// LoggingConfig defines the application log settings.
type LoggingConfig struct {
	// Level is the minimum level written: trace, debug, info, warn, error.
	Level string `json:"level"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

// Validate checks mandatory fields.
func (c LoggingConfig) Validate() error {
	lvl := strings.ToLower(c.Level)
	for _, l := range logLevels {
		if l == lvl {
			return nil
		}
	}
	return fmt.Errorf("unknown level %s", c.Level)
}
