package metrics

import "github.com/kilianp07/patterns/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// Textfile, when set, receives the Prometheus metrics in text exposition
	// format once the program finishes.
	Textfile string `json:"textfile"`
}
