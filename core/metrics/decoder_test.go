package metrics_test

import (
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"

	"github.com/kilianp07/patterns/core/factory"
	"github.com/kilianp07/patterns/core/logger"
	metrics "github.com/kilianp07/patterns/core/metrics"
	inframetrics "github.com/kilianp07/patterns/infra/metrics"
)

func sinkRegistry(t *testing.T) *factory.Registry[metrics.Sink] {
	t.Helper()
	reg := factory.NewRegistry[metrics.Sink](nil)
	if err := inframetrics.RegisterSinks(reg, prometheus.NewRegistry(), logger.Nop{}); err != nil {
		t.Fatalf("register sinks: %v", err)
	}
	return reg
}

// Test decoding from YAML with multiple sinks.
func TestMetricsConfigDecodeYAML(t *testing.T) {
	data := `sinks:
  - type: nop
  - type: log
textfile: /tmp/patterns.prom
`
	var cfg metrics.Config
	if err := yaml.Unmarshal([]byte(data), &cfg); err != nil {
		t.Fatalf("yaml unmarshal: %v", err)
	}
	if cfg.Textfile != "/tmp/patterns.prom" {
		t.Fatalf("textfile not decoded: %q", cfg.Textfile)
	}
	s, err := metrics.NewSink(sinkRegistry(t), cfg.Sinks)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, ok := s.(*metrics.MultiSink); !ok {
		t.Fatalf("expected MultiSink")
	}
}

// Test decoding from JSON with invalid sink type.
func TestMetricsConfigDecodeJSON_Invalid(t *testing.T) {
	data := `{"sinks":[{"type":"missing"}]}`
	var cfg metrics.Config
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if _, err := metrics.NewSink(sinkRegistry(t), cfg.Sinks); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}
