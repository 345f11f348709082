// Package metrics defines the sinks recording command executions and
// registry lookups. Concrete sinks such as the Prometheus and log sinks live
// in infra/metrics and are registered on a factory.Registry; NewSink builds
// one sink, or a MultiSink when several are configured.
package metrics
