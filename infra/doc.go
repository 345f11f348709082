// Package infra contains technical adapters such as the local and SSH
// executors and the metrics exporters. These packages should depend only on
// the interfaces defined in the core packages.
package infra
