// Package infra contains technical adapters: the zerolog logger, the
// Prometheus and InfluxDB metrics sinks and the MQTT plan publisher. These
// packages depend only on the interfaces defined under core.
package infra
