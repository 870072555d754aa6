// Package metrics provides shared helpers for Prometheus instrumentation.
package metrics

// DefaultBuckets are the default histogram buckets for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals
