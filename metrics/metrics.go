// Package metrics defines the counters and latency observations the
// quoting and execution engines emit.
package metrics

import "time"

// Recorder receives engine events.
type Recorder interface {
	IncCounter(name string, labels map[string]string)
	ObserveLatency(name string, duration time.Duration, labels map[string]string)
}
