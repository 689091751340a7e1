package smartpay

import (
	"time"

	"github.com/hot-labs/smartpay-go/logger"
	"github.com/hot-labs/smartpay-go/metrics"
	"github.com/hot-labs/smartpay-go/validation"
)

// Option configures a SmartPay instance at construction time.
type Option func(*SmartPay)

// WithLogger injects a structured logger.
func WithLogger(l logger.Logger) Option {
	return func(s *SmartPay) {
		s.logger = l
	}
}

// WithMetrics injects a metrics recorder.
func WithMetrics(r metrics.Recorder) Option {
	return func(s *SmartPay) {
		s.metrics = r
	}
}

// WithValidationGate replaces the local pre-execution validation gate,
// e.g. with a remote validation service adapter.
func WithValidationGate(g validation.Gate) Option {
	return func(s *SmartPay) {
		s.gate = g
	}
}

// WithTimeout bounds each execution call.
func WithTimeout(t time.Duration) Option {
	return func(s *SmartPay) {
		s.timeout = t
	}
}
