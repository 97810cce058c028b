package resilience

import "time"

// CircuitBreakerConfig mirrors the REDIS_CIRCUIT_* settings. Zero or
// negative fields fall back to DefaultCircuitBreakerConfig.
type CircuitBreakerConfig struct {
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{FailureThreshold: 3, OpenTimeout: 15 * time.Second, HalfOpenMaxReq: 1}
}

func (c CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	d := DefaultCircuitBreakerConfig()
	c.FailureThreshold = positiveOr(c.FailureThreshold, d.FailureThreshold)
	c.OpenTimeout = positiveOr(c.OpenTimeout, d.OpenTimeout)
	c.HalfOpenMaxReq = positiveOr(c.HalfOpenMaxReq, d.HalfOpenMaxReq)
	return c
}

func positiveOr[T int | time.Duration](v, fallback T) T {
	if v > 0 {
		return v
	}
	return fallback
}
