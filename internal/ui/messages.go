package ui

import "time"

// HealthChecked is sent by the background poller after each service
// health check.
type HealthChecked struct {
	Status      string
	TotalMovies int
	Latency     time.Duration
	Err         error
}

// Online reports whether the service answered and called itself healthy.
func (h HealthChecked) Online() bool {
	return h.Err == nil && h.Status == "healthy"
}
