package observability

import (
	"strconv"
	"sync"
)

// Metrics provides basic in-memory request and error counters.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]int64
	errors   map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]int64),
		errors:   make(map[string]int64),
	}
}

// RecordRequest increments the counter for a completed request.
func (m *Metrics) RecordRequest(method, path string, status int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[key(method, path, status)]++
}

// RecordError increments the counter for a failed request.
func (m *Metrics) RecordError(method, path string, status int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[key(method, path, status)]++
}

// RequestCount reports the counter value for a method/path/status triple.
func (m *Metrics) RequestCount(method, path string, status int) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[key(method, path, status)]
}

// ErrorCount reports the error counter value for a method/path/status triple.
func (m *Metrics) ErrorCount(method, path string, status int) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[key(method, path, status)]
}

func key(method, path string, status int) string {
	return method + "|" + path + "|" + strconv.Itoa(status)
}
