package observability

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("GET", "/api/users", 200)
	m.RecordRequest("GET", "/api/users", 200)
	m.RecordError("POST", "/api/users", 409)

	assert.Equal(t, int64(2), m.RequestCount("GET", "/api/users", 200))
	assert.Equal(t, int64(0), m.RequestCount("GET", "/api/users", 500))
	assert.Equal(t, int64(1), m.ErrorCount("POST", "/api/users", 409))
}

func TestMetricsConcurrentAccess(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordRequest("GET", "/health", 200)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), m.RequestCount("GET", "/health", 200))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("GET", "/health", 200)
	m.RecordError("GET", "/health", 500)
}
