package observability

import (
	"sync"
	"time"
)

type routeKey struct {
	path   string
	method string
	status int
}

// Metrics keeps in-process request and error counters. There is no export or
// scrape surface; the counters back the request logger and tests.
type Metrics struct {
	mu        sync.Mutex
	requests  map[routeKey]int64
	durations map[routeKey]time.Duration
	errors    map[string]int64
}

// NewMetrics initializes empty counters.
func NewMetrics() *Metrics {
	return &Metrics{
		requests:  make(map[routeKey]int64),
		durations: make(map[routeKey]time.Duration),
		errors:    make(map[string]int64),
	}
}

// RecordRequest counts one completed request and accumulates its duration.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := routeKey{path: path, method: method, status: status}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[key]++
	m.durations[key] += duration
}

// RecordError counts one translated error by route and error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[path+"|"+method+"|"+code]++
}

// RequestCount reports how many requests completed for a route and status.
func (m *Metrics) RequestCount(path, method string, status int) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[routeKey{path: path, method: method, status: status}]
}
