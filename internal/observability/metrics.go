package observability

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/healthwatch/internal/navigation"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu              sync.Mutex
	startedAt       time.Time
	requestCount    map[string]int64
	requestDuration map[string]time.Duration
	errorCount      map[string]int64
	navigation      map[navigation.ChangeKind]int64
	rejections      map[navigation.RejectReason]int64
}

// RequestStat aggregates one path/method/status combination.
type RequestStat struct {
	Path          string  `json:"path"`
	Method        string  `json:"method"`
	Status        int     `json:"status"`
	Count         int64   `json:"count"`
	AvgDurationMs float64 `json:"avg_duration_ms"`
}

// ErrorStat counts one path/method/error-code combination.
type ErrorStat struct {
	Path   string `json:"path"`
	Method string `json:"method"`
	Code   string `json:"code"`
	Count  int64  `json:"count"`
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	UptimeSeconds int64                             `json:"uptime_seconds"`
	Requests      []RequestStat                     `json:"requests"`
	Errors        []ErrorStat                       `json:"errors"`
	Navigation    map[navigation.ChangeKind]int64   `json:"navigation"`
	Rejections    map[navigation.RejectReason]int64 `json:"rejections"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		startedAt:       time.Now(),
		requestCount:    make(map[string]int64),
		requestDuration: make(map[string]time.Duration),
		errorCount:      make(map[string]int64),
		navigation:      make(map[navigation.ChangeKind]int64),
		rejections:      make(map[navigation.RejectReason]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, strconv.Itoa(status))
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.requestDuration[key] += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := pathKey(path, method, code)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// NavigationListener counts controller changes by kind and rejected entries by
// reason.
func (m *Metrics) NavigationListener() navigation.Listener {
	return func(_ context.Context, change navigation.Change) {
		if m == nil {
			return
		}
		m.mu.Lock()
		defer m.mu.Unlock()
		m.navigation[change.Kind]++
		if change.Kind == navigation.ChangeRejected && change.Transition != nil {
			m.rejections[change.Transition.Reason]++
		}
	}
}

// Snapshot copies the counters. Request and error rows are sorted by key.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := MetricsSnapshot{
		UptimeSeconds: int64(time.Since(m.startedAt).Seconds()),
		Requests:      make([]RequestStat, 0, len(m.requestCount)),
		Errors:        make([]ErrorStat, 0, len(m.errorCount)),
		Navigation:    make(map[navigation.ChangeKind]int64, len(m.navigation)),
		Rejections:    make(map[navigation.RejectReason]int64, len(m.rejections)),
	}
	for _, key := range sortedKeys(m.requestCount) {
		path, method, status := splitKey(key)
		code, _ := strconv.Atoi(status)
		count := m.requestCount[key]
		snap.Requests = append(snap.Requests, RequestStat{
			Path:          path,
			Method:        method,
			Status:        code,
			Count:         count,
			AvgDurationMs: float64(m.requestDuration[key].Milliseconds()) / float64(count),
		})
	}
	for _, key := range sortedKeys(m.errorCount) {
		path, method, code := splitKey(key)
		snap.Errors = append(snap.Errors, ErrorStat{Path: path, Method: method, Code: code, Count: m.errorCount[key]})
	}
	for kind, count := range m.navigation {
		snap.Navigation[kind] = count
	}
	for reason, count := range m.rejections {
		snap.Rejections[reason] = count
	}
	return snap
}

func pathKey(path, method, suffix string) string {
	return path + "|" + method + "|" + suffix
}

func splitKey(key string) (string, string, string) {
	parts := strings.SplitN(key, "|", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return parts[0], parts[1], parts[2]
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
