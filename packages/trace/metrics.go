package trace

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const (
	// Histogram range: 1us to 60s, 3 significant digits
	histogramMin = 1
	histogramMax = 60_000_000
)

// MetricsSink aggregates call latencies and outcomes.
type MetricsSink struct {
	mu sync.Mutex

	total  atomic.Int64
	errors atomic.Int64

	// Latency histogram (in microseconds for precision)
	histogram *hdrhistogram.Histogram
}

// NewMetricsSink creates an empty metrics sink.
func NewMetricsSink() *MetricsSink {
	return &MetricsSink{
		histogram: hdrhistogram.New(histogramMin, histogramMax, 3),
	}
}

func (m *MetricsSink) Record(event Event) {
	m.total.Add(1)
	if event.Err != nil {
		m.errors.Add(1)
	}

	latencyUs := event.Duration.Microseconds()
	if latencyUs < histogramMin {
		latencyUs = histogramMin
	}
	if latencyUs > histogramMax {
		latencyUs = histogramMax
	}

	m.mu.Lock()
	_ = m.histogram.RecordValue(latencyUs)
	m.mu.Unlock()
}

// Summary is an aggregate view over all recorded calls.
type Summary struct {
	Total  int64
	Errors int64

	ErrorRate float64

	// Latency percentiles
	P50  time.Duration
	P95  time.Duration
	P99  time.Duration
	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
}

// Summary returns the aggregate over everything recorded so far.
func (m *MetricsSink) Summary() Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := m.total.Load()
	errors := m.errors.Load()

	errorRate := float64(0)
	if total > 0 {
		errorRate = float64(errors) / float64(total)
	}

	return Summary{
		Total:     total,
		Errors:    errors,
		ErrorRate: errorRate,
		P50:       time.Duration(m.histogram.ValueAtQuantile(50)) * time.Microsecond,
		P95:       time.Duration(m.histogram.ValueAtQuantile(95)) * time.Microsecond,
		P99:       time.Duration(m.histogram.ValueAtQuantile(99)) * time.Microsecond,
		Min:       time.Duration(m.histogram.Min()) * time.Microsecond,
		Max:       time.Duration(m.histogram.Max()) * time.Microsecond,
		Mean:      time.Duration(m.histogram.Mean()) * time.Microsecond,
	}
}
