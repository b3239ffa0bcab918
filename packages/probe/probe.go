// Package probe measures endpoint latency by issuing rate-limited GET calls
// through an endpoint caller. Each call is independent; nothing is retried.
package probe

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/odatakit/odatacall/packages/caller"
	"github.com/odatakit/odatacall/packages/trace"
)

// Probe issues GET calls against a single URL for a fixed duration.
type Probe struct {
	caller   caller.EndpointCaller
	rate     float64
	duration time.Duration
	workers  int
	headers  map[string]string
}

// Option configures a Probe.
type Option func(*Probe)

// WithRate sets the target calls per second.
func WithRate(callsPerSecond float64) Option {
	return func(p *Probe) {
		p.rate = callsPerSecond
	}
}

// WithDuration sets how long the probe runs.
func WithDuration(d time.Duration) Option {
	return func(p *Probe) {
		p.duration = d
	}
}

// WithWorkers sets the number of concurrent callers.
func WithWorkers(n int) Option {
	return func(p *Probe) {
		p.workers = n
	}
}

// WithHeaders sets request properties sent with every call.
func WithHeaders(headers map[string]string) Option {
	return func(p *Probe) {
		p.headers = headers
	}
}

// New creates a probe around an endpoint caller.
func New(endpointCaller caller.EndpointCaller, opts ...Option) *Probe {
	p := &Probe{
		caller:   endpointCaller,
		rate:     10,
		duration: 10 * time.Second,
		workers:  1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run probes the URL until the duration elapses or the context is cancelled
// and returns the latency summary.
func (p *Probe) Run(ctx context.Context, url string) trace.Summary {
	ctx, cancel := context.WithTimeout(ctx, p.duration)
	defer cancel()

	limiter := rate.NewLimiter(rate.Limit(p.rate), 1)
	metrics := trace.NewMetricsSink()

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if err := limiter.Wait(ctx); err != nil {
					return
				}
				start := time.Now()
				_, err := p.caller.CallEndpoint(p.headers, url)
				metrics.Record(trace.Event{
					Time:     start,
					Method:   "GET",
					URL:      url,
					Duration: time.Since(start),
					Err:      err,
				})
			}
		}()
	}
	wg.Wait()

	return metrics.Summary()
}
