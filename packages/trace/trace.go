package trace

import "time"

// Event describes one completed endpoint call.
type Event struct {
	Time       time.Time
	RequestID  string
	Method     string
	URL        string
	StatusCode int
	Duration   time.Duration
	Err        error
}

// Sink receives call events. Implementations must be safe for concurrent
// use; calls may run on independent goroutines.
type Sink interface {
	Record(event Event)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Record(Event) {}

// MultiSink fans an event out to every sink in order.
type MultiSink []Sink

func (m MultiSink) Record(event Event) {
	for _, sink := range m {
		sink.Record(event)
	}
}
