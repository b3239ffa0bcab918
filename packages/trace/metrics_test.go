package trace

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsSink_Summary(t *testing.T) {
	sink := NewMetricsSink()

	sink.Record(Event{Duration: 10 * time.Millisecond})
	sink.Record(Event{Duration: 20 * time.Millisecond})
	sink.Record(Event{Duration: 30 * time.Millisecond, Err: errors.New("boom")})

	summary := sink.Summary()

	assert.Equal(t, int64(3), summary.Total)
	assert.Equal(t, int64(1), summary.Errors)
	assert.InDelta(t, 1.0/3.0, summary.ErrorRate, 0.01)
	assert.Greater(t, summary.P50, time.Duration(0))
	assert.GreaterOrEqual(t, summary.Max, summary.P50)
}

func TestMetricsSink_Empty(t *testing.T) {
	summary := NewMetricsSink().Summary()

	assert.Equal(t, int64(0), summary.Total)
	assert.Equal(t, float64(0), summary.ErrorRate)
}

func TestMetricsSink_ClampsOutOfRangeLatency(t *testing.T) {
	sink := NewMetricsSink()

	sink.Record(Event{Duration: 0})
	sink.Record(Event{Duration: 2 * time.Hour})

	summary := sink.Summary()
	assert.Equal(t, int64(2), summary.Total)
	assert.LessOrEqual(t, summary.Max, 61*time.Second)
}
