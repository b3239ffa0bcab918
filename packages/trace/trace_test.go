package trace

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type captureSink struct {
	events []Event
}

func (c *captureSink) Record(event Event) {
	c.events = append(c.events, event)
}

func TestMultiSink_FansOut(t *testing.T) {
	first := &captureSink{}
	second := &captureSink{}
	sink := MultiSink{first, second, NopSink{}}

	sink.Record(Event{Method: "GET", URL: "http://service.example.com"})

	assert.Len(t, first.events, 1)
	assert.Len(t, second.events, 1)
	assert.Equal(t, "GET", first.events[0].Method)
}

func TestConsoleSink_Success(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(WithWriter(&buf), WithNoColor(true))

	sink.Record(Event{
		Method:     "GET",
		URL:        "http://service.example.com/odata",
		StatusCode: 200,
		Duration:   42 * time.Millisecond,
	})

	out := buf.String()
	assert.Contains(t, out, "GET http://service.example.com/odata 200")
	assert.Contains(t, out, "(42ms)")
}

func TestConsoleSink_FailureAndVerbose(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(WithWriter(&buf), WithNoColor(true), WithVerbose(true))

	sink.Record(Event{
		RequestID: "req-1",
		Method:    "POST",
		URL:       "http://service.example.com/odata",
		Err:       errors.New("boom"),
	})

	out := buf.String()
	assert.Contains(t, out, "POST")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "[req-1]")
}
