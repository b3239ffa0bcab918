package caller

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/odatakit/odatacall/packages/config"
	"github.com/odatakit/odatacall/packages/trace"
)

// EndpointCaller performs single HTTP exchanges against an OData service.
type EndpointCaller interface {
	// CallEndpoint performs a GET and returns the drained response body.
	CallEndpoint(requestProperties map[string]string, url string) (string, error)
	// GetInputStream performs a GET and returns the live, undrained response
	// stream. The caller owns the stream and must close it. A failing status
	// yields the classified error and no stream.
	GetInputStream(requestProperties map[string]string, url string) (io.ReadCloser, error)
	// DoPostEntity POSTs body with the given content and accept types.
	DoPostEntity(requestProperties map[string]string, url, body string, contentType, acceptType MediaType) (string, error)
	// DoPutEntity PUTs body; mediaType is used as both content and accept type.
	DoPutEntity(requestProperties map[string]string, url, body string, mediaType MediaType) (string, error)
	// DoDeleteEntity DELETEs the addressed entity with an empty body.
	DoDeleteEntity(requestProperties map[string]string, url string) error
}

// BasicCaller is the basic EndpointCaller implementation. Its configuration
// is immutable after construction, so a single instance is safe for
// concurrent use; every call is fully synchronous on its calling goroutine.
type BasicCaller struct {
	timeout       time.Duration
	proxyHostName string
	proxyPort     int
	sink          trace.Sink
}

// Option configures a BasicCaller.
type Option func(*BasicCaller)

// WithSink injects the observability sink receiving one event per call.
func WithSink(sink trace.Sink) Option {
	return func(c *BasicCaller) {
		c.sink = sink
	}
}

// NewBasicCaller builds a caller from client properties. Timeout and proxy
// port fall back to their configured defaults; an empty proxy host means
// direct connections.
func NewBasicCaller(properties *config.ClientProperties, opts ...Option) *BasicCaller {
	c := &BasicCaller{
		timeout:       properties.Timeout(),
		proxyHostName: properties.ProxyHostName,
		proxyPort:     properties.ResolvedProxyPort(),
		sink:          trace.NopSink{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *BasicCaller) CallEndpoint(requestProperties map[string]string, url string) (string, error) {
	event := c.newEvent(http.MethodGet, url)
	defer c.record(&event)

	conn, err := c.open(url, buildRequestProperties(requestProperties, -1, "", XML))
	if err != nil {
		event.Err = err
		return "", err
	}
	if err := conn.execute(); err != nil {
		event.Err = c.failExchange(conn, err, http.MethodGet)
		return "", event.Err
	}
	event.StatusCode = conn.response.StatusCode
	text, err := c.readResponse(conn)
	event.Err = err
	return text, err
}

func (c *BasicCaller) GetInputStream(requestProperties map[string]string, url string) (io.ReadCloser, error) {
	event := c.newEvent(http.MethodGet, url)
	defer c.record(&event)

	conn, err := c.open(url, requestProperties)
	if err != nil {
		event.Err = err
		return nil, err
	}
	if err := conn.execute(); err != nil {
		if releaseErr := conn.disconnect(); releaseErr != nil {
			event.Err = releaseErr
			return nil, releaseErr
		}
		if transportErr := classifyTransport(err); transportErr != nil {
			event.Err = transportErr
			return nil, transportErr
		}
		event.Err = &Error{
			Kind:    KindGeneric,
			Message: "unable to get connection input stream for url: " + url,
			Err:     err,
		}
		return nil, event.Err
	}
	event.StatusCode = conn.response.StatusCode
	if conn.response.StatusCode >= http.StatusBadRequest {
		// Drains the error stream, classifies the status and releases the
		// connection; no stream reaches the caller on a failing status.
		_, err := c.readResponse(conn)
		event.Err = err
		return nil, err
	}
	return &stream{conn: conn}, nil
}

func (c *BasicCaller) DoPostEntity(requestProperties map[string]string, url, body string, contentType, acceptType MediaType) (string, error) {
	return c.sendRequest(buildRequestProperties(requestProperties, len(body), contentType, acceptType),
		url, body, http.MethodPost)
}

func (c *BasicCaller) DoPutEntity(requestProperties map[string]string, url, body string, mediaType MediaType) (string, error) {
	return c.sendRequest(buildRequestProperties(requestProperties, len(body), mediaType, mediaType),
		url, body, http.MethodPut)
}

func (c *BasicCaller) DoDeleteEntity(requestProperties map[string]string, url string) error {
	_, err := c.sendRequest(buildRequestProperties(requestProperties, 0, AtomXML, AtomXML),
		url, "", http.MethodDelete)
	return err
}

// sendRequest transmits body over a fresh connection and reads the response.
// The per-call lifecycle is Open, WriteBody, ReadStatus, ReadStream,
// ClassifyIfError, Close; Close is reached on every path.
func (c *BasicCaller) sendRequest(properties map[string]string, url, body, method string) (string, error) {
	event := c.newEvent(method, url)
	defer c.record(&event)

	conn, err := c.open(url, properties)
	if err != nil {
		event.Err = err
		return "", err
	}
	if err := conn.send(method, body); err != nil {
		event.Err = c.failExchange(conn, err, method)
		return "", event.Err
	}
	event.StatusCode = conn.response.StatusCode
	text, err := c.readResponse(conn)
	event.Err = err
	return text, err
}

// failExchange releases the connection after a failed round trip and returns
// the classified error. A release failure takes precedence over the exchange
// failure.
func (c *BasicCaller) failExchange(conn *Connection, err error, method string) error {
	if releaseErr := conn.disconnect(); releaseErr != nil {
		return releaseErr
	}
	if transportErr := classifyTransport(err); transportErr != nil {
		return transportErr
	}
	return &Error{
		Kind:    KindGeneric,
		Message: fmt.Sprintf("could not perform %s request", method),
		Err:     err,
	}
}

func (c *BasicCaller) newEvent(method, url string) trace.Event {
	return trace.Event{
		Time:      time.Now(),
		RequestID: uuid.NewString(),
		Method:    method,
		URL:       url,
	}
}

func (c *BasicCaller) record(event *trace.Event) {
	event.Duration = time.Since(event.Time)
	c.sink.Record(*event)
}

// stream hands the undrained response body to the caller while tying Close
// to the connection release, so the connection is still released exactly
// once.
type stream struct {
	conn *Connection
}

func (s *stream) Read(p []byte) (int, error) {
	return s.conn.response.Body.Read(p)
}

func (s *stream) Close() error {
	return s.conn.disconnect()
}
