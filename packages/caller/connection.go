package caller

import (
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// connectionOpenMessage is the message for failures establishing the
// connection, a distinct error path from failures during the exchange.
const connectionOpenMessage = "could not open connection to the service endpoint"

// Connection is a live transport resource bound to a single exchange. It is
// owned by the call that created it and must be released exactly once via
// disconnect, on every exit path.
type Connection struct {
	client   *http.Client
	request  *http.Request
	response *http.Response
	closed   bool
}

// open builds a connection to rawURL with the merged request properties
// applied. A configured proxy host routes the connection through an HTTP
// proxy at (host, port); otherwise the connection is direct. The configured
// timeout is applied identically to connect and response read; a zero timeout
// leaves the transport defaults.
func (c *BasicCaller) open(rawURL string, requestProperties map[string]string) (*Connection, error) {
	request, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{Kind: KindConnection, Message: connectionOpenMessage, Err: err}
	}

	transport := &http.Transport{}
	if c.proxyHostName != "" {
		proxyURL, err := url.Parse("http://" + net.JoinHostPort(c.proxyHostName, strconv.Itoa(c.proxyPort)))
		if err != nil {
			return nil, &Error{Kind: KindConnection, Message: connectionOpenMessage, Err: err}
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}
	if c.timeout > 0 {
		dialer := &net.Dialer{Timeout: c.timeout}
		transport.DialContext = dialer.DialContext
		transport.ResponseHeaderTimeout = c.timeout
	}

	// Apply headers one at a time in a deterministic order.
	names := make([]string, 0, len(requestProperties))
	for name := range requestProperties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		request.Header.Set(name, requestProperties[name])
	}

	return &Connection{
		client:  &http.Client{Transport: transport},
		request: request,
	}, nil
}

// send marks the connection output-enabled, sets the HTTP method, attaches
// the UTF-8 body and performs the exchange. Used for POST, PUT and DELETE.
func (conn *Connection) send(method, body string) error {
	conn.request.Method = method
	if body == "" {
		// A zero ContentLength with a non-empty body reader would be sent
		// chunked; NoBody keeps the length an explicit zero.
		conn.request.Body = http.NoBody
	} else {
		conn.request.Body = io.NopCloser(strings.NewReader(body))
	}
	conn.request.ContentLength = int64(len(body))
	return conn.execute()
}

// execute performs the round trip and retains the response for reading.
func (conn *Connection) execute() error {
	response, err := conn.client.Do(conn.request)
	if err != nil {
		return err
	}
	conn.response = response
	return nil
}

// bodyStream selects the stream to drain. For failing status codes this is
// the error stream, otherwise the body stream; net/http exposes both as the
// response body. A nil return means the response carries no payload.
func (conn *Connection) bodyStream() io.Reader {
	response := conn.response
	if response.StatusCode == http.StatusNoContent ||
		response.StatusCode == http.StatusNotModified ||
		response.ContentLength == 0 {
		return nil
	}
	return response.Body
}

// disconnect releases the connection. Safe to call more than once; only the
// first call closes the response stream. A close failure is reported as a
// KindRelease error.
func (conn *Connection) disconnect() error {
	if conn.closed {
		return nil
	}
	conn.closed = true

	var closeErr error
	if conn.response != nil && conn.response.Body != nil {
		closeErr = conn.response.Body.Close()
	}
	conn.client.CloseIdleConnections()

	if closeErr != nil {
		return &Error{Kind: KindRelease, Message: "could not close response stream", Err: closeErr}
	}
	return nil
}

// classifyTransport maps a transport-level round-trip failure to a classified
// error. Dial and proxy-connect failures mean the connection could not be
// established; other socket failures are reported distinctly from generic I/O
// failures. Returns nil when the failure is not transport-level.
func classifyTransport(err error) *Error {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Op == "dial" || opErr.Op == "proxyconnect" {
			return &Error{Kind: KindConnection, Message: connectionOpenMessage, Err: err}
		}
		return &Error{Kind: KindSocket, Message: "could not initiate connection to the endpoint", Err: err}
	}
	return nil
}
