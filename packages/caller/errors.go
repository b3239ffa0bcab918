package caller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Kind classifies a failed endpoint call.
type Kind int

const (
	// KindGeneric is an I/O failure not otherwise classified, or a
	// non-positive/unknown status code
	KindGeneric Kind = iota
	// KindConnection means the connection to the endpoint could not be
	// established, including proxy failures
	KindConnection
	// KindSocket is a low-level socket failure during the exchange
	KindSocket
	// KindTimeout is an HTTP 408 response
	KindTimeout
	// KindUnauthorized is an HTTP 401 response
	KindUnauthorized
	// KindHTTPStatus is any other failing 4xx/5xx response
	KindHTTPStatus
	// KindRelease is a failure while closing a stream or connection
	KindRelease
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindSocket:
		return "socket"
	case KindTimeout:
		return "timeout"
	case KindUnauthorized:
		return "unauthorized"
	case KindHTTPStatus:
		return "http-status"
	case KindRelease:
		return "release"
	default:
		return "generic"
	}
}

// Error is a classified endpoint call failure. It carries the status code
// when the failure came from an HTTP response and the underlying cause when
// the failure came from the transport.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a classified *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == kind
}

// Classify maps a failing status code and drained message to an error kind.
func Classify(statusCode int, message string) *Error {
	switch {
	case statusCode == http.StatusRequestTimeout:
		return &Error{Kind: KindTimeout, StatusCode: statusCode, Message: message}
	case statusCode == http.StatusUnauthorized:
		return &Error{Kind: KindUnauthorized, StatusCode: statusCode, Message: message}
	case statusCode > 0:
		return &Error{Kind: KindHTTPStatus, StatusCode: statusCode, Message: message}
	default:
		return &Error{Kind: KindGeneric, Message: message}
	}
}

// ServiceMessage extracts the service-provided error message from the drained
// response body when the service returned a JSON error document. OData v4
// places it at error.message, OData v2 at error.message.value. For non-JSON
// bodies the drained text is returned trimmed.
func (e *Error) ServiceMessage() string {
	body := strings.TrimPrefix(e.Message, responsePrefix)
	if msg := gjson.Get(body, "error.message"); msg.Exists() {
		if msg.IsObject() {
			if value := msg.Get("value"); value.Exists() {
				return value.String()
			}
		} else {
			return msg.String()
		}
	}
	return strings.TrimSpace(body)
}
