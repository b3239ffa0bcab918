package caller

import "strconv"

// Header names set by the caller itself. Other caller-supplied header names
// pass through unchanged.
const (
	headerAccept        = "Accept"
	headerContentType   = "Content-Type"
	headerContentLength = "Content-Length"
)

// buildRequestProperties merges caller headers with the computed Accept,
// Content-Type and Content-Length values into a new map. The input map may be
// nil or shared by the caller; it is copied, never mutated. Content-Length is
// set only for a non-negative body length, so a bodyLength of -1 leaves it
// absent rather than zero.
func buildRequestProperties(requestProperties map[string]string, bodyLength int, contentType, acceptType MediaType) map[string]string {
	properties := make(map[string]string, len(requestProperties)+3)
	for name, value := range requestProperties {
		properties[name] = value
	}
	if acceptType != "" {
		properties[headerAccept] = acceptType.String()
	}
	if contentType != "" {
		properties[headerContentType] = contentType.String()
	}
	if bodyLength > -1 {
		properties[headerContentLength] = strconv.Itoa(bodyLength)
	}
	return properties
}
