package caller

import (
	"bufio"
	"io"
	"net/http"
	"strings"
)

const (
	// responsePrefix starts the message of every error raised for a failing
	// status code, followed by the drained error-stream text.
	responsePrefix = "Unable to get response from OData service: "
	// noResponseText is returned when the response carries no stream at all.
	noResponseText = "No Response."

	lineSeparator = "\n"
)

// readResponse reads the status code, drains the selected stream and releases
// the connection. A status of 400 or above raises a classified error whose
// message is the response prefix followed by the drained error-stream text.
//
// The connection is disconnected on every exit path. A disconnect failure is
// not suppressed: it replaces the in-flight result, including a primary
// error, matching the established cleanup precedence of this caller.
func (c *BasicCaller) readResponse(conn *Connection) (text string, err error) {
	defer func() {
		if releaseErr := conn.disconnect(); releaseErr != nil {
			text, err = "", releaseErr
		}
	}()

	statusCode := conn.response.StatusCode
	isError := statusCode >= http.StatusBadRequest

	var drained string
	if stream := conn.bodyStream(); stream != nil {
		drained, err = drain(stream)
		if err != nil {
			if transportErr := classifyTransport(err); transportErr != nil {
				return "", transportErr
			}
			return "", &Error{Kind: KindGeneric, Message: "unable to process response from OData service", Err: err}
		}
	} else {
		drained = noResponseText
	}

	if isError {
		return "", Classify(statusCode, responsePrefix+drained)
	}
	return drained, nil
}

// drain consumes the stream as UTF-8 text line by line, appending a line
// separator after every line. The separator after the final line is kept
// even when the payload itself has no trailing newline; downstream parsers
// rely on that exact joining behavior. Lines may be arbitrarily long; a
// single-line payload the size of a large entity feed must drain intact.
func drain(stream io.Reader) (string, error) {
	var response strings.Builder
	reader := bufio.NewReader(stream)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				if len(line) > 0 {
					response.WriteString(strings.TrimSuffix(line, "\r"))
					response.WriteString(lineSeparator)
				}
				return response.String(), nil
			}
			return "", err
		}
		response.WriteString(strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"))
		response.WriteString(lineSeparator)
	}
}
