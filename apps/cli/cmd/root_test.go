package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odatakit/odatacall/packages/caller"
)

func TestParseHeaders(t *testing.T) {
	headers, err := parseHeaders(
		[]string{"Accept: application/xml", "X-Custom:abc"},
		map[string]string{"X-Client": "odatacall", "Accept": "text/html"},
	)

	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"X-Client": "odatacall",
		"Accept":   "application/xml", // flag wins over properties file
		"X-Custom": "abc",
	}, headers)
}

func TestFormatError_ExtractsServiceMessage(t *testing.T) {
	err := caller.Classify(403,
		`Unable to get response from OData service: {"error":{"message":"access denied"}}`+"\n")

	out := formatError(err)

	assert.Equal(t, "http-status (status 403): access denied", out)
}

func TestFormatError_PlainError(t *testing.T) {
	assert.Equal(t, "boom", formatError(errors.New("boom")))
}

func TestParseHeaders_Invalid(t *testing.T) {
	_, err := parseHeaders([]string{"no-separator"}, nil)
	assert.Error(t, err)

	_, err = parseHeaders([]string{": empty-name"}, nil)
	assert.Error(t, err)
}
