package caller

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odatakit/odatacall/packages/config"
)

func TestOpen_DirectConnection(t *testing.T) {
	conn, err := newTestCaller().open("http://service.example.com/odata", nil)
	require.NoError(t, err)
	defer func() { _ = conn.disconnect() }()

	transport, ok := conn.client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Nil(t, transport.Proxy)
}

func TestOpen_ProxyConnection(t *testing.T) {
	tests := []struct {
		name       string
		properties *config.ClientProperties
		wantProxy  string
	}{
		{
			name:       "configured port",
			properties: &config.ClientProperties{ProxyHostName: "proxy.example.com", ProxyPort: 3128},
			wantProxy:  "proxy.example.com:3128",
		},
		{
			name:       "default port",
			properties: &config.ClientProperties{ProxyHostName: "proxy.example.com"},
			wantProxy:  "proxy.example.com:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewBasicCaller(tt.properties)
			conn, err := c.open("http://service.example.com/odata", nil)
			require.NoError(t, err)
			defer func() { _ = conn.disconnect() }()

			transport, ok := conn.client.Transport.(*http.Transport)
			require.True(t, ok)
			require.NotNil(t, transport.Proxy)

			proxyURL, err := transport.Proxy(conn.request)
			require.NoError(t, err)
			assert.Equal(t, "http", proxyURL.Scheme)
			assert.Equal(t, tt.wantProxy, proxyURL.Host)
		})
	}
}

func TestOpen_AppliesTimeout(t *testing.T) {
	c := NewBasicCaller(&config.ClientProperties{TimeoutMillis: 2500})
	conn, err := c.open("http://service.example.com/odata", nil)
	require.NoError(t, err)
	defer func() { _ = conn.disconnect() }()

	transport := conn.client.Transport.(*http.Transport)
	// Connect and read timeout carry the same configured value.
	assert.Equal(t, 2500*time.Millisecond, transport.ResponseHeaderTimeout)
	assert.NotNil(t, transport.DialContext)
}

func TestOpen_AppliesHeaders(t *testing.T) {
	headers := map[string]string{
		"Accept":    "application/xml",
		"X-Custom":  "abc",
		"X-Another": "def",
	}

	conn, err := newTestCaller().open("http://service.example.com/odata", headers)
	require.NoError(t, err)
	defer func() { _ = conn.disconnect() }()

	for name, value := range headers {
		assert.Equal(t, value, conn.request.Header.Get(name))
	}
}

func TestOpen_InvalidURL(t *testing.T) {
	_, err := newTestCaller().open("://missing-scheme", nil)

	require.Error(t, err)
	assert.True(t, IsKind(err, KindConnection))
}

func TestDisconnect_WithoutResponse(t *testing.T) {
	conn, err := newTestCaller().open("http://service.example.com/odata", nil)
	require.NoError(t, err)

	// Disconnecting before any exchange must be safe and idempotent.
	require.NoError(t, conn.disconnect())
	require.NoError(t, conn.disconnect())
}
