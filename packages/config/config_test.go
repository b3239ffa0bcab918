package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	properties := Default()

	assert.Equal(t, DefaultTimeoutMillis, properties.TimeoutMillis)
	assert.Equal(t, DefaultProxyPort, properties.ProxyPort)
	assert.Empty(t, properties.ProxyHostName)
}

func TestTimeout_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, 5*time.Second, (&ClientProperties{TimeoutMillis: 5000}).Timeout())
	assert.Equal(t, 30*time.Second, (&ClientProperties{}).Timeout())
}

func TestResolvedProxyPort_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, 3128, (&ClientProperties{ProxyPort: 3128}).ResolvedProxyPort())
	assert.Equal(t, DefaultProxyPort, (&ClientProperties{}).ResolvedProxyPort())
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odatacall.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"timeoutMillis": 15000,
		"proxyHostName": "proxy.example.com",
		"proxyPort": 3128,
		"headers": {"X-Client": "odatacall"}
	}`), 0644))

	properties, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 15000, properties.TimeoutMillis)
	assert.Equal(t, "proxy.example.com", properties.ProxyHostName)
	assert.Equal(t, 3128, properties.ProxyPort)
	assert.Equal(t, "odatacall", properties.Headers["X-Client"])
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odatacall.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
timeoutMillis: 7000
proxyHostName: proxy.example.com
headers:
  X-Client: odatacall
`), 0644))

	properties, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 7000, properties.TimeoutMillis)
	assert.Equal(t, "proxy.example.com", properties.ProxyHostName)
	// Unset port keeps the default from the base property set.
	assert.Equal(t, DefaultProxyPort, properties.ProxyPort)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odatacall.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))

	_, err := Load(path)

	assert.Error(t, err)
}

func TestFindAndLoad_FallsBackToDefaults(t *testing.T) {
	properties, err := FindAndLoad(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, Default(), properties)
}

func TestFindAndLoad_PicksUpPropertiesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".odatacall.json"),
		[]byte(`{"timeoutMillis": 1234}`), 0644))

	properties, err := FindAndLoad(dir)

	require.NoError(t, err)
	assert.Equal(t, 1234, properties.TimeoutMillis)
}

func TestMerge(t *testing.T) {
	base := &ClientProperties{
		TimeoutMillis: 10000,
		ProxyHostName: "proxy.example.com",
		Headers:       map[string]string{"X-Client": "odatacall", "X-Base": "keep"},
	}

	merged := base.Merge(&ClientProperties{
		TimeoutMillis: 20000,
		Headers:       map[string]string{"X-Client": "override"},
	})

	assert.Equal(t, 20000, merged.TimeoutMillis)
	assert.Equal(t, "proxy.example.com", merged.ProxyHostName)
	assert.Equal(t, "override", merged.Headers["X-Client"])
	assert.Equal(t, "keep", merged.Headers["X-Base"])

	// The base set is untouched.
	assert.Equal(t, 10000, base.TimeoutMillis)
	assert.Equal(t, "odatacall", base.Headers["X-Client"])
}

func TestMerge_Nil(t *testing.T) {
	base := Default()
	assert.Equal(t, base, base.Merge(nil))
}

func TestSave_RoundTrip(t *testing.T) {
	properties := &ClientProperties{
		TimeoutMillis: 15000,
		ProxyHostName: "proxy.example.com",
		ProxyPort:     3128,
	}

	for _, filename := range []string{"props.json", "props.yaml"} {
		t.Run(filename, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), filename)
			require.NoError(t, properties.Save(path))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, properties.TimeoutMillis, loaded.TimeoutMillis)
			assert.Equal(t, properties.ProxyHostName, loaded.ProxyHostName)
			assert.Equal(t, properties.ProxyPort, loaded.ProxyPort)
		})
	}
}
