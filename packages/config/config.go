package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ClientProperties holds the externally supplied client configuration. The
// caller treats a loaded instance as immutable.
type ClientProperties struct {
	TimeoutMillis int               `json:"timeoutMillis,omitempty" yaml:"timeoutMillis,omitempty"`
	ProxyHostName string            `json:"proxyHostName,omitempty" yaml:"proxyHostName,omitempty"`
	ProxyPort     int               `json:"proxyPort,omitempty" yaml:"proxyPort,omitempty"`
	Headers       map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"` // Default headers for all requests
}

// Timeout returns the connection timeout, falling back to the default when
// the property is absent.
func (p *ClientProperties) Timeout() time.Duration {
	if p.TimeoutMillis > 0 {
		return time.Duration(p.TimeoutMillis) * time.Millisecond
	}
	return time.Duration(DefaultTimeoutMillis) * time.Millisecond
}

// ResolvedProxyPort returns the proxy port, falling back to the default when
// the property is absent.
func (p *ClientProperties) ResolvedProxyPort() int {
	if p.ProxyPort > 0 {
		return p.ProxyPort
	}
	return DefaultProxyPort
}

// Filenames contains the possible properties file names
var Filenames = []string{
	".odatacall.json",
	"odatacall.json",
	".odatacall.yaml",
	".odatacall.yml",
}

// Load loads properties from the specified path or searches for a properties
// file in the current directory.
func Load(path string) (*ClientProperties, error) {
	if path != "" {
		return loadFromFile(path)
	}
	return FindAndLoad(".")
}

// FindAndLoad searches for a properties file in the given directory.
func FindAndLoad(dir string) (*ClientProperties, error) {
	for _, filename := range Filenames {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return loadFromFile(path)
		}
	}

	// Return defaults if no properties file found
	return Default(), nil
}

func loadFromFile(path string) (*ClientProperties, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	properties := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, properties); err != nil {
			return nil, fmt.Errorf("invalid properties file %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, properties); err != nil {
			return nil, fmt.Errorf("invalid properties file %s: %w", path, err)
		}
	}

	return properties, nil
}

// Merge merges another property set into this one, with other taking
// precedence.
func (p *ClientProperties) Merge(other *ClientProperties) *ClientProperties {
	if other == nil {
		return p
	}

	result := *p // Copy

	if other.TimeoutMillis > 0 {
		result.TimeoutMillis = other.TimeoutMillis
	}
	if other.ProxyHostName != "" {
		result.ProxyHostName = other.ProxyHostName
	}
	if other.ProxyPort > 0 {
		result.ProxyPort = other.ProxyPort
	}

	// Merge headers
	if len(other.Headers) > 0 {
		merged := make(map[string]string, len(result.Headers)+len(other.Headers))
		for k, v := range result.Headers {
			merged[k] = v
		}
		for k, v := range other.Headers {
			merged[k] = v
		}
		result.Headers = merged
	}

	return &result
}

// Save saves the properties to a file, JSON or YAML by extension.
func (p *ClientProperties) Save(path string) error {
	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(p)
	default:
		data, err = json.MarshalIndent(p, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
