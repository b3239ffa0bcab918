package config

const (
	// DefaultTimeoutMillis is the connection timeout used when the property
	// is absent
	DefaultTimeoutMillis = 30000
	// DefaultProxyPort is the proxy port used when a proxy host is configured
	// without a port
	DefaultProxyPort = 8080
)

// Default returns a property set with default values
func Default() *ClientProperties {
	return &ClientProperties{
		TimeoutMillis: DefaultTimeoutMillis,
		ProxyHostName: "",
		ProxyPort:     DefaultProxyPort,
		Headers:       nil,
	}
}
