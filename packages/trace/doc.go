// Package trace defines the observability sink that receives one event per
// endpoint call. Sinks are injected into the caller explicitly; there is no
// ambient global logger.
package trace
