// Package caller performs single HTTP request/response exchanges against an
// OData service endpoint.
//
// It provides:
//   - GET, POST, PUT and DELETE operations with merged request properties
//   - Direct or HTTP-proxied connections with connect/read timeouts
//   - Response draining with classified errors for failing status codes
//   - A raw stream variant for callers that consume the body themselves
package caller
