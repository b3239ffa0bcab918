// Package config loads and manages OData client properties.
//
// It provides functionality for:
//   - Loading properties from JSON or YAML files
//   - Default timeout and proxy values
//   - Merging property sets with override precedence
//   - Watching a properties file for changes
package config
