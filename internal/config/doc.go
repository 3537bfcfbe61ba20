// Package config provides configuration loading, merging, and validation
// for the sync client and the remote store server.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The entry points are [GetClientConfig] and [GetServerConfig], both views
// over [GetStructuredConfig].
package config
