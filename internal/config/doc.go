// Package config provides configuration loading, merging, and validation
// facilities for the realm services.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  0. Per-service defaults
//  1. .env file and environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry points are [GetStructuredConfig] for the auth and game
// services and [GetClientConfig] for the command line client.
package config
