// Package config provides configuration loading, merging, and validation
// facilities for histkeeper.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults under the XDG data directory
//  2. Config file (JSON, or YAML for .yaml/.yml paths)
//  3. Environment variables
//  4. Command-line flags
//
// The main entry point is [GetStructuredConfig]. Flags are registered on the
// caller's flag set with [BindFlags].
package config
