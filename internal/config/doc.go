// Package config defines the application's configuration structure and
// loading: defaults, an optional YAML file, and VOYAGECRAFT_-prefixed
// environment overrides, validated before use.
package config
