// Package config provides layered application configuration and the single
// source of truth for file paths.
//
// Configuration is resolved in layers: built-in defaults, an optional YAML
// file, then INV_*-prefixed environment variables, validated as a whole
// before any input file is opened. The Paths type derives every input and
// output location for one analysis run from the loaded configuration.
package config
