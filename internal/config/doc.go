// Package config provides configuration structures and utilities for
// sleuth. It defines the rendering options for report generation and
// loads user-level knowledge overrides (aliases, version attributes,
// extra optional packages) from a YAML file.
package config
