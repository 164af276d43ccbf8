// Package config loads mocotch settings from defaults, an optional YAML
// file and MOCOTCH_* environment variables.
package config
