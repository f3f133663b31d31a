// Package config handles loading and validation of cdh configuration.
//
// Configuration is read from ~/.config/cdh/config.toml with environment
// variable overrides.
//
// # Configuration Sources (highest priority first)
//
//   - CDH_HISTORY_FILE env var: location of the history file
//   - CDH_MAX_HISTORY env var: number of directories remembered
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - max_history: capacity of the history (default: 100, minimum 2)
//   - history_file: history location, absolute or ~/... (default: ~/.cdh/history)
//   - [theme] name/mode: colors used by --list and the interactive picker
//
// # Path Validation
//
// history_file must be absolute or start with ~ (no relative paths like "."
// or "..") since cdh runs from whatever directory the shell is in.
package config
