// Package config loads and validates lrsort configuration.
//
// Configuration lives in a TOML file (default ~/.config/lrsort/config.toml)
// and covers the catalog location, organizer behavior, and logging. All path
// fields are expanded and normalized during Load so consumers never see "~"
// or relative paths.
package config
