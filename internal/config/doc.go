// Package config loads, normalizes, and validates plate manager settings.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files and honours the PLATEMANAGER_INFO_FILE and
// PLATEMANAGER_MODELS_DIR environment fallbacks. Empty keyword, extension and
// color lists mean "use the component defaults", so a minimal file only
// needs the paths.
package config
