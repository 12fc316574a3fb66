// Package config loads, normalizes, and validates restitch configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI and the reconstruction pipeline need: temp/output directories,
// external tool binaries, and fixed encode parameters.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
