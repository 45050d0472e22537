// Package config loads, normalizes, and validates jwsched configuration.
//
// It supplies repository defaults, expands user paths, reads TOML files,
// and exposes the [parser] and [logging] sections as typed values. Always obtain
// settings through this package so downstream code receives sanitized
// values and clear validation errors.
package config
