// Package config loads, normalizes, and validates cutline configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// CUTLINE_RENDER_API_KEY. The Config type centralizes every knob the preview
// daemon and CLI need: data/log directories, preview timing and scrub
// geometry, and the render service endpoint.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
