// Package config loads, normalizes, and validates hopper's TOML
// configuration.
//
// Configuration is resolved from an explicit path, then
// ~/.config/hopper/config.toml, then ./hopper.toml, falling back to
// built-in defaults when no file exists. All directory values are
// tilde-expanded and made absolute during normalization.
package config
