// Package config loads and validates the TOML configuration file.
//
// Load resolves the config path (explicit flag, ~/.config/podforge/config.toml,
// or a podforge.toml in the working directory), decodes it over the defaults,
// expands ~ in path fields, pulls secrets from the environment, and validates
// the result. The voice table is the Voice Registry's source of truth: one
// [voices.<SPEAKER>] section per speaker identifier.
package config
