// Package config loads the runtime configuration from the environment (and an optional .env file)
// and builds the infrastructure that depends on it: Postgres connection pools for the three
// supported adapters, OpenTelemetry providers and the slog logger.
package config
