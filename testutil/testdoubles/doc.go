// Package testdoubles provides spies for slog handlers and the event store observability interfaces.
package testdoubles
