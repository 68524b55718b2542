// Package logging assembles the structured slog loggers used by the plate
// manager.
//
// New builds either a compact console handler (colorized when writing to a
// terminal) or a JSON handler. Components tag their lines with a
// "component" attribute, which the console handler prints as a prefix.
// NewNop returns a logger that discards everything, for tests and library
// callers that pass no logger.
package logging
