// Package logging provides structured logging helpers built on log/slog.
//
// It defines the canonical attribute keys used across the codebase and
// small constructors for common attributes, so log lines stay consistent
// and greppable. Sender emails are never logged raw; use UserHash for a
// PII-safe correlation id or Domain for a low-cardinality variant.
package logging
