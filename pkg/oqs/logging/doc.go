// Package logging provides a minimal slog-backed logger for applications
// embedding the wrapper, plus redaction helpers for attributes that would
// otherwise leak key material into logs. The wrapper itself never logs
// secrets; these helpers exist so callers do not either.
package logging
