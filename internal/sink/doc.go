// Package sink provides report.Sink implementations: a colorized terminal
// table writer and a Google Sheets writer that gives each table its own
// sheet. Instrumented wraps any sink with table-written metrics.
package sink
