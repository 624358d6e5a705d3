// Package cmd implements the command-line interface for gmail-analysis.
//
// This package provides the following commands:
//   - report: scan Gmail threads and write usage tables (default)
//   - auth: run the OAuth flow and cache a token for an account
//   - version: display version information
//
// The report command is the default command when no subcommand is specified.
package cmd
