package report

import "errors"

// Sentinel errors for the two external collaborators. Both are fatal for
// the current run: source failures abort before any table is written,
// sink failures leave already-written tables in place.
var (
	// ErrSourceUnavailable wraps thread source fetch failures. The driver
	// never retries; previously accumulated state is discarded.
	ErrSourceUnavailable = errors.New("thread source unavailable")

	// ErrSinkWriteFailed wraps report sink write failures. Tables written
	// before the failure are not rolled back.
	ErrSinkWriteFailed = errors.New("report sink write failed")
)
