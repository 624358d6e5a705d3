// Package checkpoint persists the oldest message date seen per account.
//
// The checkpoint is deliberately outside the aggregation engine: it only
// lets the next invocation narrow its query window. Losing the file costs
// nothing but a wider scan.
package checkpoint

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Entry is the checkpoint state for one account.
type Entry struct {
	OldestDate time.Time `toml:"oldest_date"`
	UpdatedAt  time.Time `toml:"updated_at"`
}

// File is the on-disk checkpoint, keyed by account.
type File struct {
	Accounts map[string]Entry `toml:"accounts"`

	path string
}

// Load reads the checkpoint at path. A missing file yields an empty
// checkpoint, not an error.
func Load(path string) (*File, error) {
	f := &File{Accounts: make(map[string]Entry), path: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return f, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint %s: %w", path, err)
	}

	if _, err := toml.DecodeFile(path, f); err != nil {
		return nil, fmt.Errorf("failed to parse checkpoint %s: %w", path, err)
	}
	if f.Accounts == nil {
		f.Accounts = make(map[string]Entry)
	}
	return f, nil
}

// Oldest returns the recorded oldest date for the account.
func (f *File) Oldest(account string) (time.Time, bool) {
	e, ok := f.Accounts[account]
	if !ok || e.OldestDate.IsZero() {
		return time.Time{}, false
	}
	return e.OldestDate, true
}

// Observe records the oldest date seen in a run. An earlier previously
// recorded date is kept.
func (f *File) Observe(account string, oldest time.Time) {
	if oldest.IsZero() {
		return
	}
	if prev, ok := f.Accounts[account]; ok && !prev.OldestDate.IsZero() && prev.OldestDate.Before(oldest) {
		oldest = prev.OldestDate
	}
	f.Accounts[account] = Entry{OldestDate: oldest, UpdatedAt: time.Now().UTC()}
}

// Save writes the checkpoint back to its path, creating the directory if
// needed.
func (f *File) Save() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("failed to create checkpoint directory: %w", err)
	}

	out, err := os.CreateTemp(filepath.Dir(f.path), ".checkpoint-*")
	if err != nil {
		return fmt.Errorf("failed to create checkpoint temp file: %w", err)
	}
	defer os.Remove(out.Name())

	if err := toml.NewEncoder(out).Encode(f); err != nil {
		out.Close()
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close checkpoint temp file: %w", err)
	}
	if err := os.Rename(out.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace checkpoint: %w", err)
	}
	return nil
}
