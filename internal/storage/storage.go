// Package storage provides durable named slots for session state.
//
// A slot is a key holding an opaque byte value. BoltStore keeps slots in an
// embedded bbolt file so they survive restarts. MemoryStore keeps them for
// the lifetime of the process only.
package storage

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrSlotNotFound is returned by Get for a slot that was never written.
var ErrSlotNotFound = errors.New("slot not found")

// DefaultDBPath returns the database location:
// $XDG_DATA_HOME/railsearch/railsearch.db or ~/.local/share/railsearch/railsearch.db.
func DefaultDBPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "railsearch", "railsearch.db")
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "railsearch", "railsearch.db")
}
