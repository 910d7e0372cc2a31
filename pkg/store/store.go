// Package store persists named blobs of serialized hub state.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Slot names one independently persisted blob.
type Slot string

const (
	// SlotMaterials holds the serialized material collection.
	SlotMaterials Slot = "eduhub-materials"
	// SlotEvents holds the serialized calendar event collection.
	SlotEvents Slot = "eduhub-events"
	// SlotTheme holds the last applied theme preference.
	SlotTheme Slot = "eduhub-theme"
	// SlotDisplayName holds the last display name.
	SlotDisplayName Slot = "eduhub-name"
)

// AllSlots returns every slot the hub knows about.
func AllSlots() []Slot {
	return []Slot{SlotMaterials, SlotEvents, SlotTheme, SlotDisplayName}
}

// ErrNotFound is returned by Get when a slot has never been written.
var ErrNotFound = errors.New("store: slot not found")

// Persistence defines the key-value contract the hub is written against.
// There are no transactional guarantees between slots.
type Persistence interface {
	Get(slot Slot) ([]byte, error)
	Set(slot Slot, value []byte) error
	Has(slot Slot) bool
	Watch(ctx context.Context) (<-chan Event, error)
}

// Backend selects the Persistence implementation.
type Backend string

const (
	// BackendDiskv stores one file per slot under the base path.
	BackendDiskv Backend = "diskv"
	// BackendSQLite stores slots as rows of a single sqlite table.
	BackendSQLite Backend = "sqlite"
	// BackendMemory keeps slots in process memory only.
	BackendMemory Backend = "memory"
)

// ParseBackend converts a string to a Backend, defaulting to diskv.
func ParseBackend(raw string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(raw)))
	switch b {
	case "":
		return BackendDiskv, nil
	case BackendDiskv, BackendSQLite, BackendMemory:
		return b, nil
	default:
		return BackendDiskv, fmt.Errorf("store: unknown backend %q", raw)
	}
}

// Config describes where and how slots are stored.
type Config interface {
	BasePath() string
	Backend() Backend
}

// Load creates a Persistence for the configured backend.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		return nil, errors.New("store: config required")
	}
	switch b := cfg.Backend(); b {
	case "", BackendDiskv:
		return NewDiskv(cfg.BasePath())
	case BackendSQLite:
		return NewSQLite(cfg.BasePath())
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", b)
	}
}
