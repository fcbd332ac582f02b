// Package registry provides the authoritative cache of which save slots are
// hardcore files. The save file itself is the source of truth; the registry
// is a write-through cache that resolves each slot lazily on first query.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// ErrNoStore is returned by DeleteFile when the registry has no persistence
// collaborator to delete through.
var ErrNoStore = errors.New("registry: no file store configured")

// FileStore is the opaque persistence capability the registry relies on.
// The on-disk save format is entirely the store's concern.
type FileStore interface {
	// FileExists reports whether a save file exists in the slot.
	FileExists(slot int) bool

	// LoadHardcoreFlag reads the mod-specific save data of the slot and
	// returns its hardcore flag.
	LoadHardcoreFlag(slot int) (bool, error)

	// DeleteFile removes the save file in the slot.
	DeleteFile(slot int) error
}

// Registry caches the hardcore flag per save slot.
//
// The mutex is held across a load, so at most one load per slot is ever in
// flight and every caller observes the same resolved value.
type Registry struct {
	store  FileStore
	logger *log.Logger

	mu    sync.Mutex
	flags map[int]bool
	loads map[int]int // number of load attempts per slot
}

// New creates a registry backed by the given store.
// A nil logger falls back to the package-level default logger.
func New(store FileStore, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{
		store:  store,
		logger: logger.WithPrefix("registry"),
		flags:  make(map[int]bool),
		loads:  make(map[int]int),
	}
}

// IsHardcoreFile reports whether the slot holds a hardcore file.
//
// An absent file resolves to false without touching its data. Any load
// failure, including a panic inside the store, is absorbed and cached as
// false: an unreadable file behaves as a normal file.
func (r *Registry) IsHardcoreFile(slot int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if value, ok := r.flags[slot]; ok {
		return value
	}

	if r.store == nil || !r.store.FileExists(slot) {
		r.flags[slot] = false
		return false
	}

	r.logger.Info("getting save data", "slot", slot)
	r.loads[slot]++
	value, err := r.load(slot)
	if err != nil {
		r.logger.Warn("could not get save data", "slot", slot, "error", err)
		r.flags[slot] = false
		return false
	}

	r.flags[slot] = value
	return value
}

// load calls the store, converting a panic into an error.
func (r *Registry) load(slot int) (value bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			value = false
			err = fmt.Errorf("registry: load slot %d panicked: %v", slot, rec)
		}
	}()
	return r.store.LoadHardcoreFlag(slot)
}

// SetHardcoreFile overwrites the cached flag for the slot.
// Used by the manual toggle and on file creation or continuation.
func (r *Registry) SetHardcoreFile(slot int, value bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.flags[slot] = value
}

// OnFileDeleted records a confirmed deletion of the slot's file.
func (r *Registry) OnFileDeleted(slot int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.flags[slot] = false
}

// DeleteFile deletes the slot's file through the store. Only a successful
// deletion resets the cached flag; on failure the cache is left untouched.
func (r *Registry) DeleteFile(slot int) error {
	if r.store == nil {
		return ErrNoStore
	}

	if err := r.store.DeleteFile(slot); err != nil {
		return fmt.Errorf("registry: cannot delete slot %d: %w", slot, err)
	}

	r.OnFileDeleted(slot)
	r.logger.Info("deleted save file", "slot", slot)
	return nil
}

// Cached returns the cached flag and whether the slot has been resolved.
func (r *Registry) Cached(slot int) (value, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, ok = r.flags[slot]
	return value, ok
}

// LoadCount returns how many times the slot's save data has been loaded.
func (r *Registry) LoadCount(slot int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.loads[slot]
}
