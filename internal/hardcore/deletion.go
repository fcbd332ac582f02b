package hardcore

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/hardcore-arcade/internal/registry"
)

// deletion removes one slot's file at most once. The first call does the
// work and every later call, from any caller, gets the same result.
type deletion struct {
	registry *registry.Registry
	slot     int

	once sync.Once
	err  error
}

func newDeletion(reg *registry.Registry, slot int) *deletion {
	return &deletion{registry: reg, slot: slot}
}

func (d *deletion) run() error {
	d.once.Do(func() {
		d.err = d.registry.DeleteFile(d.slot)
	})
	return d.err
}

// DeleteFile returns the memoized result of the deletion.
func (d *deletion) DeleteFile(slot int) error {
	if slot != d.slot {
		return fmt.Errorf("hardcore: deletion bound to slot %d, asked for %d", d.slot, slot)
	}
	return d.run()
}

// OnFileDeleted forwards the confirmation to the registry.
func (d *deletion) OnFileDeleted(slot int) {
	d.registry.OnFileDeleted(slot)
}
