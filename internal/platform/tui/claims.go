package tui

import "sync"

// SlotClaims tracks which session is playing which slot, so two SSH
// sessions sharing a database never run the same file at once.
// Thread-safe for concurrent access.
type SlotClaims struct {
	mu     sync.RWMutex
	owners map[int]string
}

// NewSlotClaims creates an empty claim table.
func NewSlotClaims() *SlotClaims {
	return &SlotClaims{
		owners: make(map[int]string),
	}
}

// Claim gives the slot to owner. It fails if another owner holds it;
// claiming a slot twice is fine.
func (c *SlotClaims) Claim(slot int, owner string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.owners[slot]; ok && cur != owner {
		return false
	}
	c.owners[slot] = owner
	return true
}

// Release frees the slot if owner holds it.
func (c *SlotClaims) Release(slot int, owner string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.owners[slot] == owner {
		delete(c.owners, slot)
	}
}

// ReleaseAll frees every slot held by owner.
func (c *SlotClaims) ReleaseAll(owner string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for slot, cur := range c.owners {
		if cur == owner {
			delete(c.owners, slot)
		}
	}
}

// Owner returns who holds the slot.
func (c *SlotClaims) Owner(slot int) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	owner, ok := c.owners[slot]
	return owner, ok
}

// Count returns the number of claimed slots.
func (c *SlotClaims) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.owners)
}
