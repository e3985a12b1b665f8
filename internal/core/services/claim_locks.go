package services

import "sync"

// claimLocks serializes workflow transitions per claim. Transitions on
// different claims proceed in parallel; transitions on the same claim take
// the same mutex so a read-stage/write-stage pair can never interleave.
type claimLocks struct {
	mu    sync.Mutex
	locks map[string]*claimLock
}

type claimLock struct {
	mu   sync.Mutex
	refs int
}

func newClaimLocks() *claimLocks {
	return &claimLocks{locks: make(map[string]*claimLock)}
}

// Lock acquires the mutex for the given claim and returns its unlock func.
// Entries are reference counted and removed when the last holder releases,
// so the registry does not grow with the claim table.
func (c *claimLocks) Lock(claimID string) func() {
	c.mu.Lock()
	l, ok := c.locks[claimID]
	if !ok {
		l = &claimLock{}
		c.locks[claimID] = l
	}
	l.refs++
	c.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()
		c.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(c.locks, claimID)
		}
		c.mu.Unlock()
	}
}
