package service

import "sync"

type slotLock struct {
	mu   sync.Mutex
	refs int
}

// slotLocks hands out one mutex per cart slot. An entry lives only while
// someone holds or waits for it, so one-off sessions leave nothing behind.
type slotLocks struct {
	mu    sync.Mutex
	slots map[string]*slotLock
}

func newSlotLocks() *slotLocks {
	return &slotLocks{slots: make(map[string]*slotLock)}
}

// lock blocks until slot is free and returns the matching unlock.
func (l *slotLocks) lock(slot string) func() {
	l.mu.Lock()
	entry, ok := l.slots[slot]
	if !ok {
		entry = &slotLock{}
		l.slots[slot] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.slots, slot)
		}
		l.mu.Unlock()
	}
}

func (l *slotLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.slots)
}
