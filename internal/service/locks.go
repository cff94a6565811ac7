package service

import "sync"

// entityLocks serializes payment writes per ledger entity. Payments on
// different entities proceed in parallel; read-check-append-update on the
// same entity must not interleave.
type entityLocks struct {
	mu    sync.Mutex
	locks map[int32]*sync.Mutex
}

func newEntityLocks() *entityLocks {
	return &entityLocks{locks: make(map[int32]*sync.Mutex)}
}

func (l *entityLocks) get(id int32) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}
