package usecase

import "sync"

// StoreLocks serializes the read-modify-write cycles of the edit and merge
// paths per store identity. Mutations on different stores never contend.
type StoreLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStoreLocks() *StoreLocks {
	return &StoreLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

func (l *StoreLocks) Lock(storeID string) func() {
	l.mu.Lock()
	m, ok := l.locks[storeID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[storeID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
