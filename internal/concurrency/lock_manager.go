package concurrency

import (
	"sync"
)

// LockManager hands out one mutex per key.
// Mutexes are never evicted; keys are user ids so the set stays bounded by the user count.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Lock acquires the key's mutex and returns its release func.
// The release func is safe to call more than once.
func (lm *LockManager) Lock(key string) func() {
	mu := lm.GetLock(key)
	mu.Lock()
	var once sync.Once
	return func() { once.Do(mu.Unlock) }
}

// Reset drops all known locks. Callers must not hold any lock.
func (lm *LockManager) Reset() {
	lm.locks.Range(func(k, _ any) bool {
		lm.locks.Delete(k)
		return true
	})
}
