// internal/services/lock_manager.go
package services

import (
	"sync"
	"time"
)

// LockManager hands out per-skeleton locks so concurrent refinements of the
// same skeleton serialize without blocking unrelated skeletons.
type LockManager struct {
	locks      map[string]*lockInfo
	globalLock sync.RWMutex

	cleanupTicker *time.Ticker
}

type lockInfo struct {
	mutex    *sync.RWMutex
	lastUsed time.Time
}

// NewLockManager creates a lock manager with background cleanup
func NewLockManager() *LockManager {
	lm := &LockManager{
		locks: make(map[string]*lockInfo),
	}

	lm.startCleanup()
	return lm
}

// getLock returns the lock for an ID, creating it on first use
func (lm *LockManager) getLock(id string) *sync.RWMutex {
	lm.globalLock.RLock()
	if info, exists := lm.locks[id]; exists {
		lm.globalLock.RUnlock()
		info.lastUsed = time.Now()
		return info.mutex
	}
	lm.globalLock.RUnlock()

	lm.globalLock.Lock()
	defer lm.globalLock.Unlock()

	// Double check under the write lock
	if info, exists := lm.locks[id]; exists {
		info.lastUsed = time.Now()
		return info.mutex
	}

	mu := &sync.RWMutex{}
	lm.locks[id] = &lockInfo{
		mutex:    mu,
		lastUsed: time.Now(),
	}
	return mu
}

// WithLock executes fn while holding the write lock for id
func (lm *LockManager) WithLock(id string, fn func() error) error {
	mu := lm.getLock(id)
	mu.Lock()
	defer mu.Unlock()
	return fn()
}

// WithReadLock executes fn while holding the read lock for id
func (lm *LockManager) WithReadLock(id string, fn func() error) error {
	mu := lm.getLock(id)
	mu.RLock()
	defer mu.RUnlock()
	return fn()
}

// startCleanup evicts stale locks periodically
func (lm *LockManager) startCleanup() {
	lm.cleanupTicker = time.NewTicker(5 * time.Minute)
	go func() {
		for range lm.cleanupTicker.C {
			lm.cleanupUnusedLocks()
		}
	}()
}

func (lm *LockManager) cleanupUnusedLocks() {
	lm.globalLock.Lock()
	defer lm.globalLock.Unlock()

	const maxLocks = 200
	const lockTimeout = 30 * time.Minute

	// Only sweep when the table has grown large
	if len(lm.locks) > maxLocks {
		now := time.Now()
		for id, info := range lm.locks {
			if now.Sub(info.lastUsed) > lockTimeout {
				delete(lm.locks, id)
			}
		}
	}
}
