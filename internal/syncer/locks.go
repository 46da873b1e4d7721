package syncer

import (
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/codemetry/codemetry/internal/errors"
)

// lockTable hands out one admission slot per project so that at most one
// synchronization run touches a project's tree at a time.
type lockTable struct {
	mu    sync.Mutex
	slots map[uint]*semaphore.Weighted
}

// newLockTable creates an empty lock table
func newLockTable() *lockTable {
	return &lockTable{
		slots: make(map[uint]*semaphore.Weighted),
	}
}

// acquire takes the project's slot without blocking. The returned release
// function must be called when the run finishes.
func (l *lockTable) acquire(projectID uint) (func(), error) {
	l.mu.Lock()
	sem, ok := l.slots[projectID]
	if !ok {
		sem = semaphore.NewWeighted(1)
		l.slots[projectID] = sem
	}
	l.mu.Unlock()

	if !sem.TryAcquire(1) {
		return nil, errors.ErrSyncInProgress
	}
	return func() { sem.Release(1) }, nil
}
