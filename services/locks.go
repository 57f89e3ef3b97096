package services

import "sync"

// UserLockService serializes read-modify-write cycles per user so that two
// concurrent completions of the same quest cannot double-award XP.
type UserLockService struct {
	mu    sync.Mutex
	locks map[string]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

var (
	lockService     *UserLockService
	lockServiceOnce sync.Once
)

// GetUserLockService returns the singleton lock service
func GetUserLockService() *UserLockService {
	lockServiceOnce.Do(func() {
		lockService = &UserLockService{locks: make(map[string]*userLock)}
	})
	return lockService
}

// Lock acquires the lock for a user id, creating it on first use
func (s *UserLockService) Lock(userID string) {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &userLock{}
		s.locks[userID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
}

// Unlock releases the lock and discards it once nobody is waiting
func (s *UserLockService) Unlock(userID string) {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		s.mu.Unlock()
		return
	}
	l.refs--
	if l.refs == 0 {
		delete(s.locks, userID)
	}
	s.mu.Unlock()

	l.mu.Unlock()
}
