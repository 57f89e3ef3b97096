package services

import (
	"sync"
	"testing"
)

func TestUserLockSerializes(t *testing.T) {
	s := GetUserLockService()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Lock("user-a")
			counter++
			s.Unlock("user-a")
		}()
	}
	wg.Wait()

	if counter != 100 {
		t.Errorf("expected 100 serialized increments, got %d", counter)
	}
}

func TestUserLockIndependentUsers(t *testing.T) {
	s := GetUserLockService()

	// Holding one user's lock must not block another user's
	s.Lock("user-b")
	done := make(chan struct{})
	go func() {
		s.Lock("user-c")
		s.Unlock("user-c")
		close(done)
	}()
	<-done
	s.Unlock("user-b")
}

func TestUserLockCleanup(t *testing.T) {
	s := GetUserLockService()

	s.Lock("user-d")
	s.Unlock("user-d")

	s.mu.Lock()
	_, exists := s.locks["user-d"]
	s.mu.Unlock()
	if exists {
		t.Error("released lock with no waiters should be discarded")
	}
}
