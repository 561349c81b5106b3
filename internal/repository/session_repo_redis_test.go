package repository

import (
	"sync"
	"testing"
	"time"
)

func newTestRedisRepo() *redisSessionRepo {
	return &redisSessionRepo{
		ttl:   time.Hour,
		locks: make(map[string]*sync.Mutex),
	}
}

func TestRedisSessionRepo_LockForReusesMutex(t *testing.T) {
	repo := newTestRedisRepo()

	first := repo.lockFor("s1")
	second := repo.lockFor("s1")
	if first != second {
		t.Error("lockFor must hand out the same mutex per id")
	}
	if repo.lockFor("s2") == first {
		t.Error("distinct ids must get distinct mutexes")
	}
}

func TestRedisSessionRepo_DropLockShrinksMap(t *testing.T) {
	repo := newTestRedisRepo()

	repo.lockFor("s1")
	repo.lockFor("s2")
	repo.dropLock("s1")

	if _, ok := repo.locks["s1"]; ok {
		t.Error("dropped lock entry must leave the map")
	}
	if _, ok := repo.locks["s2"]; !ok {
		t.Error("other lock entries must survive")
	}

	// Dropping an absent id is a no-op.
	repo.dropLock("s1")
	if len(repo.locks) != 1 {
		t.Errorf("expected 1 remaining lock entry, got %d", len(repo.locks))
	}
}
