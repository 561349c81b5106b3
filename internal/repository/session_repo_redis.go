package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/GencZhushi/schedule-builder/internal/model"
	"github.com/GencZhushi/schedule-builder/pkg/redis"
)

const sessionKeyPrefix = "session:"

// redisSessionRepo stores sessions as JSON values with a native Redis TTL
// refreshed on every access. Capacity is Redis's concern (maxmemory policy),
// so Create never reports exhaustion itself.
//
// Mutation serialization uses per-id in-process mutexes; the service runs
// as a single instance, which keeps the read-modify-write below safe
// without a distributed lock.
type redisSessionRepo struct {
	client *redis.Client
	ttl    time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRedisSessionRepo creates the Redis-backed session store.
func NewRedisSessionRepo(client *redis.Client, ttl time.Duration) SessionRepository {
	return &redisSessionRepo{
		client: client,
		ttl:    ttl,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (r *redisSessionRepo) Create(ctx context.Context, sess *model.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ok, err := r.client.SetNX(ctx, sessionKeyPrefix+sess.SessionID, string(raw), r.ttl)
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	if !ok {
		return fmt.Errorf("session id %s already exists", sess.SessionID)
	}
	return nil
}

func (r *redisSessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	raw, err := r.client.GetEx(ctx, sessionKeyPrefix+id, r.ttl)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess model.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (r *redisSessionRepo) Mutate(ctx context.Context, id string, fn func(*model.Session) error) (*model.Session, error) {
	lock := r.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	sess, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(sess); err != nil {
		return nil, err
	}
	sess.UpdatedAt = time.Now().UTC()

	raw, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+id, string(raw), r.ttl); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

func (r *redisSessionRepo) Delete(ctx context.Context, id string) error {
	err := r.client.Del(ctx, sessionKeyPrefix+id)
	r.dropLock(id)
	return err
}

func (r *redisSessionRepo) lockFor(id string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[id] = lock
	}
	return lock
}

// dropLock releases the per-id mutex entry so the map does not grow with
// every session ever mutated. A Mutate racing the delete keeps its own
// reference; the next one simply allocates a fresh mutex.
func (r *redisSessionRepo) dropLock(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.locks, id)
}
