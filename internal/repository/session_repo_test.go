package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/GencZhushi/schedule-builder/internal/model"
)

// ── Test helpers ──

func newTestRepo(ttl time.Duration, maxSessions int) (*memorySessionRepo, *time.Time) {
	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := &memorySessionRepo{
		entries:     make(map[string]*sessionEntry),
		ttl:         ttl,
		maxSessions: maxSessions,
		now:         func() time.Time { return clock },
	}
	return repo, &clock
}

func testSession(id string) *model.Session {
	return &model.Session{
		SessionID: id,
		Lectures: []model.Lecture{
			{LectureID: "lec_0", Name: "Mikroekonomia", DepartmentCode: "EK", Group: "1.2"},
		},
	}
}

// ── Create / GetByID ──

func TestMemorySessionRepo_CreateAndGet(t *testing.T) {
	repo, _ := newTestRepo(time.Hour, 10)
	ctx := context.Background()

	if err := repo.Create(ctx, testSession("s1")); err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}

	got, err := repo.GetByID(ctx, "s1")
	if err != nil {
		t.Fatalf("GetByID should succeed: %v", err)
	}
	if got.SessionID != "s1" || len(got.Lectures) != 1 {
		t.Errorf("unexpected session: %+v", got)
	}
}

func TestMemorySessionRepo_GetNotFound(t *testing.T) {
	repo, _ := newTestRepo(time.Hour, 10)

	_, err := repo.GetByID(context.Background(), "absent")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestMemorySessionRepo_GetReturnsCopy(t *testing.T) {
	repo, _ := newTestRepo(time.Hour, 10)
	ctx := context.Background()
	_ = repo.Create(ctx, testSession("s1"))

	first, _ := repo.GetByID(ctx, "s1")
	first.Lectures[0].Name = "mutated by caller"

	second, _ := repo.GetByID(ctx, "s1")
	if second.Lectures[0].Name != "Mikroekonomia" {
		t.Error("stored session must not be reachable through returned values")
	}
}

// ── TTL ──

func TestMemorySessionRepo_ExpiresAfterTTL(t *testing.T) {
	repo, clock := newTestRepo(time.Hour, 10)
	ctx := context.Background()
	_ = repo.Create(ctx, testSession("s1"))

	*clock = clock.Add(2 * time.Hour)

	_, err := repo.GetByID(ctx, "s1")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expired session must be gone, got %v", err)
	}
}

func TestMemorySessionRepo_AccessRefreshesTTL(t *testing.T) {
	repo, clock := newTestRepo(time.Hour, 10)
	ctx := context.Background()
	_ = repo.Create(ctx, testSession("s1"))

	// Touch at 40 minutes, read again at 80: still within the refreshed
	// window even though 80 > 60.
	*clock = clock.Add(40 * time.Minute)
	if _, err := repo.GetByID(ctx, "s1"); err != nil {
		t.Fatalf("first read should succeed: %v", err)
	}

	*clock = clock.Add(40 * time.Minute)
	if _, err := repo.GetByID(ctx, "s1"); err != nil {
		t.Fatalf("read within refreshed TTL should succeed: %v", err)
	}
}

// ── Capacity ──

func TestMemorySessionRepo_FullStoreRejectsCreate(t *testing.T) {
	repo, _ := newTestRepo(time.Hour, 2)
	ctx := context.Background()
	_ = repo.Create(ctx, testSession("s1"))
	_ = repo.Create(ctx, testSession("s2"))

	err := repo.Create(ctx, testSession("s3"))
	if !errors.Is(err, ErrSessionStoreFull) {
		t.Fatalf("expected ErrSessionStoreFull, got %v", err)
	}
}

func TestMemorySessionRepo_SweepFreesCapacity(t *testing.T) {
	repo, clock := newTestRepo(time.Hour, 2)
	ctx := context.Background()
	_ = repo.Create(ctx, testSession("s1"))
	_ = repo.Create(ctx, testSession("s2"))

	// Both entries lapse; the next create sweeps them and fits.
	*clock = clock.Add(2 * time.Hour)
	if err := repo.Create(ctx, testSession("s3")); err != nil {
		t.Fatalf("create after sweep should succeed: %v", err)
	}
}

// ── Mutate ──

func TestMemorySessionRepo_MutatePersists(t *testing.T) {
	repo, clock := newTestRepo(time.Hour, 10)
	ctx := context.Background()
	_ = repo.Create(ctx, testSession("s1"))

	*clock = clock.Add(10 * time.Minute)
	got, err := repo.Mutate(ctx, "s1", func(sess *model.Session) error {
		sess.Lectures[0].Name = "Makroekonomia"
		return nil
	})
	if err != nil {
		t.Fatalf("Mutate should succeed: %v", err)
	}
	if got.Lectures[0].Name != "Makroekonomia" {
		t.Errorf("returned session must carry the edit, got %q", got.Lectures[0].Name)
	}
	if !got.UpdatedAt.Equal(clock.UTC()) {
		t.Errorf("UpdatedAt must advance on mutate, got %v", got.UpdatedAt)
	}

	reread, _ := repo.GetByID(ctx, "s1")
	if reread.Lectures[0].Name != "Makroekonomia" {
		t.Error("edit must persist")
	}
}

func TestMemorySessionRepo_MutateErrorLeavesStoreUntouched(t *testing.T) {
	repo, _ := newTestRepo(time.Hour, 10)
	ctx := context.Background()
	_ = repo.Create(ctx, testSession("s1"))

	boom := errors.New("validation failed")
	_, err := repo.Mutate(ctx, "s1", func(sess *model.Session) error {
		sess.Lectures[0].Name = "half-applied"
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the closure error, got %v", err)
	}

	got, _ := repo.GetByID(ctx, "s1")
	if got.Lectures[0].Name != "Mikroekonomia" {
		t.Error("failed mutate must not leak partial state")
	}
}

// Reads and mutations of the same session share the entry lock; this is
// what the race detector checks here.
func TestMemorySessionRepo_ConcurrentGetAndMutate(t *testing.T) {
	repo, _ := newTestRepo(time.Hour, 10)
	ctx := context.Background()
	_ = repo.Create(ctx, testSession("s1"))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			got, err := repo.GetByID(ctx, "s1")
			if err != nil {
				t.Errorf("GetByID should succeed: %v", err)
				return
			}
			if len(got.Lectures) != 1 {
				t.Errorf("read a torn session: %+v", got)
			}
		}()
		go func() {
			defer wg.Done()
			_, err := repo.Mutate(ctx, "s1", func(sess *model.Session) error {
				sess.Lectures[0].Name = "Makroekonomia"
				return nil
			})
			if err != nil {
				t.Errorf("Mutate should succeed: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestMemorySessionRepo_MutateNotFound(t *testing.T) {
	repo, _ := newTestRepo(time.Hour, 10)

	_, err := repo.Mutate(context.Background(), "absent", func(*model.Session) error { return nil })
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

// ── Delete ──

func TestMemorySessionRepo_DeleteIsIdempotent(t *testing.T) {
	repo, _ := newTestRepo(time.Hour, 10)
	ctx := context.Background()
	_ = repo.Create(ctx, testSession("s1"))

	if err := repo.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete should succeed: %v", err)
	}
	if err := repo.Delete(ctx, "s1"); err != nil {
		t.Fatalf("deleting an absent session must succeed: %v", err)
	}

	_, err := repo.GetByID(ctx, "s1")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("deleted session must be gone, got %v", err)
	}
}
