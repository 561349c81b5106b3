package repository

import (
	"gorm.io/gorm"

	"github.com/GencZhushi/schedule-builder/config"
	"github.com/GencZhushi/schedule-builder/pkg/redis"
)

// Repository aggregates every data-access interface.
//
// The catalogs live in Postgres; ingestion sessions are transient and live
// in memory or, when configured, in Redis with a native TTL.
type Repository struct {
	Classroom ClassroomRepository
	TimeSlot  TimeSlotRepository
	Session   SessionRepository
}

// NewRepository wires the repository aggregate. rdb may be nil; the redis
// session store requires it and config.Validate enforces that upstream.
func NewRepository(db *gorm.DB, cfg *config.SessionConfig, rdb *redis.Client) *Repository {
	var sessions SessionRepository
	if cfg.Store == "redis" && rdb != nil {
		sessions = NewRedisSessionRepo(rdb, cfg.TTL)
	} else {
		sessions = NewMemorySessionRepo(cfg.TTL, cfg.MaxSessions)
	}

	return &Repository{
		Classroom: NewClassroomRepo(db),
		TimeSlot:  NewTimeSlotRepo(db),
		Session:   sessions,
	}
}
