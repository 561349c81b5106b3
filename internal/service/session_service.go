package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/GencZhushi/schedule-builder/config"
	"github.com/GencZhushi/schedule-builder/internal/dto"
	"github.com/GencZhushi/schedule-builder/internal/ingest"
	"github.com/GencZhushi/schedule-builder/internal/model"
	"github.com/GencZhushi/schedule-builder/internal/repository"
)

// ── Session module business errors ──

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrLectureNotFound = errors.New("lecture not found in session")
	// ErrLectureIDImmutable means an edit tried to change a lecture's id.
	ErrLectureIDImmutable = errors.New("lecture id cannot be changed")
	// ErrUploadTooLarge means the workbook exceeds the row bound.
	ErrUploadTooLarge = errors.New("uploaded table exceeds the row limit")
	// ErrWorkbookInvalid means the upload could not be read as a lecture
	// table at all (not .xlsx, empty, or missing recognized columns).
	ErrWorkbookInvalid = errors.New("workbook is not a valid lecture table")
	// ErrSessionStoreUnavailable means the store refused the new session.
	ErrSessionStoreUnavailable = errors.New("session store unavailable")
)

// SessionService runs the ingestion pipeline and owns session reads/edits.
type SessionService interface {
	// Upload parses an .xlsx stream, normalizes its rows, derives the
	// aggregates and materializes a new session. Row-level failures never
	// abort the upload; they come back in the session view.
	Upload(ctx context.Context, r io.Reader) (*dto.SessionResponse, error)
	Get(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	// UpdateLecture replaces one lecture wholesale and re-derives every
	// aggregate collection in the same store operation.
	UpdateLecture(ctx context.Context, sessionID, lectureID string, req *dto.UpdateLectureRequest) (*dto.SessionResponse, error)
	// DeleteLecture removes one lecture and re-derives the aggregates.
	DeleteLecture(ctx context.Context, sessionID, lectureID string) (*dto.SessionResponse, error)
	// Delete removes a session; deleting an absent session succeeds.
	Delete(ctx context.Context, sessionID string) error
}

type sessionService struct {
	repo    *repository.Repository
	names   ingest.DepartmentNameResolver
	maxRows int
	logger  *zap.Logger
}

// NewSessionService creates a SessionService instance.
func NewSessionService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) SessionService {
	return &sessionService{
		repo:    repo,
		names:   ingest.StaticNames(cfg.Departments),
		maxRows: cfg.Upload.MaxRows,
		logger:  logger,
	}
}

// ────────────────────── Upload ──────────────────────

func (s *sessionService) Upload(ctx context.Context, r io.Reader) (*dto.SessionResponse, error) {
	rows, err := ingest.ReadWorkbook(r, s.maxRows)
	if err != nil {
		if errors.Is(err, ingest.ErrTooManyRows) {
			return nil, fmt.Errorf("%w (max %d)", ErrUploadTooLarge, s.maxRows)
		}
		return nil, fmt.Errorf("%w: %v", ErrWorkbookInvalid, err)
	}

	lectures, rowErrors := ingest.NormalizeRows(rows)
	aggs := ingest.Derive(lectures, s.names)

	now := time.Now().UTC()
	sess := &model.Session{
		SessionID:   uuid.New().String(),
		Lectures:    lectures,
		Departments: aggs.Departments,
		Groups:      aggs.Groups,
		Subgroups:   aggs.Subgroups,
		RowErrors:   rowErrors,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Session.Create(ctx, sess); err != nil {
		if errors.Is(err, repository.ErrSessionStoreFull) {
			s.logger.Warn("session store at capacity")
			return nil, ErrSessionStoreUnavailable
		}
		s.logger.Error("create session failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("workbook ingested",
		zap.String("session_id", sess.SessionID),
		zap.Int("lectures", len(lectures)),
		zap.Int("row_errors", len(rowErrors)),
	)

	return toSessionResponse(sess), nil
}

// ────────────────────── Get ──────────────────────

func (s *sessionService) Get(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	sess, err := s.repo.Session.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("load session failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}
	return toSessionResponse(sess), nil
}

// ────────────────────── UpdateLecture ──────────────────────

func (s *sessionService) UpdateLecture(ctx context.Context, sessionID, lectureID string, req *dto.UpdateLectureRequest) (*dto.SessionResponse, error) {
	if req.LectureID != "" && req.LectureID != lectureID {
		return nil, ErrLectureIDImmutable
	}

	sess, err := s.repo.Session.Mutate(ctx, sessionID, func(sess *model.Session) error {
		idx := sess.LectureIndex(lectureID)
		if idx < 0 {
			return ErrLectureNotFound
		}

		sess.Lectures[idx] = model.Lecture{
			LectureID:       lectureID,
			Name:            req.Name,
			DepartmentCode:  req.DepartmentCode,
			Semester:        req.Semester,
			Level:           req.Level,
			Year:            req.Year,
			Professor:       req.Professor,
			Group:           req.Group,
			SessionType:     model.SessionType(req.SessionType),
			Requirement:     model.Requirement(req.Requirement),
			InstructorRole:  model.InstructorRole(req.InstructorRole),
			DurationMinutes: req.DurationMinutes,
		}

		s.rederive(sess)
		return nil
	})
	if err != nil {
		return nil, s.mapMutateError(sessionID, err)
	}

	return toSessionResponse(sess), nil
}

// ────────────────────── DeleteLecture ──────────────────────

func (s *sessionService) DeleteLecture(ctx context.Context, sessionID, lectureID string) (*dto.SessionResponse, error) {
	sess, err := s.repo.Session.Mutate(ctx, sessionID, func(sess *model.Session) error {
		idx := sess.LectureIndex(lectureID)
		if idx < 0 {
			return ErrLectureNotFound
		}
		sess.Lectures = append(sess.Lectures[:idx], sess.Lectures[idx+1:]...)
		s.rederive(sess)
		return nil
	})
	if err != nil {
		return nil, s.mapMutateError(sessionID, err)
	}

	return toSessionResponse(sess), nil
}

// ────────────────────── Delete ──────────────────────

func (s *sessionService) Delete(ctx context.Context, sessionID string) error {
	if err := s.repo.Session.Delete(ctx, sessionID); err != nil {
		s.logger.Error("delete session failed", zap.String("session_id", sessionID), zap.Error(err))
		return err
	}
	return nil
}

// ── Internal helpers ──

// rederive recomputes all three aggregate collections from the current
// lecture set. Every mutation path goes through here inside the store's
// Mutate, so lectures and aggregates can never drift apart.
func (s *sessionService) rederive(sess *model.Session) {
	aggs := ingest.Derive(sess.Lectures, s.names)
	sess.Departments = aggs.Departments
	sess.Groups = aggs.Groups
	sess.Subgroups = aggs.Subgroups
}

func (s *sessionService) mapMutateError(sessionID string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrSessionNotFound
	case errors.Is(err, ErrLectureNotFound), errors.Is(err, ErrLectureIDImmutable):
		return err
	default:
		s.logger.Error("mutate session failed", zap.String("session_id", sessionID), zap.Error(err))
		return err
	}
}

func toSessionResponse(sess *model.Session) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		SessionID:   sess.SessionID,
		Lectures:    make([]dto.LectureResponse, 0, len(sess.Lectures)),
		Departments: make([]dto.DepartmentResponse, 0, len(sess.Departments)),
		Groups:      make([]dto.GroupResponse, 0, len(sess.Groups)),
		Subgroups:   make([]dto.SubgroupResponse, 0, len(sess.Subgroups)),
		RowErrors:   make([]dto.RowErrorResponse, 0, len(sess.RowErrors)),
		CreatedAt:   sess.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   sess.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}

	summary := dto.SessionSummary{
		TotalLectures: len(sess.Lectures),
		RowErrorCount: len(sess.RowErrors),
	}

	for i := range sess.Lectures {
		lec := &sess.Lectures[i]
		resp.Lectures = append(resp.Lectures, dto.LectureResponse{
			LectureID:       lec.LectureID,
			Name:            lec.Name,
			DepartmentCode:  lec.DepartmentCode,
			Semester:        lec.Semester,
			Level:           lec.Level,
			Year:            lec.Year,
			Professor:       lec.Professor,
			Group:           lec.Group,
			SessionType:     string(lec.SessionType),
			Requirement:     string(lec.Requirement),
			InstructorRole:  string(lec.InstructorRole),
			DurationMinutes: lec.DurationMinutes,
		})

		switch lec.SessionType {
		case model.SessionLecture:
			summary.LectureCount++
		case model.SessionExercise:
			summary.ExerciseCount++
		}
		switch lec.Requirement {
		case model.RequirementObligatory:
			summary.ObligatoryCount++
		case model.RequirementElective:
			summary.ElectiveCount++
		}
		switch lec.InstructorRole {
		case model.RoleProfessor:
			summary.ProfessorCount++
		case model.RoleAssistant:
			summary.AssistantCount++
		}
	}

	for _, d := range sess.Departments {
		resp.Departments = append(resp.Departments, dto.DepartmentResponse{
			Code: d.Code, Name: d.Name, LectureCount: d.LectureCount,
		})
	}
	for _, g := range sess.Groups {
		subs := g.SubGroups
		if subs == nil {
			subs = []string{}
		}
		resp.Groups = append(resp.Groups, dto.GroupResponse{
			GroupID: g.GroupID, SubGroups: subs, LectureCount: g.LectureCount,
		})
	}
	for _, sub := range sess.Subgroups {
		resp.Subgroups = append(resp.Subgroups, dto.SubgroupResponse{
			SubgroupID: sub.SubgroupID, ParentGroup: sub.ParentGroup, LectureCount: sub.LectureCount,
		})
	}
	for _, re := range sess.RowErrors {
		resp.RowErrors = append(resp.RowErrors, dto.RowErrorResponse{
			Row: re.Row, Field: re.Field, Kind: string(re.Kind), Message: re.Message,
		})
	}

	resp.Summary = summary
	return resp
}
