package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"edu-markaz/backend/internal/dto"
	"edu-markaz/backend/internal/model"
)

func setupTestPlacementService() (PlacementService, *testRepos) {
	repos := newTestRepos()
	return NewPlacementService(repos.toRepository(), zap.NewNop()), repos
}

func seedPlacementLevels(repos *testRepos) {
	ctx := context.Background()
	repos.level.Create(ctx, &model.Level{LevelID: "lvl-1", Name: "启蒙", Sequence: 10, PlacementMinScore: 0, PlacementMaxScore: 15, IsActive: true})
	repos.level.Create(ctx, &model.Level{LevelID: "lvl-2", Name: "初级", Sequence: 20, PlacementMinScore: 16, PlacementMaxScore: 40, IsActive: true})
	repos.level.Create(ctx, &model.Level{LevelID: "lvl-3", Name: "进阶", Sequence: 30, PlacementMinScore: 41, PlacementMaxScore: 100, IsActive: true})
}

func seedStudentAged(repos *testRepos, id string, years int) {
	birth := time.Now().AddDate(-years, -6, 0)
	repos.student.students[id] = &model.Student{StudentID: id, Name: "学员" + id, BirthDate: &birth}
}

func TestEvaluatePlacement(t *testing.T) {
	svc, repos := setupTestPlacementService()
	seedPlacementLevels(repos)
	seedStudentAged(repos, "stu-1", 10)

	// 诵读 basic 10 + 背诵 3 卷 ×2 + 年龄 10 = 26 → 初级
	result, err := svc.Evaluate(context.Background(), &dto.EvaluatePlacementRequest{
		StudentID:       "stu-1",
		ReadingLevel:    "basic",
		MemorizationJuz: 3,
	})
	if err != nil {
		t.Fatalf("Evaluate 应成功: %v", err)
	}

	if result.Score != 26 {
		t.Errorf("测评分期望 26，实际=%d", result.Score)
	}
	if result.Breakdown.ReadingPoints != 10 {
		t.Errorf("诵读分期望 10，实际=%d", result.Breakdown.ReadingPoints)
	}
	if result.Breakdown.MemorizationPoints != 6 {
		t.Errorf("背诵分期望 6，实际=%d", result.Breakdown.MemorizationPoints)
	}
	if result.Breakdown.AgePoints != 10 {
		t.Errorf("年龄分期望 10，实际=%d", result.Breakdown.AgePoints)
	}
	if result.RecommendedLevel == nil || result.RecommendedLevel.ID != "lvl-2" {
		t.Errorf("期望推荐 lvl-2，实际=%+v", result.RecommendedLevel)
	}
	if result.Fallback {
		t.Error("命中分数区间时 fallback 应为 false")
	}
}

func TestEvaluatePlacementFallback(t *testing.T) {
	svc, repos := setupTestPlacementService()
	ctx := context.Background()
	// 所有区间都偏低，高分学员回落到 sequence 最大的级别
	repos.level.Create(ctx, &model.Level{LevelID: "lvl-1", Name: "启蒙", Sequence: 10, PlacementMinScore: 0, PlacementMaxScore: 10, IsActive: true})
	repos.level.Create(ctx, &model.Level{LevelID: "lvl-2", Name: "初级", Sequence: 20, PlacementMinScore: 11, PlacementMaxScore: 20, IsActive: true})
	seedStudentAged(repos, "stu-1", 12)

	result, err := svc.Evaluate(ctx, &dto.EvaluatePlacementRequest{
		StudentID:       "stu-1",
		ReadingLevel:    "advanced",
		MemorizationJuz: 10,
	})
	if err != nil {
		t.Fatalf("Evaluate 应成功: %v", err)
	}
	if !result.Fallback {
		t.Error("未命中任何区间时 fallback 应为 true")
	}
	if result.RecommendedLevel.ID != "lvl-2" {
		t.Errorf("应回落到最高级别 lvl-2，实际=%s", result.RecommendedLevel.ID)
	}
}

func TestEvaluatePlacementNoLevels(t *testing.T) {
	svc, repos := setupTestPlacementService()
	seedStudentAged(repos, "stu-1", 8)

	_, err := svc.Evaluate(context.Background(), &dto.EvaluatePlacementRequest{
		StudentID:    "stu-1",
		ReadingLevel: "none",
	})
	if !errors.Is(err, ErrNoLevelsConfigured) {
		t.Errorf("期望 ErrNoLevelsConfigured，实际=%v", err)
	}
}

func TestEvaluatePlacementStudentNotFound(t *testing.T) {
	svc, repos := setupTestPlacementService()
	seedPlacementLevels(repos)

	_, err := svc.Evaluate(context.Background(), &dto.EvaluatePlacementRequest{
		StudentID:    "stu-missing",
		ReadingLevel: "basic",
	})
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际=%v", err)
	}
}

func TestConfirmPlacement(t *testing.T) {
	svc, repos := setupTestPlacementService()
	seedPlacementLevels(repos)
	seedStudentAged(repos, "stu-1", 10)
	ctx := context.Background()

	repos.enrollment.Create(ctx, &model.Enrollment{
		EnrollmentID: "enr-1",
		StudentID:    "stu-1",
		LevelID:      "lvl-1",
		StartDate:    date("2024-01-01"),
		Status:       model.EnrollmentStatusDraft,
	})

	result, err := svc.Confirm(ctx, &dto.ConfirmPlacementRequest{
		EnrollmentID: "enr-1",
		Score:        26,
		LevelID:      "lvl-2",
		Notes:        "测评确认",
	}, "user-1")
	if err != nil {
		t.Fatalf("Confirm 应成功: %v", err)
	}

	if result.PlacementScore == nil || *result.PlacementScore != 26 {
		t.Errorf("注册记录应写入测评分 26，实际=%v", result.PlacementScore)
	}
	stored := repos.enrollment.enrollments["enr-1"]
	if stored.LevelID != "lvl-2" {
		t.Errorf("注册级别应更新为 lvl-2，实际=%s", stored.LevelID)
	}
	if stored.PlacementNotes != "测评确认" {
		t.Errorf("测评备注未写入，实际=%q", stored.PlacementNotes)
	}
}

func TestConfirmPlacementLevelNotFound(t *testing.T) {
	svc, repos := setupTestPlacementService()
	seedStudentAged(repos, "stu-1", 10)
	ctx := context.Background()

	repos.enrollment.Create(ctx, &model.Enrollment{
		EnrollmentID: "enr-1",
		StudentID:    "stu-1",
		LevelID:      "lvl-1",
		Status:       model.EnrollmentStatusDraft,
	})

	_, err := svc.Confirm(ctx, &dto.ConfirmPlacementRequest{
		EnrollmentID: "enr-1",
		Score:        10,
		LevelID:      "lvl-missing",
	}, "user-1")
	if !errors.Is(err, ErrLevelNotFound) {
		t.Errorf("期望 ErrLevelNotFound，实际=%v", err)
	}
}
