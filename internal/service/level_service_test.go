package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"edu-markaz/backend/internal/dto"
)

func setupTestLevelService() (LevelService, *testRepos) {
	repos := newTestRepos()
	return NewLevelService(repos.toRepository(), zap.NewNop()), repos
}

func TestCreateLevel(t *testing.T) {
	svc, _ := setupTestLevelService()

	resp, err := svc.Create(context.Background(), &dto.CreateLevelRequest{
		Name:              "初级",
		Code:              "L1",
		Sequence:          10,
		PlacementMinScore: 0,
	}, "user-1")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	// 未填上限默认 100
	if resp.PlacementMaxScore != 100 {
		t.Errorf("分数上限默认期望 100，实际=%d", resp.PlacementMaxScore)
	}
	if !resp.IsActive {
		t.Error("新建级别应默认启用")
	}
}

func TestCreateLevelInvalidScoreRange(t *testing.T) {
	svc, _ := setupTestLevelService()

	_, err := svc.Create(context.Background(), &dto.CreateLevelRequest{
		Name:              "初级",
		Sequence:          10,
		PlacementMinScore: 50,
		PlacementMaxScore: 20,
	}, "user-1")
	if !errors.Is(err, ErrInvalidScoreRange) {
		t.Errorf("下限大于上限应报错，实际=%v", err)
	}
}

func TestListLevelsBySequence(t *testing.T) {
	svc, _ := setupTestLevelService()
	ctx := context.Background()

	for _, l := range []struct {
		name string
		seq  int
	}{
		{"进阶", 30},
		{"启蒙", 10},
		{"初级", 20},
	} {
		if _, err := svc.Create(ctx, &dto.CreateLevelRequest{Name: l.name, Sequence: l.seq}, "user-1"); err != nil {
			t.Fatalf("Create 应成功: %v", err)
		}
	}

	levels, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(levels) != 3 {
		t.Fatalf("期望 3 个级别，实际=%d", len(levels))
	}
	for i := 0; i < len(levels)-1; i++ {
		if levels[i].Sequence > levels[i+1].Sequence {
			t.Errorf("级别列表应按 sequence 升序: %d 在 %d 之前", levels[i].Sequence, levels[i+1].Sequence)
		}
	}
}

func TestUpdateLevelScoreRangeValidated(t *testing.T) {
	svc, _ := setupTestLevelService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateLevelRequest{Name: "初级", Sequence: 10, PlacementMaxScore: 40}, "user-1")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	min := 50
	_, err = svc.Update(ctx, created.ID, &dto.UpdateLevelRequest{PlacementMinScore: &min}, "user-1")
	if !errors.Is(err, ErrInvalidScoreRange) {
		t.Errorf("更新后区间倒置应报错，实际=%v", err)
	}
}
