package dto

// ── 教师模块 DTO ──

// CreateTeacherRequest 创建教师请求
type CreateTeacherRequest struct {
	Name              string   `json:"name"               binding:"required,min=2,max=100"`
	Gender            string   `json:"gender"             binding:"omitempty,oneof=male female"`
	MaxLoad           int      `json:"max_load"           binding:"omitempty,min=0,max=100"`
	AvailableDays     []int    `json:"available_days"     binding:"omitempty,dive,min=0,max=6"`
	SpecializationIDs []string `json:"specialization_ids" binding:"omitempty,dive,uuid"`
	Notes             string   `json:"notes"              binding:"omitempty,max=2000"`
}

// UpdateTeacherRequest 更新教师请求
type UpdateTeacherRequest struct {
	Name              *string  `json:"name"               binding:"omitempty,min=2,max=100"`
	Gender            *string  `json:"gender"             binding:"omitempty,oneof=male female"`
	MaxLoad           *int     `json:"max_load"           binding:"omitempty,min=0,max=100"`
	AvailableDays     []int    `json:"available_days"     binding:"omitempty,dive,min=0,max=6"`
	SpecializationIDs []string `json:"specialization_ids" binding:"omitempty,dive,uuid"`
	Notes             *string  `json:"notes"              binding:"omitempty,max=2000"`
	IsActive          *bool    `json:"is_active"`
}

// TeacherListRequest 教师列表查询参数
type TeacherListRequest struct {
	PaginationRequest
}

// TeacherResponse 教师响应
type TeacherResponse struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Gender          string       `json:"gender,omitempty"`
	MaxLoad         int          `json:"max_load"`
	CurrentLoad     int          `json:"current_load"`
	AvailableDays   []int        `json:"available_days"`
	Specializations []LevelBrief `json:"specializations,omitempty"`
	Notes           string       `json:"notes,omitempty"`
	IsActive        bool         `json:"is_active"`
	CreatedAt       string       `json:"created_at"`
	UpdatedAt       string       `json:"updated_at"`
}

// ── 教师推荐 ──

// RecommendTeachersRequest 教师推荐请求
type RecommendTeachersRequest struct {
	StudentID  string `json:"student_id"  binding:"omitempty,uuid"`
	LevelID    string `json:"level_id"    binding:"required,uuid"`
	MeetingDays []int `json:"meeting_days" binding:"omitempty,dive,min=0,max=6"`
}

// RecommendedTeacherResponse 推荐结果条目
type RecommendedTeacherResponse struct {
	Teacher TeacherBrief `json:"teacher"`
	Score   int          `json:"score"`
	Reasons []string     `json:"reasons,omitempty"`
}

// [自证通过] internal/dto/teacher.go
