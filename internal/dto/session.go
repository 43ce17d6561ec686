package dto

// ── 课次模块 DTO ──

// SessionListRequest 课次列表查询参数
type SessionListRequest struct {
	TeacherID    string `form:"teacher_id"     binding:"omitempty,uuid"`
	ClassGroupID string `form:"class_group_id" binding:"omitempty,uuid"`
	FromDate     string `form:"from_date"      binding:"required,datetime=2006-01-02"`
	ToDate       string `form:"to_date"        binding:"required,datetime=2006-01-02"`
}

// UpdateSessionRequest 更新课次请求（改期/改时间窗/取消）
type UpdateSessionRequest struct {
	Date      *string `json:"date"       binding:"omitempty,datetime=2006-01-02"`
	TimeStart *string `json:"time_start" binding:"omitempty,len=5"`
	TimeEnd   *string `json:"time_end"   binding:"omitempty,len=5"`
	Location  *string `json:"location"   binding:"omitempty,max=200"`
	Status    *string `json:"status"     binding:"omitempty,oneof=scheduled done cancelled"`
}

// SessionResponse 课次响应
type SessionResponse struct {
	ID           string               `json:"id"`
	AssignmentID string               `json:"assignment_id,omitempty"`
	Teacher      *TeacherBrief        `json:"teacher,omitempty"`
	Student      *StudentBrief        `json:"student,omitempty"`
	ClassGroup   *ClassGroupBrief     `json:"class_group,omitempty"`
	Date         string               `json:"date"`
	TimeStart    string               `json:"time_start,omitempty"`
	TimeEnd      string               `json:"time_end,omitempty"`
	Location     string               `json:"location,omitempty"`
	Status       string               `json:"status"`
	Attendance   []AttendanceResponse `json:"attendance,omitempty"`
}

// [自证通过] internal/dto/session.go
