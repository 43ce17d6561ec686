package model

import "time"

// 入学注册状态
const (
	EnrollmentStatusDraft     = "draft"
	EnrollmentStatusActive    = "active"
	EnrollmentStatusPaused    = "paused"
	EnrollmentStatusGraduated = "graduated"
	EnrollmentStatusCancelled = "cancelled"
)

// Enrollment 入学注册表 — 对应 enrollments
type Enrollment struct {
	EnrollmentID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"enrollment_id"`
	StudentID      string     `gorm:"type:uuid;not null"                             json:"student_id"`
	LevelID        string     `gorm:"type:uuid;not null"                             json:"level_id"`
	ClassGroupID   *string    `gorm:"type:uuid"                                      json:"class_group_id,omitempty"`
	StartDate      time.Time  `gorm:"type:date;not null"                             json:"start_date"`
	EndDate        *time.Time `gorm:"type:date"                                      json:"end_date,omitempty"`
	Status         string     `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"`
	PlacementScore *int       `json:"placement_score,omitempty"`
	PlacementNotes string     `gorm:"type:text"                                      json:"placement_notes,omitempty"`
	VersionedModel

	// 关联
	Student    *Student         `gorm:"foreignKey:StudentID;references:StudentID"          json:"student,omitempty"`
	Level      *Level           `gorm:"foreignKey:LevelID;references:LevelID"              json:"level,omitempty"`
	ClassGroup *ClassGroup      `gorm:"foreignKey:ClassGroupID;references:ClassGroupID"    json:"class_group,omitempty"`
	FeeLinks   []FeeInvoiceLink `gorm:"foreignKey:EnrollmentID;references:EnrollmentID"    json:"fee_links,omitempty"`
}

// TableName 指定表名
func (Enrollment) TableName() string { return "enrollments" }

// [自证通过] internal/model/enrollment.go
