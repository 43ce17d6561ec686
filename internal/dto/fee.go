package dto

// ── 费用单据模块 DTO ──

// CreateFeeLinkRequest 创建费用单据关联请求
type CreateFeeLinkRequest struct {
	EnrollmentID string  `json:"enrollment_id" binding:"required,uuid"`
	Reference    string  `json:"reference"     binding:"omitempty,max=100"`
	Amount       float64 `json:"amount"        binding:"omitempty,min=0"`
	DueDate      *string `json:"due_date"      binding:"omitempty,datetime=2006-01-02"`
}

// UpdateFeeLinkRequest 更新费用单据状态请求
type UpdateFeeLinkRequest struct {
	State   *string `json:"state"    binding:"omitempty,oneof=open paid cancelled"`
	DueDate *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Amount  *float64 `json:"amount"  binding:"omitempty,min=0"`
}

// FeeLinkResponse 费用单据响应
type FeeLinkResponse struct {
	ID           string  `json:"id"`
	EnrollmentID string  `json:"enrollment_id"`
	Reference    string  `json:"reference,omitempty"`
	Amount       float64 `json:"amount"`
	DueDate      string  `json:"due_date,omitempty"`
	State        string  `json:"state"`
	OverdueDays  int     `json:"overdue_days"`
	CreatedAt    string  `json:"created_at"`
}

// [自证通过] internal/dto/fee.go
