package model

import "time"

// CancellationRequest yêu cầu hủy đơn do sinh viên gửi, chủ gian hàng phản hồi.
// Mỗi đơn chỉ được có một yêu cầu PENDING tại một thời điểm (ràng buộc bằng
// partial unique index bên dưới).
type CancellationRequest struct {
	DTO
	OrderId    uint   `gorm:"not null;uniqueIndex:uniq_pending_request,where:status = 'PENDING'" json:"orderId"`
	OrderCode  string `gorm:"size:30" json:"orderCode"`
	StallId    uint   `gorm:"not null;index" json:"stallId"`
	CustomerId uint   `gorm:"not null;index" json:"customerId"`

	ReasonCategory string  `gorm:"not null" json:"reasonCategory"` // WRONG_ORDER, WAIT_TOO_LONG, CHANGED_MIND, OTHER
	ReasonLabel    string  `gorm:"not null" json:"reasonLabel"`
	Explanation    string  `json:"explanation"`
	OrderTotal     float64 `json:"orderTotal"`

	Status      string `gorm:"not null;default:'PENDING'" json:"status"` // PENDING, APPROVED, DECLINED
	RequestedAt time.Time `json:"requestedAt"`

	RespondedAt    *time.Time `json:"respondedAt,omitempty"`
	RespondedBy    string     `json:"respondedBy,omitempty"`
	ResponseReason string     `json:"responseReason,omitempty"`

	Order Order `gorm:"foreignKey:OrderId" json:"-"`
}

type CancellationRequests []CancellationRequest

type SubmitCancellationInput struct {
	ReasonCategory string `validate:"required,oneof=WRONG_ORDER WAIT_TOO_LONG CHANGED_MIND OTHER" json:"reasonCategory"`
	Explanation    string `validate:"omitempty,max=500" json:"explanation"`
}

type RespondCancellationInput struct {
	ResponseReason string `validate:"omitempty,max=255" json:"responseReason"`
}

// ReasonLabelFor nhãn hiển thị cho từng nhóm lý do
func ReasonLabelFor(category string) string {
	switch category {
	case "WRONG_ORDER":
		return "Đặt nhầm món"
	case "WAIT_TOO_LONG":
		return "Chờ quá lâu"
	case "CHANGED_MIND":
		return "Đổi ý không mua nữa"
	default:
		return "Lý do khác"
	}
}
