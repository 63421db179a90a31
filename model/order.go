package model

import "time"

type Order struct {
	DTO
	PublicCode    string `gorm:"uniqueIndex;size:30" json:"publicCode"` // mã nhận món, in thành QR
	MainOrderCode string `gorm:"index;size:30" json:"mainOrderCode"`    // liên kết các đơn anh em cùng lượt checkout
	StallId       uint   `gorm:"not null;index" json:"stallId"`
	CustomerId    uint   `gorm:"not null;index" json:"customerId"`

	// Thông tin khách chốt tại thời điểm đặt
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	StudentCode   string `json:"studentCode"`

	Subtotal      float64  `gorm:"not null" json:"subtotal"`
	PaymentMethod string   `gorm:"not null" json:"paymentMethod"` // CASH, CAMPUS_CARD
	CashTendered  *float64 `json:"cashTendered,omitempty"`
	ChangeDue     *float64 `json:"changeDue,omitempty"`
	// CarriesCash đánh dấu đơn duy nhất giữ phần tiền mặt của lượt checkout nhiều gian hàng,
	// để gian hàng khác không tưởng mình đã nhận tiền.
	CarriesCash bool `gorm:"default:false" json:"carriesCash"`

	Status          string    `gorm:"not null;default:'PENDING';index" json:"status"`
	StatusUpdatedAt time.Time `json:"statusUpdatedAt"`

	SpecialInstructions string     `json:"specialInstructions"`
	ScheduledReadyBy    *time.Time `json:"scheduledReadyBy,omitempty"`
	ScheduleRemindedAt  *time.Time `json:"-"`
	GroupMemberEmails   string     `json:"groupMemberEmails"` // danh sách email cách nhau bởi dấu phẩy
	IsMultiStallSibling bool       `gorm:"default:false" json:"isMultiStallSibling"`

	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancelledBy        string     `json:"cancelledBy,omitempty"`
	CancellationReason string     `json:"cancellationReason,omitempty"`

	Stall    Stall       `gorm:"foreignKey:StallId" json:"stall"`
	Customer Customer    `gorm:"foreignKey:CustomerId" json:"-"`
	Items    []OrderItem `gorm:"foreignKey:OrderId" json:"items"`
}

type Orders []Order

// OrderItem dòng món đã chốt giá, không đổi khi thực đơn đổi giá sau này
type OrderItem struct {
	DTO
	OrderId    uint    `gorm:"not null;index" json:"orderId"`
	MenuItemId uint    `json:"menuItemId"`
	Name       string  `gorm:"not null" json:"name"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	UnitPrice  float64 `gorm:"not null" json:"unitPrice"`
	Note       string  `json:"note"`

	AddOns []OrderItemAddOn `gorm:"foreignKey:OrderItemId;constraint:OnDelete:CASCADE" json:"addOns"`
}

type OrderItemAddOn struct {
	DTO
	OrderItemId uint    `gorm:"not null;index" json:"orderItemId"`
	Name        string  `gorm:"not null" json:"name"`
	Price       float64 `gorm:"not null" json:"price"`
}

// LineTotal của một dòng món đã chốt
func (i *OrderItem) LineTotal() float64 {
	addOnTotal := 0.0
	for _, a := range i.AddOns {
		addOnTotal += a.Price
	}
	return (i.UnitPrice + addOnTotal) * float64(i.Quantity)
}

type CheckoutInput struct {
	PaymentMethod       string     `validate:"required,oneof=CASH CAMPUS_CARD" json:"paymentMethod"`
	CashTendered        *float64   `validate:"omitempty,gt=0" json:"cashTendered"`
	SpecialInstructions string     `validate:"omitempty,max=500" json:"specialInstructions"`
	ScheduledReadyBy    *time.Time `json:"scheduledReadyBy"`
	GroupMemberEmails   []string   `validate:"omitempty,dive,email" json:"groupMemberEmails"`
}

type TransitionOrderInput struct {
	Status string `validate:"required,oneof=PREPARING READY COMPLETED CANCELLED" json:"status"`
	Reason string `validate:"omitempty,max=255" json:"reason"` // bắt buộc khi hủy
}

type FilterOrder struct {
	Pagination
	StallId   uint       `query:"stallId"`
	Status    string     `query:"status" validate:"omitempty,oneof=PENDING PREPARING READY COMPLETED CANCELLED"`
	StartDate *time.Time `query:"startDate"`
	EndDate   *time.Time `query:"endDate"`
}
