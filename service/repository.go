package service

import (
	"time"

	"canteen_hub/model"
)

// Các interface kho dữ liệu hẹp theo từng entity, để logic nghiệp vụ
// test được mà không cần postgres thật. Bản GORM nằm ở package repository.

type CartRepository interface {
	ListByCustomer(customerId uint) ([]model.CartLine, error)
	DeleteByIDs(customerId uint, ids []uint) error
}

type OrderRepository interface {
	Create(order *model.Order) error
	GetByID(id uint) (*model.Order, error)
	GetByCode(code string) (*model.Order, error)
	// UpdateStatusIf ghi có điều kiện: chỉ áp dụng khi status hiện tại nằm trong
	// fromStatuses. Trả về false nếu không còn đúng trạng thái (0 row bị ảnh hưởng).
	UpdateStatusIf(id uint, fromStatuses []string, fields map[string]any) (bool, error)
}

type CancellationRepository interface {
	// CreateForOpenOrder tạo yêu cầu trong transaction: khóa dòng đơn, kiểm tra
	// trạng thái đơn và yêu cầu PENDING hiện có rồi mới insert.
	CreateForOpenOrder(req *model.CancellationRequest, openStatuses []string) error
	GetByID(id uint) (*model.CancellationRequest, error)
	// Respond CAS PENDING -> APPROVED/DECLINED. Trả về false nếu đã được phản hồi.
	Respond(id uint, fields map[string]any) (bool, error)
	// RespondAndCancel duyệt yêu cầu và hủy đơn trong cùng một transaction.
	// reqUpdated=false: yêu cầu đã được phản hồi. orderUpdated=false: đơn đã
	// tiến triển, toàn bộ transaction được rollback.
	RespondAndCancel(reqId uint, respFields map[string]any, orderId uint, openStatuses []string, cancelFields map[string]any) (reqUpdated bool, orderUpdated bool, err error)
}

type PenaltyRepository interface {
	Create(p *model.Penalty) error
	ListByUser(userId uint) ([]model.Penalty, error)
}

// Notifier gửi thông báo cho người dùng, fire-and-forget: lỗi chỉ được log,
// không bao giờ chặn nghiệp vụ.
type Notifier interface {
	Send(userId uint, title, message string, metadata map[string]any)
}

// Clock tách thời gian ra để test chốt được các mốc thời gian
type Clock func() time.Time
