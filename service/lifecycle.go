package service

import (
	"fmt"
	"log"
	"time"

	"canteen_hub/constants"
)

// Actor người thực hiện chuyển trạng thái
type Actor struct {
	Role    string // STALL_OWNER, ADMIN, SYSTEM
	ID      uint
	Display string // tên hiển thị ghi vào CancelledBy
	StallId *uint  // gian hàng của chủ quầy, nil với admin/system
}

// Bảng chuyển trạng thái duy nhất của đơn hàng. READY, COMPLETED, CANCELLED
// là trạng thái cuối, không có đường ra ngoài bảng này.
var validNext = map[string]map[string]bool{
	constants.ORDER_PENDING: {
		constants.ORDER_PREPARING: true,
		constants.ORDER_CANCELLED: true,
	},
	constants.ORDER_PREPARING: {
		constants.ORDER_READY:     true,
		constants.ORDER_CANCELLED: true,
	},
	constants.ORDER_READY: {
		constants.ORDER_COMPLETED: true,
	},
	constants.ORDER_COMPLETED: {},
	constants.ORDER_CANCELLED: {},
}

// CanTransition true nếu from -> to có trong bảng
func CanTransition(from, to string) bool {
	return validNext[from][to]
}

// CancellableStatuses các trạng thái còn cho phép hủy
func CancellableStatuses() []string {
	return []string{constants.ORDER_PENDING, constants.ORDER_PREPARING}
}

// cancelFields các cột được stamp khi hủy đơn
func cancelFields(by, reason string, now time.Time) map[string]any {
	return map[string]any{
		"status":              constants.ORDER_CANCELLED,
		"status_updated_at":   now,
		"cancelled_at":        now,
		"cancelled_by":        by,
		"cancellation_reason": reason,
	}
}

type LifecycleService struct {
	orders   OrderRepository
	notifier Notifier
	now      Clock
}

func NewLifecycleService(orders OrderRepository, notifier Notifier, now Clock) *LifecycleService {
	if now == nil {
		now = time.Now
	}
	return &LifecycleService{orders: orders, notifier: notifier, now: now}
}

// Transition chuyển đơn sang trạng thái mới theo bảng. Ghi xuống kho là một
// UPDATE có điều kiện trên trạng thái nguồn, nên client cũ kỹ không thể áp
// một bước đã lỗi thời: không còn đúng trạng thái thì không ghi gì cả.
func (s *LifecycleService) Transition(orderId uint, to string, reason string, actor Actor) error {
	order, err := s.orders.GetByID(orderId)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrNotFound
	}

	if err := s.authorize(order.StallId, to, actor); err != nil {
		return err
	}

	from := order.Status
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}

	now := s.now()
	var fields map[string]any
	if to == constants.ORDER_CANCELLED {
		if reason == "" {
			return ErrCancelReasonRequired
		}
		fields = cancelFields(actor.Display, reason, now)
	} else {
		fields = map[string]any{
			"status":            to,
			"status_updated_at": now,
		}
	}

	ok, err := s.orders.UpdateStatusIf(orderId, []string{from}, fields)
	if err != nil {
		return err
	}
	if !ok {
		// Đơn đã bị actor khác chuyển đi giữa lúc đọc và lúc ghi
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}

	s.notifyCustomer(order.CustomerId, order.PublicCode, to, reason)
	return nil
}

func (s *LifecycleService) authorize(orderStallId uint, to string, actor Actor) error {
	switch actor.Role {
	case constants.ACTOR_ADMIN:
		return nil
	case constants.ACTOR_SYSTEM:
		// system chỉ được hủy, thông qua yêu cầu hủy đã duyệt
		if to != constants.ORDER_CANCELLED {
			return ErrPermissionDenied
		}
		return nil
	case constants.ACTOR_OWNER:
		if actor.StallId == nil || *actor.StallId != orderStallId {
			return ErrPermissionDenied
		}
		return nil
	default:
		// sinh viên không có quyền chuyển trạng thái trực tiếp
		return ErrPermissionDenied
	}
}

func (s *LifecycleService) notifyCustomer(customerId uint, orderCode, to, reason string) {
	if s.notifier == nil {
		return
	}
	var title, message string
	switch to {
	case constants.ORDER_PREPARING:
		title = "Đơn hàng đang được chuẩn bị"
		message = fmt.Sprintf("Đơn %s đã được gian hàng tiếp nhận và đang chuẩn bị.", orderCode)
	case constants.ORDER_READY:
		title = "Đơn hàng đã sẵn sàng"
		message = fmt.Sprintf("Đơn %s đã sẵn sàng, mời bạn đến quầy nhận món.", orderCode)
	case constants.ORDER_COMPLETED:
		title = "Đơn hàng hoàn tất"
		message = fmt.Sprintf("Đơn %s đã hoàn tất. Cảm ơn bạn!", orderCode)
	case constants.ORDER_CANCELLED:
		title = "Đơn hàng đã bị hủy"
		message = fmt.Sprintf("Đơn %s đã bị hủy. Lý do: %s", orderCode, reason)
	default:
		log.Printf("Không có mẫu thông báo cho trạng thái %s", to)
		return
	}
	s.notifier.Send(customerId, title, message, map[string]any{"orderCode": orderCode, "status": to})
}
