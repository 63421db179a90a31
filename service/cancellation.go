package service

import (
	"fmt"
	"time"

	"canteen_hub/constants"
	"canteen_hub/model"
)

// CancellationService trọng tài hai bên: sinh viên gửi yêu cầu hủy, chủ gian
// hàng duyệt hoặc từ chối. Duyệt sẽ ép đơn sang CANCELLED qua đúng một
// transaction; duyệt trượt vì đơn đã tiến triển thì fail closed.
type CancellationService struct {
	requests CancellationRepository
	orders   OrderRepository
	notifier Notifier
	now      Clock
}

func NewCancellationService(requests CancellationRepository, orders OrderRepository, notifier Notifier, now Clock) *CancellationService {
	if now == nil {
		now = time.Now
	}
	return &CancellationService{requests: requests, orders: orders, notifier: notifier, now: now}
}

// Submit tạo yêu cầu hủy khi đơn còn ở PENDING/PREPARING và chưa có yêu cầu
// PENDING nào khác trên cùng đơn. Không tự thay đổi trạng thái đơn.
func (s *CancellationService) Submit(orderId uint, customerId uint, input model.SubmitCancellationInput) (*model.CancellationRequest, error) {
	order, err := s.orders.GetByID(orderId)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if order.CustomerId != customerId {
		return nil, ErrPermissionDenied
	}
	if order.Status != constants.ORDER_PENDING && order.Status != constants.ORDER_PREPARING {
		return nil, fmt.Errorf("%w: đơn đang ở %s", ErrWrongOrderStatus, order.Status)
	}

	req := &model.CancellationRequest{
		OrderId:        order.ID,
		OrderCode:      order.PublicCode,
		StallId:        order.StallId,
		CustomerId:     customerId,
		ReasonCategory: input.ReasonCategory,
		ReasonLabel:    model.ReasonLabelFor(input.ReasonCategory),
		Explanation:    input.Explanation,
		OrderTotal:     order.Subtotal,
		Status:         constants.REQUEST_PENDING,
		RequestedAt:    s.now(),
	}

	// Kho tự khóa dòng đơn, kiểm tra lại trạng thái và yêu cầu PENDING hiện có
	if err := s.requests.CreateForOpenOrder(req, CancellableStatuses()); err != nil {
		return nil, err
	}
	return req, nil
}

// Approve duyệt yêu cầu: đánh dấu APPROVED và ép đơn sang CANCELLED trong cùng
// một transaction. Nếu đơn đã tiến quá PREPARING trong lúc chờ, toàn bộ bị
// rollback và trả ErrOrderAlreadyMoved: yêu cầu vẫn PENDING để quầy từ chối
// thay vì âm thầm hủy một đơn đã sẵn sàng.
func (s *CancellationService) Approve(reqId uint, responseReason string, actor Actor) (*model.CancellationRequest, error) {
	req, err := s.loadForResponse(reqId, actor)
	if err != nil {
		return nil, err
	}

	now := s.now()
	respFields := map[string]any{
		"status":          constants.REQUEST_APPROVED,
		"responded_at":    now,
		"responded_by":    actor.Display,
		"response_reason": responseReason,
	}
	reqOk, orderOk, err := s.requests.RespondAndCancel(
		req.ID, respFields,
		req.OrderId, CancellableStatuses(),
		cancelFields(actor.Display, req.ReasonLabel, now),
	)
	if err != nil {
		return nil, err
	}
	if !reqOk {
		return nil, ErrAlreadyResolved
	}
	if !orderOk {
		return nil, ErrOrderAlreadyMoved
	}

	if s.notifier != nil {
		s.notifier.Send(req.CustomerId,
			"Yêu cầu hủy được chấp nhận",
			fmt.Sprintf("Đơn %s đã được hủy theo yêu cầu của bạn.", req.OrderCode),
			map[string]any{"orderCode": req.OrderCode, "requestId": req.ID})
	}

	return s.requests.GetByID(reqId)
}

// Decline từ chối yêu cầu, bắt buộc có lý do. Trạng thái đơn giữ nguyên.
func (s *CancellationService) Decline(reqId uint, responseReason string, actor Actor) (*model.CancellationRequest, error) {
	if responseReason == "" {
		return nil, ErrDeclineReasonRequired
	}

	req, err := s.loadForResponse(reqId, actor)
	if err != nil {
		return nil, err
	}

	ok, err := s.requests.Respond(req.ID, map[string]any{
		"status":          constants.REQUEST_DECLINED,
		"responded_at":    s.now(),
		"responded_by":    actor.Display,
		"response_reason": responseReason,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAlreadyResolved
	}

	if s.notifier != nil {
		s.notifier.Send(req.CustomerId,
			"Yêu cầu hủy bị từ chối",
			fmt.Sprintf("Gian hàng từ chối hủy đơn %s. Lý do: %s", req.OrderCode, responseReason),
			map[string]any{"orderCode": req.OrderCode, "requestId": req.ID})
	}

	return s.requests.GetByID(reqId)
}

func (s *CancellationService) loadForResponse(reqId uint, actor Actor) (*model.CancellationRequest, error) {
	req, err := s.requests.GetByID(reqId)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNotFound
	}

	switch actor.Role {
	case constants.ACTOR_ADMIN:
	case constants.ACTOR_OWNER:
		if actor.StallId == nil || *actor.StallId != req.StallId {
			return nil, ErrPermissionDenied
		}
	default:
		return nil, ErrPermissionDenied
	}

	if req.Status != constants.REQUEST_PENDING {
		return nil, ErrAlreadyResolved
	}
	return req, nil
}
