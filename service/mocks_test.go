package service

import (
	"canteen_hub/model"
)

// Mock kho dữ liệu bằng func field, mỗi test tự cắm hành vi cần thiết

type mockCartRepo struct {
	listByCustomerFn func(customerId uint) ([]model.CartLine, error)
	deleteByIDsFn    func(customerId uint, ids []uint) error
}

func (m *mockCartRepo) ListByCustomer(customerId uint) ([]model.CartLine, error) {
	return m.listByCustomerFn(customerId)
}

func (m *mockCartRepo) DeleteByIDs(customerId uint, ids []uint) error {
	if m.deleteByIDsFn == nil {
		return nil
	}
	return m.deleteByIDsFn(customerId, ids)
}

type mockOrderRepo struct {
	createFn         func(order *model.Order) error
	getByIDFn        func(id uint) (*model.Order, error)
	getByCodeFn      func(code string) (*model.Order, error)
	updateStatusIfFn func(id uint, fromStatuses []string, fields map[string]any) (bool, error)
}

func (m *mockOrderRepo) Create(order *model.Order) error {
	return m.createFn(order)
}

func (m *mockOrderRepo) GetByID(id uint) (*model.Order, error) {
	return m.getByIDFn(id)
}

func (m *mockOrderRepo) GetByCode(code string) (*model.Order, error) {
	return m.getByCodeFn(code)
}

func (m *mockOrderRepo) UpdateStatusIf(id uint, fromStatuses []string, fields map[string]any) (bool, error) {
	return m.updateStatusIfFn(id, fromStatuses, fields)
}

type mockCancellationRepo struct {
	createForOpenOrderFn func(req *model.CancellationRequest, openStatuses []string) error
	getByIDFn            func(id uint) (*model.CancellationRequest, error)
	respondFn            func(id uint, fields map[string]any) (bool, error)
	respondAndCancelFn   func(reqId uint, respFields map[string]any, orderId uint, openStatuses []string, cancelFields map[string]any) (bool, bool, error)
}

func (m *mockCancellationRepo) CreateForOpenOrder(req *model.CancellationRequest, openStatuses []string) error {
	return m.createForOpenOrderFn(req, openStatuses)
}

func (m *mockCancellationRepo) GetByID(id uint) (*model.CancellationRequest, error) {
	return m.getByIDFn(id)
}

func (m *mockCancellationRepo) Respond(id uint, fields map[string]any) (bool, error) {
	return m.respondFn(id, fields)
}

func (m *mockCancellationRepo) RespondAndCancel(reqId uint, respFields map[string]any, orderId uint, openStatuses []string, cancelFields map[string]any) (bool, bool, error) {
	return m.respondAndCancelFn(reqId, respFields, orderId, openStatuses, cancelFields)
}

type mockPenaltyRepo struct {
	createFn     func(p *model.Penalty) error
	listByUserFn func(userId uint) ([]model.Penalty, error)
}

func (m *mockPenaltyRepo) Create(p *model.Penalty) error {
	return m.createFn(p)
}

func (m *mockPenaltyRepo) ListByUser(userId uint) ([]model.Penalty, error) {
	if m.listByUserFn == nil {
		return nil, nil
	}
	return m.listByUserFn(userId)
}

// mockNotifier ghi lại mọi thông báo đã gửi
type sentNotification struct {
	UserId   uint
	Title    string
	Message  string
	Metadata map[string]any
}

type mockNotifier struct {
	sent []sentNotification
}

func (m *mockNotifier) Send(userId uint, title, message string, metadata map[string]any) {
	m.sent = append(m.sent, sentNotification{UserId: userId, Title: title, Message: message, Metadata: metadata})
}
