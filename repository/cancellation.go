package repository

import (
	"errors"

	"canteen_hub/constants"
	"canteen_hub/model"
	"canteen_hub/service"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cancellationRepository struct {
	db *gorm.DB
}

func NewCancellationRepository(db *gorm.DB) service.CancellationRepository {
	return &cancellationRepository{db: db}
}

// CreateForOpenOrder khóa dòng đơn rồi kiểm tra lại trạng thái và yêu cầu
// PENDING hiện có trước khi insert. Partial unique index trên
// (order_id, status='PENDING') chặn nốt trường hợp hai tab đua nhau.
func (r *cancellationRepository) CreateForOpenOrder(req *model.CancellationRequest, openStatuses []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, req.OrderId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return service.ErrNotFound
			}
			return err
		}

		open := false
		for _, st := range openStatuses {
			if order.Status == st {
				open = true
				break
			}
		}
		if !open {
			return service.ErrWrongOrderStatus
		}

		var count int64
		if err := tx.Model(&model.CancellationRequest{}).
			Where("order_id = ? AND status = ?", req.OrderId, constants.REQUEST_PENDING).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return service.ErrPendingRequestExists
		}

		if err := tx.Create(req).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return service.ErrPendingRequestExists
			}
			return err
		}
		return nil
	})
}

func (r *cancellationRepository) GetByID(id uint) (*model.CancellationRequest, error) {
	var req model.CancellationRequest
	if err := r.db.First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *cancellationRepository) Respond(id uint, fields map[string]any) (bool, error) {
	res := r.db.Model(&model.CancellationRequest{}).
		Where("id = ? AND status = ?", id, constants.REQUEST_PENDING).
		Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RespondAndCancel duyệt yêu cầu và hủy đơn trong cùng một transaction.
// Đơn không còn ở trạng thái hủy được thì rollback toàn bộ: yêu cầu giữ
// nguyên PENDING, không ai thấy yêu cầu APPROVED với đơn chưa hủy.
func (r *cancellationRepository) RespondAndCancel(reqId uint, respFields map[string]any, orderId uint, openStatuses []string, cancelFields map[string]any) (bool, bool, error) {
	reqUpdated, orderUpdated := false, false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.CancellationRequest{}).
			Where("id = ? AND status = ?", reqId, constants.REQUEST_PENDING).
			Updates(respFields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAbortTx
		}
		reqUpdated = true

		res = tx.Model(&model.Order{}).
			Where("id = ? AND status IN ?", orderId, openStatuses).
			Updates(cancelFields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAbortTx
		}
		orderUpdated = true
		return nil
	})
	if errors.Is(err, errAbortTx) {
		// rollback chủ động, không phải lỗi hạ tầng
		if !reqUpdated {
			return false, false, nil
		}
		return true, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return reqUpdated, orderUpdated, nil
}

var errAbortTx = errors.New("rollback")
