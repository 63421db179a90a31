package repository

import (
	"errors"

	"canteen_hub/model"
	"canteen_hub/service"

	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) service.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *model.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) GetByID(id uint) (*model.Order, error) {
	var order model.Order
	if err := r.db.
		Preload("Items").
		Preload("Items.AddOns").
		Preload("Stall").
		First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByCode(code string) (*model.Order, error) {
	var order model.Order
	if err := r.db.
		Preload("Items").
		Preload("Items.AddOns").
		Preload("Stall").
		Where("public_code = ?", code).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// UpdateStatusIf ghi có điều kiện trên trạng thái nguồn, một UPDATE duy nhất.
// RowsAffected = 0 nghĩa là trạng thái đã bị actor khác đổi trước.
func (r *orderRepository) UpdateStatusIf(id uint, fromStatuses []string, fields map[string]any) (bool, error) {
	res := r.db.Model(&model.Order{}).
		Where("id = ? AND status IN ?", id, fromStatuses).
		Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
