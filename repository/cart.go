package repository

import (
	"canteen_hub/model"
	"canteen_hub/service"

	"gorm.io/gorm"
)

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) service.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) ListByCustomer(customerId uint) ([]model.CartLine, error) {
	var lines []model.CartLine
	if err := r.db.
		Preload("AddOns").
		Where("customer_id = ?", customerId).
		Order("created_at asc").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *cartRepository) DeleteByIDs(customerId uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.
		Where("customer_id = ? AND id IN ?", customerId, ids).
		Delete(&model.CartLine{}).Error
}
