package repository

import (
	"canteen_hub/model"
	"canteen_hub/service"

	"gorm.io/gorm"
)

type penaltyRepository struct {
	db *gorm.DB
}

func NewPenaltyRepository(db *gorm.DB) service.PenaltyRepository {
	return &penaltyRepository{db: db}
}

func (r *penaltyRepository) Create(p *model.Penalty) error {
	return r.db.Create(p).Error
}

func (r *penaltyRepository) ListByUser(userId uint) ([]model.Penalty, error) {
	var penalties []model.Penalty
	if err := r.db.
		Where("target_user_id = ?", userId).
		Order("issued_at desc").
		Find(&penalties).Error; err != nil {
		return nil, err
	}
	return penalties, nil
}
