package model

import "time"

// Penalty án phạt do quản trị viên ban hành, chỉ ghi thêm, không sửa xóa.
type Penalty struct {
	DTO
	TargetUserId   uint       `gorm:"not null;index" json:"targetUserId"`
	Type           string     `gorm:"not null" json:"type"` // WARNING, SUSPENSION, BAN
	Reason         string     `gorm:"not null" json:"reason"`
	Description    string     `json:"description"`
	RelatedOrderId *uint      `json:"relatedOrderId,omitempty"`
	IssuedBy       string     `gorm:"not null" json:"issuedBy"`
	IssuedAt       time.Time  `gorm:"not null" json:"issuedAt"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"` // chỉ có với SUSPENSION
	IsActive       bool       `gorm:"default:true" json:"isActive"`
}

type Penalties []Penalty

// InEffect kiểm tra án phạt còn hiệu lực tại thời điểm now.
// IsActive không bao giờ tự động tắt, nơi cần chặn quyền phải gọi hàm này.
func (p *Penalty) InEffect(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.ExpiresAt != nil && now.After(*p.ExpiresAt) {
		return false
	}
	return true
}

type IssuePenaltyInput struct {
	TargetUserId   uint   `validate:"required,gt=0" json:"targetUserId"`
	Type           string `validate:"required,oneof=WARNING SUSPENSION BAN" json:"type"`
	Reason         string `validate:"required,max=255" json:"reason"`
	Description    string `validate:"omitempty,max=1000" json:"description"`
	RelatedOrderId *uint  `json:"relatedOrderId"`
	DurationDays   *int   `validate:"omitempty,gt=0" json:"durationDays"` // bắt buộc với SUSPENSION
}

type FilterPenalty struct {
	Pagination
	TargetUserId uint   `json:"targetUserId"`
	Type         string `json:"type" validate:"omitempty,oneof=WARNING SUSPENSION BAN"`
}
