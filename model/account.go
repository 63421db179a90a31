package model

type Account struct {
	DTO
	Username     string `gorm:"uniqueIndex;not null" validate:"required,min=3,max=50" json:"username"`
	Password     string `gorm:"not null" validate:"required,min=6,max=50" json:"-"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Active       bool   `gorm:"not null;default:true" json:"active"`
	Role         string `json:"role"` // ADMIN, STALL_OWNER
	StallId      *uint  `json:"stallId"`
	Stall        *Stall `gorm:"foreignKey:StallId;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"stall"`
}

type Accounts []Account

type CreateAccountInput struct {
	Username string `validate:"required,min=3,max=50" json:"username"`
	Password string `validate:"required,min=6,max=50" json:"password"`
	Role     string `validate:"required,oneof=ADMIN STALL_OWNER" json:"role"`
	StallId  *uint  `json:"stallId"`
}

type UpdateOwnerStallInput struct {
	StallId *uint `json:"stallId" validate:"omitempty"` // null để gỡ gán gian hàng
}

type FilterAccount struct {
	Pagination
	SearchKey string  `json:"searchKey"`
	Active    *bool   `json:"active"`
	Role      *string `json:"role"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
