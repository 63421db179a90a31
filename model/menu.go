package model

type MenuItem struct {
	DTO
	StallId     uint    `gorm:"not null;index" json:"stallId"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	ImageUrl    *string `json:"imageUrl"`
	IsAvailable bool    `gorm:"default:true" json:"isAvailable"`

	Stall  Stall       `gorm:"foreignKey:StallId" json:"-"`
	AddOns []MenuAddOn `gorm:"foreignKey:MenuItemId;constraint:OnDelete:CASCADE" json:"addOns"`
}

type MenuItems []MenuItem

// MenuAddOn món kèm tùy chọn (thêm trứng, thêm phô mai...)
type MenuAddOn struct {
	DTO
	MenuItemId uint    `gorm:"not null;index" json:"menuItemId"`
	Name       string  `gorm:"not null" json:"name"`
	Price      float64 `gorm:"not null" json:"price"`
}

type CreateMenuItemInput struct {
	Name        string             `validate:"required,min=2,max=100" json:"name"`
	Description string             `json:"description"`
	Price       float64            `validate:"required,gt=0" json:"price"`
	ImageUrl    *string            `json:"imageUrl"`
	AddOns      []MenuAddOnInput   `validate:"omitempty,dive" json:"addOns"`
}

type MenuAddOnInput struct {
	Name  string  `validate:"required" json:"name"`
	Price float64 `validate:"gte=0" json:"price"`
}

type EditMenuItemInput struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	ImageUrl    *string  `json:"imageUrl,omitempty"`
	IsAvailable *bool    `json:"isAvailable,omitempty"`
}

type FilterMenuItem struct {
	Pagination
	StallId     uint   `json:"stallId"`
	SearchKey   string `json:"searchKey"`
	IsAvailable *bool  `json:"isAvailable"`
}
