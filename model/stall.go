package model

type Stall struct {
	DTO
	Name        string  `gorm:"not null" validate:"required" json:"name"`
	Slug        string  `gorm:"uniqueIndex;size:120" json:"slug"`
	Description string  `json:"description"`
	Location    string  `json:"location"` // vị trí trong căng tin, ví dụ "Khu A - Quầy 3"
	ImageUrl    *string `json:"imageUrl"`
	IsOpen      bool    `gorm:"default:true" json:"isOpen"`

	MenuItems []MenuItem `gorm:"foreignKey:StallId" json:"menuItems,omitempty"`
}

type Stalls []Stall

type CreateStallInput struct {
	Name        string  `validate:"required,min=2,max=100" json:"name"`
	Description string  `json:"description"`
	Location    string  `validate:"required" json:"location"`
	ImageUrl    *string `json:"imageUrl"`
}

type EditStallInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
	ImageUrl    *string `json:"imageUrl,omitempty"`
	IsOpen      *bool   `json:"isOpen,omitempty"`
}

type FilterStall struct {
	Pagination
	SearchKey string `json:"searchKey"`
	IsOpen    *bool  `json:"isOpen"`
}
