package model

type Customer struct {
	DTO
	Email       string `gorm:"unique;not null" json:"email"`
	Phone       string `gorm:"not null" json:"phone"`
	Password    string `gorm:"not null" json:"-"`
	UserName    string `json:"username"`
	StudentCode string `gorm:"size:20;index" json:"studentCode"` // mã số sinh viên

	FirstName *string `json:"firstname"`
	LastName  *string `json:"lastname"`
	AvatarUrl *string `json:"avatarUrl"`

	IsActive bool `gorm:"default:true" json:"isActive"`
}

type Customers []Customer

type RegisterCustomerInput struct {
	UserName    string `validate:"required" json:"username"`
	Email       string `validate:"required,email" json:"email"`
	Phone       string `validate:"required" json:"phone"`
	StudentCode string `validate:"required" json:"studentCode"`
	Password    string `validate:"required,min=8" json:"password"`
}

type CustomerChangePassword struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	RepeatPassword  string `json:"repeatPassword"`
}

type FilterCustomer struct {
	Pagination
	SearchKey   string `json:"searchKey"`
	StudentCode string `json:"studentCode"`
	Active      *bool  `json:"active"`
}
