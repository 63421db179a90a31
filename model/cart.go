package model

// CartLine một dòng trong giỏ hàng. Giá được chốt tại thời điểm thêm vào giỏ.
type CartLine struct {
	DTO
	CustomerId uint    `gorm:"not null;index" json:"customerId"`
	StallId    uint    `gorm:"not null;index" json:"stallId"`
	MenuItemId uint    `gorm:"not null" json:"menuItemId"`
	ItemName   string  `gorm:"not null" json:"itemName"`
	UnitPrice  float64 `gorm:"not null" json:"unitPrice"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	Note       string  `json:"note"`

	Stall  Stall           `gorm:"foreignKey:StallId" json:"stall"`
	AddOns []CartLineAddOn `gorm:"foreignKey:CartLineId;constraint:OnDelete:CASCADE" json:"addOns"`
}

type CartLineAddOn struct {
	DTO
	CartLineId uint    `gorm:"not null;index" json:"cartLineId"`
	Name       string  `gorm:"not null" json:"name"`
	Price      float64 `gorm:"not null" json:"price"`
}

// LineTotal = (đơn giá + tổng giá món kèm) × số lượng
func (l *CartLine) LineTotal() float64 {
	addOnTotal := 0.0
	for _, a := range l.AddOns {
		addOnTotal += a.Price
	}
	return (l.UnitPrice + addOnTotal) * float64(l.Quantity)
}

type AddCartLineInput struct {
	MenuItemId uint   `validate:"required,gt=0" json:"menuItemId"`
	Quantity   int    `validate:"required,gte=1" json:"quantity"`
	AddOnIds   []uint `json:"addOnIds"`
	Note       string `validate:"omitempty,max=255" json:"note"`
}

type UpdateCartLineInput struct {
	Quantity int    `validate:"gte=0" json:"quantity"` // 0 = xóa dòng
	Note     string `validate:"omitempty,max=255" json:"note"`
}
