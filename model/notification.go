package model

// Notification thông báo trong ứng dụng, ghi nhận best-effort
type Notification struct {
	DTO
	UserId   uint   `gorm:"not null;index" json:"userId"`
	Title    string `gorm:"not null" json:"title"`
	Message  string `json:"message"`
	Metadata string `json:"metadata"` // JSON tự do: orderCode, requestId...
	IsRead   bool   `gorm:"default:false" json:"isRead"`
}

type Notifications []Notification
