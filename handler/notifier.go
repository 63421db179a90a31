package handler

import (
	"canteen_hub/database"
	"canteen_hub/model"
	"canteen_hub/service"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var redisClient = redis.NewClient(&redis.Options{Addr: redisAddr()})

func redisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

// appNotifier ghi thông báo vào bảng notifications và đẩy qua Redis pub/sub
// cho websocket của người nhận. Best-effort: mọi lỗi chỉ được log.
type appNotifier struct{}

func NewAppNotifier() service.Notifier {
	return &appNotifier{}
}

func (n *appNotifier) Send(userId uint, title, message string, metadata map[string]any) {
	metaJSON := ""
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	notification := model.Notification{
		UserId:   userId,
		Title:    title,
		Message:  message,
		Metadata: metaJSON,
	}
	if err := database.DB.Create(&notification).Error; err != nil {
		log.Printf("Lỗi lưu thông báo cho user %d: %v", userId, err)
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		return
	}
	if err := redisClient.Publish(
		context.Background(),
		fmt.Sprintf("customer_feed:%d", userId),
		payload,
	).Err(); err != nil {
		log.Printf("Lỗi publish thông báo cho user %d: %v", userId, err)
	}
}
