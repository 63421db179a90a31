package handler

import (
	"canteen_hub/constants"
	"canteen_hub/database"
	"canteen_hub/model"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

var (
	stallClients = make(map[uint]map[*websocket.Conn]bool)
	mu           sync.Mutex
)

// StallOrdersWebsocket màn hình bếp của gian hàng: đẩy hàng đợi đơn mỗi khi có
// đơn mới, đổi trạng thái hoặc có yêu cầu hủy
func StallOrdersWebsocket(c *websocket.Conn) {
	stallIdStr := c.Params("id")
	id64, _ := strconv.ParseUint(stallIdStr, 10, 64)
	stallId := uint(id64)

	// Khi WS disconnect → xoá client
	defer func() {
		mu.Lock()
		if stallClients[stallId] != nil {
			delete(stallClients[stallId], c)
		}
		mu.Unlock()
		c.Close()
	}()

	// Thêm client mới vào room
	mu.Lock()
	if stallClients[stallId] == nil {
		stallClients[stallId] = make(map[*websocket.Conn]bool)
	}
	stallClients[stallId][c] = true
	mu.Unlock()

	// Gửi hàng đợi hiện tại lần đầu
	orders, _ := FetchStallQueue(stallId)
	c.WriteJSON(orders)

	// Sub kênh Redis
	pubsub := redisClient.Subscribe(
		context.Background(),
		fmt.Sprintf("stall_orders:%d", stallId),
	)
	defer pubsub.Close()

	channel := pubsub.Channel()

	for msg := range channel {
		payload := []byte(msg.Payload)

		mu.Lock()
		for conn := range stallClients[stallId] {
			// Nếu client lỗi → xoá
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(stallClients[stallId], conn)
			}
		}
		mu.Unlock()
	}
}

// CustomerFeedWebsocket kênh thông báo riêng của một sinh viên
func CustomerFeedWebsocket(c *websocket.Conn) {
	customerIdStr := c.Params("id")
	id64, _ := strconv.ParseUint(customerIdStr, 10, 64)
	customerId := uint(id64)

	defer c.Close()

	pubsub := redisClient.Subscribe(
		context.Background(),
		fmt.Sprintf("customer_feed:%d", customerId),
	)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		if err := c.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
			return
		}
	}
}

// FetchStallQueue các đơn còn phải xử lý của một gian hàng
func FetchStallQueue(stallId uint) (model.Orders, error) {
	var orders model.Orders

	err := database.DB.
		Preload("Items").
		Preload("Items.AddOns").
		Where("stall_id = ?", stallId).
		Where("status IN ?", []string{
			constants.ORDER_PENDING, constants.ORDER_PREPARING, constants.ORDER_READY,
		}).
		Order("created_at asc").
		Find(&orders).Error

	return orders, err
}

// BroadcastStallOrders publish hàng đợi mới nhất lên kênh của gian hàng
func BroadcastStallOrders(stallId uint) {
	orders, err := FetchStallQueue(stallId)
	if err != nil {
		log.Printf("Lỗi đọc hàng đợi gian hàng %d: %v", stallId, err)
		return
	}

	payload, err := json.Marshal(orders)
	if err != nil {
		return
	}

	if err := redisClient.Publish(
		context.Background(),
		fmt.Sprintf("stall_orders:%d", stallId),
		payload,
	).Err(); err != nil {
		log.Printf("Lỗi publish hàng đợi gian hàng %d: %v", stallId, err)
	}
}
