package handler

import (
	"canteen_hub/constants"
	"canteen_hub/database"
	"canteen_hub/model"
	"canteen_hub/utils"

	"github.com/gofiber/fiber/v2"
)

// GetMyNotifications thông báo của sinh viên, mới nhất trước
func GetMyNotifications(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_NOT_LOGGED_IN, nil)
	}

	var notifications model.Notifications
	if err := database.DB.
		Where("user_id = ?", customer.ID).
		Order("created_at desc").
		Limit(50).
		Find(&notifications).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var unreadCount int64
	database.DB.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = false", customer.ID).
		Count(&unreadCount)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"notifications": notifications,
		"unreadCount":   unreadCount,
	})
}

// MarkNotificationRead đánh dấu đã đọc một thông báo
func MarkNotificationRead(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_NOT_LOGGED_IN, nil)
	}
	notificationId := c.Locals("inputId").(int)

	res := database.DB.Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", notificationId, customer.ID).
		Update("is_read", true)
	if res.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Thông báo không tồn tại", nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Đã đánh dấu đã đọc"})
}

// MarkAllNotificationsRead đánh dấu đã đọc toàn bộ
func MarkAllNotificationsRead(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_NOT_LOGGED_IN, nil)
	}

	if err := database.DB.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = false", customer.ID).
		Update("is_read", true).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Đã đánh dấu đã đọc tất cả"})
}
