package handler

import (
	"canteen_hub/constants"
	"canteen_hub/database"
	"canteen_hub/helper"
	"canteen_hub/model"
	"canteen_hub/utils"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetAdminStats tổng quan cho dashboard quản trị căng tin
func GetAdminStats(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, errors.New("not admin"))
	}

	db := database.DB

	type Stats struct {
		Stalls    int64 `json:"stalls"`
		MenuItems int64 `json:"menuItems"`
		Customers int64 `json:"customers"`

		TodayRevenue   float64 `json:"todayRevenue"`
		TodayOrders    int64   `json:"todayOrders"`
		TodayCancelled int64   `json:"todayCancelled"`
		RevenueGrowth  float64 `json:"revenueGrowth"` // %
		OrdersGrowth   float64 `json:"ordersGrowth"`  // %
	}

	var stats Stats
	today := time.Now().In(time.Local)
	todayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	todayEnd := time.Date(today.Year(), today.Month(), today.Day(), 23, 59, 59, 0, today.Location())

	// === Hôm nay ===
	db.Model(&model.Stall{}).Count(&stats.Stalls)
	db.Model(&model.MenuItem{}).Count(&stats.MenuItems)
	db.Model(&model.Customer{}).Count(&stats.Customers)

	// Doanh thu hôm nay, chỉ tính đơn đã hoàn tất
	db.Raw(`
        SELECT COALESCE(SUM(subtotal), 0)
        FROM orders
        WHERE status = 'COMPLETED'
          AND created_at BETWEEN ? AND ?
    `, todayStart, todayEnd).Scan(&stats.TodayRevenue)

	db.Model(&model.Order{}).
		Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).
		Count(&stats.TodayOrders)

	db.Model(&model.Order{}).
		Where("status = ? AND created_at BETWEEN ? AND ?", constants.ORDER_CANCELLED, todayStart, todayEnd).
		Count(&stats.TodayCancelled)

	// === Hôm qua ===
	yesterdayStart := todayStart.AddDate(0, 0, -1)
	yesterdayEnd := todayEnd.AddDate(0, 0, -1)

	var yesterdayRevenue float64
	var yesterdayOrders int64

	db.Raw(`
        SELECT COALESCE(SUM(subtotal), 0)
        FROM orders
        WHERE status = 'COMPLETED'
          AND created_at BETWEEN ? AND ?
    `, yesterdayStart, yesterdayEnd).Scan(&yesterdayRevenue)

	db.Model(&model.Order{}).
		Where("created_at BETWEEN ? AND ?", yesterdayStart, yesterdayEnd).
		Count(&yesterdayOrders)

	// === Tính % tăng trưởng ===
	stats.RevenueGrowth = utils.CalculateGrowth(stats.TodayRevenue, yesterdayRevenue)
	stats.OrdersGrowth = utils.CalculateGrowth(float64(stats.TodayOrders), float64(yesterdayOrders))

	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}

// GetStallStats thống kê theo từng gian hàng trong khoảng ngày
func GetStallStats(c *fiber.Ctx) error {
	claim, isAdmin, isOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}

	stallId := c.QueryInt("stallId")
	if isOwner {
		if claim.StallId == nil {
			return utils.ErrorResponse(c, fiber.StatusForbidden, "Tài khoản chưa được gán gian hàng", nil)
		}
		stallId = int(*claim.StallId)
	}
	if stallId <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Thiếu stallId", nil)
	}

	days := c.QueryInt("days", 7)
	if days <= 0 || days > 90 {
		days = 7
	}
	since := time.Now().AddDate(0, 0, -days)

	db := database.DB

	type DailyRevenue struct {
		Day     string  `json:"day"`
		Revenue float64 `json:"revenue"`
		Orders  int64   `json:"orders"`
	}
	var daily []DailyRevenue
	db.Raw(`
        SELECT to_char(created_at, 'YYYY-MM-DD') AS day,
               COALESCE(SUM(subtotal), 0)        AS revenue,
               COUNT(*)                          AS orders
        FROM orders
        WHERE stall_id = ?
          AND status = 'COMPLETED'
          AND created_at >= ?
        GROUP BY day
        ORDER BY day
    `, stallId, since).Scan(&daily)

	type TopItem struct {
		Name     string  `json:"name"`
		Quantity int64   `json:"quantity"`
		Revenue  float64 `json:"revenue"`
	}
	var topItems []TopItem
	db.Raw(`
        SELECT oi.name,
               SUM(oi.quantity)                  AS quantity,
               SUM(oi.quantity * oi.unit_price)  AS revenue
        FROM order_items oi
        JOIN orders o ON o.id = oi.order_id
        WHERE o.stall_id = ?
          AND o.status = 'COMPLETED'
          AND o.created_at >= ?
        GROUP BY oi.name
        ORDER BY quantity DESC
        LIMIT 10
    `, stallId, since).Scan(&topItems)

	var cancelledCount int64
	db.Model(&model.Order{}).
		Where("stall_id = ? AND status = ? AND created_at >= ?", stallId, constants.ORDER_CANCELLED, since).
		Count(&cancelledCount)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"daily":          daily,
		"topItems":       topItems,
		"cancelledCount": cancelledCount,
		"days":           days,
	})
}
