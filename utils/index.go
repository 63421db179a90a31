package utils

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	var errMsg interface{}
	if err != nil {
		errMsg = err.Error()
	} else {
		errMsg = nil
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   errMsg,
	})
}

func SuccessResponse(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

func ApplyPagination(query *gorm.DB, limit, page *int) *gorm.DB {
	// Kiểm tra nếu có limit thì thêm điều kiện Limit
	if limit != nil && *limit > 0 && page != nil && *page >= 1 {
		query = query.Limit(*limit)
		offset := *limit * (*page - 1)
		query = query.Offset(offset)
	}

	return query
}

// CalculateGrowth % tăng trưởng so với kỳ trước
func CalculateGrowth(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return (current - previous) / previous * 100
}

func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func Ptr[T any](v T) *T {
	return &v
}
