package validate

import (
	"canteen_hub/constants"
	"canteen_hub/model"
	"canteen_hub/utils"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Checkout kiểm tra input lượt đặt món trước khi vào handler
func Checkout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CheckoutInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Không thể phân tích yêu cầu: %s", err.Error()),
			})
		}

		if err := validate.Struct(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if input.PaymentMethod == constants.PAYMENT_CASH && input.CashTendered == nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Thanh toán tiền mặt cần nhập số tiền đưa", errors.New("cashTendered missing"))
		}

		c.Locals("input", input)
		return c.Next()
	}
}

// FilterOrders bộ lọc danh sách đơn cho quản trị viên, nhận qua query string
func FilterOrders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.FilterOrder
		if err := c.QueryParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Không thể phân tích yêu cầu: %s", err.Error()),
			})
		}

		if err := validate.Struct(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("input", input)
		return c.Next()
	}
}

// TransitionOrder kiểm tra input chuyển trạng thái đơn của chủ gian hàng
func TransitionOrder(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.TransitionOrderInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Không thể phân tích yêu cầu: %s", err.Error()),
			})
		}

		if err := validate.Struct(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if input.Status == constants.ORDER_CANCELLED && input.Reason == "" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Hủy đơn phải có lý do", errors.New("reason missing"))
		}

		orderId, err := c.ParamsInt(key)
		if err != nil || orderId <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		c.Locals("input", input)
		c.Locals("inputId", orderId)
		return c.Next()
	}
}
