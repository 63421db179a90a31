package validate

import (
	"canteen_hub/constants"
	"canteen_hub/model"
	"canteen_hub/utils"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// SubmitCancellation sinh viên gửi yêu cầu hủy cho đơn :orderId
func SubmitCancellation(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.SubmitCancellationInput
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

		orderId, err := c.ParamsInt(key)
		if err != nil || orderId <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		c.Locals("input", input)
		c.Locals("inputId", orderId)
		return c.Next()
	}
}

// RespondCancellation chủ gian hàng duyệt / từ chối yêu cầu :requestId
func RespondCancellation(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.RespondCancellationInput
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

		requestId, err := c.ParamsInt(key)
		if err != nil || requestId <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		c.Locals("input", input)
		c.Locals("inputId", requestId)
		return c.Next()
	}
}
