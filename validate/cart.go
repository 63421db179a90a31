package validate

import (
	"canteen_hub/constants"
	"canteen_hub/model"
	"canteen_hub/utils"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

func AddCartLine() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.AddCartLineInput
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

		c.Locals("input", input)
		return c.Next()
	}
}

func UpdateCartLine(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateCartLineInput
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

		lineId, err := c.ParamsInt(key)
		if err != nil || lineId <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		c.Locals("input", input)
		c.Locals("inputId", lineId)
		return c.Next()
	}
}
