package validate

import (
	"canteen_hub/model"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

func CreateAccount() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateAccountInput
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

func RegisterCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.RegisterCustomerInput
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
