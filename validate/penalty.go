package validate

import (
	"canteen_hub/constants"
	"canteen_hub/model"
	"canteen_hub/utils"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

func IssuePenalty() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.IssuePenaltyInput
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

		if input.Type == constants.PENALTY_SUSPENSION && (input.DurationDays == nil || *input.DurationDays <= 0) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Án đình chỉ phải có số ngày hiệu lực", errors.New("durationDays missing"))
		}

		c.Locals("input", input)
		return c.Next()
	}
}
