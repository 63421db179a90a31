package handler

import (
	"canteen_hub/constants"
	"canteen_hub/database"
	"canteen_hub/helper"
	"canteen_hub/model"
	"canteen_hub/utils"

	"github.com/gofiber/fiber/v2"
)

// IssuePenalty quản trị viên ban hành án phạt cho sinh viên
func IssuePenalty(c *fiber.Ctx) error {
	claim, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}
	input := c.Locals("input").(model.IssuePenaltyInput)

	penalty, err := penaltyService.Issue(input, actorFromAccount(claim, true))
	if err != nil {
		return coreErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, penalty)
}

// GetAllPenalties danh sách án phạt cho quản trị viên, lọc theo người và loại
func GetAllPenalties(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}

	query := database.DB.Model(&model.Penalty{})
	if targetUserId := c.QueryInt("targetUserId"); targetUserId > 0 {
		query = query.Where("target_user_id = ?", targetUserId)
	}
	if penaltyType := c.Query("type"); penaltyType != "" {
		query = query.Where("type = ?", penaltyType)
	}

	var penalties model.Penalties
	if err := query.Order("issued_at desc").Find(&penalties).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, penalties)
}

// GetMyPenalties sinh viên xem lịch sử án phạt của chính mình
func GetMyPenalties(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_NOT_LOGGED_IN, nil)
	}

	penalties, err := penaltyService.ListByUser(customer.ID)
	if err != nil {
		return coreErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, penalties)
}
