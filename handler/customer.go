package handler

import (
	"canteen_hub/constants"
	"canteen_hub/database"
	"canteen_hub/helper"
	"canteen_hub/model"
	"canteen_hub/utils"

	"github.com/gofiber/fiber/v2"
)

// GetAllCustomers danh sách sinh viên cho quản trị viên, có tìm kiếm phân trang
func GetAllCustomers(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}

	query := database.DB.Model(&model.Customer{})

	if searchKey := c.Query("searchKey"); searchKey != "" {
		query = query.Where(
			"user_name ILIKE ? OR email ILIKE ? OR student_code ILIKE ?",
			"%"+searchKey+"%", "%"+searchKey+"%", "%"+searchKey+"%",
		)
	}

	var totalCount int64
	query.Count(&totalCount)

	limit := c.QueryInt("limit", 20)
	page := c.QueryInt("page", 1)

	var customers model.Customers
	if err := utils.ApplyPagination(query, &limit, &page).
		Order("created_at desc").
		Find(&customers).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       customers,
		Limit:      &limit,
		Page:       &page,
		TotalCount: totalCount,
	})
}

// GetCustomerDetail hồ sơ sinh viên kèm lịch sử án phạt, cho quản trị viên
func GetCustomerDetail(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}
	customerId := c.Locals("inputId").(int)

	var customer model.Customer
	if err := database.DB.First(&customer, customerId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Sinh viên không tồn tại", err)
	}

	penalties, err := penaltyService.ListByUser(customer.ID)
	if err != nil {
		return coreErrorResponse(c, err)
	}

	var orderCount int64
	database.DB.Model(&model.Order{}).Where("customer_id = ?", customer.ID).Count(&orderCount)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"customer":   customer,
		"penalties":  penalties,
		"orderCount": orderCount,
	})
}

// CustomerChangePassword sinh viên tự đổi mật khẩu
func CustomerChangePassword(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_NOT_LOGGED_IN, nil)
	}

	var input model.CustomerChangePassword
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Body không hợp lệ", err)
	}

	if !helper.CheckPasswordHash(input.CurrentPassword, customer.Password) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_PASSWORD, nil)
	}
	if input.NewPassword == "" || input.NewPassword != input.RepeatPassword {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Mật khẩu nhập lại không khớp", nil)
	}
	if len(input.NewPassword) < 8 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Mật khẩu phải từ 8 ký tự", nil)
	}

	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := database.DB.Model(customer).Update("password", hash).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Đã đổi mật khẩu"})
}

// ToggleCustomerActive quản trị viên khóa / mở tài khoản sinh viên :id
func ToggleCustomerActive(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}
	customerId := c.Locals("inputId").(int)

	var customer model.Customer
	if err := database.DB.First(&customer, customerId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Sinh viên không tồn tại", err)
	}

	if err := database.DB.Model(&customer).Update("is_active", !customer.IsActive).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, customer)
}
