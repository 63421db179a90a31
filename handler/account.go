package handler

import (
	"canteen_hub/constants"
	"canteen_hub/database"
	"canteen_hub/helper"
	"canteen_hub/model"
	"canteen_hub/utils"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

// GetAllAccounts danh sách tài khoản nội bộ cho quản trị viên
func GetAllAccounts(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}

	query := database.DB.Model(&model.Account{}).Preload("Stall")

	if searchKey := c.Query("searchKey"); searchKey != "" {
		query = query.Where("username ILIKE ?", "%"+searchKey+"%")
	}
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var accounts model.Accounts
	if err := query.Order("username asc").Find(&accounts).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, accounts)
}

// CreateAccount quản trị viên tạo tài khoản admin / chủ gian hàng
func CreateAccount(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}
	input := c.Locals("input").(model.CreateAccountInput)

	db := database.DB

	existing, err := helper.GetUserByUsername(input.Username)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if existing != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Tên đăng nhập đã tồn tại", errors.New("username exists"))
	}

	if input.Role == constants.ROLE_OWNER && input.StallId != nil {
		var stall model.Stall
		if err := db.First(&stall, *input.StallId).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Gian hàng không tồn tại", err)
		}
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	newAccount := new(model.Account)
	copier.Copy(&newAccount, &input)
	newAccount.Password = hash
	newAccount.Active = true
	if input.Role == constants.ROLE_OWNER {
		newAccount.StallId = input.StallId
	} else {
		newAccount.StallId = nil
	}

	if err := db.Create(&newAccount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Tạo tài khoản thất bại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, newAccount)
}

// UpdateOwnerStall gán / gỡ gian hàng cho tài khoản chủ quầy :id
func UpdateOwnerStall(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}
	accountId := c.Locals("inputId").(int)

	var input model.UpdateOwnerStallInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Body không hợp lệ", err)
	}

	db := database.DB
	var account model.Account
	if err := db.First(&account, accountId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Tài khoản không tồn tại", err)
	}
	if account.Role != constants.ROLE_OWNER {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Chỉ gán gian hàng cho tài khoản chủ quầy", nil)
	}

	if input.StallId != nil {
		var stall model.Stall
		if err := db.First(&stall, *input.StallId).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Gian hàng không tồn tại", err)
		}
	}

	if err := db.Model(&account).Update("stall_id", input.StallId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, account)
}

// AdminChangePassword quản trị viên đặt lại mật khẩu cho tài khoản khác
func AdminChangePassword(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}

	var input model.AdminChangePassword
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Body không hợp lệ", err)
	}
	if input.NewPassword == "" || input.NewPassword != input.RepeatPassword {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Mật khẩu nhập lại không khớp", nil)
	}
	if len(input.NewPassword) < 6 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Mật khẩu phải từ 6 ký tự", nil)
	}

	db := database.DB
	var account model.Account
	if err := db.First(&account, input.AccountId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Tài khoản không tồn tại", err)
	}

	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := db.Model(&account).Update("password", hash).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Đã đổi mật khẩu"})
}

// ToggleAccountActive khóa / mở khóa tài khoản nội bộ :id
func ToggleAccountActive(c *fiber.Ctx) error {
	claim, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}
	accountId := c.Locals("inputId").(int)

	if uint(accountId) == claim.AccountId {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Không thể tự khóa tài khoản của mình", nil)
	}

	db := database.DB
	var account model.Account
	if err := db.First(&account, accountId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Tài khoản không tồn tại", err)
	}

	if err := db.Model(&account).Update("active", !account.Active).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, account)
}
