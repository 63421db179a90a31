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
	"gorm.io/gorm"
)

// GetAllStalls danh sách gian hàng, công khai cho sinh viên duyệt
func GetAllStalls(c *fiber.Ctx) error {
	query := database.DB.Model(&model.Stall{})

	if searchKey := c.Query("searchKey"); searchKey != "" {
		query = query.Where("name ILIKE ?", "%"+searchKey+"%")
	}
	if c.Query("isOpen") == "true" {
		query = query.Where("is_open = true")
	}

	var stalls model.Stalls
	if err := query.Order("name asc").Find(&stalls).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, stalls)
}

// GetStallBySlug trang gian hàng kèm thực đơn, sinh viên xem để đặt món
func GetStallBySlug(c *fiber.Ctx) error {
	slugParam := c.Params("slug")

	var stall model.Stall
	if err := database.DB.
		Preload("MenuItems", "is_available = true").
		Preload("MenuItems.AddOns").
		Where("slug = ?", slugParam).
		First(&stall).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Gian hàng không tồn tại", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, stall)
}

// CreateStall quản trị viên mở gian hàng mới
func CreateStall(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}
	input := c.Locals("input").(model.CreateStallInput)

	db := database.DB
	newStall := new(model.Stall)
	copier.Copy(&newStall, &input)
	newStall.Slug = helper.GenerateUniqueStallSlug(db, input.Name)
	newStall.IsOpen = true

	if err := db.Create(&newStall).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Tạo gian hàng thất bại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, newStall)
}

// EditStall sửa thông tin gian hàng, chủ quầy chỉ sửa được quầy của mình
func EditStall(c *fiber.Ctx) error {
	claim, isAdmin, isOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}
	input := c.Locals("input").(model.EditStallInput)
	stallId := c.Locals("inputId").(int)

	if isOwner && (claim.StallId == nil || *claim.StallId != uint(stallId)) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}

	db := database.DB
	var stall model.Stall
	if err := db.First(&stall, stallId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Gian hàng không tồn tại", err)
	}

	// Đổi tên thì sinh slug mới để đường dẫn luôn khớp tên
	if input.Name != nil && *input.Name != stall.Name {
		stall.Slug = helper.GenerateUniqueStallSlug(db, *input.Name)
	}

	copier.CopyWithOption(&stall, &input, copier.Option{IgnoreEmpty: true})
	if input.IsOpen != nil {
		stall.IsOpen = *input.IsOpen
	}

	if err := db.Save(&stall).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cập nhật gian hàng thất bại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, stall)
}

// DeleteStalls quản trị viên xóa gian hàng theo danh sách id
func DeleteStalls(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}
	input := c.Locals("deleteIds").(model.ArrayId)

	// Không xóa gian hàng còn đơn chưa xử lý xong
	var openOrders int64
	database.DB.Model(&model.Order{}).
		Where("stall_id IN ?", input.IDs).
		Where("status IN ?", []string{
			constants.ORDER_PENDING, constants.ORDER_PREPARING, constants.ORDER_READY,
		}).
		Count(&openOrders)
	if openOrders > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Gian hàng còn đơn đang xử lý, không thể xóa", nil)
	}

	if err := database.DB.Delete(&model.Stall{}, input.IDs).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Xóa gian hàng thất bại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deletedIds": input.IDs})
}
