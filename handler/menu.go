package handler

import (
	"canteen_hub/constants"
	"canteen_hub/database"
	"canteen_hub/helper"
	"canteen_hub/model"
	"canteen_hub/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

// GetMenuItems thực đơn của một gian hàng, công khai
func GetMenuItems(c *fiber.Ctx) error {
	stallId := c.QueryInt("stallId")
	if stallId <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Thiếu stallId", nil)
	}

	query := database.DB.
		Preload("AddOns").
		Where("stall_id = ?", stallId)

	if searchKey := c.Query("searchKey"); searchKey != "" {
		query = query.Where("name ILIKE ?", "%"+searchKey+"%")
	}
	if c.Query("all") != "true" {
		// Mặc định chỉ hiện món còn bán; quầy xem trang quản lý thì truyền all=true
		query = query.Where("is_available = true")
	}

	var items model.MenuItems
	if err := query.Order("name asc").Find(&items).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, items)
}

// CreateMenuItem chủ quầy thêm món vào thực đơn quầy của mình
func CreateMenuItem(c *fiber.Ctx) error {
	claim, isAdmin, isOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}
	input := c.Locals("input").(model.CreateMenuItemInput)

	var stallId uint
	if isOwner {
		if claim.StallId == nil {
			return utils.ErrorResponse(c, fiber.StatusForbidden, "Tài khoản chưa được gán gian hàng", nil)
		}
		stallId = *claim.StallId
	} else {
		stallId = uint(c.QueryInt("stallId"))
		if stallId == 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Thiếu stallId", nil)
		}
	}

	newItem := new(model.MenuItem)
	copier.Copy(&newItem, &input)
	newItem.StallId = stallId
	newItem.IsAvailable = true
	newItem.AddOns = nil
	for _, a := range input.AddOns {
		newItem.AddOns = append(newItem.AddOns, model.MenuAddOn{Name: a.Name, Price: a.Price})
	}

	if err := database.DB.Create(&newItem).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Tạo món thất bại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, newItem)
}

// EditMenuItem sửa món, gồm cả bật tắt còn bán / tạm hết
func EditMenuItem(c *fiber.Ctx) error {
	claim, isAdmin, isOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}
	input := c.Locals("input").(model.EditMenuItemInput)
	itemId := c.Locals("inputId").(int)

	var item model.MenuItem
	if err := database.DB.First(&item, itemId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Món không tồn tại", err)
	}
	if isOwner && (claim.StallId == nil || *claim.StallId != item.StallId) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}

	copier.CopyWithOption(&item, &input, copier.Option{IgnoreEmpty: true})
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}

	if err := database.DB.Save(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cập nhật món thất bại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

// DeleteMenuItems xóa món theo danh sách id, chủ quầy chỉ xóa món quầy mình
func DeleteMenuItems(c *fiber.Ctx) error {
	claim, isAdmin, isOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}
	input := c.Locals("deleteIds").(model.ArrayId)

	query := database.DB.Where("id IN ?", input.IDs)
	if isOwner {
		if claim.StallId == nil {
			return utils.ErrorResponse(c, fiber.StatusForbidden, "Tài khoản chưa được gán gian hàng", nil)
		}
		query = query.Where("stall_id = ?", *claim.StallId)
	}

	res := query.Delete(&model.MenuItem{})
	if res.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Xóa món thất bại", res.Error)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"deletedCount": res.RowsAffected,
	})
}
