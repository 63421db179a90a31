package handler

import (
	"canteen_hub/constants"
	"canteen_hub/database"
	"canteen_hub/model"
	"canteen_hub/utils"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetMyCart giỏ hàng hiện tại, gộp theo gian hàng kèm tổng tiền
func GetMyCart(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_NOT_LOGGED_IN, nil)
	}

	var lines []model.CartLine
	if err := database.DB.
		Preload("AddOns").
		Preload("Stall").
		Where("customer_id = ?", customer.ID).
		Order("created_at asc").
		Find(&lines).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải giỏ hàng", err)
	}

	grouped := []fiber.Map{}
	byStall := map[uint]int{}
	grandTotal := 0.0

	for _, line := range lines {
		lineTotal := line.LineTotal()
		grandTotal += lineTotal

		idx, ok := byStall[line.StallId]
		if !ok {
			grouped = append(grouped, fiber.Map{
				"stallId":   line.StallId,
				"stallName": line.Stall.Name,
				"lines":     []model.CartLine{},
				"subtotal":  0.0,
			})
			idx = len(grouped) - 1
			byStall[line.StallId] = idx
		}
		grouped[idx]["lines"] = append(grouped[idx]["lines"].([]model.CartLine), line)
		grouped[idx]["subtotal"] = grouped[idx]["subtotal"].(float64) + lineTotal
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"stalls":     grouped,
		"grandTotal": grandTotal,
		"lineCount":  len(lines),
	})
}

// AddCartLine thêm món vào giỏ, chốt giá món và món kèm tại thời điểm thêm
func AddCartLine(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_NOT_LOGGED_IN, nil)
	}
	input := c.Locals("input").(model.AddCartLineInput)

	var item model.MenuItem
	if err := database.DB.
		Preload("AddOns").
		Preload("Stall").
		First(&item, input.MenuItemId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Món không tồn tại", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if !item.IsAvailable {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Món đang tạm hết", nil)
	}
	if !item.Stall.IsOpen {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Gian hàng đang đóng cửa", nil)
	}

	// Chỉ nhận món kèm thuộc đúng món này, chốt giá hiện tại
	addOns := []model.CartLineAddOn{}
	for _, addOnId := range input.AddOnIds {
		found := false
		for _, a := range item.AddOns {
			if a.ID == addOnId {
				addOns = append(addOns, model.CartLineAddOn{Name: a.Name, Price: a.Price})
				found = true
				break
			}
		}
		if !found {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Món kèm không thuộc món này", nil)
		}
	}

	line := model.CartLine{
		CustomerId: customer.ID,
		StallId:    item.StallId,
		MenuItemId: item.ID,
		ItemName:   item.Name,
		UnitPrice:  item.Price,
		Quantity:   input.Quantity,
		Note:       input.Note,
		AddOns:     addOns,
	}
	if err := database.DB.Create(&line).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Thêm vào giỏ thất bại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, line)
}

// UpdateCartLine đổi số lượng / ghi chú, số lượng 0 thì xóa dòng
func UpdateCartLine(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_NOT_LOGGED_IN, nil)
	}
	input := c.Locals("input").(model.UpdateCartLineInput)
	lineId := c.Locals("inputId").(int)

	var line model.CartLine
	if err := database.DB.
		Where("id = ? AND customer_id = ?", lineId, customer.ID).
		First(&line).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Dòng giỏ hàng không tồn tại", err)
	}

	if input.Quantity == 0 {
		if err := database.DB.Select("AddOns").Delete(&line).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Xóa dòng giỏ hàng thất bại", err)
		}
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Đã xóa món khỏi giỏ"})
	}

	line.Quantity = input.Quantity
	line.Note = input.Note
	if err := database.DB.Save(&line).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cập nhật giỏ hàng thất bại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, line)
}

// RemoveCartLine xóa hẳn một dòng khỏi giỏ
func RemoveCartLine(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_NOT_LOGGED_IN, nil)
	}
	lineId := c.Locals("inputId").(int)

	res := database.DB.
		Where("id = ? AND customer_id = ?", lineId, customer.ID).
		Delete(&model.CartLine{})
	if res.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Xóa dòng giỏ hàng thất bại", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Dòng giỏ hàng không tồn tại", nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Đã xóa món khỏi giỏ"})
}
