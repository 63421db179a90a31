package handler

import (
	"canteen_hub/constants"
	"canteen_hub/database"
	"canteen_hub/helper"
	"canteen_hub/model"
	"canteen_hub/utils"

	"github.com/gofiber/fiber/v2"
)

// SubmitCancellation sinh viên xin hủy đơn :orderId, trạng thái đơn chưa đổi
// cho đến khi gian hàng duyệt
func SubmitCancellation(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_NOT_LOGGED_IN, nil)
	}
	input := c.Locals("input").(model.SubmitCancellationInput)
	orderId := uint(c.Locals("inputId").(int))

	req, err := cancellationService.Submit(orderId, customer.ID, input)
	if err != nil {
		return coreErrorResponse(c, err)
	}

	// Báo cho quầy biết có yêu cầu mới chờ duyệt
	BroadcastStallOrders(req.StallId)

	return utils.SuccessResponse(c, fiber.StatusCreated, req)
}

// ApproveCancellation duyệt yêu cầu hủy: yêu cầu và đơn đổi trạng thái cùng lúc
func ApproveCancellation(c *fiber.Ctx) error {
	claim, isAdmin, isOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}
	input := c.Locals("input").(model.RespondCancellationInput)
	reqId := uint(c.Locals("inputId").(int))

	req, err := cancellationService.Approve(reqId, input.ResponseReason, actorFromAccount(claim, isAdmin))
	if err != nil {
		return coreErrorResponse(c, err)
	}

	BroadcastStallOrders(req.StallId)

	// Đơn đã CANCELLED, gửi email báo cho sinh viên
	var order model.Order
	if err := database.DB.Preload("Stall").First(&order, req.OrderId).Error; err == nil && order.CancelledAt != nil {
		utils.SendOrderCancelledEmail(order.CustomerEmail, utils.OrderCancelledData{
			OrderCode:   order.PublicCode,
			StallName:   order.Stall.Name,
			TotalAmount: order.Subtotal,
			Reason:      order.CancellationReason,
			CancelledAt: order.CancelledAt.Format("15:04 02/01/2006"),
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, req)
}

// DeclineCancellation từ chối yêu cầu hủy, bắt buộc ghi lý do
func DeclineCancellation(c *fiber.Ctx) error {
	claim, isAdmin, isOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}
	input := c.Locals("input").(model.RespondCancellationInput)
	reqId := uint(c.Locals("inputId").(int))

	req, err := cancellationService.Decline(reqId, input.ResponseReason, actorFromAccount(claim, isAdmin))
	if err != nil {
		return coreErrorResponse(c, err)
	}

	BroadcastStallOrders(req.StallId)

	return utils.SuccessResponse(c, fiber.StatusOK, req)
}

// GetMyCancellationRequests các yêu cầu hủy sinh viên đã gửi
func GetMyCancellationRequests(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_NOT_LOGGED_IN, nil)
	}

	var requests model.CancellationRequests
	if err := database.DB.
		Where("customer_id = ?", customer.ID).
		Order("requested_at desc").
		Find(&requests).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, requests)
}

// GetStallCancellationRequests hàng đợi yêu cầu hủy của gian hàng
func GetStallCancellationRequests(c *fiber.Ctx) error {
	claim, isAdmin, isOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}

	query := database.DB.Model(&model.CancellationRequest{})
	if isOwner {
		if claim.StallId == nil {
			return utils.ErrorResponse(c, fiber.StatusForbidden, "Tài khoản chưa được gán gian hàng", nil)
		}
		query = query.Where("stall_id = ?", *claim.StallId)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	} else {
		query = query.Where("status = ?", constants.REQUEST_PENDING)
	}

	var requests model.CancellationRequests
	if err := query.Order("requested_at asc").Find(&requests).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, requests)
}
