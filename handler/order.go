package handler

import (
	"canteen_hub/config"
	"canteen_hub/constants"
	"canteen_hub/database"
	"canteen_hub/helper"
	"canteen_hub/model"
	"canteen_hub/service"
	"canteen_hub/utils"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func frontendURL() string {
	if url := config.Config("FRONTEND_URL"); url != "" {
		return url
	}
	return "http://localhost:3000"
}

// actorFromAccount dựng actor cho tầng service từ token tài khoản nội bộ
func actorFromAccount(claim model.TokenClaim, isAdmin bool) service.Actor {
	role := constants.ACTOR_OWNER
	if isAdmin {
		role = constants.ACTOR_ADMIN
	}
	return service.Actor{
		Role:    role,
		ID:      claim.AccountId,
		Display: claim.Username,
		StallId: claim.StallId,
	}
}

// Checkout chuyển giỏ hàng thành đơn, mỗi gian hàng một đơn riêng
func Checkout(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_NOT_LOGGED_IN, nil)
	}
	input := c.Locals("input").(model.CheckoutInput)

	result, err := formationService.Checkout(customer, input)
	if err != nil && !errors.Is(err, service.ErrCartClearFailed) {
		return coreErrorResponse(c, err)
	}
	// ErrCartClearFailed: đơn đã tạo xong hết, chỉ việc dọn giỏ lỗi.
	// Vẫn trả 201, client tự gọi xóa giỏ lại.

	orderCodes := []string{}
	stallIds := []uint{}
	for _, order := range result.Orders {
		orderCodes = append(orderCodes, order.PublicCode)
		stallIds = append(stallIds, order.StallId)
		BroadcastStallOrders(order.StallId)
	}

	// Đơn vừa tạo chưa preload gian hàng, tra tên để ghép vào email
	var stalls model.Stalls
	database.DB.Where("id IN ?", stallIds).Find(&stalls)
	stallNames := []string{}
	for _, s := range stalls {
		stallNames = append(stallNames, s.Name)
	}

	emailData := utils.OrderConfirmationData{
		MainOrderCode: result.MainOrderCode,
		OrderCodes:    strings.Join(orderCodes, ", "),
		StallNames:    strings.Join(stallNames, ", "),
		TotalAmount:   result.GrandTotal,
		PaymentMethod: input.PaymentMethod,
		ChangeDue:     result.ChangeDue,
		DetailLink:    fmt.Sprintf("%s/don-hang/%s", frontendURL(), result.MainOrderCode),
	}
	utils.SendOrderConfirmationEmail(customer.Email, emailData)
	for _, member := range input.GroupMemberEmails {
		utils.SendOrderConfirmationEmail(member, emailData)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"mainOrderCode": result.MainOrderCode,
		"orders":        result.Orders,
		"grandTotal":    result.GrandTotal,
		"changeDue":     result.ChangeDue,
		"cartCleared":   err == nil,
	})
}

// GetMyOrders lịch sử đặt món của sinh viên đang đăng nhập
func GetMyOrders(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_NOT_LOGGED_IN, nil)
	}

	query := database.DB.
		Preload("Items").
		Preload("Items.AddOns").
		Preload("Stall").
		Where("customer_id = ?", customer.ID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders model.Orders
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

// GetOrderByCode chi tiết một đơn theo mã nhận món, kèm QR code để đưa quầy quét
func GetOrderByCode(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_NOT_LOGGED_IN, nil)
	}
	code := c.Params("code")

	var order model.Order
	if err := database.DB.
		Preload("Items").
		Preload("Items.AddOns").
		Preload("Stall").
		Where("public_code = ?", code).
		First(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Đơn hàng không tồn tại", err)
	}

	if order.CustomerId != customer.ID {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}

	// QR chứa mã nhận món, quầy quét để tra đơn
	qrBase64 := ""
	if qrBytes, err := utils.GenerateQRCode(order.PublicCode, 256); err == nil {
		qrBase64 = base64.StdEncoding.EncodeToString(qrBytes)
	}

	// Các đơn anh em cùng lượt checkout, để client hiển thị "lượt đặt"
	var siblings model.Orders
	if order.IsMultiStallSibling {
		database.DB.
			Preload("Stall").
			Where("main_order_code = ? AND id <> ?", order.MainOrderCode, order.ID).
			Find(&siblings)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"order":    order,
		"qrCode":   qrBase64,
		"siblings": siblings,
	})
}

// GetStallOrders hàng đợi đơn của gian hàng mà chủ quầy đang quản lý
func GetStallOrders(c *fiber.Ctx) error {
	claim, isAdmin, isOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}

	query := database.DB.
		Preload("Items").
		Preload("Items.AddOns").
		Preload("Stall")

	if isOwner {
		if claim.StallId == nil {
			return utils.ErrorResponse(c, fiber.StatusForbidden, "Tài khoản chưa được gán gian hàng", nil)
		}
		query = query.Where("stall_id = ?", *claim.StallId)
	} else if stallId := c.QueryInt("stallId"); stallId > 0 {
		query = query.Where("stall_id = ?", stallId)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	} else {
		// Mặc định chỉ hiện đơn còn phải xử lý
		query = query.Where("status IN ?", []string{
			constants.ORDER_PENDING, constants.ORDER_PREPARING, constants.ORDER_READY,
		})
	}

	var orders model.Orders
	if err := query.Order("created_at asc").Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

// GetAllOrders danh sách đơn cho quản trị viên, có lọc và phân trang
func GetAllOrders(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}
	input := c.Locals("input").(model.FilterOrder)

	query := database.DB.Model(&model.Order{}).
		Preload("Items").
		Preload("Stall")

	if input.StallId > 0 {
		query = query.Where("stall_id = ?", input.StallId)
	}
	if input.Status != "" {
		query = query.Where("status = ?", input.Status)
	}
	if input.StartDate != nil {
		query = query.Where("created_at >= ?", *input.StartDate)
	}
	if input.EndDate != nil {
		query = query.Where("created_at <= ?", *input.EndDate)
	}

	var totalCount int64
	query.Count(&totalCount)

	var orders model.Orders
	if err := utils.ApplyPagination(query, input.Limit, input.Page).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       orders,
		Limit:      input.Limit,
		Page:       input.Page,
		TotalCount: totalCount,
	})
}

// TransitionOrder chủ gian hàng / quản trị viên chuyển trạng thái đơn
func TransitionOrder(c *fiber.Ctx) error {
	claim, isAdmin, isOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_PERMISSION_DENIED, nil)
	}
	input := c.Locals("input").(model.TransitionOrderInput)
	orderId := uint(c.Locals("inputId").(int))

	actor := actorFromAccount(claim, isAdmin)
	if err := lifecycleService.Transition(orderId, input.Status, input.Reason, actor); err != nil {
		return coreErrorResponse(c, err)
	}

	var order model.Order
	if err := database.DB.Preload("Stall").First(&order, orderId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	BroadcastStallOrders(order.StallId)

	if order.Status == constants.ORDER_CANCELLED {
		utils.SendOrderCancelledEmail(order.CustomerEmail, utils.OrderCancelledData{
			OrderCode:   order.PublicCode,
			StallName:   order.Stall.Name,
			TotalAmount: order.Subtotal,
			Reason:      order.CancellationReason,
			CancelledAt: order.CancelledAt.Format("15:04 02/01/2006"),
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}
