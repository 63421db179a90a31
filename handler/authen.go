package handler

import (
	"canteen_hub/constants"
	"canteen_hub/database"
	"canteen_hub/helper"
	"canteen_hub/model"
	"canteen_hub/utils"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Login đăng nhập cho tài khoản nội bộ (admin, chủ gian hàng)
func Login(c *fiber.Ctx) error {
	loginInput := new(model.LoginInput)

	if err := c.BodyParser(loginInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, err)
	}

	if loginInput.Username == "" || loginInput.Password == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, errors.New("username and password are required"))
	}

	accountModel, err := helper.GetUserByUsername(loginInput.Username)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if accountModel == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.INVALID_USERNAME, errors.New("username not exists"))
	}

	if !helper.CheckPasswordHash(loginInput.Password, accountModel.Password) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.INVALID_PASSWORD, errors.New("password does not match username"))
	}

	if !accountModel.Active {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_ACTIVE, errors.New("active false"))
	}

	tokenClaim := model.TokenClaim{
		AccountId: accountModel.ID,
		Username:  accountModel.Username,
	}
	token, err := helper.GenerateAccessToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	refreshToken, err := helper.GenerateRefreshToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// ✅ set access token vào HTTPOnly cookie
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		SameSite: "None",
		Secure:   false, // nếu deploy HTTPS thì true
		Path:     "/",
	})

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		SameSite: "None",
		Secure:   false,
		Path:     "/",
	})

	return c.JSON(fiber.Map{
		"message": "login success",
		"account": fiber.Map{
			"id":       accountModel.ID,
			"username": accountModel.Username,
			"role":     accountModel.Role,
			"stallId":  accountModel.StallId,
		},
	})
}

func RefreshToken(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Thiếu refresh token", errors.New("no refresh token"))
	}

	token, err := helper.ParseToken(refreshToken)
	if err != nil || !token.Valid {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Refresh token không hợp lệ", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Refresh token không hợp lệ", errors.New("invalid claims"))
	}

	accountId, _ := claims["accountId"].(float64)
	username, _ := claims["username"].(string)

	tokenClaim := model.TokenClaim{
		AccountId: uint(accountId),
		Username:  username,
	}

	newAccessToken, err := helper.GenerateAccessToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    newAccessToken,
		HTTPOnly: true,
		SameSite: "None",
		Secure:   false,
		Path:     "/",
	})

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"accessToken": newAccessToken})
}

// Me thông tin tài khoản nội bộ hiện tại
func Me(c *fiber.Ctx) error {
	claim, isAdmin, isOwner := helper.GetInfoAccountFromToken(c)
	if claim.AccountId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_NOT_LOGGED_IN, nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"accountId": claim.AccountId,
		"username":  claim.Username,
		"stallId":   claim.StallId,
		"isAdmin":   isAdmin,
		"isOwner":   isOwner,
	})
}

// RegisterCustomer sinh viên tự đăng ký tài khoản
func RegisterCustomer(c *fiber.Ctx) error {
	input := c.Locals("input").(model.RegisterCustomerInput)

	existing, err := helper.GetCustomerByEmail(input.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if existing != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Email đã được đăng ký", errors.New("email exists"))
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	customer := model.Customer{
		UserName:    input.UserName,
		Email:       input.Email,
		Phone:       input.Phone,
		StudentCode: input.StudentCode,
		Password:    hash,
		IsActive:    true,
	}
	if err := database.DB.Create(&customer).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Đăng ký thất bại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"id":          customer.ID,
		"email":       customer.Email,
		"studentCode": customer.StudentCode,
	})
}

// CustomerLogin đăng nhập cho sinh viên bằng email
func CustomerLogin(c *fiber.Ctx) error {
	type CustomerLoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(CustomerLoginInput)
	if err := c.BodyParser(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, err)
	}

	if input.Email == "" || input.Password == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, errors.New("email and password are required"))
	}

	customer, err := helper.GetCustomerByEmail(input.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if customer == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Email chưa được đăng ký", errors.New("email not exists"))
	}

	if !helper.CheckPasswordHash(input.Password, customer.Password) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.INVALID_PASSWORD, errors.New("password does not match"))
	}

	if !customer.IsActive {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_ACTIVE, errors.New("inactive"))
	}

	tokenClaim := model.TokenClaim{
		CustomerId: customer.ID,
		Username:   customer.UserName,
	}
	token, err := helper.GenerateAccessToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	refreshToken, err := helper.GenerateRefreshToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"accessToken":  token,
		"refreshToken": refreshToken,
		"customer": fiber.Map{
			"id":          customer.ID,
			"username":    customer.UserName,
			"email":       customer.Email,
			"studentCode": customer.StudentCode,
		},
	})
}

// GetCurrentCustomer trả thông tin sinh viên đang đăng nhập
func GetCurrentCustomer(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_NOT_LOGGED_IN, nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, customer)
}
