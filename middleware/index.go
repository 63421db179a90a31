package middleware

import (
	"canteen_hub/helper"
	"canteen_hub/utils"
	"errors"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("access_token")

		if token == "" {
			// check header Authorization: Bearer xxx
			auth := c.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if token == "" {
			return utils.ErrorResponse(c, 401, "Missing token", errors.New("no token"))
		}

		jwtToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, 401, "Invalid token", err)
		}

		c.Locals("user", jwtToken)
		return c.Next()
	}
}

func OptionalJWT() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")

		if authHeader == "" {
			c.Locals("user", nil)
			return c.Next()
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			c.Locals("user", nil)
			return c.Next()
		}

		c.Locals("user", token)
		return c.Next()
	}
}

// OptionalAuth gán sinh viên vào Locals nếu token hợp lệ, không thì coi là guest
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claim, customer := helper.GetInfoCustomerFromToken(c)

		if claim.CustomerId == 0 {
			c.Locals("customerId", uint(0))
			return c.Next()
		}

		c.Locals("customerId", claim.CustomerId)

		if customer.ID > 0 {
			c.Locals("customer", &customer)
		}

		return c.Next()
	}
}
