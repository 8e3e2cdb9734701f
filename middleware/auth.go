package middleware

import (
	"os"
	"strings"

	"Rentex/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// SecretKey signs access tokens. Override with JWT_SECRET in production.
var SecretKey = func() string {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return s
	}
	return "secret"
}()

// tokenFromRequest pulls the JWT from the Authorization header, falling
// back to the cookie the dashboard sets.
func tokenFromRequest(c *fiber.Ctx) string {
	auth := c.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return c.Cookies("jwt")
}

// Verify authenticates the request and enforces a minimum role level
// (Models.RoleUser or Models.RoleAdmin). The loaded user is stored in
// c.Locals("user"); handlers derive the tenant scope from it, never from
// client input.
func Verify(requiredRole int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not Logged In.",
			})
		}

		token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
			return []byte(SecretKey), nil
		})
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid token claims",
			})
		}

		var user Models.User
		result := Models.DB.Where("id = ?", claims.Issuer).First(&user)
		if result.Error != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "User not found",
			})
		}

		if user.Status != Models.UserStatusActive {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Account is inactive",
			})
		}

		c.Locals("user", user)

		if user.Role >= requiredRole {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Insufficient permissions to access this resource",
		})
	}
}
