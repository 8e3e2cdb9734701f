package Controllers

import (
	"strconv"
	"time"

	"Rentex/Models"
	"Rentex/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

func issueToken(userID uint) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    strconv.Itoa(int(userID)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(middleware.SecretKey))
}

// Register creates an agency and its first ADMIN user in one transaction.
// POST /api/register
func Register(c *fiber.Ctx) error {
	var req Models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to hash password"})
	}

	tx := Models.DB.Begin()
	if tx.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": tx.Error.Error()})
	}

	agency := Models.Agency{
		Name:  req.AgencyName,
		Phone: req.Phone,
		Email: req.Email,
	}
	if err := tx.Create(&agency).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create agency"})
	}

	user := Models.User{
		AgencyID: agency.ID,
		Name:     req.Name,
		Email:    req.Email,
		Password: passwordHash,
		Role:     Models.RoleAdmin,
		Status:   Models.UserStatusActive,
	}
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "A user with this email already exists"})
	}

	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	accessToken, err := issueToken(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to issue token"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":        user,
		"accessToken": accessToken,
	})
}

// Login checks credentials and returns the user plus a signed token.
// POST /api/login
func Login(c *fiber.Ctx) error {
	var req Models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var user Models.User
	if err := Models.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid credentials"})
	}

	if user.Status != Models.UserStatusActive {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Account is inactive"})
	}

	accessToken, err := issueToken(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to issue token"})
	}

	// Cookie for the dashboard, token in the body for API clients
	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    accessToken,
		Expires:  time.Now().Add(time.Hour * 24),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{
		"user":        user,
		"accessToken": accessToken,
	})
}

// User returns the authenticated user's profile.
// GET /api/user
func User(c *fiber.Ctx) error {
	user := CurrentUser(c)
	return c.JSON(user)
}

// Logout clears the dashboard cookie.
// POST /api/logout
func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.JSON(fiber.Map{"message": "Logged out"})
}
