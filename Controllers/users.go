package Controllers

import (
	"strconv"

	"Rentex/Models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// RegisterUser lets an admin add a user to their own agency.
// POST /api/users
func RegisterUser(c *fiber.Ctx) error {
	admin := CurrentUser(c)

	var req Models.CreateUserRequest
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

	role := req.Role
	if role == 0 {
		role = Models.RoleUser
	}

	user := Models.User{
		AgencyID: admin.AgencyID,
		Name:     req.Name,
		Email:    req.Email,
		Password: passwordHash,
		Role:     role,
		Status:   Models.UserStatusActive,
	}
	if err := Models.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "A user with this email already exists"})
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// FetchUsers lists the agency's users.
// GET /api/users
func FetchUsers(c *fiber.Ctx) error {
	admin := CurrentUser(c)

	var users []Models.User
	if err := Models.DB.Where("agency_id = ?", admin.AgencyID).Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to retrieve users"})
	}
	return c.JSON(users)
}

// UpdateUser patches name, password, role or status of an agency user.
// PATCH /api/users/:id
func UpdateUser(c *fiber.Ctx) error {
	admin := CurrentUser(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user ID"})
	}

	var user Models.User
	if err := Models.DB.Where("id = ? AND agency_id = ?", id, admin.AgencyID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	var req Models.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Role != 0 {
		updates["role"] = req.Role
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.Password != "" {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to hash password"})
		}
		updates["password"] = passwordHash
	}

	if len(updates) > 0 {
		Models.DB.Model(&user).Updates(updates)
		Models.DB.First(&user, user.ID)
	}

	return c.JSON(user)
}

// DeleteUser removes an agency user. Admins cannot delete themselves.
// DELETE /api/users/:id
func DeleteUser(c *fiber.Ctx) error {
	admin := CurrentUser(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user ID"})
	}
	if uint(id) == admin.ID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "You cannot delete your own account"})
	}

	var user Models.User
	if err := Models.DB.Where("id = ? AND agency_id = ?", id, admin.AgencyID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	if err := Models.DB.Delete(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete user"})
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}
