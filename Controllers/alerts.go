package Controllers

import (
	"strconv"

	"Rentex/Models"

	"github.com/gofiber/fiber/v2"
)

// GetAlerts lists the agency's alerts, unresolved first.
// GET /api/alerts
func GetAlerts(c *fiber.Ctx) error {
	user := CurrentUser(c)

	query := Models.DB.Where("agency_id = ?", user.AgencyID)
	if alertType := c.Query("type"); alertType != "" {
		query = query.Where("type = ?", alertType)
	}
	if resolved := c.Query("resolved"); resolved != "" {
		query = query.Where("resolved = ?", resolved == "true")
	}

	var alerts []Models.Alert
	if err := query.Order("resolved ASC, created_at DESC").Find(&alerts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to retrieve alerts"})
	}
	return c.JSON(alerts)
}

// ResolveAlert marks an alert handled.
// PATCH /api/alerts/:id/resolve
func ResolveAlert(c *fiber.Ctx) error {
	user := CurrentUser(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid alert ID"})
	}

	var alert Models.Alert
	if err := Models.DB.Where("id = ? AND agency_id = ?", id, user.AgencyID).First(&alert).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Alert not found"})
	}

	if err := Models.DB.Model(&alert).Update("resolved", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to resolve alert"})
	}
	alert.Resolved = true
	return c.JSON(alert)
}
