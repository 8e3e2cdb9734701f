package Controllers

import (
	"Rentex/Models"

	"github.com/gofiber/fiber/v2"
)

// GetMyAgency returns the authenticated user's agency.
// GET /api/agency
func GetMyAgency(c *fiber.Ctx) error {
	user := CurrentUser(c)

	var agency Models.Agency
	if err := Models.DB.First(&agency, user.AgencyID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Agency not found"})
	}
	return c.JSON(agency)
}

// GetAgencySettings returns the agency's reminder configuration.
// GET /api/agency/settings
func GetAgencySettings(c *fiber.Ctx) error {
	return GetMyAgency(c)
}

// UpdateAgencySettings patches agency info and reminder thresholds.
// PUT /api/agency/settings
func UpdateAgencySettings(c *fiber.Ctx) error {
	user := CurrentUser(c)

	var agency Models.Agency
	if err := Models.DB.First(&agency, user.AgencyID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Agency not found"})
	}

	var req Models.AgencySettingsRequest
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
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.TaxID != "" {
		updates["tax_id"] = req.TaxID
	}
	if req.CommercialRegNo != "" {
		updates["commercial_reg_no"] = req.CommercialRegNo
	}
	if req.DocumentReminderDays != 0 {
		updates["document_reminder_days"] = req.DocumentReminderDays
	}
	if req.OilChangeReminderKm != 0 {
		updates["oil_change_reminder_km"] = req.OilChangeReminderKm
	}

	if len(updates) > 0 {
		Models.DB.Model(&agency).Updates(updates)
		Models.DB.First(&agency, agency.ID)
	}

	return c.JSON(agency)
}
