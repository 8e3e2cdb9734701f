package Controllers

import (
	"Rentex/Models"

	"github.com/gofiber/fiber/v2"
)

// GetPayments lists the agency's payments, filterable by parent
// engagement.
// GET /api/payments
func GetPayments(c *fiber.Ctx) error {
	user := CurrentUser(c)

	query := Models.DB.Where("agency_id = ?", user.AgencyID)
	if contractID := c.Query("contractId"); contractID != "" {
		query = query.Where("contract_id = ?", contractID)
	}
	if reservationID := c.Query("reservationId"); reservationID != "" {
		query = query.Where("reservation_id = ?", reservationID)
	}
	if method := c.Query("method"); method != "" {
		query = query.Where("method = ?", method)
	}

	var payments []Models.Payment
	if err := query.Order("date DESC").Find(&payments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to retrieve payments"})
	}
	return c.JSON(payments)
}
