package Controllers

import (
	"strconv"

	"Rentex/Models"

	"github.com/gofiber/fiber/v2"
)

// GetInvoices lists the agency's invoices.
// GET /api/invoices
func GetInvoices(c *fiber.Ctx) error {
	user := CurrentUser(c)

	query := Models.DB.Where("agency_id = ?", user.AgencyID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var invoices []Models.Invoice
	if err := query.Order("issue_date DESC").Find(&invoices).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to retrieve invoices"})
	}
	return c.JSON(invoices)
}

// GetInvoice retrieves a single invoice.
// GET /api/invoices/:id
func GetInvoice(c *fiber.Ctx) error {
	user := CurrentUser(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid invoice ID"})
	}

	var invoice Models.Invoice
	if err := Models.DB.Where("id = ? AND agency_id = ?", id, user.AgencyID).First(&invoice).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Invoice not found"})
	}
	return c.JSON(invoice)
}

// AddInvoicePayment records a payment against an invoice and updates its
// paid total and status. Overpayment and payments on settled or voided
// invoices are rejected.
// POST /api/invoices/:id/payments
func AddInvoicePayment(c *fiber.Ctx) error {
	user := CurrentUser(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid invoice ID"})
	}

	var invoice Models.Invoice
	if err := Models.DB.Where("id = ? AND agency_id = ?", id, user.AgencyID).First(&invoice).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Invoice not found"})
	}
	if invoice.Status == Models.InvoicePaid || invoice.Status == Models.InvoiceVoid {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invoice is not payable"})
	}

	var req Models.InvoicePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if invoice.AmountPaid+req.Amount > invoice.TotalAmount {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Payment exceeds the remaining balance",
		})
	}

	tx := Models.DB.Begin()
	if tx.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": tx.Error.Error()})
	}

	payment := Models.Payment{
		AgencyID:      user.AgencyID,
		ContractID:    invoice.ContractID,
		ReservationID: invoice.ReservationID,
		Amount:        req.Amount,
		Method:        req.Method,
		Date:          paymentDate(req.Date),
	}
	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to record payment"})
	}

	if err := Models.RefreshInvoice(tx, &invoice); err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update invoice"})
	}

	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"payment": payment, "invoice": invoice})
}

// PrintInvoice renders the invoice as a printable HTML page.
// GET /api/invoices/:id/print
func PrintInvoice(c *fiber.Ctx) error {
	user := CurrentUser(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid invoice ID"})
	}

	var invoice Models.Invoice
	if err := Models.DB.Where("id = ? AND agency_id = ?", id, user.AgencyID).First(&invoice).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Invoice not found"})
	}

	var agency Models.Agency
	if err := Models.DB.First(&agency, user.AgencyID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load agency"})
	}

	var client Models.Client
	var vehicle Models.Vehicle
	var startDate, endDate string
	switch {
	case invoice.ContractID != nil:
		var contract Models.Contract
		if err := Models.DB.Preload("Client").Preload("Vehicle").First(&contract, *invoice.ContractID).Error; err == nil {
			client = contract.Client
			vehicle = contract.Vehicle
			startDate = contract.StartDate.Format("2006-01-02")
			endDate = contract.EndDate.Format("2006-01-02")
		}
	case invoice.ReservationID != nil:
		var reservation Models.Reservation
		if err := Models.DB.Preload("Client").Preload("Vehicle").First(&reservation, *invoice.ReservationID).Error; err == nil {
			client = reservation.Client
			vehicle = reservation.Vehicle
			startDate = reservation.StartDate.Format("2006-01-02")
			endDate = reservation.EndDate.Format("2006-01-02")
		}
	}

	return c.Render("invoice", fiber.Map{
		"Agency":    agency,
		"Invoice":   invoice,
		"Client":    client,
		"Vehicle":   vehicle,
		"StartDate": startDate,
		"EndDate":   endDate,
		"IssueDate": invoice.IssueDate.Format("2006-01-02"),
		"Balance":   invoice.TotalAmount - invoice.AmountPaid,
	})
}
