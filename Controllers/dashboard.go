package Controllers

import (
	"fmt"
	"time"

	"Rentex/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GetDashboardStats returns the agency's operational snapshot: fleet
// breakdown, engagement counts and revenue collected this month.
// GET /api/dashboard/stats
func GetDashboardStats(c *fiber.Ctx) error {
	user := CurrentUser(c)
	db := Models.DB

	fleet := make(map[string]int64)
	for _, status := range []string{
		Models.VehicleAvailable, Models.VehicleRented, Models.VehicleReserved,
		Models.VehicleMaintenance, Models.VehicleInactive,
	} {
		var count int64
		db.Model(&Models.Vehicle{}).
			Where("agency_id = ? AND status = ?", user.AgencyID, status).
			Count(&count)
		fleet[status] = count
	}

	var activeContracts int64
	db.Model(&Models.Contract{}).
		Where("agency_id = ? AND status = ?", user.AgencyID, Models.ContractActive).
		Count(&activeContracts)

	var upcomingReservations int64
	db.Model(&Models.Reservation{}).
		Where("agency_id = ? AND status IN ?", user.AgencyID,
			[]string{Models.ReservationPending, Models.ReservationConfirmed}).
		Count(&upcomingReservations)

	var unresolvedAlerts int64
	db.Model(&Models.Alert{}).
		Where("agency_id = ? AND resolved = ?", user.AgencyID, false).
		Count(&unresolvedAlerts)

	var totalClients int64
	db.Model(&Models.Client{}).Where("agency_id = ?", user.AgencyID).Count(&totalClients)

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var monthRevenue float64
	db.Model(&Models.Payment{}).
		Where("agency_id = ? AND date >= ?", user.AgencyID, monthStart).
		Select("COALESCE(SUM(amount), 0)").Scan(&monthRevenue)

	var outstanding float64
	db.Model(&Models.Invoice{}).
		Where("agency_id = ? AND status IN ?", user.AgencyID,
			[]string{Models.InvoicePending, Models.InvoicePartiallyPaid}).
		Select("COALESCE(SUM(total_amount - amount_paid), 0)").Scan(&outstanding)

	return c.JSON(fiber.Map{
		"fleet":                 fleet,
		"active_contracts":      activeContracts,
		"upcoming_reservations": upcomingReservations,
		"unresolved_alerts":     unresolvedAlerts,
		"total_clients":         totalClients,
		"month_revenue":         monthRevenue,
		"outstanding_balance":   outstanding,
	})
}

// GetCalendarData returns the reservations and contracts overlapping the
// requested month, for the booking calendar view.
// GET /api/dashboard/calendar?month=2025-01
func GetCalendarData(c *fiber.Ctx) error {
	user := CurrentUser(c)

	monthParam := c.Query("month")
	var monthStart time.Time
	if monthParam == "" {
		now := time.Now()
		monthStart = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	} else {
		parsed, err := time.Parse("2006-01", monthParam)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid month. Use YYYY-MM"})
		}
		monthStart = parsed
	}
	monthEnd := monthStart.AddDate(0, 1, 0)

	var reservations []Models.Reservation
	err := Models.DB.Where(
		"agency_id = ? AND status IN ? AND start_date < ? AND end_date >= ?",
		user.AgencyID, []string{Models.ReservationPending, Models.ReservationConfirmed},
		monthEnd, monthStart,
	).Preload("Client").Preload("Vehicle").Find(&reservations).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to retrieve reservations"})
	}

	var contracts []Models.Contract
	err = Models.DB.Where(
		"agency_id = ? AND status = ? AND start_date < ? AND end_date >= ?",
		user.AgencyID, Models.ContractActive, monthEnd, monthStart,
	).Preload("Client").Preload("Vehicle").Find(&contracts).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to retrieve contracts"})
	}

	return c.JSON(fiber.Map{
		"month":        monthStart.Format("2006-01"),
		"reservations": reservations,
		"contracts":    contracts,
	})
}

// ExportRevenue writes the agency's payments over a period into an Excel
// sheet and streams it back.
// GET /api/dashboard/revenue/export?from=2025-01-01&to=2025-01-31
func ExportRevenue(c *fiber.Ctx) error {
	user := CurrentUser(c)

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	if param := c.Query("from"); param != "" {
		parsed, err := parseDate(param)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid from date. Use YYYY-MM-DD"})
		}
		from = parsed
	}
	if param := c.Query("to"); param != "" {
		parsed, err := parseDate(param)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid to date. Use YYYY-MM-DD"})
		}
		to = parsed.AddDate(0, 0, 1)
	}

	var payments []Models.Payment
	err := Models.DB.Where("agency_id = ? AND date >= ? AND date < ?", user.AgencyID, from, to).
		Order("date ASC").Find(&payments).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to retrieve payments"})
	}

	file := excelize.NewFile()
	defer file.Close()

	sheet := "Revenue"
	file.SetSheetName("Sheet1", sheet)
	headers := []string{"Date", "Amount", "Method", "Contract", "Reservation", "Notes"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(sheet, cell, header)
	}

	var total float64
	for i, payment := range payments {
		row := i + 2
		file.SetCellValue(sheet, fmt.Sprintf("A%d", row), payment.Date.Format("2006-01-02"))
		file.SetCellValue(sheet, fmt.Sprintf("B%d", row), payment.Amount)
		file.SetCellValue(sheet, fmt.Sprintf("C%d", row), payment.Method)
		if payment.ContractID != nil {
			file.SetCellValue(sheet, fmt.Sprintf("D%d", row), *payment.ContractID)
		}
		if payment.ReservationID != nil {
			file.SetCellValue(sheet, fmt.Sprintf("E%d", row), *payment.ReservationID)
		}
		file.SetCellValue(sheet, fmt.Sprintf("F%d", row), payment.Notes)
		total += payment.Amount
	}
	totalRow := len(payments) + 3
	file.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "Total")
	file.SetCellValue(sheet, fmt.Sprintf("B%d", totalRow), total)

	buffer, err := file.WriteToBuffer()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to generate export"})
	}

	filename := fmt.Sprintf("revenue_%s_%s.xlsx", from.Format("20060102"), to.AddDate(0, 0, -1).Format("20060102"))
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buffer.Bytes())
}
