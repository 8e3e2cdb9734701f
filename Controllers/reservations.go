package Controllers

import (
	"strconv"
	"time"

	"Rentex/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReservationController handles the reservation lifecycle
type ReservationController struct {
	DB *gorm.DB
}

// NewReservationController creates a new ReservationController
func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{DB: db}
}

// GetReservations lists the agency's reservations.
// GET /api/reservations
func (rc *ReservationController) GetReservations(ctx *fiber.Ctx) error {
	user := CurrentUser(ctx)

	query := rc.DB.Where("agency_id = ?", user.AgencyID)
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if vehicleID := ctx.Query("vehicleId"); vehicleID != "" {
		query = query.Where("vehicle_id = ?", vehicleID)
	}

	var reservations []Models.Reservation
	err := query.Preload("Client").Preload("Vehicle").Preload("Invoice").
		Order("start_date DESC").Find(&reservations).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to retrieve reservations"})
	}
	return ctx.JSON(reservations)
}

// GetReservation retrieves a single reservation with its payments and invoice.
// GET /api/reservations/:id
func (rc *ReservationController) GetReservation(ctx *fiber.Ctx) error {
	user := CurrentUser(ctx)

	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid reservation ID"})
	}

	var reservation Models.Reservation
	err = rc.DB.Where("id = ? AND agency_id = ?", id, user.AgencyID).
		Preload("Client").Preload("Vehicle").Preload("Payments").Preload("Invoice").
		First(&reservation).Error
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Reservation not found"})
	}
	return ctx.JSON(reservation)
}

// CreateReservation books a vehicle for a client over a date range. The
// reservation, its initial payments, the invoice and the vehicle-status
// update are committed together.
// POST /api/reservations
func (rc *ReservationController) CreateReservation(ctx *fiber.Ctx) error {
	user := CurrentUser(ctx)

	var req Models.CreateReservationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid start_date. Use YYYY-MM-DD"})
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid end_date. Use YYYY-MM-DD"})
	}
	if !endDate.After(startDate) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "end_date must be after start_date"})
	}

	var client Models.Client
	if err := rc.DB.Where("id = ? AND agency_id = ?", req.ClientID, user.AgencyID).First(&client).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Client not found"})
	}

	var vehicle Models.Vehicle
	if err := rc.DB.Where("id = ? AND agency_id = ?", req.VehicleID, user.AgencyID).First(&vehicle).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Vehicle not found"})
	}
	if vehicle.Status == Models.VehicleMaintenance || vehicle.Status == Models.VehicleInactive {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Vehicle is not available for booking"})
	}

	tx := rc.DB.Begin()
	if tx.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": tx.Error.Error()})
	}

	conflict, err := Models.HasEngagementConflict(tx, vehicle.ID, startDate, endDate, 0, 0)
	if err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to check availability"})
	}
	if conflict {
		tx.Rollback()
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Vehicle is already engaged over this period"})
	}

	reservation := Models.Reservation{
		AgencyID:      user.AgencyID,
		ClientID:      client.ID,
		VehicleID:     vehicle.ID,
		StartDate:     startDate,
		EndDate:       endDate,
		Status:        Models.ReservationPending,
		EstimatedCost: req.EstimatedCost,
		Notes:         req.Notes,
	}
	if err := tx.Create(&reservation).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create reservation"})
	}

	var amountPaid float64
	for _, p := range req.Payments {
		payment := Models.Payment{
			AgencyID:      user.AgencyID,
			ReservationID: &reservation.ID,
			Amount:        p.Amount,
			Method:        p.Method,
			Date:          paymentDate(p.Date),
		}
		if err := tx.Create(&payment).Error; err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to record payment"})
		}
		amountPaid += p.Amount
	}

	now := time.Now()
	invoice := Models.Invoice{
		AgencyID:      user.AgencyID,
		ReservationID: &reservation.ID,
		Number:        Models.InvoiceNumber(now, reservation.ID),
		IssueDate:     now,
		TotalAmount:   req.EstimatedCost,
		AmountPaid:    amountPaid,
		Status:        Models.ComputeInvoiceStatus(amountPaid, req.EstimatedCost),
	}
	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create invoice"})
	}

	if err := Models.ResolveVehicleStatus(tx, &vehicle); err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to resolve vehicle status"})
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	rc.DB.Preload("Client").Preload("Vehicle").Preload("Payments").Preload("Invoice").
		First(&reservation, reservation.ID)
	return ctx.Status(fiber.StatusCreated).JSON(reservation)
}

// ConfirmReservation moves a PENDING reservation to CONFIRMED, optionally
// recording a down payment.
// PATCH /api/reservations/:id/confirm
func (rc *ReservationController) ConfirmReservation(ctx *fiber.Ctx) error {
	user := CurrentUser(ctx)

	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid reservation ID"})
	}

	var reservation Models.Reservation
	if err := rc.DB.Where("id = ? AND agency_id = ?", id, user.AgencyID).First(&reservation).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Reservation not found"})
	}
	if reservation.Status != Models.ReservationPending {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Only pending reservations can be confirmed"})
	}

	var req Models.ConfirmReservationRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		if err := validate.Struct(req); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
	}

	tx := rc.DB.Begin()
	if tx.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": tx.Error.Error()})
	}

	if req.DownPayment != nil {
		payment := Models.Payment{
			AgencyID:      user.AgencyID,
			ReservationID: &reservation.ID,
			Amount:        req.DownPayment.Amount,
			Method:        req.DownPayment.Method,
			Date:          paymentDate(req.DownPayment.Date),
		}
		if err := tx.Create(&payment).Error; err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to record down payment"})
		}
	}

	var invoice Models.Invoice
	if err := tx.Where("reservation_id = ?", reservation.ID).First(&invoice).Error; err == nil {
		if err := Models.RefreshInvoice(tx, &invoice); err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update invoice"})
		}
	}

	if err := tx.Model(&reservation).Update("status", Models.ReservationConfirmed).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to confirm reservation"})
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	rc.DB.Preload("Payments").Preload("Invoice").First(&reservation, reservation.ID)
	return ctx.JSON(reservation)
}

// UpdateReservation patches an open reservation; completed or cancelled
// ones are immutable.
// PATCH /api/reservations/:id
func (rc *ReservationController) UpdateReservation(ctx *fiber.Ctx) error {
	user := CurrentUser(ctx)

	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid reservation ID"})
	}

	var reservation Models.Reservation
	if err := rc.DB.Where("id = ? AND agency_id = ?", id, user.AgencyID).First(&reservation).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Reservation not found"})
	}
	if reservation.Status == Models.ReservationCompleted || reservation.Status == Models.ReservationCancelled {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Reservation can no longer be modified"})
	}

	var req Models.UpdateReservationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	startDate := reservation.StartDate
	endDate := reservation.EndDate
	if req.StartDate != "" {
		if startDate, err = parseDate(req.StartDate); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid start_date. Use YYYY-MM-DD"})
		}
	}
	if req.EndDate != "" {
		if endDate, err = parseDate(req.EndDate); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid end_date. Use YYYY-MM-DD"})
		}
	}
	if !endDate.After(startDate) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "end_date must be after start_date"})
	}

	tx := rc.DB.Begin()
	if tx.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": tx.Error.Error()})
	}

	if req.StartDate != "" || req.EndDate != "" {
		conflict, err := Models.HasEngagementConflict(tx, reservation.VehicleID, startDate, endDate, 0, reservation.ID)
		if err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to check availability"})
		}
		if conflict {
			tx.Rollback()
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Vehicle is already engaged over this period"})
		}
	}

	updates := map[string]interface{}{
		"start_date": startDate,
		"end_date":   endDate,
	}
	if req.EstimatedCost != 0 {
		updates["estimated_cost"] = req.EstimatedCost
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if err := tx.Model(&reservation).Updates(updates).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update reservation"})
	}

	for _, p := range req.Payments {
		payment := Models.Payment{
			AgencyID:      user.AgencyID,
			ReservationID: &reservation.ID,
			Amount:        p.Amount,
			Method:        p.Method,
			Date:          paymentDate(p.Date),
		}
		if err := tx.Create(&payment).Error; err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to record payment"})
		}
	}

	var invoice Models.Invoice
	if err := tx.Where("reservation_id = ?", reservation.ID).First(&invoice).Error; err == nil {
		if req.EstimatedCost != 0 && req.EstimatedCost != invoice.TotalAmount {
			invoice.TotalAmount = req.EstimatedCost
			if err := tx.Model(&invoice).Update("total_amount", req.EstimatedCost).Error; err != nil {
				tx.Rollback()
				return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update invoice"})
			}
		}
		if err := Models.RefreshInvoice(tx, &invoice); err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update invoice"})
		}
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	rc.DB.Preload("Payments").Preload("Invoice").First(&reservation, reservation.ID)
	return ctx.JSON(reservation)
}

// CancelReservation voids the invoice, releases the vehicle and marks the
// reservation CANCELLED.
// PATCH /api/reservations/:id/cancel
func (rc *ReservationController) CancelReservation(ctx *fiber.Ctx) error {
	user := CurrentUser(ctx)

	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid reservation ID"})
	}

	var reservation Models.Reservation
	if err := rc.DB.Where("id = ? AND agency_id = ?", id, user.AgencyID).First(&reservation).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Reservation not found"})
	}
	if reservation.Status == Models.ReservationCompleted || reservation.Status == Models.ReservationCancelled {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Reservation can no longer be cancelled"})
	}

	tx := rc.DB.Begin()
	if tx.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": tx.Error.Error()})
	}

	if err := tx.Model(&reservation).Update("status", Models.ReservationCancelled).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to cancel reservation"})
	}

	if err := tx.Model(&Models.Invoice{}).Where("reservation_id = ?", reservation.ID).
		Update("status", Models.InvoiceVoid).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to void invoice"})
	}

	reservation.Status = Models.ReservationCancelled
	if err := Models.ResolveVehicleStatusByID(tx, reservation.VehicleID); err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to resolve vehicle status"})
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	rc.DB.Preload("Invoice").First(&reservation, reservation.ID)
	return ctx.JSON(reservation)
}
