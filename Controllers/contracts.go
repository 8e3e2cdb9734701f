package Controllers

import (
	"fmt"
	"strconv"
	"time"

	"Rentex/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ContractController handles the contract lifecycle
type ContractController struct {
	DB *gorm.DB
}

// NewContractController creates a new ContractController
func NewContractController(db *gorm.DB) *ContractController {
	return &ContractController{DB: db}
}

// GetContracts lists the agency's contracts.
// GET /api/contracts
func (cc *ContractController) GetContracts(ctx *fiber.Ctx) error {
	user := CurrentUser(ctx)

	query := cc.DB.Where("agency_id = ?", user.AgencyID)
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if vehicleID := ctx.Query("vehicleId"); vehicleID != "" {
		query = query.Where("vehicle_id = ?", vehicleID)
	}

	var contracts []Models.Contract
	err := query.Preload("Client").Preload("Vehicle").Preload("Invoice").
		Order("start_date DESC").Find(&contracts).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to retrieve contracts"})
	}
	return ctx.JSON(contracts)
}

// GetContract retrieves a single contract with its payments and invoice.
// GET /api/contracts/:id
func (cc *ContractController) GetContract(ctx *fiber.Ctx) error {
	user := CurrentUser(ctx)

	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid contract ID"})
	}

	var contract Models.Contract
	err = cc.DB.Where("id = ? AND agency_id = ?", id, user.AgencyID).
		Preload("Client").Preload("SecondaryDriver").Preload("Vehicle").
		Preload("Payments").Preload("Invoice").Preload("Reservation").
		First(&contract).Error
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Contract not found"})
	}
	return ctx.JSON(contract)
}

// CreateContract opens a rental contract, either by converting a CONFIRMED
// reservation or directly from client/vehicle/dates. The contract, the
// optional first payment, the invoice and the vehicle-status update are
// committed together.
// POST /api/contracts
func (cc *ContractController) CreateContract(ctx *fiber.Ctx) error {
	user := CurrentUser(ctx)

	var req Models.CreateContractRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if req.ReservationID != 0 {
		return cc.createFromReservation(ctx, user, req)
	}
	return cc.createDirect(ctx, user, req)
}

func (cc *ContractController) createFromReservation(ctx *fiber.Ctx, user Models.User, req Models.CreateContractRequest) error {
	var reservation Models.Reservation
	err := cc.DB.Where("id = ? AND agency_id = ?", req.ReservationID, user.AgencyID).
		First(&reservation).Error
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Reservation not found"})
	}
	if reservation.Status != Models.ReservationConfirmed {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Only confirmed reservations can be converted to a contract"})
	}

	var vehicle Models.Vehicle
	if err := cc.DB.First(&vehicle, reservation.VehicleID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Vehicle not found"})
	}

	dailyRate := req.DailyRate
	if dailyRate == 0 {
		dailyRate = vehicle.DailyRate
	}
	totalCost := req.TotalCost
	if totalCost == 0 {
		totalCost = reservation.EstimatedCost
	}

	contract := Models.Contract{
		AgencyID:        user.AgencyID,
		ClientID:        reservation.ClientID,
		VehicleID:       reservation.VehicleID,
		ReservationID:   &reservation.ID,
		StartDate:       reservation.StartDate,
		EndDate:         reservation.EndDate,
		Status:          Models.ContractActive,
		DailyRate:       dailyRate,
		TotalCost:       totalCost,
		PickupMileage:   vehicle.Mileage,
		PickupFuelLevel: vehicle.FuelLevel,
		Notes:           req.Notes,
	}

	tx := cc.DB.Begin()
	if tx.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": tx.Error.Error()})
	}

	if err := tx.Create(&contract).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create contract"})
	}

	if err := tx.Model(&reservation).Update("status", Models.ReservationCompleted).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to complete reservation"})
	}

	return cc.finishCreate(ctx, tx, user, &contract, &vehicle, req.FirstPayment)
}

func (cc *ContractController) createDirect(ctx *fiber.Ctx, user Models.User, req Models.CreateContractRequest) error {
	if req.ClientID == 0 || req.VehicleID == 0 || req.StartDate == "" || req.EndDate == "" || req.DailyRate == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "client_id, vehicle_id, start_date, end_date and daily_rate are required",
		})
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
	if err := cc.DB.Where("id = ? AND agency_id = ?", req.ClientID, user.AgencyID).First(&client).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Client not found"})
	}

	var vehicle Models.Vehicle
	if err := cc.DB.Where("id = ? AND agency_id = ?", req.VehicleID, user.AgencyID).First(&vehicle).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Vehicle not found"})
	}
	if vehicle.Status == Models.VehicleMaintenance || vehicle.Status == Models.VehicleInactive {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Vehicle is not available for rental"})
	}

	totalCost := req.TotalCost
	if totalCost == 0 {
		totalCost = float64(daysBetween(startDate, endDate)) * req.DailyRate
	}

	contract := Models.Contract{
		AgencyID:        user.AgencyID,
		ClientID:        client.ID,
		VehicleID:       vehicle.ID,
		StartDate:       startDate,
		EndDate:         endDate,
		Status:          Models.ContractActive,
		DailyRate:       req.DailyRate,
		TotalCost:       totalCost,
		PickupMileage:   vehicle.Mileage,
		PickupFuelLevel: vehicle.FuelLevel,
		Notes:           req.Notes,
	}
	if req.SecondaryDriverID != 0 {
		var secondary Models.Client
		if err := cc.DB.Where("id = ? AND agency_id = ?", req.SecondaryDriverID, user.AgencyID).First(&secondary).Error; err != nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Secondary driver not found"})
		}
		contract.SecondaryDriverID = &secondary.ID
	}

	tx := cc.DB.Begin()
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

	if err := tx.Create(&contract).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create contract"})
	}

	return cc.finishCreate(ctx, tx, user, &contract, &vehicle, req.FirstPayment)
}

// finishCreate records the optional first payment, creates the invoice and
// resolves the vehicle status, then commits.
func (cc *ContractController) finishCreate(ctx *fiber.Ctx, tx *gorm.DB, user Models.User, contract *Models.Contract, vehicle *Models.Vehicle, firstPayment *Models.PaymentInput) error {
	var amountPaid float64
	if firstPayment != nil {
		payment := Models.Payment{
			AgencyID:   user.AgencyID,
			ContractID: &contract.ID,
			Amount:     firstPayment.Amount,
			Method:     firstPayment.Method,
			Date:       paymentDate(firstPayment.Date),
		}
		if err := tx.Create(&payment).Error; err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to record payment"})
		}
		amountPaid = firstPayment.Amount
	}

	now := time.Now()
	invoice := Models.Invoice{
		AgencyID:    user.AgencyID,
		ContractID:  &contract.ID,
		Number:      Models.InvoiceNumber(now, contract.ID),
		IssueDate:   now,
		TotalAmount: contract.TotalCost,
		AmountPaid:  amountPaid,
		Status:      Models.ComputeInvoiceStatus(amountPaid, contract.TotalCost),
	}
	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create invoice"})
	}

	if err := Models.ResolveVehicleStatus(tx, vehicle); err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to resolve vehicle status"})
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	cc.DB.Preload("Client").Preload("Vehicle").Preload("Payments").Preload("Invoice").
		First(contract, contract.ID)
	return ctx.Status(fiber.StatusCreated).JSON(contract)
}

// CancelContract voids the invoice, releases the vehicle and marks the
// contract CANCELLED.
// PATCH /api/contracts/:id/cancel
func (cc *ContractController) CancelContract(ctx *fiber.Ctx) error {
	user := CurrentUser(ctx)

	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid contract ID"})
	}

	var contract Models.Contract
	if err := cc.DB.Where("id = ? AND agency_id = ?", id, user.AgencyID).First(&contract).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Contract not found"})
	}
	if contract.Status != Models.ContractActive {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Only active contracts can be cancelled"})
	}

	tx := cc.DB.Begin()
	if tx.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": tx.Error.Error()})
	}

	if err := tx.Model(&contract).Update("status", Models.ContractCancelled).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to cancel contract"})
	}

	if err := tx.Model(&Models.Invoice{}).Where("contract_id = ?", contract.ID).
		Update("status", Models.InvoiceVoid).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to void invoice"})
	}

	if err := Models.ResolveVehicleStatusByID(tx, contract.VehicleID); err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to resolve vehicle status"})
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	cc.DB.Preload("Invoice").First(&contract, contract.ID)
	return ctx.JSON(contract)
}

// TerminateContract closes an active contract with actual return data.
// The final cost is recomputed from the real duration; the contract can
// only complete once the recomputed total is fully covered by payments.
// PATCH /api/contracts/:id/terminate
func (cc *ContractController) TerminateContract(ctx *fiber.Ctx) error {
	user := CurrentUser(ctx)

	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid contract ID"})
	}

	var contract Models.Contract
	if err := cc.DB.Where("id = ? AND agency_id = ?", id, user.AgencyID).First(&contract).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Contract not found"})
	}
	if contract.Status != Models.ContractActive {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Only active contracts can be terminated"})
	}

	var req Models.TerminateContractRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	returnDate, err := parseDate(req.ReturnDate)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid return_date. Use YYYY-MM-DD"})
	}
	if req.ReturnMileage < contract.PickupMileage {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "return_mileage cannot be below pickup mileage"})
	}

	actualDays := daysBetween(contract.StartDate, returnDate)
	finalTotalCost := float64(actualDays) * contract.DailyRate

	tx := cc.DB.Begin()
	if tx.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": tx.Error.Error()})
	}

	var paidSoFar float64
	if err := tx.Model(&Models.Payment{}).Where("contract_id = ?", contract.ID).
		Select("COALESCE(SUM(amount), 0)").Scan(&paidSoFar).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to sum payments"})
	}

	finalPaymentAmount := 0.0
	if req.FinalPayment != nil {
		finalPaymentAmount = req.FinalPayment.Amount
	}
	newTotalPaid := paidSoFar + finalPaymentAmount
	if newTotalPaid < finalTotalCost {
		tx.Rollback()
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("Insufficient payment: %.2f paid of %.2f due", newTotalPaid, finalTotalCost),
		})
	}

	if req.FinalPayment != nil {
		payment := Models.Payment{
			AgencyID:   user.AgencyID,
			ContractID: &contract.ID,
			Amount:     req.FinalPayment.Amount,
			Method:     req.FinalPayment.Method,
			Date:       paymentDate(req.FinalPayment.Date),
		}
		if err := tx.Create(&payment).Error; err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to record final payment"})
		}
	}

	updates := map[string]interface{}{
		"status":         Models.ContractCompleted,
		"end_date":       returnDate,
		"total_cost":     finalTotalCost,
		"return_mileage": req.ReturnMileage,
	}
	if req.ReturnFuelLevel != nil {
		updates["return_fuel_level"] = *req.ReturnFuelLevel
	}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}
	if err := tx.Model(&contract).Updates(updates).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update contract"})
	}

	var vehicle Models.Vehicle
	if err := tx.First(&vehicle, contract.VehicleID).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Vehicle not found"})
	}
	vehicleUpdates := map[string]interface{}{"mileage": req.ReturnMileage}
	if req.ReturnFuelLevel != nil {
		vehicleUpdates["fuel_level"] = *req.ReturnFuelLevel
	}

	if req.VehicleState == Models.VehicleStateDamaged {
		// A damaged return parks the vehicle; upcoming bookings get a
		// conflict warning instead of a silent double-engagement.
		vehicleUpdates["status"] = Models.VehicleMaintenance
		if err := tx.Model(&vehicle).Updates(vehicleUpdates).Error; err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update vehicle"})
		}

		futures, err := Models.FutureReservations(tx, vehicle.ID, time.Now())
		if err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load upcoming reservations"})
		}
		for i := range futures {
			reservationID := futures[i].ID
			alert := Models.Alert{
				AgencyID:      user.AgencyID,
				VehicleID:     &vehicle.ID,
				ClientID:      &futures[i].ClientID,
				ReservationID: &reservationID,
				Type:          Models.AlertCustom,
				Message: fmt.Sprintf("Vehicle %s returned damaged; reservation #%d starting %s may need another vehicle",
					vehicle.PlateNo, reservationID, futures[i].StartDate.Format("2006-01-02")),
			}
			if err := tx.Create(&alert).Error; err != nil {
				tx.Rollback()
				return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create alert"})
			}
		}
	} else {
		if err := tx.Model(&vehicle).Updates(vehicleUpdates).Error; err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update vehicle"})
		}
		vehicle.Mileage = req.ReturnMileage
		if err := Models.ResolveVehicleStatus(tx, &vehicle); err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to resolve vehicle status"})
		}
	}

	if err := tx.Model(&Models.Invoice{}).Where("contract_id = ?", contract.ID).
		Updates(map[string]interface{}{
			"total_amount": finalTotalCost,
			"amount_paid":  newTotalPaid,
			"status":       Models.InvoicePaid,
		}).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update invoice"})
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	cc.DB.Preload("Payments").Preload("Invoice").Preload("Vehicle").First(&contract, contract.ID)
	return ctx.JSON(contract)
}

// UpdateContract patches an active contract. A total-cost change is
// propagated to the invoice.
// PATCH /api/contracts/:id
func (cc *ContractController) UpdateContract(ctx *fiber.Ctx) error {
	user := CurrentUser(ctx)

	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid contract ID"})
	}

	var contract Models.Contract
	if err := cc.DB.Where("id = ? AND agency_id = ?", id, user.AgencyID).First(&contract).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Contract not found"})
	}
	if contract.Status != Models.ContractActive {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Only active contracts can be modified"})
	}

	var req Models.UpdateContractRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	tx := cc.DB.Begin()
	if tx.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": tx.Error.Error()})
	}

	updates := make(map[string]interface{})
	if req.EndDate != "" {
		endDate, err := parseDate(req.EndDate)
		if err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid end_date. Use YYYY-MM-DD"})
		}
		if !endDate.After(contract.StartDate) {
			tx.Rollback()
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "end_date must be after start_date"})
		}
		updates["end_date"] = endDate
	}
	if req.DailyRate != 0 {
		updates["daily_rate"] = req.DailyRate
	}
	if req.TotalCost != 0 {
		updates["total_cost"] = req.TotalCost
	}
	if req.SecondaryDriverID != nil {
		updates["secondary_driver_id"] = *req.SecondaryDriverID
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	// Updates writes the map values back into the model, so the old total
	// has to be taken before the call
	prevTotalCost := contract.TotalCost

	if len(updates) > 0 {
		if err := tx.Model(&contract).Updates(updates).Error; err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update contract"})
		}
	}

	if req.TotalCost != 0 && req.TotalCost != prevTotalCost {
		var invoice Models.Invoice
		if err := tx.Where("contract_id = ?", contract.ID).First(&invoice).Error; err == nil {
			invoice.TotalAmount = req.TotalCost
			if err := tx.Model(&invoice).Update("total_amount", req.TotalCost).Error; err != nil {
				tx.Rollback()
				return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update invoice"})
			}
			if err := Models.RefreshInvoice(tx, &invoice); err != nil {
				tx.Rollback()
				return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update invoice"})
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	cc.DB.Preload("Invoice").First(&contract, contract.ID)
	return ctx.JSON(contract)
}

// AddPayment records a payment against an active contract. This path only
// inserts the Payment row; invoice totals move through the invoice
// payments endpoint.
// POST /api/contracts/:id/payments
func (cc *ContractController) AddPayment(ctx *fiber.Ctx) error {
	user := CurrentUser(ctx)

	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid contract ID"})
	}

	var contract Models.Contract
	if err := cc.DB.Where("id = ? AND agency_id = ?", id, user.AgencyID).First(&contract).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Contract not found"})
	}
	if contract.Status != Models.ContractActive {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Payments can only be added to active contracts"})
	}

	var req Models.PaymentInput
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	payment := Models.Payment{
		AgencyID:   user.AgencyID,
		ContractID: &contract.ID,
		Amount:     req.Amount,
		Method:     req.Method,
		Date:       paymentDate(req.Date),
	}
	if err := cc.DB.Create(&payment).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to record payment"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(payment)
}
