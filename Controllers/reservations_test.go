package Controllers

import (
	"net/http"
	"testing"

	"Rentex/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReservation(t *testing.T) {
	env := setupTestEnv(t)
	client := env.createClient("DL-1001")
	vehicle := env.createVehicle("AA-100-BB", 400)

	resp := env.request(fiber.MethodPost, "/api/reservations", fiber.Map{
		"client_id":      client.ID,
		"vehicle_id":     vehicle.ID,
		"start_date":     day(0),
		"end_date":       day(5),
		"estimated_cost": 2000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var reservation Models.Reservation
	decodeJSON(t, resp, &reservation)
	assert.Equal(t, Models.ReservationPending, reservation.Status)
	assert.Equal(t, 2000.0, reservation.EstimatedCost)
	require.NotNil(t, reservation.Invoice)
	assert.Equal(t, Models.InvoicePending, reservation.Invoice.Status)
	assert.Equal(t, 2000.0, reservation.Invoice.TotalAmount)
	assert.Contains(t, reservation.Invoice.Number, "FACT-")

	// Starts today, so the vehicle is held right away
	assert.Equal(t, Models.VehicleReserved, env.reloadVehicle(vehicle.ID).Status)
}

func TestCreateReservationWithInitialPayment(t *testing.T) {
	env := setupTestEnv(t)
	client := env.createClient("DL-1002")
	vehicle := env.createVehicle("AA-101-BB", 400)

	resp := env.request(fiber.MethodPost, "/api/reservations", fiber.Map{
		"client_id":      client.ID,
		"vehicle_id":     vehicle.ID,
		"start_date":     day(10),
		"end_date":       day(15),
		"estimated_cost": 2000,
		"payments": []fiber.Map{
			{"amount": 500, "method": Models.PaymentCash},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var reservation Models.Reservation
	decodeJSON(t, resp, &reservation)
	require.NotNil(t, reservation.Invoice)
	assert.Equal(t, 500.0, reservation.Invoice.AmountPaid)
	assert.Equal(t, Models.InvoicePartiallyPaid, reservation.Invoice.Status)

	// A future booking does not hold the vehicle yet
	assert.Equal(t, Models.VehicleAvailable, env.reloadVehicle(vehicle.ID).Status)
}

func TestCreateReservationRejectsOverlap(t *testing.T) {
	env := setupTestEnv(t)
	client := env.createClient("DL-1003")
	other := env.createClient("DL-1004")
	vehicle := env.createVehicle("AA-102-BB", 400)

	resp := env.request(fiber.MethodPost, "/api/reservations", fiber.Map{
		"client_id": client.ID, "vehicle_id": vehicle.ID,
		"start_date": day(10), "end_date": day(15), "estimated_cost": 2000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.request(fiber.MethodPost, "/api/reservations", fiber.Map{
		"client_id": other.ID, "vehicle_id": vehicle.ID,
		"start_date": day(14), "end_date": day(20), "estimated_cost": 2400,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// A disjoint window is fine
	resp = env.request(fiber.MethodPost, "/api/reservations", fiber.Map{
		"client_id": other.ID, "vehicle_id": vehicle.ID,
		"start_date": day(16), "end_date": day(20), "estimated_cost": 1600,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCreateReservationValidation(t *testing.T) {
	env := setupTestEnv(t)
	client := env.createClient("DL-1005")
	vehicle := env.createVehicle("AA-103-BB", 400)

	// end before start
	resp := env.request(fiber.MethodPost, "/api/reservations", fiber.Map{
		"client_id": client.ID, "vehicle_id": vehicle.ID,
		"start_date": day(5), "end_date": day(2), "estimated_cost": 1000,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// unknown vehicle
	resp = env.request(fiber.MethodPost, "/api/reservations", fiber.Map{
		"client_id": client.ID, "vehicle_id": 9999,
		"start_date": day(2), "end_date": day(5), "estimated_cost": 1000,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// vehicle in maintenance
	require.NoError(t, env.db.Model(&Models.Vehicle{}).Where("id = ?", vehicle.ID).
		Update("status", Models.VehicleMaintenance).Error)
	resp = env.request(fiber.MethodPost, "/api/reservations", fiber.Map{
		"client_id": client.ID, "vehicle_id": vehicle.ID,
		"start_date": day(2), "end_date": day(5), "estimated_cost": 1000,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestConfirmReservation(t *testing.T) {
	env := setupTestEnv(t)
	client := env.createClient("DL-1006")
	vehicle := env.createVehicle("AA-104-BB", 400)

	resp := env.request(fiber.MethodPost, "/api/reservations", fiber.Map{
		"client_id": client.ID, "vehicle_id": vehicle.ID,
		"start_date": day(3), "end_date": day(8), "estimated_cost": 2000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var reservation Models.Reservation
	decodeJSON(t, resp, &reservation)

	resp = env.request(fiber.MethodPatch, "/api/reservations/"+itoa(reservation.ID)+"/confirm", fiber.Map{
		"down_payment": fiber.Map{"amount": 600, "method": Models.PaymentCard},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var confirmed Models.Reservation
	decodeJSON(t, resp, &confirmed)
	assert.Equal(t, Models.ReservationConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.Invoice)
	assert.Equal(t, 600.0, confirmed.Invoice.AmountPaid)
	assert.Equal(t, Models.InvoicePartiallyPaid, confirmed.Invoice.Status)

	// Confirming twice is rejected
	resp = env.request(fiber.MethodPatch, "/api/reservations/"+itoa(reservation.ID)+"/confirm", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUpdateReservationMovesInvoiceTotal(t *testing.T) {
	env := setupTestEnv(t)
	client := env.createClient("DL-1007")
	vehicle := env.createVehicle("AA-105-BB", 400)

	resp := env.request(fiber.MethodPost, "/api/reservations", fiber.Map{
		"client_id": client.ID, "vehicle_id": vehicle.ID,
		"start_date": day(3), "end_date": day(8), "estimated_cost": 2000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var reservation Models.Reservation
	decodeJSON(t, resp, &reservation)

	resp = env.request(fiber.MethodPatch, "/api/reservations/"+itoa(reservation.ID), fiber.Map{
		"end_date":       day(10),
		"estimated_cost": 2800,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated Models.Reservation
	decodeJSON(t, resp, &updated)
	assert.Equal(t, 2800.0, updated.EstimatedCost)
	require.NotNil(t, updated.Invoice)
	assert.Equal(t, 2800.0, updated.Invoice.TotalAmount)
}

func TestCancelReservation(t *testing.T) {
	env := setupTestEnv(t)
	client := env.createClient("DL-1008")
	vehicle := env.createVehicle("AA-106-BB", 400)

	resp := env.request(fiber.MethodPost, "/api/reservations", fiber.Map{
		"client_id": client.ID, "vehicle_id": vehicle.ID,
		"start_date": day(0), "end_date": day(5), "estimated_cost": 2000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var reservation Models.Reservation
	decodeJSON(t, resp, &reservation)
	require.Equal(t, Models.VehicleReserved, env.reloadVehicle(vehicle.ID).Status)

	resp = env.request(fiber.MethodPatch, "/api/reservations/"+itoa(reservation.ID)+"/cancel", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cancelled Models.Reservation
	decodeJSON(t, resp, &cancelled)
	assert.Equal(t, Models.ReservationCancelled, cancelled.Status)
	require.NotNil(t, cancelled.Invoice)
	assert.Equal(t, Models.InvoiceVoid, cancelled.Invoice.Status)
	assert.Equal(t, Models.VehicleAvailable, env.reloadVehicle(vehicle.ID).Status)

	// Cancelling twice is rejected
	resp = env.request(fiber.MethodPatch, "/api/reservations/"+itoa(reservation.ID)+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
