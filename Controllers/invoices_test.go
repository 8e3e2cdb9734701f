package Controllers

import (
	"net/http"
	"testing"

	"Rentex/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddInvoicePayment(t *testing.T) {
	env := setupTestEnv(t)
	client := env.createClient("DL-3001")
	vehicle := env.createVehicle("CC-300-DD", 400)

	contract := env.createActiveContract(client, vehicle, 0, 5, 0)
	require.NotNil(t, contract.Invoice)
	invoiceID := itoa(contract.Invoice.ID)

	resp := env.request(fiber.MethodPost, "/api/invoices/"+invoiceID+"/payments", fiber.Map{
		"amount": 1200,
		"method": Models.PaymentBankTransfer,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		Payment Models.Payment `json:"payment"`
		Invoice Models.Invoice `json:"invoice"`
	}
	decodeJSON(t, resp, &result)
	assert.Equal(t, 1200.0, result.Invoice.AmountPaid)
	assert.Equal(t, Models.InvoicePartiallyPaid, result.Invoice.Status)
	require.NotNil(t, result.Payment.ContractID)
	assert.Equal(t, contract.ID, *result.Payment.ContractID)

	// Settle the remainder
	resp = env.request(fiber.MethodPost, "/api/invoices/"+invoiceID+"/payments", fiber.Map{
		"amount": 800,
		"method": Models.PaymentCash,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeJSON(t, resp, &result)
	assert.Equal(t, 2000.0, result.Invoice.AmountPaid)
	assert.Equal(t, Models.InvoicePaid, result.Invoice.Status)

	// A settled invoice takes no further payments
	resp = env.request(fiber.MethodPost, "/api/invoices/"+invoiceID+"/payments", fiber.Map{
		"amount": 100,
		"method": Models.PaymentCash,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAddInvoicePaymentRejectsOverpayment(t *testing.T) {
	env := setupTestEnv(t)
	client := env.createClient("DL-3002")
	vehicle := env.createVehicle("CC-301-DD", 400)

	contract := env.createActiveContract(client, vehicle, 0, 5, 500)
	require.NotNil(t, contract.Invoice)

	resp := env.request(fiber.MethodPost, "/api/invoices/"+itoa(contract.Invoice.ID)+"/payments", fiber.Map{
		"amount": 1600, // 500 already paid of 2000
		"method": Models.PaymentCash,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var invoice Models.Invoice
	require.NoError(t, env.db.First(&invoice, contract.Invoice.ID).Error)
	assert.Equal(t, 500.0, invoice.AmountPaid)
}

func TestAddInvoicePaymentRejectsVoided(t *testing.T) {
	env := setupTestEnv(t)
	client := env.createClient("DL-3003")
	vehicle := env.createVehicle("CC-302-DD", 400)

	contract := env.createActiveContract(client, vehicle, 0, 5, 0)
	require.NotNil(t, contract.Invoice)

	resp := env.request(fiber.MethodPatch, "/api/contracts/"+itoa(contract.ID)+"/cancel", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.request(fiber.MethodPost, "/api/invoices/"+itoa(contract.Invoice.ID)+"/payments", fiber.Map{
		"amount": 100,
		"method": Models.PaymentCash,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetInvoicesFiltersByStatus(t *testing.T) {
	env := setupTestEnv(t)
	client := env.createClient("DL-3004")
	first := env.createVehicle("CC-303-DD", 400)
	second := env.createVehicle("CC-304-DD", 300)

	env.createActiveContract(client, first, 0, 5, 2000)  // PAID
	env.createActiveContract(client, second, 0, 5, 500)  // PARTIALLY_PAID

	resp := env.request(fiber.MethodGet, "/api/invoices?status=PAID", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var invoices []Models.Invoice
	decodeJSON(t, resp, &invoices)
	require.Len(t, invoices, 1)
	assert.Equal(t, Models.InvoicePaid, invoices[0].Status)

	resp = env.request(fiber.MethodGet, "/api/invoices", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &invoices)
	assert.Len(t, invoices, 2)
}

func TestGetPaymentsByContract(t *testing.T) {
	env := setupTestEnv(t)
	client := env.createClient("DL-3005")
	vehicle := env.createVehicle("CC-305-DD", 400)
	other := env.createVehicle("CC-306-DD", 400)

	contract := env.createActiveContract(client, vehicle, 0, 5, 500)
	env.createActiveContract(client, other, 0, 5, 900)

	resp := env.request(fiber.MethodGet, "/api/payments?contractId="+itoa(contract.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payments []Models.Payment
	decodeJSON(t, resp, &payments)
	require.Len(t, payments, 1)
	assert.Equal(t, 500.0, payments[0].Amount)
}

func TestDashboardStats(t *testing.T) {
	env := setupTestEnv(t)
	client := env.createClient("DL-3006")
	rented := env.createVehicle("CC-307-DD", 400)
	env.createVehicle("CC-308-DD", 300)

	env.createActiveContract(client, rented, 0, 5, 500)

	resp := env.request(fiber.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats struct {
		Fleet               map[string]int64 `json:"fleet"`
		ActiveContracts     int64            `json:"active_contracts"`
		TotalClients        int64            `json:"total_clients"`
		MonthRevenue        float64          `json:"month_revenue"`
		OutstandingBalance  float64          `json:"outstanding_balance"`
	}
	decodeJSON(t, resp, &stats)
	assert.Equal(t, int64(1), stats.Fleet[Models.VehicleRented])
	assert.Equal(t, int64(1), stats.Fleet[Models.VehicleAvailable])
	assert.Equal(t, int64(1), stats.ActiveContracts)
	assert.Equal(t, int64(1), stats.TotalClients)
	assert.Equal(t, 500.0, stats.MonthRevenue)
	assert.Equal(t, 1500.0, stats.OutstandingBalance)
}
