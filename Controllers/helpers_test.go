package Controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"Rentex/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

type testEnv struct {
	t      *testing.T
	app    *fiber.App
	db     *gorm.DB
	user   Models.User
	agency Models.Agency
}

// setupTestEnv builds an app over a fresh in-memory database with the
// authentication middleware replaced by a stub that injects a fixed
// admin user.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:controllers_test_%d?mode=memory&cache=shared",
		atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	Models.Migrate(db)
	Models.DB = db

	agency := Models.Agency{Name: "Test Agency", DocumentReminderDays: 30, OilChangeReminderKm: 10000}
	require.NoError(t, db.Create(&agency).Error)
	user := Models.User{
		AgencyID: agency.ID,
		Name:     "Admin",
		Email:    "admin@test.local",
		Password: []byte("irrelevant"),
		Role:     Models.RoleAdmin,
		Status:   Models.UserStatusActive,
	}
	require.NoError(t, db.Create(&user).Error)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", user)
		return c.Next()
	})

	reservationController := NewReservationController(db)
	contractController := NewContractController(db)

	app.Get("/api/clients", GetClients)
	app.Post("/api/clients", CreateClient)
	app.Put("/api/clients/:id", UpdateClient)
	app.Get("/api/vehicles", GetVehicles)
	app.Post("/api/vehicles", CreateVehicle)
	app.Put("/api/vehicles/:id", UpdateVehicle)

	app.Get("/api/reservations", reservationController.GetReservations)
	app.Post("/api/reservations", reservationController.CreateReservation)
	app.Get("/api/reservations/:id", reservationController.GetReservation)
	app.Patch("/api/reservations/:id", reservationController.UpdateReservation)
	app.Patch("/api/reservations/:id/confirm", reservationController.ConfirmReservation)
	app.Patch("/api/reservations/:id/cancel", reservationController.CancelReservation)

	app.Get("/api/contracts", contractController.GetContracts)
	app.Post("/api/contracts", contractController.CreateContract)
	app.Get("/api/contracts/:id", contractController.GetContract)
	app.Patch("/api/contracts/:id", contractController.UpdateContract)
	app.Patch("/api/contracts/:id/cancel", contractController.CancelContract)
	app.Patch("/api/contracts/:id/terminate", contractController.TerminateContract)
	app.Post("/api/contracts/:id/payments", contractController.AddPayment)

	app.Get("/api/invoices", GetInvoices)
	app.Get("/api/invoices/:id", GetInvoice)
	app.Post("/api/invoices/:id/payments", AddInvoicePayment)
	app.Get("/api/payments", GetPayments)
	app.Get("/api/alerts", GetAlerts)
	app.Patch("/api/alerts/:id/resolve", ResolveAlert)
	app.Get("/api/dashboard/stats", GetDashboardStats)
	app.Get("/api/dashboard/calendar", GetCalendarData)

	return &testEnv{t: t, app: app, db: db, user: user, agency: agency}
}

func (e *testEnv) request(method, path string, body interface{}) *http.Response {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(e.t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func (e *testEnv) createClient(license string) Models.Client {
	e.t.Helper()
	client := Models.Client{
		AgencyID:      e.agency.ID,
		FirstName:     "Karim",
		LastName:      "Benali",
		Email:         license + "@test.local",
		DriverLicense: license,
	}
	require.NoError(e.t, e.db.Create(&client).Error)
	return client
}

func (e *testEnv) createVehicle(plate string, dailyRate float64) Models.Vehicle {
	e.t.Helper()
	vehicle := Models.Vehicle{
		AgencyID:  e.agency.ID,
		PlateNo:   plate,
		Make:      "Renault",
		CarModel:  "Clio",
		Year:      2022,
		Mileage:   42000,
		DailyRate: dailyRate,
		FuelLevel: 100,
		Status:    Models.VehicleAvailable,
	}
	require.NoError(e.t, e.db.Create(&vehicle).Error)
	return vehicle
}

func (e *testEnv) reloadVehicle(id uint) Models.Vehicle {
	e.t.Helper()
	var vehicle Models.Vehicle
	require.NoError(e.t, e.db.First(&vehicle, id).Error)
	return vehicle
}

// day returns today shifted by the given number of days, in the
// YYYY-MM-DD wire format. Anchored to UTC because parseDate yields UTC
// midnight; a local-time date east of UTC could land in the future.
func day(offset int) string {
	return time.Now().UTC().AddDate(0, 0, offset).Format("2006-01-02")
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestDaysBetween(t *testing.T) {
	start, _ := parseDate("2025-01-10")

	fiveDays, _ := parseDate("2025-01-15")
	assert.Equal(t, 5, daysBetween(start, fiveDays))

	sameDay, _ := parseDate("2025-01-10")
	assert.Equal(t, 1, daysBetween(start, sameDay))

	// A started day bills as a whole day
	partial := start.Add(36 * time.Hour)
	assert.Equal(t, 2, daysBetween(start, partial))

	before, _ := parseDate("2025-01-05")
	assert.Equal(t, 1, daysBetween(start, before))
}

func TestPaymentDateDefaultsToNow(t *testing.T) {
	assert.WithinDuration(t, time.Now(), paymentDate(""), time.Minute)

	parsed := paymentDate("2025-03-01")
	assert.Equal(t, "2025-03-01", parsed.Format("2006-01-02"))
}
