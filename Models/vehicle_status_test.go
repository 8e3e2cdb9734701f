package Models

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:models_test_%d?mode=memory&cache=shared",
		atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	Migrate(db)
	return db
}

func testVehicle(t *testing.T, db *gorm.DB, status string) Vehicle {
	t.Helper()
	vehicle := Vehicle{
		AgencyID:  1,
		PlateNo:   fmt.Sprintf("TEST-%d", time.Now().UnixNano()),
		Make:      "Dacia",
		CarModel:  "Logan",
		DailyRate: 300,
		FuelLevel: 100,
		Status:    status,
	}
	require.NoError(t, db.Create(&vehicle).Error)
	return vehicle
}

func TestResolveVehicleStatusRented(t *testing.T) {
	db := newTestDB(t)
	vehicle := testVehicle(t, db, VehicleAvailable)

	require.NoError(t, db.Create(&Contract{
		AgencyID: 1, ClientID: 1, VehicleID: vehicle.ID,
		StartDate: time.Now().AddDate(0, 0, -1),
		EndDate:   time.Now().AddDate(0, 0, 2),
		Status:    ContractActive, DailyRate: 300, TotalCost: 900,
	}).Error)

	require.NoError(t, ResolveVehicleStatus(db, &vehicle))
	assert.Equal(t, VehicleRented, vehicle.Status)
}

func TestResolveVehicleStatusContractWinsOverReservation(t *testing.T) {
	db := newTestDB(t)
	vehicle := testVehicle(t, db, VehicleAvailable)

	require.NoError(t, db.Create(&Contract{
		AgencyID: 1, ClientID: 1, VehicleID: vehicle.ID,
		StartDate: time.Now().AddDate(0, 0, -1),
		EndDate:   time.Now().AddDate(0, 0, 2),
		Status:    ContractActive, DailyRate: 300, TotalCost: 900,
	}).Error)
	require.NoError(t, db.Create(&Reservation{
		AgencyID: 1, ClientID: 2, VehicleID: vehicle.ID,
		StartDate: time.Now().AddDate(0, 0, -1),
		EndDate:   time.Now().AddDate(0, 0, 1),
		Status:    ReservationConfirmed, EstimatedCost: 600,
	}).Error)

	require.NoError(t, ResolveVehicleStatus(db, &vehicle))
	assert.Equal(t, VehicleRented, vehicle.Status)
}

func TestResolveVehicleStatusReserved(t *testing.T) {
	db := newTestDB(t)
	vehicle := testVehicle(t, db, VehicleAvailable)

	require.NoError(t, db.Create(&Reservation{
		AgencyID: 1, ClientID: 1, VehicleID: vehicle.ID,
		StartDate: time.Now().AddDate(0, 0, -1),
		EndDate:   time.Now().AddDate(0, 0, 1),
		Status:    ReservationPending, EstimatedCost: 600,
	}).Error)

	require.NoError(t, ResolveVehicleStatus(db, &vehicle))
	assert.Equal(t, VehicleReserved, vehicle.Status)
}

func TestResolveVehicleStatusIgnoresClosedEngagements(t *testing.T) {
	db := newTestDB(t)
	vehicle := testVehicle(t, db, VehicleRented)

	require.NoError(t, db.Create(&Contract{
		AgencyID: 1, ClientID: 1, VehicleID: vehicle.ID,
		StartDate: time.Now().AddDate(0, 0, -10),
		EndDate:   time.Now().AddDate(0, 0, -5),
		Status:    ContractCompleted, DailyRate: 300, TotalCost: 1500,
	}).Error)
	require.NoError(t, db.Create(&Reservation{
		AgencyID: 1, ClientID: 1, VehicleID: vehicle.ID,
		StartDate: time.Now().AddDate(0, 0, -1),
		EndDate:   time.Now().AddDate(0, 0, 1),
		Status:    ReservationCancelled, EstimatedCost: 600,
	}).Error)

	require.NoError(t, ResolveVehicleStatus(db, &vehicle))
	assert.Equal(t, VehicleAvailable, vehicle.Status)
}

func TestResolveVehicleStatusManualOverrideSticks(t *testing.T) {
	db := newTestDB(t)
	vehicle := testVehicle(t, db, VehicleMaintenance)

	require.NoError(t, db.Create(&Contract{
		AgencyID: 1, ClientID: 1, VehicleID: vehicle.ID,
		StartDate: time.Now().AddDate(0, 0, -1),
		EndDate:   time.Now().AddDate(0, 0, 2),
		Status:    ContractActive, DailyRate: 300, TotalCost: 900,
	}).Error)

	require.NoError(t, ResolveVehicleStatus(db, &vehicle))
	assert.Equal(t, VehicleMaintenance, vehicle.Status)
}

func TestHasEngagementConflict(t *testing.T) {
	db := newTestDB(t)
	vehicle := testVehicle(t, db, VehicleAvailable)

	base := time.Date(2030, 6, 10, 0, 0, 0, 0, time.UTC)
	reservation := Reservation{
		AgencyID: 1, ClientID: 1, VehicleID: vehicle.ID,
		StartDate: base,
		EndDate:   base.AddDate(0, 0, 5),
		Status:    ReservationConfirmed, EstimatedCost: 1500,
	}
	require.NoError(t, db.Create(&reservation).Error)

	// Overlapping window
	conflict, err := HasEngagementConflict(db, vehicle.ID, base.AddDate(0, 0, 3), base.AddDate(0, 0, 8), 0, 0)
	require.NoError(t, err)
	assert.True(t, conflict)

	// Touching boundary counts as a conflict
	conflict, err = HasEngagementConflict(db, vehicle.ID, base.AddDate(0, 0, 5), base.AddDate(0, 0, 8), 0, 0)
	require.NoError(t, err)
	assert.True(t, conflict)

	// Disjoint window
	conflict, err = HasEngagementConflict(db, vehicle.ID, base.AddDate(0, 0, 6), base.AddDate(0, 0, 8), 0, 0)
	require.NoError(t, err)
	assert.False(t, conflict)

	// The engagement being edited is excluded from its own check
	conflict, err = HasEngagementConflict(db, vehicle.ID, base, base.AddDate(0, 0, 5), 0, reservation.ID)
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestFutureReservations(t *testing.T) {
	db := newTestDB(t)
	vehicle := testVehicle(t, db, VehicleAvailable)

	require.NoError(t, db.Create(&Reservation{
		AgencyID: 1, ClientID: 1, VehicleID: vehicle.ID,
		StartDate: time.Now().AddDate(0, 0, 3),
		EndDate:   time.Now().AddDate(0, 0, 5),
		Status:    ReservationConfirmed, EstimatedCost: 600,
	}).Error)
	require.NoError(t, db.Create(&Reservation{
		AgencyID: 1, ClientID: 2, VehicleID: vehicle.ID,
		StartDate: time.Now().AddDate(0, 0, 7),
		EndDate:   time.Now().AddDate(0, 0, 9),
		Status:    ReservationCancelled, EstimatedCost: 600,
	}).Error)
	require.NoError(t, db.Create(&Reservation{
		AgencyID: 1, ClientID: 3, VehicleID: vehicle.ID,
		StartDate: time.Now().AddDate(0, 0, -3),
		EndDate:   time.Now().AddDate(0, 0, -1),
		Status:    ReservationConfirmed, EstimatedCost: 600,
	}).Error)

	futures, err := FutureReservations(db, vehicle.ID, time.Now())
	require.NoError(t, err)
	require.Len(t, futures, 1)
	assert.Equal(t, uint(1), futures[0].ClientID)
}

func TestAlertDedupHash(t *testing.T) {
	db := newTestDB(t)
	vehicleID := uint(4)

	alert := Alert{
		AgencyID:  1,
		VehicleID: &vehicleID,
		Type:      AlertOilChange,
		Message:   "Vehicle AB-123: 11000 km since last oil change (interval 10000 km)",
	}
	require.NoError(t, db.Create(&alert).Error)
	assert.NotEmpty(t, alert.Hash)

	duplicate := Alert{
		AgencyID:  1,
		VehicleID: &vehicleID,
		Type:      AlertOilChange,
		Message:   "Vehicle AB-123: 11000 km since last oil change (interval 10000 km)",
	}
	assert.Error(t, db.Create(&duplicate).Error)

	differentMessage := Alert{
		AgencyID:  1,
		VehicleID: &vehicleID,
		Type:      AlertOilChange,
		Message:   "Vehicle AB-123: 12000 km since last oil change (interval 10000 km)",
	}
	assert.NoError(t, db.Create(&differentMessage).Error)
}
