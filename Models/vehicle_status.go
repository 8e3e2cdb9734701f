package Models

import (
	"time"

	"gorm.io/gorm"
)

// ResolveVehicleStatus recomputes the cached status of a vehicle from its
// current engagements. A manual MAINTENANCE or INACTIVE status always wins;
// otherwise an ACTIVE contract covering now means RENTED, a PENDING or
// CONFIRMED reservation covering now means RESERVED, and anything else is
// AVAILABLE. Must be called inside the same transaction as the mutation
// that may have changed the engagement set.
func ResolveVehicleStatus(tx *gorm.DB, vehicle *Vehicle) error {
	if vehicle.Status == VehicleMaintenance || vehicle.Status == VehicleInactive {
		return nil
	}

	now := time.Now()
	status := VehicleAvailable

	var contractCount int64
	err := tx.Model(&Contract{}).
		Where("vehicle_id = ? AND status = ? AND start_date <= ? AND end_date >= ?",
			vehicle.ID, ContractActive, now, now).
		Count(&contractCount).Error
	if err != nil {
		return err
	}

	if contractCount > 0 {
		status = VehicleRented
	} else {
		var reservationCount int64
		err = tx.Model(&Reservation{}).
			Where("vehicle_id = ? AND status IN ? AND start_date <= ? AND end_date >= ?",
				vehicle.ID, []string{ReservationPending, ReservationConfirmed}, now, now).
			Count(&reservationCount).Error
		if err != nil {
			return err
		}
		if reservationCount > 0 {
			status = VehicleReserved
		}
	}

	if vehicle.Status == status {
		return nil
	}
	vehicle.Status = status
	return tx.Model(&Vehicle{}).Where("id = ?", vehicle.ID).Update("status", status).Error
}

// ResolveVehicleStatusByID loads the vehicle and resolves its status.
func ResolveVehicleStatusByID(tx *gorm.DB, vehicleID uint) error {
	var vehicle Vehicle
	if err := tx.First(&vehicle, vehicleID).Error; err != nil {
		return err
	}
	return ResolveVehicleStatus(tx, &vehicle)
}

// ResolveAllVehicleStatuses sweeps every vehicle once. Runs at process
// start so cached statuses catch up with date boundaries crossed while
// the service was down.
func ResolveAllVehicleStatuses(db *gorm.DB) error {
	var vehicles []Vehicle
	if err := db.Find(&vehicles).Error; err != nil {
		return err
	}
	for i := range vehicles {
		if err := ResolveVehicleStatus(db, &vehicles[i]); err != nil {
			return err
		}
	}
	return nil
}

// HasEngagementConflict reports whether any ACTIVE contract or
// PENDING/CONFIRMED reservation on the vehicle overlaps [start, end].
// The exclude IDs let update paths skip the engagement being edited.
func HasEngagementConflict(tx *gorm.DB, vehicleID uint, start, end time.Time, excludeContractID, excludeReservationID uint) (bool, error) {
	var contractCount int64
	q := tx.Model(&Contract{}).
		Where("vehicle_id = ? AND status = ? AND start_date <= ? AND end_date >= ?",
			vehicleID, ContractActive, end, start)
	if excludeContractID != 0 {
		q = q.Where("id <> ?", excludeContractID)
	}
	if err := q.Count(&contractCount).Error; err != nil {
		return false, err
	}
	if contractCount > 0 {
		return true, nil
	}

	var reservationCount int64
	q = tx.Model(&Reservation{}).
		Where("vehicle_id = ? AND status IN ? AND start_date <= ? AND end_date >= ?",
			vehicleID, []string{ReservationPending, ReservationConfirmed}, end, start)
	if excludeReservationID != 0 {
		q = q.Where("id <> ?", excludeReservationID)
	}
	if err := q.Count(&reservationCount).Error; err != nil {
		return false, err
	}
	return reservationCount > 0, nil
}

// FutureReservations returns PENDING/CONFIRMED reservations on the vehicle
// that start after the given time. Used when a damaged return parks the
// vehicle in maintenance and upcoming bookings need a conflict warning.
func FutureReservations(tx *gorm.DB, vehicleID uint, after time.Time) ([]Reservation, error) {
	var reservations []Reservation
	err := tx.Where("vehicle_id = ? AND status IN ? AND start_date > ?",
		vehicleID, []string{ReservationPending, ReservationConfirmed}, after).
		Find(&reservations).Error
	return reservations, err
}
