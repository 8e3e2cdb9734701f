package CronJobs

import (
	"fmt"
	"log"
	"time"

	"Rentex/Models"
	"Rentex/email"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ComplianceChecker represents the scheduled fleet compliance service. It
// raises alerts for expiring vehicle documents, overdue oil changes and
// same-day client arrivals, and mails each agency a digest of its open
// alerts when SMTP is configured.
type ComplianceChecker struct {
	db             *gorm.DB
	cronScheduler  *cron.Cron
	runImmediately bool
	jobID          cron.EntryID
}

// NewComplianceChecker creates a new compliance checker
func NewComplianceChecker(db *gorm.DB, runImmediately bool) *ComplianceChecker {
	return &ComplianceChecker{
		db:             db,
		cronScheduler:  cron.New(cron.WithSeconds()),
		runImmediately: runImmediately,
	}
}

// Start initiates the compliance check cron job
func (s *ComplianceChecker) Start() error {
	var err error
	s.jobID, err = s.cronScheduler.AddFunc("0 0 6 * * *", func() {
		log.Println("Running scheduled daily compliance check")
		s.runComplianceCheck()
	})
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	s.cronScheduler.Start()
	log.Println("Compliance check scheduler started - will run daily at 6:00 AM")

	if s.runImmediately {
		log.Println("Running initial compliance check")
		s.runComplianceCheck()
	}
	return nil
}

// Stop terminates the compliance checker
func (s *ComplianceChecker) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
		log.Println("Compliance check scheduler stopped")
	}
}

// UpdateSchedule changes the schedule of the compliance checker
// Format: "0 0 6 * * *" = At 06:00:00 AM every day
func (s *ComplianceChecker) UpdateSchedule(schedule string) error {
	s.cronScheduler.Remove(s.jobID)

	var err error
	s.jobID, err = s.cronScheduler.AddFunc(schedule, func() {
		log.Println("Running scheduled compliance check")
		s.runComplianceCheck()
	})
	if err != nil {
		return fmt.Errorf("error updating schedule: %w", err)
	}

	log.Printf("Compliance check schedule updated to: %s\n", schedule)
	return nil
}

// RunManualCheck executes a manual compliance check
func (s *ComplianceChecker) RunManualCheck() {
	log.Println("Running manual compliance check")
	s.runComplianceCheck()
}

func (s *ComplianceChecker) runComplianceCheck() {
	var agencies []Models.Agency
	if err := s.db.Find(&agencies).Error; err != nil {
		log.Printf("Error loading agencies: %v\n", err)
		return
	}

	emailConfig, emailEnabled := Models.EmailConfigFromEnv()

	for i := range agencies {
		agency := agencies[i]
		created := 0
		created += s.checkVehicleDocuments(agency)
		created += s.checkOilChanges(agency)
		created += s.checkClientArrivals(agency)
		log.Printf("Compliance check for agency %d: %d new alerts\n", agency.ID, created)

		if emailEnabled && created > 0 {
			var open []Models.Alert
			s.db.Where("agency_id = ? AND resolved = ?", agency.ID, false).
				Order("created_at DESC").Find(&open)
			if err := email.SendAlertDigest(emailConfig, agency, open); err != nil {
				log.Printf("Error sending alert digest to agency %d: %v\n", agency.ID, err)
			}
		}
	}
}

// checkVehicleDocuments raises one alert per vehicle document expiring
// within the agency's reminder window (or already expired).
func (s *ComplianceChecker) checkVehicleDocuments(agency Models.Agency) int {
	deadline := time.Now().AddDate(0, 0, agency.DocumentReminderDays)

	var vehicles []Models.Vehicle
	err := s.db.Where("agency_id = ? AND status <> ?", agency.ID, Models.VehicleInactive).
		Find(&vehicles).Error
	if err != nil {
		log.Printf("Error loading vehicles for agency %d: %v\n", agency.ID, err)
		return 0
	}

	created := 0
	for i := range vehicles {
		vehicle := vehicles[i]
		documents := []struct {
			alertType string
			label     string
			date      *time.Time
		}{
			{Models.AlertInsurance, "insurance", vehicle.InsuranceExpirationDate},
			{Models.AlertInspection, "technical inspection", vehicle.InspectionExpirationDate},
			{Models.AlertTrafficLicense, "traffic license", vehicle.TrafficLicenseExpiration},
		}
		for _, doc := range documents {
			if doc.date == nil || doc.date.After(deadline) {
				continue
			}
			created += s.createAlert(Models.Alert{
				AgencyID:  agency.ID,
				VehicleID: &vehicle.ID,
				Type:      doc.alertType,
				Message: fmt.Sprintf("Vehicle %s: %s expires on %s",
					vehicle.PlateNo, doc.label, doc.date.Format("2006-01-02")),
			})
		}
	}
	return created
}

// checkOilChanges raises an alert when a vehicle has driven past the
// agency's oil-change interval since its last recorded change.
func (s *ComplianceChecker) checkOilChanges(agency Models.Agency) int {
	var vehicles []Models.Vehicle
	err := s.db.Where("agency_id = ? AND status <> ?", agency.ID, Models.VehicleInactive).
		Find(&vehicles).Error
	if err != nil {
		log.Printf("Error loading vehicles for agency %d: %v\n", agency.ID, err)
		return 0
	}

	created := 0
	for i := range vehicles {
		vehicle := vehicles[i]
		driven := vehicle.Mileage - vehicle.LastOilChangeMileage
		if driven < int64(agency.OilChangeReminderKm) {
			continue
		}
		created += s.createAlert(Models.Alert{
			AgencyID:  agency.ID,
			VehicleID: &vehicle.ID,
			Type:      Models.AlertOilChange,
			Message: fmt.Sprintf("Vehicle %s: %d km since last oil change (interval %d km)",
				vehicle.PlateNo, driven, agency.OilChangeReminderKm),
		})
	}
	return created
}

// checkClientArrivals raises an alert for every confirmed reservation
// starting today.
func (s *ComplianceChecker) checkClientArrivals(agency Models.Agency) int {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var reservations []Models.Reservation
	err := s.db.Where(
		"agency_id = ? AND status = ? AND start_date >= ? AND start_date < ?",
		agency.ID, Models.ReservationConfirmed, dayStart, dayEnd,
	).Preload("Client").Preload("Vehicle").Find(&reservations).Error
	if err != nil {
		log.Printf("Error loading reservations for agency %d: %v\n", agency.ID, err)
		return 0
	}

	created := 0
	for i := range reservations {
		reservation := reservations[i]
		reservationID := reservation.ID
		created += s.createAlert(Models.Alert{
			AgencyID:      agency.ID,
			VehicleID:     &reservation.VehicleID,
			ClientID:      &reservation.ClientID,
			ReservationID: &reservationID,
			Type:          Models.AlertClientArrival,
			Message: fmt.Sprintf("%s %s arrives today for vehicle %s (reservation #%d)",
				reservation.Client.FirstName, reservation.Client.LastName,
				reservation.Vehicle.PlateNo, reservationID),
		})
	}
	return created
}

// createAlert inserts the alert, relying on the dedup hash to swallow
// repeats across daily runs. Returns 1 only for a genuinely new alert.
func (s *ComplianceChecker) createAlert(alert Models.Alert) int {
	if err := s.db.Create(&alert).Error; err != nil {
		// Unique constraint hit means this alert already exists
		return 0
	}
	return 1
}
