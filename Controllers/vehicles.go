package Controllers

import (
	"encoding/json"
	"strconv"

	"Rentex/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// GetVehicles lists the agency's fleet, optionally filtered by status.
// GET /api/vehicles
func GetVehicles(c *fiber.Ctx) error {
	user := CurrentUser(c)

	var vehicles []Models.Vehicle
	query := Models.DB.Where("agency_id = ?", user.AgencyID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("plate_no ASC").Find(&vehicles).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to retrieve vehicles"})
	}
	return c.JSON(vehicles)
}

// GetVehicle retrieves a single vehicle.
// GET /api/vehicles/:id
func GetVehicle(c *fiber.Ctx) error {
	user := CurrentUser(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid vehicle ID"})
	}

	var vehicle Models.Vehicle
	if err := Models.DB.Where("id = ? AND agency_id = ?", id, user.AgencyID).First(&vehicle).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Vehicle not found"})
	}
	return c.JSON(vehicle)
}

// CreateVehicle registers a vehicle in the fleet.
// POST /api/vehicles
func CreateVehicle(c *fiber.Ctx) error {
	user := CurrentUser(c)

	var req Models.VehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var existing int64
	Models.DB.Model(&Models.Vehicle{}).
		Where("agency_id = ? AND plate_no = ?", user.AgencyID, req.PlateNo).
		Count(&existing)
	if existing > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "A vehicle with this plate already exists"})
	}

	vehicle := Models.Vehicle{
		AgencyID:             user.AgencyID,
		PlateNo:              req.PlateNo,
		Make:                 req.Make,
		CarModel:             req.CarModel,
		Year:                 req.Year,
		Color:                req.Color,
		Mileage:              req.Mileage,
		DailyRate:            req.DailyRate,
		Status:               Models.VehicleAvailable,
		LastOilChangeMileage: req.LastOilChangeMileage,
	}
	if req.FuelLevel != 0 {
		vehicle.FuelLevel = req.FuelLevel
	} else {
		vehicle.FuelLevel = 100
	}
	if req.Status != "" {
		vehicle.Status = req.Status
	}
	if err := applyVehicleDates(&vehicle, req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := Models.DB.Create(&vehicle).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create vehicle"})
	}
	return c.Status(fiber.StatusCreated).JSON(vehicle)
}

// UpdateVehicle patches vehicle fields. Setting the status to MAINTENANCE
// or INACTIVE is a manual override that sticks until cleared; clearing it
// (status AVAILABLE) hands control back to the resolver.
// PUT /api/vehicles/:id
func UpdateVehicle(c *fiber.Ctx) error {
	user := CurrentUser(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid vehicle ID"})
	}

	var vehicle Models.Vehicle
	if err := Models.DB.Where("id = ? AND agency_id = ?", id, user.AgencyID).First(&vehicle).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Vehicle not found"})
	}

	var req Models.UpdateVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if req.PlateNo != "" && req.PlateNo != vehicle.PlateNo {
		var conflict int64
		Models.DB.Model(&Models.Vehicle{}).
			Where("agency_id = ? AND plate_no = ? AND id <> ?", user.AgencyID, req.PlateNo, vehicle.ID).
			Count(&conflict)
		if conflict > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "A vehicle with this plate already exists"})
		}
	}

	updates := make(map[string]interface{})
	if req.PlateNo != "" {
		updates["plate_no"] = req.PlateNo
	}
	if req.Make != "" {
		updates["make"] = req.Make
	}
	if req.CarModel != "" {
		updates["car_model"] = req.CarModel
	}
	if req.Year != 0 {
		updates["year"] = req.Year
	}
	if req.Color != "" {
		updates["color"] = req.Color
	}
	if req.Mileage != 0 {
		updates["mileage"] = req.Mileage
	}
	if req.DailyRate != 0 {
		updates["daily_rate"] = req.DailyRate
	}
	if req.FuelLevel != 0 {
		updates["fuel_level"] = req.FuelLevel
	}
	if req.LastOilChangeMileage != 0 {
		updates["last_oil_change_mileage"] = req.LastOilChangeMileage
	}
	if req.InsuranceExpirationDate != "" {
		date, err := parseDate(req.InsuranceExpirationDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid insurance_expiration_date. Use YYYY-MM-DD"})
		}
		updates["insurance_expiration_date"] = date
	}
	if req.InspectionExpirationDate != "" {
		date, err := parseDate(req.InspectionExpirationDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid inspection_expiration_date. Use YYYY-MM-DD"})
		}
		updates["inspection_expiration_date"] = date
	}
	if req.TrafficLicenseExpiration != "" {
		date, err := parseDate(req.TrafficLicenseExpiration)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid traffic_license_expiration. Use YYYY-MM-DD"})
		}
		updates["traffic_license_expiration"] = date
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	if len(updates) > 0 {
		if err := Models.DB.Model(&vehicle).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update vehicle"})
		}
		Models.DB.First(&vehicle, vehicle.ID)
	}

	// Clearing a manual override re-derives the status from engagements
	if req.Status == Models.VehicleAvailable {
		if err := Models.ResolveVehicleStatus(Models.DB, &vehicle); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to resolve vehicle status"})
		}
	}

	return c.JSON(vehicle)
}

// UploadVehicleImages accepts multipart image files, stores them with
// thumbnails and replaces the vehicle's image list.
// POST /api/vehicles/:id/images
func UploadVehicleImages(c *fiber.Ctx) error {
	user := CurrentUser(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid vehicle ID"})
	}

	var vehicle Models.Vehicle
	if err := Models.DB.Where("id = ? AND agency_id = ?", id, user.AgencyID).First(&vehicle).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Vehicle not found"})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid multipart form"})
	}
	files := form.File["images"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "No images provided"})
	}

	var paths []string
	for _, file := range files {
		path, err := saveVehicleImage(c, file, "uploads/vehicles")
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to save image"})
		}
		paths = append(paths, path)
	}

	var oldPaths []string
	if len(vehicle.Images) > 0 {
		if err := json.Unmarshal(vehicle.Images, &oldPaths); err == nil {
			for _, old := range oldPaths {
				removeStoredFile(old)
			}
		}
	}

	encoded, err := json.Marshal(paths)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to encode image list"})
	}
	vehicle.Images = datatypes.JSON(encoded)
	if err := Models.DB.Model(&vehicle).Update("images", vehicle.Images).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update vehicle"})
	}

	return c.JSON(vehicle)
}

func applyVehicleDates(vehicle *Models.Vehicle, req Models.VehicleRequest) error {
	if req.InsuranceExpirationDate != "" {
		date, err := parseDate(req.InsuranceExpirationDate)
		if err != nil {
			return err
		}
		vehicle.InsuranceExpirationDate = &date
	}
	if req.InspectionExpirationDate != "" {
		date, err := parseDate(req.InspectionExpirationDate)
		if err != nil {
			return err
		}
		vehicle.InspectionExpirationDate = &date
	}
	if req.TrafficLicenseExpiration != "" {
		date, err := parseDate(req.TrafficLicenseExpiration)
		if err != nil {
			return err
		}
		vehicle.TrafficLicenseExpiration = &date
	}
	return nil
}
