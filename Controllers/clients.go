package Controllers

import (
	"encoding/json"
	"strconv"

	"Rentex/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// GetClients lists the agency's clients.
// GET /api/clients
func GetClients(c *fiber.Ctx) error {
	user := CurrentUser(c)

	var clients []Models.Client
	query := Models.DB.Where("agency_id = ?", user.AgencyID)
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR driver_license LIKE ?", like, like, like)
	}
	if err := query.Order("last_name ASC").Find(&clients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to retrieve clients"})
	}
	return c.JSON(clients)
}

// GetClient retrieves a single client.
// GET /api/clients/:id
func GetClient(c *fiber.Ctx) error {
	user := CurrentUser(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid client ID"})
	}

	var client Models.Client
	if err := Models.DB.Where("id = ? AND agency_id = ?", id, user.AgencyID).First(&client).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Client not found"})
	}
	return c.JSON(client)
}

// CreateClient registers a renter. DriverLicense and Email must be unique
// within the agency.
// POST /api/clients
func CreateClient(c *fiber.Ctx) error {
	user := CurrentUser(c)

	var req Models.ClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var existing int64
	Models.DB.Model(&Models.Client{}).
		Where("agency_id = ? AND (driver_license = ? OR email = ?)", user.AgencyID, req.DriverLicense, req.Email).
		Count(&existing)
	if existing > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "A client with this driver license or email already exists",
		})
	}

	client := Models.Client{
		AgencyID:      user.AgencyID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		NationalID:    req.NationalID,
		DriverLicense: req.DriverLicense,
		Notes:         req.Notes,
	}
	if req.BirthDate != "" {
		client.BirthDate = &req.BirthDate
	}

	if err := Models.DB.Create(&client).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create client"})
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// UpdateClient patches client fields.
// PUT /api/clients/:id
func UpdateClient(c *fiber.Ctx) error {
	user := CurrentUser(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid client ID"})
	}

	var client Models.Client
	if err := Models.DB.Where("id = ? AND agency_id = ?", id, user.AgencyID).First(&client).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Client not found"})
	}

	var req Models.UpdateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if req.DriverLicense != "" || req.Email != "" {
		var conflict int64
		Models.DB.Model(&Models.Client{}).
			Where("agency_id = ? AND id <> ? AND (driver_license = ? OR email = ?)",
				user.AgencyID, client.ID, req.DriverLicense, req.Email).
			Count(&conflict)
		if conflict > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "A client with this driver license or email already exists",
			})
		}
	}

	updates := make(map[string]interface{})
	if req.FirstName != "" {
		updates["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		updates["last_name"] = req.LastName
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.NationalID != "" {
		updates["national_id"] = req.NationalID
	}
	if req.DriverLicense != "" {
		updates["driver_license"] = req.DriverLicense
	}
	if req.BirthDate != "" {
		updates["birth_date"] = req.BirthDate
	}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}

	if len(updates) > 0 {
		Models.DB.Model(&client).Updates(updates)
		Models.DB.First(&client, client.ID)
	}
	return c.JSON(client)
}

// UploadClientDocuments accepts multipart identity-document files and
// replaces the client's stored document list. Old files are removed
// best-effort.
// POST /api/clients/:id/documents
func UploadClientDocuments(c *fiber.Ctx) error {
	user := CurrentUser(c)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid client ID"})
	}

	var client Models.Client
	if err := Models.DB.Where("id = ? AND agency_id = ?", id, user.AgencyID).First(&client).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Client not found"})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid multipart form"})
	}
	files := form.File["documents"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "No documents provided"})
	}

	var paths []string
	for _, file := range files {
		path, err := saveUploadedFile(c, file, "clientsData")
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to save document"})
		}
		paths = append(paths, path)
	}

	// Remove the replaced files; a failed delete is logged, never surfaced
	var oldPaths []string
	if len(client.Documents) > 0 {
		if err := json.Unmarshal(client.Documents, &oldPaths); err == nil {
			for _, old := range oldPaths {
				removeStoredFile(old)
			}
		}
	}

	encoded, err := json.Marshal(paths)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to encode document list"})
	}
	client.Documents = datatypes.JSON(encoded)
	if err := Models.DB.Model(&client).Update("documents", client.Documents).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update client"})
	}

	return c.JSON(client)
}
