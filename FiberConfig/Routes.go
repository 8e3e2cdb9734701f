package FiberConfig

import (
	"fmt"
	"os"
	"time"

	"Rentex/Controllers"
	"Rentex/Models"
	"Rentex/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	reservationController := Controllers.NewReservationController(db)
	contractController := Controllers.NewContractController(db)

	// Public auth routes
	app.Post("/api/register", Controllers.Register)
	app.Post("/api/login", Controllers.Login)
	app.Post("/api/logout", Controllers.Logout)
	app.Get("/api/user", middleware.Verify(Models.RoleUser), Controllers.User)

	// User management (admin only)
	app.Post("/api/users", middleware.Verify(Models.RoleAdmin), Controllers.RegisterUser)
	app.Get("/api/users", middleware.Verify(Models.RoleAdmin), Controllers.FetchUsers)
	app.Patch("/api/users/:id", middleware.Verify(Models.RoleAdmin), Controllers.UpdateUser)
	app.Delete("/api/users/:id", middleware.Verify(Models.RoleAdmin), Controllers.DeleteUser)

	// Agency routes
	agency := app.Group("/api/agency", middleware.Verify(Models.RoleUser))
	agency.Get("/", Controllers.GetMyAgency)
	agency.Get("/settings", Controllers.GetAgencySettings)
	agency.Put("/settings", middleware.Verify(Models.RoleAdmin), Controllers.UpdateAgencySettings)

	// Client routes
	clients := app.Group("/api/clients", middleware.Verify(Models.RoleUser))
	clients.Get("/", Controllers.GetClients)
	clients.Post("/", Controllers.CreateClient)
	clients.Get("/:id", Controllers.GetClient)
	clients.Put("/:id", Controllers.UpdateClient)
	clients.Post("/:id/documents", Controllers.UploadClientDocuments)

	// Vehicle routes
	vehicles := app.Group("/api/vehicles", middleware.Verify(Models.RoleUser))
	vehicles.Get("/", Controllers.GetVehicles)
	vehicles.Post("/", Controllers.CreateVehicle)
	vehicles.Get("/:id", Controllers.GetVehicle)
	vehicles.Put("/:id", Controllers.UpdateVehicle)
	vehicles.Post("/:id/images", Controllers.UploadVehicleImages)

	// Reservation routes
	reservations := app.Group("/api/reservations", middleware.Verify(Models.RoleUser))
	reservations.Get("/", reservationController.GetReservations)
	reservations.Post("/", reservationController.CreateReservation)
	reservations.Get("/:id", reservationController.GetReservation)
	reservations.Patch("/:id", reservationController.UpdateReservation)
	reservations.Patch("/:id/confirm", reservationController.ConfirmReservation)
	reservations.Patch("/:id/cancel", reservationController.CancelReservation)

	// Contract routes
	contracts := app.Group("/api/contracts", middleware.Verify(Models.RoleUser))
	contracts.Get("/", contractController.GetContracts)
	contracts.Post("/", contractController.CreateContract)
	contracts.Get("/:id", contractController.GetContract)
	contracts.Patch("/:id", contractController.UpdateContract)
	contracts.Patch("/:id/cancel", contractController.CancelContract)
	contracts.Patch("/:id/terminate", contractController.TerminateContract)
	contracts.Post("/:id/payments", contractController.AddPayment)

	// Invoice routes
	invoices := app.Group("/api/invoices", middleware.Verify(Models.RoleUser))
	invoices.Get("/", Controllers.GetInvoices)
	invoices.Get("/:id", Controllers.GetInvoice)
	invoices.Get("/:id/print", Controllers.PrintInvoice)
	invoices.Post("/:id/payments", Controllers.AddInvoicePayment)

	// Payment listing
	app.Get("/api/payments", middleware.Verify(Models.RoleUser), Controllers.GetPayments)

	// Alert routes
	alerts := app.Group("/api/alerts", middleware.Verify(Models.RoleUser))
	alerts.Get("/", Controllers.GetAlerts)
	alerts.Patch("/:id/resolve", Controllers.ResolveAlert)

	// Dashboard routes
	dashboard := app.Group("/api/dashboard", middleware.Verify(Models.RoleUser))
	dashboard.Get("/stats", Controllers.GetDashboardStats)
	dashboard.Get("/calendar", Controllers.GetCalendarData)
	dashboard.Get("/revenue/export", middleware.Verify(Models.RoleAdmin), Controllers.ExportRevenue)
}

func FiberConfig() {
	fmt.Println("Server Up...")
	engine := html.New("./Templates", ".html")
	// Html Template engine
	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression, // 2
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true, // Important for cookies
		MaxAge:           300,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupRoutes(app, Models.DB)

	// Serve stored uploads
	app.Static("/uploads", "./uploads", fiber.Static{Compress: true, CacheDuration: time.Second * 10})
	app.Static("/clientsData", "./clientsData", fiber.Static{Compress: true, CacheDuration: time.Second * 10})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	app.Listen(":" + port)
}
