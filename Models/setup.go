package Models

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the database selected by DB_DRIVER (sqlite by default),
// runs migrations and sweeps vehicle statuses once so the cached values
// catch up with anything that expired while the service was down.
func Connect() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	connection, err := openDatabase()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	DB = connection

	Migrate(DB)

	if err := ResolveAllVehicleStatuses(DB); err != nil {
		log.Printf("Error resolving vehicle statuses at startup: %v", err)
	} else {
		log.Println("Vehicle statuses resolved")
	}
}

func openDatabase() (*gorm.DB, error) {
	switch os.Getenv("DB_DRIVER") {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
			os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_HOST"),
			os.Getenv("DB_PORT"), os.Getenv("DB_NAME"))
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "database.db"
		}
		return gorm.Open(sqlite.Open(path), &gorm.Config{})
	}
}

// Migrate runs AutoMigrate in dependency order.
func Migrate(db *gorm.DB) {
	// 1. Tenant root and standalone tables
	db.AutoMigrate(
		&Agency{},
		&User{},
		&Client{},
		&Vehicle{},
	)

	// 2. Engagements
	db.AutoMigrate(
		&Reservation{},
		&Contract{},
	)

	// 3. Bookkeeping that references engagements
	db.AutoMigrate(
		&Invoice{},
		&Payment{},
		&Alert{},
	)
}
