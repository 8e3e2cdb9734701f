package Controllers

import (
	"time"

	"Rentex/Models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CurrentUser returns the authenticated user loaded by middleware.Verify.
func CurrentUser(c *fiber.Ctx) Models.User {
	user, _ := c.Locals("user").(Models.User)
	return user
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// paymentDate parses an optional YYYY-MM-DD payment date, defaulting to now.
func paymentDate(value string) time.Time {
	if value == "" {
		return time.Now()
	}
	date, err := parseDate(value)
	if err != nil {
		return time.Now()
	}
	return date
}

// daysBetween counts whole days from start to end, rounding partial days
// up and never returning less than 1. Billing treats any started day as a
// full rental day.
func daysBetween(start, end time.Time) int {
	hours := end.Sub(start).Hours()
	days := int(hours / 24)
	if hours > float64(days)*24 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

func sumPayments(payments []Models.Payment) float64 {
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}
