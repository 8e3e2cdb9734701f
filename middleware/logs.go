package middleware

import (
	"encoding/json"
	"log"
	"os"
	"sync"
	"time"

	"Rentex/Models"

	"github.com/gofiber/fiber/v2"
)

// LogData contains the information written per request
type LogData struct {
	Timestamp time.Time     `json:"timestamp"`
	Method    string        `json:"method"`
	Path      string        `json:"path"`
	Status    int           `json:"status"`
	Latency   time.Duration `json:"latency"`
	IP        string        `json:"ip"`
	UserID    interface{}   `json:"user_id,omitempty"`
	AgencyID  interface{}   `json:"agency_id,omitempty"`
	Error     string        `json:"error,omitempty"`
}

var (
	logFileMu sync.Mutex
	logFile   *os.File
)

// RequestLogger logs every request to the console and appends a JSON line
// to logs/requests.log. Health checks are skipped.
func RequestLogger() fiber.Handler {
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Printf("Error creating logs directory: %v\n", err)
	}

	return func(c *fiber.Ctx) error {
		if c.Path() == "/health" {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		data := LogData{
			Timestamp: start,
			Method:    c.Method(),
			Path:      c.Path(),
			Status:    c.Response().StatusCode(),
			Latency:   time.Since(start),
			IP:        c.IP(),
		}
		if user, ok := c.Locals("user").(Models.User); ok {
			data.UserID = user.ID
			data.AgencyID = user.AgencyID
		}
		if err != nil {
			data.Error = err.Error()
		}

		log.Println(c.Method(), c.Path(), data.Status, data.Latency)
		writeLogLine(data)

		return err
	}
}

func writeLogLine(data LogData) {
	logFileMu.Lock()
	defer logFileMu.Unlock()

	if logFile == nil {
		f, err := os.OpenFile("logs/requests.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Printf("Error opening request log file: %v\n", err)
			return
		}
		logFile = f
	}

	line, err := json.Marshal(data)
	if err != nil {
		return
	}
	line = append(line, '\n')
	if _, err := logFile.Write(line); err != nil {
		log.Printf("Error writing request log: %v\n", err)
	}
}
