package main

import (
	"log"
	"os"

	"Rentex/CronJobs"
	"Rentex/FiberConfig"
	"Rentex/Models"
)

func main() {
	setupLogging()

	Models.Connect()

	complianceChecker := CronJobs.NewComplianceChecker(Models.DB, true)
	if err := complianceChecker.Start(); err != nil {
		log.Printf("Failed to start compliance checker: %v\n", err)
	}
	defer complianceChecker.Stop()

	FiberConfig.FiberConfig()
}

func setupLogging() {
	// Create logs directory if it doesn't exist
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Printf("Error creating logs directory: %v\n", err)
		return
	}

	logFile, err := os.OpenFile("logs/application.log",
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Error opening log file: %v\n", err)
		return
	}

	log.SetOutput(logFile)
	log.SetFlags(log.Ldate | log.Ltime)
}
