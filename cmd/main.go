package main

import (
	"github.com/joho/godotenv"

	"github.com/syncflowhq/syncflow/config"
	"github.com/syncflowhq/syncflow/internal/api/v1/routes"
	"github.com/syncflowhq/syncflow/internal/app"
	"github.com/syncflowhq/syncflow/internal/db"
	"github.com/syncflowhq/syncflow/internal/events"
	"github.com/syncflowhq/syncflow/internal/logger"
	"github.com/syncflowhq/syncflow/internal/notify"
)

func main() {
	// .env is optional; real deployments configure the environment directly
	_ = godotenv.Load()
	logger.InitializeAndConfigure()

	database, err := db.New(config.DBOptionsFromEnv())
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	var notifier notify.Notifier
	if apiKey := config.GetEnv(config.EnvResendAPIKey, ""); apiKey != "" {
		notifier = notify.NewResendNotifier(apiKey, config.GetEnv(config.EnvPublicURL, "http://localhost:"+routes.DefaultPort))
	} else {
		logger.Warn("RESEND_API_KEY not set, email notifications disabled")
		notifier = notify.NewLogNotifier()
	}

	hub := events.NewHub()
	server := app.NewApp(database, notifier, hub)

	port := config.GetEnv(config.EnvAPIPort, routes.DefaultPort)
	logger.Infof("Starting API server on port %s", port)
	logger.Fatal(server.Listen(":" + port))
}
