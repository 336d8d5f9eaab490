// The worker binary runs the outbox relay: it polls staged deal-closed
// events and publishes them to Kafka. It shares nothing with the HTTP
// process except the database.
package main

import (
	"go-salescrm/internal/app"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := app.RunWorker(); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
