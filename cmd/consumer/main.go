// The consumer binary subscribes to the deal-closed topic and provisions
// onboarding training for each closed customer. Runs as its own process so
// a kafka outage never touches the API.
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

	if err := app.RunConsumer(); err != nil {
		logger.Fatal("run consumer failed", zap.Error(err))
	}
}
