package config

import (
	"os"

	"go.uber.org/zap"
)

var Logger *zap.Logger

// InitLogger sets up the process-wide logger. Development encoding when
// APP_ENV is not "production".
func InitLogger() {
	var err error
	if os.Getenv("APP_ENV") == "production" {
		Logger, err = zap.NewProduction()
	} else {
		Logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
}
