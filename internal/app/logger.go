package app

import (
	"os"

	"service-pickup/internal/config"
	"service-pickup/internal/logx"
)

// NewLogger builds the service logger from configuration.
func NewLogger(cfg *config.Config) logx.Logger {
	return logx.New(logx.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	}, os.Stdout)
}
