package main

import (
	"context"
	"os"

	"fintrack/internal/cli"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(nil)
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg)

	repo := cli.InitSQLite(logger, cfg.DBPath)

	svc := services.NewTrackerService(repo, logger.WithComponent(log.ComponentTracker))
	defer svc.Close()

	logger.Info("Starting fintrack", log.FieldOperation, log.OpStartup, log.FieldDBPath, cfg.DBPath)

	menu := cli.NewMenu(svc, os.Stdin, os.Stdout, logger.WithComponent(log.ComponentMenu))
	if err := menu.Run(context.Background()); err != nil {
		logger.Error("Session ended with error", log.FieldError, err)
		os.Exit(1)
	}
}
