package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/poinet/profiler-backend-go/internal/config"
	"github.com/poinet/profiler-backend-go/internal/console"
	"github.com/poinet/profiler-backend-go/internal/correlate"
	"github.com/poinet/profiler-backend-go/internal/database"
	"github.com/poinet/profiler-backend-go/internal/repository"
	"github.com/poinet/profiler-backend-go/internal/service"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		logrus.WithError(err).Fatal("failed to initialize database")
	}
	defer database.Close()

	db := database.GetDB()
	if err := database.EnsureSchema(db); err != nil {
		logrus.WithError(err).Fatal("failed to create schema")
	}
	if err := database.NewIngestor(db, cfg.DataDir).Run(); err != nil {
		logrus.WithError(err).Fatal("failed to ingest datasets")
	}

	profileService := service.NewProfileService(
		repository.NewPersonRepository(db),
		repository.NewTrailRepository(db),
		repository.NewBusinessRepository(db),
		repository.NewEventRepository(db),
		repository.NewCrimeRepository(db),
		repository.NewRelationRepository(db),
		correlate.DefaultConfig(),
	)

	runner := console.NewRunner(profileService, os.Stdin, os.Stdout, os.Stderr)
	if err := runner.Run(); err != nil {
		logrus.WithError(err).Fatal("console failed")
	}
}
