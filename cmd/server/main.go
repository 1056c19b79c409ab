package main

import (
	"context"
	"fmt"

	"github.com/murvyn/todo-app/internal/config"
	httphandler "github.com/murvyn/todo-app/internal/handler/http"
	"github.com/murvyn/todo-app/internal/logger"
	"github.com/murvyn/todo-app/internal/mail"
	"github.com/murvyn/todo-app/internal/server"
	"github.com/murvyn/todo-app/internal/service"
	"github.com/murvyn/todo-app/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("todo-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	mailer := mail.NewSMTPMailer(cfg.Mail, log)
	services := service.NewServices(storages, mailer, cfg, log)
	handler := httphandler.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
