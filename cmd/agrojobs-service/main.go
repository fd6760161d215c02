package main

import (
	"fmt"
	"os"

	"github.com/nurpe/agrojobs/internal/auth"
	"github.com/nurpe/agrojobs/internal/config"
	"github.com/nurpe/agrojobs/internal/db"
	"github.com/nurpe/agrojobs/internal/excel"
	httphandler "github.com/nurpe/agrojobs/internal/http"
	"github.com/nurpe/agrojobs/internal/http/middleware"
	"github.com/nurpe/agrojobs/internal/logger"
	"github.com/nurpe/agrojobs/internal/pdf"
	"github.com/nurpe/agrojobs/internal/repository"
	"github.com/nurpe/agrojobs/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	clientRepo := repository.NewClientRepository(database)
	resourceRepo := repository.NewResourceRepository(database)
	jobRepo := repository.NewJobRepository(database)

	clientService := service.NewClientService(clientRepo)
	resourceService := service.NewResourceService(resourceRepo)
	jobService := service.NewJobService(jobRepo, clientRepo, resourceRepo, cfg.Reports.ExpenseCategories)
	reportService := service.NewReportService(jobRepo, clientRepo, excel.NewGenerator(), pdf.NewGenerator(), cfg.Reports.ShareBaseURL)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(clientService, resourceService, jobService, reportService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg, log)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting agrojobs service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
