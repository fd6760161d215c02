package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nurpe/agrojobs/internal/cli"
	"github.com/nurpe/agrojobs/internal/config"
	"github.com/nurpe/agrojobs/internal/db"
	"github.com/nurpe/agrojobs/internal/excel"
	"github.com/nurpe/agrojobs/internal/logger"
	"github.com/nurpe/agrojobs/internal/pdf"
	"github.com/nurpe/agrojobs/internal/repository"
	"github.com/nurpe/agrojobs/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(open)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func open() (*cli.Deps, error) {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}

	clientRepo := repository.NewClientRepository(database)
	resourceRepo := repository.NewResourceRepository(database)
	jobRepo := repository.NewJobRepository(database)

	return &cli.Deps{
		Reports:   service.NewReportService(jobRepo, clientRepo, excel.NewGenerator(), pdf.NewGenerator(), cfg.Reports.ShareBaseURL),
		Clients:   service.NewClientService(clientRepo),
		Resources: service.NewResourceService(resourceRepo),
		Close:     sqlDB.Close,
	}, nil
}
