// Package cli implements the agrojobs command line tool.
package cli

import (
	"context"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nurpe/agrojobs/internal/model"
	"github.com/nurpe/agrojobs/internal/seed"
	"github.com/nurpe/agrojobs/internal/service"
)

type ReportService interface {
	Share(ctx context.Context, input service.ReportInput) (*service.ShareResult, error)
	Summary(ctx context.Context, input service.ReportInput) (*service.SummaryResult, error)
	ExportXLSX(ctx context.Context, input service.ReportInput) (*service.GenerateReportResult, error)
	ExportPDF(ctx context.Context, input service.ReportInput) (*service.GenerateReportResult, error)
}

// Deps are the services the commands run against.
type Deps struct {
	Reports   ReportService
	Clients   seed.ClientCreator
	Resources seed.ResourceCreator
	Close     func() error
}

// Opener builds Deps on demand so commands that do not touch the
// database never connect to it.
type Opener func() (*Deps, error)

// operator is the principal used for writes issued from the command line.
var operator = model.Principal{UserID: uuid.Nil, Role: model.RoleAdmin}

func NewRootCmd(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "agrojobs",
		Short:         "Agricultural job costing tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		NewReportCmd(open),
		NewSeedCmd(open),
		NewTokenCmd(),
	)
	return root
}

func withDeps(open Opener, fn func(deps *Deps) error) error {
	deps, err := open()
	if err != nil {
		return err
	}
	if deps.Close != nil {
		defer deps.Close()
	}
	return fn(deps)
}
