package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nurpe/agrojobs/internal/report"
	"github.com/nurpe/agrojobs/internal/service"
)

type ReportCmd struct {
	client  string
	from    string
	to      string
	format  string
	out     string
	timeout time.Duration
	open    Opener
}

func NewReportCmd(open Opener) *cobra.Command {
	rc := &ReportCmd{open: open}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build a job report for a client and date range",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.client, "client", "", "Client id to filter by")
	cmd.Flags().StringVar(&rc.from, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&rc.to, "to", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&rc.format, "format", "text", "Output format: text, xlsx or pdf")
	cmd.Flags().StringVar(&rc.out, "out", "", "Output file; defaults to the generated file name")
	cmd.Flags().DurationVar(&rc.timeout, "timeout", time.Minute, "Overall timeout")
	return cmd
}

func (rc *ReportCmd) input() (service.ReportInput, error) {
	var input service.ReportInput
	if rc.client != "" {
		id, err := uuid.Parse(strings.TrimSpace(rc.client))
		if err != nil {
			return input, fmt.Errorf("invalid --client %q", rc.client)
		}
		input.ClientID = &id
	}
	if rc.from != "" {
		from, err := time.Parse("2006-01-02", rc.from)
		if err != nil {
			return input, fmt.Errorf("invalid --from %q", rc.from)
		}
		input.StartDate = &from
	}
	if rc.to != "" {
		to, err := time.Parse("2006-01-02", rc.to)
		if err != nil {
			return input, fmt.Errorf("invalid --to %q", rc.to)
		}
		input.EndDate = &to
	}
	return input, nil
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	input, err := rc.input()
	if err != nil {
		return err
	}
	format := strings.ToLower(strings.TrimSpace(rc.format))
	if format != "text" && format != "xlsx" && format != "pdf" {
		return fmt.Errorf("unsupported --format %q", rc.format)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), rc.timeout)
	defer cancel()

	return withDeps(rc.open, func(deps *Deps) error {
		if format == "text" {
			return rc.writeText(ctx, cmd, deps.Reports, input)
		}

		var result *service.GenerateReportResult
		if format == "xlsx" {
			result, err = deps.Reports.ExportXLSX(ctx, input)
		} else {
			result, err = deps.Reports.ExportPDF(ctx, input)
		}
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}

		path := rc.out
		if path == "" {
			path = result.FileName
		}
		if err := os.WriteFile(path, result.Content, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	})
}

func (rc *ReportCmd) writeText(ctx context.Context, cmd *cobra.Command, reports ReportService, input service.ReportInput) error {
	summary, err := reports.Summary(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	share, err := reports.Share(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, share.Text)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Trabajos: %d  Margen: %s\n", summary.JobCount, margin(summary))
	fmt.Fprintf(w, "Compartir: %s\n", share.URL)
	if rc.out != "" {
		return os.WriteFile(rc.out, []byte(share.Text), 0o644)
	}
	return nil
}

func margin(summary *service.SummaryResult) string {
	if summary.Totals.TotalRevenue.IsZero() {
		return "n/a"
	}
	pct := summary.Totals.NetProfit.Div(summary.Totals.TotalRevenue).Shift(2)
	return pct.StringFixed(1) + "% (" + report.FormatCurrency(summary.Totals.NetProfit) + ")"
}
