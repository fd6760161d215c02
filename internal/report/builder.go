package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/nurpe/agrojobs/internal/costing"
	"github.com/nurpe/agrojobs/internal/model"
)

// Summary rolls up revenue, cost and profit over jobs.
func Summary(jobs []model.Job) model.Totals {
	return costing.Aggregate(jobs)
}

// Detailed returns one row per job. An empty input yields an empty,
// non-nil slice.
func Detailed(jobs []model.Job) []model.ReportRow {
	rows := make([]model.ReportRow, 0, len(jobs))
	for _, job := range jobs {
		rows = append(rows, model.ReportRow{
			Description:  job.Description,
			ClientName:   job.ClientName,
			LocationName: job.LocationName,
			StartDate:    job.StartDate,
			EndDate:      job.EndDate,
			TotalCharged: job.TotalCharged,
			TotalCost:    job.TotalCost,
			Profit:       costing.Profit(job),
		})
	}
	return rows
}

// Build assembles the export document for jobs.
func Build(jobs []model.Job, filterDescription string, generatedAt time.Time) model.JobReport {
	return model.JobReport{
		FilterDescription: filterDescription,
		GeneratedAt:       generatedAt,
		Totals:            Summary(jobs),
		Rows:              Detailed(jobs),
	}
}

const (
	shareHeader = "*Resumen de Trabajos Agrícolas*"
	shareFooter = "¡Consulta el sistema para más detalles!"
)

// ShareableSummary renders a plain-text digest for messaging apps: header,
// filter description, totals, then one profit line per job in input order.
func ShareableSummary(jobs []model.Job, filterDescription string) string {
	totals := Summary(jobs)

	var b strings.Builder
	b.WriteString(shareHeader)
	b.WriteString("\n\n")
	if filterDescription != "" {
		b.WriteString(filterDescription)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "*Ingresos Totales:* %s\n", FormatCurrency(totals.TotalRevenue))
	fmt.Fprintf(&b, "*Costos Operativos:* %s\n", FormatCurrency(totals.TotalCost))
	fmt.Fprintf(&b, "*Ganancia Neta:* %s\n\n", FormatCurrency(totals.NetProfit))
	b.WriteString("_Detalle de Trabajos:_\n")
	for _, job := range jobs {
		fmt.Fprintf(&b, "- %s (%s): %s\n", job.Description, job.ClientName, FormatCurrency(costing.Profit(job)))
	}
	b.WriteString("\n")
	b.WriteString(shareFooter)
	return b.String()
}

// DescribeFilter renders the applied filter for the messaging digest, with
// bold labels. clientName is used when the filter selects a client.
func DescribeFilter(f Filter, clientName string) string {
	return describeFilter(f, clientName, func(label string) string { return "*" + label + ":*" })
}

// DescribeFilterPlain renders the same lines without markup, for document
// headers.
func DescribeFilterPlain(f Filter, clientName string) string {
	return describeFilter(f, clientName, func(label string) string { return label + ":" })
}

func describeFilter(f Filter, clientName string, label func(string) string) string {
	start := "Inicio"
	if f.Start != nil {
		start = FormatDate(*f.Start)
	}
	end := "Fin"
	if f.End != nil {
		end = FormatDate(*f.End)
	}

	description := fmt.Sprintf("%s %s - %s", label("Periodo"), start, end)
	if f.ClientID != nil {
		name := strings.TrimSpace(clientName)
		if name == "" {
			name = f.ClientID.String()
		}
		description += fmt.Sprintf("\n%s %s", label("Cliente"), name)
	}
	return description
}
