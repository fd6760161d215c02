package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/agrojobs/internal/model"
	"github.com/nurpe/agrojobs/internal/report"
)

type ExcelGenerator interface {
	Generate(report model.JobReport) ([]byte, error)
}

type PDFGenerator interface {
	Generate(report model.JobReport) ([]byte, error)
}

type ReportService struct {
	jobs         JobStore
	clients      ClientStore
	excel        ExcelGenerator
	pdf          PDFGenerator
	shareBaseURL string
	now          func() time.Time
}

type ReportInput struct {
	ClientID  *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

type SummaryResult struct {
	Filter   string
	JobCount int
	Totals   model.Totals
}

type ShareResult struct {
	Text string
	URL  string
}

type GenerateReportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

func NewReportService(jobs JobStore, clients ClientStore, excel ExcelGenerator, pdf PDFGenerator, shareBaseURL string) *ReportService {
	return &ReportService{
		jobs:         jobs,
		clients:      clients,
		excel:        excel,
		pdf:          pdf,
		shareBaseURL: shareBaseURL,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *ReportService) Summary(ctx context.Context, input ReportInput) (*SummaryResult, error) {
	sel, err := s.load(ctx, input)
	if err != nil {
		return nil, err
	}
	return &SummaryResult{
		Filter:   report.DescribeFilterPlain(sel.filter, sel.clientName),
		JobCount: len(sel.jobs),
		Totals:   report.Summary(sel.jobs),
	}, nil
}

func (s *ReportService) Detailed(ctx context.Context, input ReportInput) (*model.JobReport, error) {
	sel, err := s.load(ctx, input)
	if err != nil {
		return nil, err
	}
	doc := report.Build(sel.jobs, report.DescribeFilterPlain(sel.filter, sel.clientName), s.now())
	return &doc, nil
}

// Share renders the messaging digest and its deep link.
func (s *ReportService) Share(ctx context.Context, input ReportInput) (*ShareResult, error) {
	sel, err := s.load(ctx, input)
	if err != nil {
		return nil, err
	}
	text := report.ShareableSummary(sel.jobs, report.DescribeFilter(sel.filter, sel.clientName))
	return &ShareResult{
		Text: text,
		URL:  report.ShareURL(s.shareBaseURL, text),
	}, nil
}

func (s *ReportService) ExportXLSX(ctx context.Context, input ReportInput) (*GenerateReportResult, error) {
	doc, err := s.Detailed(ctx, input)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Generate(*doc)
	if err != nil {
		return nil, err
	}
	return &GenerateReportResult{
		FileName:    s.buildFileName(ctx, input, "xlsx"),
		ContentType: contentTypeXLSX,
		Content:     content,
	}, nil
}

func (s *ReportService) ExportPDF(ctx context.Context, input ReportInput) (*GenerateReportResult, error) {
	doc, err := s.Detailed(ctx, input)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(*doc)
	if err != nil {
		return nil, err
	}
	return &GenerateReportResult{
		FileName:    s.buildFileName(ctx, input, "pdf"),
		ContentType: contentTypePDF,
		Content:     content,
	}, nil
}

// selection is the filtered job set and what it was filtered by.
type selection struct {
	jobs       []model.Job
	filter     report.Filter
	clientName string
}

func (s *ReportService) load(ctx context.Context, input ReportInput) (selection, error) {
	filter := report.Filter{
		ClientID: input.ClientID,
		Start:    input.StartDate,
		End:      input.EndDate,
	}
	if filter.Start != nil && filter.End != nil && model.DateOnly(*filter.Start).After(model.DateOnly(*filter.End)) {
		return selection{}, fmt.Errorf("%w: start_date must be before or equal to end_date", ErrInvalidInput)
	}

	clientName := ""
	if filter.ClientID != nil {
		client, err := s.clients.GetClient(ctx, *filter.ClientID)
		if err != nil {
			return selection{}, notFound(err, "client", *filter.ClientID)
		}
		clientName = client.Name
	}

	jobs, err := s.jobs.ListJobs(ctx)
	if err != nil {
		return selection{}, err
	}
	return selection{
		jobs:       report.FilterJobs(jobs, filter),
		filter:     filter,
		clientName: clientName,
	}, nil
}

func (s *ReportService) buildFileName(ctx context.Context, input ReportInput, ext string) string {
	target := "todos"
	if input.ClientID != nil {
		target = input.ClientID.String()
		if client, err := s.clients.GetClient(ctx, *input.ClientID); err == nil {
			if name := sanitizeFileName(client.Name); name != "" {
				target = name
			}
		}
	}
	start := "inicio"
	if input.StartDate != nil {
		start = input.StartDate.Format("20060102")
	}
	end := "fin"
	if input.EndDate != nil {
		end = input.EndDate.Format("20060102")
	}
	return fmt.Sprintf("reporte-trabajos-%s-%s-%s.%s", strings.ToLower(target), start, end, ext)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
