package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nurpe/agrojobs/internal/service"
)

// reportInput reads the client_id, start_date and end_date query filters.
// Absent parameters are not applied.
func reportInput(c *gin.Context) (service.ReportInput, error) {
	var input service.ReportInput
	if raw := strings.TrimSpace(c.Query("client_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return input, fmt.Errorf("%w: invalid client_id", service.ErrInvalidInput)
		}
		input.ClientID = &id
	}
	for _, param := range []struct {
		name   string
		target **time.Time
	}{
		{"start_date", &input.StartDate},
		{"end_date", &input.EndDate},
	} {
		raw := strings.TrimSpace(c.Query(param.name))
		if raw == "" {
			continue
		}
		parsed, err := parseDate(raw)
		if err != nil {
			return input, fmt.Errorf("%w: invalid %s", service.ErrInvalidInput, param.name)
		}
		*param.target = &parsed
	}
	return input, nil
}

func (h *Handler) reportSummary(c *gin.Context) {
	input, err := reportInput(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	summary, err := h.reports.Summary(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"filter":    summary.Filter,
		"job_count": summary.JobCount,
		"totals":    toTotals(summary.Totals),
	})
}

func (h *Handler) reportDetailed(c *gin.Context) {
	input, err := reportInput(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	doc, err := h.reports.Detailed(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"filter":       doc.FilterDescription,
		"generated_at": doc.GeneratedAt,
		"totals":       toTotals(doc.Totals),
		"rows":         toReportRows(doc.Rows),
	})
}

func (h *Handler) reportShare(c *gin.Context) {
	input, err := reportInput(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	share, err := h.reports.Share(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": share.Text, "url": share.URL})
}

func (h *Handler) exportXLSX(c *gin.Context) {
	h.export(c, h.reports.ExportXLSX)
}

func (h *Handler) exportPDF(c *gin.Context) {
	h.export(c, h.reports.ExportPDF)
}

func (h *Handler) export(c *gin.Context, generate func(ctx context.Context, input service.ReportInput) (*service.GenerateReportResult, error)) {
	input, err := reportInput(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	result, err := generate(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
