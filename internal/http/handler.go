package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/nurpe/agrojobs/internal/http/middleware"
	"github.com/nurpe/agrojobs/internal/model"
	"github.com/nurpe/agrojobs/internal/service"
)

type ClientService interface {
	ListClients(ctx context.Context) ([]model.Client, error)
	GetClient(ctx context.Context, id uuid.UUID) (*model.Client, error)
	CreateClient(ctx context.Context, principal model.Principal, input service.CreateClientInput) (*model.Client, error)
	UpdateClient(ctx context.Context, principal model.Principal, id uuid.UUID, input service.UpdateClientInput) (*model.Client, error)
	DeleteClient(ctx context.Context, principal model.Principal, id uuid.UUID) error
	AddLocation(ctx context.Context, principal model.Principal, clientID uuid.UUID, input service.LocationInput) (*model.Location, error)
	DeleteLocation(ctx context.Context, principal model.Principal, clientID, locationID uuid.UUID) error
	Geocode(input service.GeocodeInput) (service.LocationInput, error)
}

type ResourceService interface {
	ListResources(ctx context.Context, kind model.ResourceKind) ([]model.Resource, error)
	CreateResource(ctx context.Context, principal model.Principal, kind model.ResourceKind, input service.ResourceInput) (*model.Resource, error)
	UpdateResource(ctx context.Context, principal model.Principal, kind model.ResourceKind, id uuid.UUID, input service.ResourceInput) (*model.Resource, error)
	ToggleResource(ctx context.Context, principal model.Principal, kind model.ResourceKind, id uuid.UUID) (*model.Resource, error)
	DeleteResource(ctx context.Context, principal model.Principal, kind model.ResourceKind, id uuid.UUID) error
}

type JobService interface {
	ListJobs(ctx context.Context) ([]model.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*model.Job, error)
	RegisterJob(ctx context.Context, principal model.Principal, input service.JobInput) (*model.Job, error)
	UpdateJob(ctx context.Context, principal model.Principal, id uuid.UUID, input service.JobInput) (*model.Job, error)
	DeleteJob(ctx context.Context, principal model.Principal, id uuid.UUID) error
	AssignResource(ctx context.Context, principal model.Principal, jobID uuid.UUID, kind model.ResourceKind, resourceID uuid.UUID) (*model.Job, error)
	SetAssignmentHours(ctx context.Context, principal model.Principal, jobID uuid.UUID, kind model.ResourceKind, resourceID uuid.UUID, hours decimal.Decimal) (*model.Job, error)
	RemoveAssignment(ctx context.Context, principal model.Principal, jobID uuid.UUID, kind model.ResourceKind, resourceID uuid.UUID) (*model.Job, error)
	AddExpense(ctx context.Context, principal model.Principal, jobID uuid.UUID, input service.ExpenseInput) (*model.Job, error)
	RemoveExpense(ctx context.Context, principal model.Principal, jobID, expenseID uuid.UUID) (*model.Job, error)
	FinalizeCosts(ctx context.Context, principal model.Principal, jobID uuid.UUID) (*model.Job, error)
	Dashboard(ctx context.Context) (*service.Dashboard, error)
	ExpenseCategories() []string
}

type ReportService interface {
	Summary(ctx context.Context, input service.ReportInput) (*service.SummaryResult, error)
	Detailed(ctx context.Context, input service.ReportInput) (*model.JobReport, error)
	Share(ctx context.Context, input service.ReportInput) (*service.ShareResult, error)
	ExportXLSX(ctx context.Context, input service.ReportInput) (*service.GenerateReportResult, error)
	ExportPDF(ctx context.Context, input service.ReportInput) (*service.GenerateReportResult, error)
}

type Handler struct {
	clients   ClientService
	resources ResourceService
	jobs      JobService
	reports   ReportService
	log       zerolog.Logger
}

func NewHandler(clients ClientService, resources ResourceService, jobs JobService, reports ReportService, log zerolog.Logger) *Handler {
	return &Handler{
		clients:   clients,
		resources: resources,
		jobs:      jobs,
		reports:   reports,
		log:       log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/clients", h.listClients)
	protected.POST("/clients", h.createClient)
	protected.GET("/clients/:id", h.getClient)
	protected.PUT("/clients/:id", h.updateClient)
	protected.DELETE("/clients/:id", h.deleteClient)
	protected.POST("/clients/:id/locations", h.addLocation)
	protected.DELETE("/clients/:id/locations/:locationID", h.deleteLocation)
	protected.POST("/locations/geocode", h.geocode)

	protected.GET("/resources/:kind", h.listResources)
	protected.POST("/resources/:kind", h.createResource)
	protected.PUT("/resources/:kind/:id", h.updateResource)
	protected.POST("/resources/:kind/:id/toggle", h.toggleResource)
	protected.DELETE("/resources/:kind/:id", h.deleteResource)

	protected.GET("/jobs", h.listJobs)
	protected.POST("/jobs", h.registerJob)
	protected.GET("/jobs/:id", h.getJob)
	protected.PUT("/jobs/:id", h.updateJob)
	protected.DELETE("/jobs/:id", h.deleteJob)
	protected.POST("/jobs/:id/assignments/:kind", h.assignResource)
	protected.PATCH("/jobs/:id/assignments/:kind/:resourceID", h.setAssignmentHours)
	protected.DELETE("/jobs/:id/assignments/:kind/:resourceID", h.removeAssignment)
	protected.POST("/jobs/:id/expenses", h.addExpense)
	protected.DELETE("/jobs/:id/expenses/:expenseID", h.removeExpense)
	protected.POST("/jobs/:id/finalize", h.finalizeCosts)

	protected.GET("/expense-categories", h.expenseCategories)
	protected.GET("/dashboard", h.dashboard)

	protected.GET("/reports/summary", h.reportSummary)
	protected.GET("/reports/detailed", h.reportDetailed)
	protected.GET("/reports/share", h.reportShare)
	protected.GET("/reports/export/xlsx", h.exportXLSX)
	protected.GET("/reports/export/pdf", h.exportPDF)
}

func (h *Handler) principal(c *gin.Context) (model.Principal, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
	}
	return principal, ok
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var validationErr *model.ValidationError
	var referenceErr *model.ReferenceError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error(), "field": validationErr.Field})
	case errors.As(err, &referenceErr):
		c.JSON(http.StatusNotFound, gin.H{"error": referenceErr.Error(), "entity": referenceErr.Entity, "id": referenceErr.ID})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

func kindParam(c *gin.Context) (model.ResourceKind, bool) {
	kind, err := model.ParseResourceKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return "", false
	}
	return kind, true
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
