package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/agrojobs/internal/model"
	"github.com/nurpe/agrojobs/internal/service"
)

type assignmentRequest struct {
	ResourceID string          `json:"resource_id" binding:"required"`
	Hours      decimal.Decimal `json:"hours" binding:"gte=0"`
}

type expenseRequest struct {
	ID          *string         `json:"id"`
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" binding:"gte=0"`
}

type jobRequest struct {
	Description  string              `json:"description" binding:"required"`
	ClientID     string              `json:"client_id" binding:"required"`
	LocationID   string              `json:"location_id" binding:"required"`
	StartDate    string              `json:"start_date" binding:"required"`
	EndDate      string              `json:"end_date" binding:"required"`
	TotalCharged decimal.Decimal     `json:"total_charged" binding:"gte=0"`
	Status       string              `json:"status"`
	Machinery    []assignmentRequest `json:"machinery" binding:"omitempty,dive"`
	Operators    []assignmentRequest `json:"operators" binding:"omitempty,dive"`
	Expenses     []expenseRequest    `json:"expenses" binding:"omitempty,dive"`
}

type assignResourceRequest struct {
	ResourceID string `json:"resource_id" binding:"required"`
}

type assignmentHoursRequest struct {
	Hours *decimal.Decimal `json:"hours" binding:"required,gte=0"`
}

func (r jobRequest) input() (service.JobInput, error) {
	clientID, err := uuid.Parse(strings.TrimSpace(r.ClientID))
	if err != nil {
		return service.JobInput{}, fmt.Errorf("%w: invalid client_id", service.ErrInvalidInput)
	}
	locationID, err := uuid.Parse(strings.TrimSpace(r.LocationID))
	if err != nil {
		return service.JobInput{}, fmt.Errorf("%w: invalid location_id", service.ErrInvalidInput)
	}
	start, err := parseDate(r.StartDate)
	if err != nil {
		return service.JobInput{}, fmt.Errorf("%w: invalid start_date", service.ErrInvalidInput)
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return service.JobInput{}, fmt.Errorf("%w: invalid end_date", service.ErrInvalidInput)
	}

	input := service.JobInput{
		Description:  r.Description,
		ClientID:     clientID,
		LocationID:   locationID,
		StartDate:    start,
		EndDate:      end,
		TotalCharged: r.TotalCharged,
		Status:       r.Status,
	}
	if input.Machinery, err = assignmentInputs(r.Machinery); err != nil {
		return service.JobInput{}, err
	}
	if input.Operators, err = assignmentInputs(r.Operators); err != nil {
		return service.JobInput{}, err
	}
	if r.Expenses != nil {
		input.Expenses = make([]service.ExpenseInput, 0, len(r.Expenses))
		for _, e := range r.Expenses {
			expense := service.ExpenseInput{Category: e.Category, Description: e.Description, Amount: e.Amount}
			if e.ID != nil {
				id, err := uuid.Parse(strings.TrimSpace(*e.ID))
				if err != nil {
					return service.JobInput{}, fmt.Errorf("%w: invalid expense id", service.ErrInvalidInput)
				}
				expense.ID = &id
			}
			input.Expenses = append(input.Expenses, expense)
		}
	}
	return input, nil
}

// assignmentInputs keeps a nil request list nil so updates leave the
// current assignments in place.
func assignmentInputs(reqs []assignmentRequest) ([]service.AssignmentInput, error) {
	if reqs == nil {
		return nil, nil
	}
	result := make([]service.AssignmentInput, 0, len(reqs))
	for _, r := range reqs {
		id, err := uuid.Parse(strings.TrimSpace(r.ResourceID))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid resource_id", service.ErrInvalidInput)
		}
		result = append(result, service.AssignmentInput{ResourceID: id, Hours: r.Hours})
	}
	return result, nil
}

func (h *Handler) listJobs(c *gin.Context) {
	jobs, err := h.jobs.ListJobs(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toJobs(jobs))
}

func (h *Handler) getJob(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	job, err := h.jobs.GetJob(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toJob(*job))
}

func (h *Handler) registerJob(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req jobRequest
	if !h.bindJSON(c, &req) {
		return
	}
	input, err := req.input()
	if err != nil {
		h.handleError(c, err)
		return
	}
	job, err := h.jobs.RegisterJob(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toJob(*job))
}

func (h *Handler) updateJob(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req jobRequest
	if !h.bindJSON(c, &req) {
		return
	}
	input, err := req.input()
	if err != nil {
		h.handleError(c, err)
		return
	}
	job, err := h.jobs.UpdateJob(c.Request.Context(), principal, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toJob(*job))
}

func (h *Handler) deleteJob(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.jobs.DeleteJob(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) assignResource(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	jobID, kind, ok := jobAndKind(c)
	if !ok {
		return
	}
	var req assignResourceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resourceID, err := uuid.Parse(strings.TrimSpace(req.ResourceID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid resource_id"})
		return
	}

	job, err := h.jobs.AssignResource(c.Request.Context(), principal, jobID, kind, resourceID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toJob(*job))
}

func (h *Handler) setAssignmentHours(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	jobID, kind, ok := jobAndKind(c)
	if !ok {
		return
	}
	resourceID, ok := uuidParam(c, "resourceID")
	if !ok {
		return
	}
	var req assignmentHoursRequest
	if !h.bindJSON(c, &req) {
		return
	}

	job, err := h.jobs.SetAssignmentHours(c.Request.Context(), principal, jobID, kind, resourceID, *req.Hours)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toJob(*job))
}

func (h *Handler) removeAssignment(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	jobID, kind, ok := jobAndKind(c)
	if !ok {
		return
	}
	resourceID, ok := uuidParam(c, "resourceID")
	if !ok {
		return
	}

	job, err := h.jobs.RemoveAssignment(c.Request.Context(), principal, jobID, kind, resourceID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toJob(*job))
}

func (h *Handler) addExpense(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	jobID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req expenseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	job, err := h.jobs.AddExpense(c.Request.Context(), principal, jobID, service.ExpenseInput{
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toJob(*job))
}

func (h *Handler) removeExpense(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	jobID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	expenseID, ok := uuidParam(c, "expenseID")
	if !ok {
		return
	}

	job, err := h.jobs.RemoveExpense(c.Request.Context(), principal, jobID, expenseID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toJob(*job))
}

func (h *Handler) finalizeCosts(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	jobID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	job, err := h.jobs.FinalizeCosts(c.Request.Context(), principal, jobID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toJob(*job))
}

func (h *Handler) expenseCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.jobs.ExpenseCategories()})
}

func (h *Handler) dashboard(c *gin.Context) {
	dashboard, err := h.jobs.Dashboard(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"totals":      toTotals(dashboard.Totals),
		"job_count":   dashboard.JobCount,
		"recent_jobs": toJobs(dashboard.RecentJobs),
	})
}

func jobAndKind(c *gin.Context) (uuid.UUID, model.ResourceKind, bool) {
	jobID, ok := uuidParam(c, "id")
	if !ok {
		return uuid.Nil, "", false
	}
	kind, ok := kindParam(c)
	if !ok {
		return uuid.Nil, "", false
	}
	return jobID, kind, true
}
