package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type JobStatus string

const (
	JobStatusPending    JobStatus = "PENDING"
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusCancelled  JobStatus = "CANCELLED"
)

// ParseJobStatus returns JobStatusPending for an empty value.
func ParseJobStatus(raw string) (JobStatus, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return JobStatusPending, nil
	}
	switch status := JobStatus(strings.ToUpper(raw)); status {
	case JobStatusPending, JobStatusInProgress, JobStatusCompleted, JobStatusCancelled:
		return status, nil
	default:
		return "", newValidationError("status", fmt.Sprintf("unknown job status %q", raw))
	}
}

type Job struct {
	ID           uuid.UUID
	Description  string
	ClientID     uuid.UUID
	ClientName   string
	LocationID   uuid.UUID
	LocationName string
	StartDate    time.Time
	EndDate      time.Time
	Machinery    []Assignment `gorm:"-"`
	Operators    []Assignment `gorm:"-"`
	Expenses     []Expense    `gorm:"-"`
	TotalCharged decimal.Decimal
	// TotalCost is recomputed explicitly and may lag behind edits to the
	// assignment and expense collections.
	TotalCost decimal.Decimal
	Status    JobStatus
	CreatedAt time.Time
}

// JobParams holds the user-editable header fields of a job.
type JobParams struct {
	Description  string
	ClientID     uuid.UUID
	LocationID   uuid.UUID
	StartDate    time.Time
	EndDate      time.Time
	TotalCharged decimal.Decimal
	Status       JobStatus
}

// NewJob validates params against client, which must be the client
// referenced by params.ClientID with its locations loaded.
func NewJob(params JobParams, client *Client) (*Job, error) {
	job := &Job{
		ID:        uuid.New(),
		Machinery: []Assignment{},
		Operators: []Assignment{},
		Expenses:  []Expense{},
		TotalCost: decimal.Zero,
	}
	if err := job.Apply(params, client); err != nil {
		return nil, err
	}
	return job, nil
}

// Apply replaces the header fields of the job. The job is left untouched
// when params are invalid.
func (j *Job) Apply(params JobParams, client *Client) error {
	description := strings.TrimSpace(params.Description)
	if description == "" {
		return newValidationError("description", "is required")
	}
	if params.ClientID == uuid.Nil {
		return newValidationError("client_id", "is required")
	}
	if params.LocationID == uuid.Nil {
		return newValidationError("location_id", "is required")
	}
	if client == nil || client.ID != params.ClientID {
		return NewReferenceError("client", params.ClientID)
	}
	location, ok := client.Location(params.LocationID)
	if !ok {
		return newValidationError("location_id", "location does not belong to client")
	}
	if params.StartDate.IsZero() {
		return newValidationError("start_date", "is required")
	}
	if params.EndDate.IsZero() {
		return newValidationError("end_date", "is required")
	}
	start := DateOnly(params.StartDate)
	end := DateOnly(params.EndDate)
	if end.Before(start) {
		return newValidationError("end_date", "must not be before start_date")
	}
	if params.TotalCharged.IsNegative() {
		return newValidationError("total_charged", "must not be negative")
	}
	status, err := ParseJobStatus(string(params.Status))
	if err != nil {
		return err
	}

	j.Description = description
	j.ClientID = client.ID
	j.ClientName = client.Name
	j.LocationID = location.ID
	j.LocationName = location.Name
	j.StartDate = start
	j.EndDate = end
	j.TotalCharged = params.TotalCharged
	j.Status = status
	return nil
}

func (j *Job) assignments(kind ResourceKind) (*[]Assignment, error) {
	switch kind {
	case ResourceKindMachinery:
		return &j.Machinery, nil
	case ResourceKindOperator:
		return &j.Operators, nil
	default:
		return nil, newValidationError("kind", fmt.Sprintf("unknown resource kind %q", kind))
	}
}

// AssignResource snapshots resource into the job with zero hours.
func (j *Job) AssignResource(resource Resource) (Assignment, error) {
	list, err := j.assignments(resource.Kind)
	if err != nil {
		return Assignment{}, err
	}
	if !resource.Active {
		return Assignment{}, newValidationError("resource_id", "resource is not active")
	}
	for _, existing := range *list {
		if existing.ResourceID == resource.ID {
			return Assignment{}, newValidationError("resource_id", "resource is already assigned to this job")
		}
	}
	assignment, err := NewAssignment(resource, decimal.Zero)
	if err != nil {
		return Assignment{}, err
	}
	*list = append(*list, assignment)
	return assignment, nil
}

func (j *Job) SetAssignmentHours(kind ResourceKind, resourceID uuid.UUID, hours decimal.Decimal) error {
	list, err := j.assignments(kind)
	if err != nil {
		return err
	}
	if hours.IsNegative() {
		return newValidationError("hours", "must not be negative")
	}
	for i := range *list {
		if (*list)[i].ResourceID == resourceID {
			(*list)[i].Hours = hours
			return nil
		}
	}
	return NewReferenceError("assignment", resourceID)
}

func (j *Job) RemoveAssignment(kind ResourceKind, resourceID uuid.UUID) error {
	list, err := j.assignments(kind)
	if err != nil {
		return err
	}
	for i, existing := range *list {
		if existing.ResourceID == resourceID {
			*list = append((*list)[:i:i], (*list)[i+1:]...)
			return nil
		}
	}
	return NewReferenceError("assignment", resourceID)
}

func (j *Job) AddExpense(expense Expense) {
	j.Expenses = append(j.Expenses, expense)
}

func (j *Job) RemoveExpense(expenseID uuid.UUID) error {
	for i, existing := range j.Expenses {
		if existing.ID == expenseID {
			j.Expenses = append(j.Expenses[:i:i], j.Expenses[i+1:]...)
			return nil
		}
	}
	return NewReferenceError("expense", expenseID)
}

// DateOnly truncates t to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
