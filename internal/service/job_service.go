package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/agrojobs/internal/costing"
	"github.com/nurpe/agrojobs/internal/model"
)

const recentJobsLimit = 5

type JobService struct {
	jobs       JobStore
	clients    ClientStore
	resources  ResourceStore
	categories []string
}

type AssignmentInput struct {
	ResourceID uuid.UUID
	Hours      decimal.Decimal
}

type ExpenseInput struct {
	// ID keeps an existing expense identity on full updates.
	ID          *uuid.UUID
	Category    string
	Description string
	Amount      decimal.Decimal
}

// JobInput is the full job form. On update a nil collection leaves the
// job's current entries untouched.
type JobInput struct {
	Description  string
	ClientID     uuid.UUID
	LocationID   uuid.UUID
	StartDate    time.Time
	EndDate      time.Time
	TotalCharged decimal.Decimal
	Status       string
	Machinery    []AssignmentInput
	Operators    []AssignmentInput
	Expenses     []ExpenseInput
}

type Dashboard struct {
	Totals     model.Totals
	JobCount   int
	RecentJobs []model.Job
}

func NewJobService(jobs JobStore, clients ClientStore, resources ResourceStore, categories []string) *JobService {
	if len(categories) == 0 {
		categories = model.DefaultExpenseCategories
	}
	return &JobService{
		jobs:       jobs,
		clients:    clients,
		resources:  resources,
		categories: categories,
	}
}

// ExpenseCategories lists the suggested expense categories.
func (s *JobService) ExpenseCategories() []string {
	return append([]string(nil), s.categories...)
}

func (s *JobService) ListJobs(ctx context.Context) ([]model.Job, error) {
	return s.jobs.ListJobs(ctx)
}

func (s *JobService) GetJob(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	job, err := s.jobs.GetJob(ctx, id)
	if err != nil {
		return nil, notFound(err, "job", id)
	}
	return job, nil
}

// RegisterJob validates the form, snapshots the selected resources and
// stores the job with a freshly computed cost.
func (s *JobService) RegisterJob(ctx context.Context, principal model.Principal, input JobInput) (*model.Job, error) {
	if err := requireEditor(principal); err != nil {
		return nil, err
	}
	params, err := jobParams(input)
	if err != nil {
		return nil, err
	}
	client, err := s.resolveClient(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	job, err := model.NewJob(params, client)
	if err != nil {
		return nil, err
	}
	if err := s.applyCollections(ctx, job, input); err != nil {
		return nil, err
	}
	costing.Finalize(job)

	if err := s.jobs.CreateJob(ctx, *job); err != nil {
		return nil, err
	}
	return job, nil
}

// UpdateJob replaces the job form and recomputes its cost. Assignments of
// resources that stay on the job keep their captured rate.
func (s *JobService) UpdateJob(ctx context.Context, principal model.Principal, id uuid.UUID, input JobInput) (*model.Job, error) {
	if err := requireEditor(principal); err != nil {
		return nil, err
	}
	job, err := s.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	params, err := jobParams(input)
	if err != nil {
		return nil, err
	}
	client, err := s.resolveClient(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	if err := job.Apply(params, client); err != nil {
		return nil, err
	}
	if err := s.applyCollections(ctx, job, input); err != nil {
		return nil, err
	}
	costing.Finalize(job)

	if err := s.jobs.SaveJob(ctx, *job); err != nil {
		return nil, notFound(err, "job", id)
	}
	return job, nil
}

func (s *JobService) DeleteJob(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if err := requireEditor(principal); err != nil {
		return err
	}
	return notFound(s.jobs.DeleteJob(ctx, id), "job", id)
}

// AssignResource adds a snapshot of the resource with zero hours. The
// cached cost is not recomputed.
func (s *JobService) AssignResource(ctx context.Context, principal model.Principal, jobID uuid.UUID, kind model.ResourceKind, resourceID uuid.UUID) (*model.Job, error) {
	return s.mutate(ctx, principal, jobID, func(job *model.Job) error {
		return s.assign(ctx, job, kind, resourceID)
	})
}

func (s *JobService) SetAssignmentHours(ctx context.Context, principal model.Principal, jobID uuid.UUID, kind model.ResourceKind, resourceID uuid.UUID, hours decimal.Decimal) (*model.Job, error) {
	return s.mutate(ctx, principal, jobID, func(job *model.Job) error {
		return job.SetAssignmentHours(kind, resourceID, hours)
	})
}

func (s *JobService) RemoveAssignment(ctx context.Context, principal model.Principal, jobID uuid.UUID, kind model.ResourceKind, resourceID uuid.UUID) (*model.Job, error) {
	return s.mutate(ctx, principal, jobID, func(job *model.Job) error {
		return job.RemoveAssignment(kind, resourceID)
	})
}

func (s *JobService) AddExpense(ctx context.Context, principal model.Principal, jobID uuid.UUID, input ExpenseInput) (*model.Job, error) {
	return s.mutate(ctx, principal, jobID, func(job *model.Job) error {
		expense, err := model.NewExpense(input.Category, input.Description, input.Amount)
		if err != nil {
			return err
		}
		job.AddExpense(*expense)
		return nil
	})
}

func (s *JobService) RemoveExpense(ctx context.Context, principal model.Principal, jobID, expenseID uuid.UUID) (*model.Job, error) {
	return s.mutate(ctx, principal, jobID, func(job *model.Job) error {
		return job.RemoveExpense(expenseID)
	})
}

// FinalizeCosts recomputes the cached cost from the job's current
// assignments and expenses and persists it.
func (s *JobService) FinalizeCosts(ctx context.Context, principal model.Principal, jobID uuid.UUID) (*model.Job, error) {
	if err := requireEditor(principal); err != nil {
		return nil, err
	}
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	total := costing.Finalize(job)
	if err := s.jobs.UpdateTotalCost(ctx, job.ID, total); err != nil {
		return nil, notFound(err, "job", jobID)
	}
	return job, nil
}

// Dashboard returns totals over every job and the most recently
// registered ones.
func (s *JobService) Dashboard(ctx context.Context) (*Dashboard, error) {
	jobs, err := s.jobs.ListJobs(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.jobs.ListRecentJobs(ctx, recentJobsLimit)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Totals:     costing.Aggregate(jobs),
		JobCount:   len(jobs),
		RecentJobs: recent,
	}, nil
}

func (s *JobService) mutate(ctx context.Context, principal model.Principal, jobID uuid.UUID, fn func(job *model.Job) error) (*model.Job, error) {
	if err := requireEditor(principal); err != nil {
		return nil, err
	}
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := fn(job); err != nil {
		return nil, err
	}
	if err := s.jobs.SaveJob(ctx, *job); err != nil {
		return nil, notFound(err, "job", jobID)
	}
	return job, nil
}

func (s *JobService) assign(ctx context.Context, job *model.Job, kind model.ResourceKind, resourceID uuid.UUID) error {
	resource, err := s.resources.GetResource(ctx, kind, resourceID)
	if err != nil {
		return notFound(err, "resource", resourceID)
	}
	_, err = job.AssignResource(*resource)
	return err
}

// resolveClient returns nil for an empty id so the job validation reports
// the missing field.
func (s *JobService) resolveClient(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	client, err := s.clients.GetClient(ctx, id)
	if err != nil {
		return nil, notFound(err, "client", id)
	}
	return client, nil
}

func (s *JobService) applyCollections(ctx context.Context, job *model.Job, input JobInput) error {
	if input.Machinery != nil {
		if err := s.syncAssignments(ctx, job, model.ResourceKindMachinery, input.Machinery); err != nil {
			return err
		}
	}
	if input.Operators != nil {
		if err := s.syncAssignments(ctx, job, model.ResourceKindOperator, input.Operators); err != nil {
			return err
		}
	}
	if input.Expenses != nil {
		return syncExpenses(job, input.Expenses)
	}
	return nil
}

// syncAssignments makes the job's assignments of kind match inputs. Kept
// entries retain their snapshot, new ones are taken from the registry.
func (s *JobService) syncAssignments(ctx context.Context, job *model.Job, kind model.ResourceKind, inputs []AssignmentInput) error {
	wanted := make(map[uuid.UUID]bool, len(inputs))
	for _, in := range inputs {
		if wanted[in.ResourceID] {
			return &model.ValidationError{Field: "resource_id", Message: "resource is listed more than once"}
		}
		wanted[in.ResourceID] = true
	}

	current := job.Machinery
	if kind == model.ResourceKindOperator {
		current = job.Operators
	}
	held := make(map[uuid.UUID]bool, len(current))
	for _, a := range append([]model.Assignment(nil), current...) {
		if !wanted[a.ResourceID] {
			if err := job.RemoveAssignment(kind, a.ResourceID); err != nil {
				return err
			}
			continue
		}
		held[a.ResourceID] = true
	}

	for _, in := range inputs {
		if !held[in.ResourceID] {
			if err := s.assign(ctx, job, kind, in.ResourceID); err != nil {
				return err
			}
			held[in.ResourceID] = true
		}
		if err := job.SetAssignmentHours(kind, in.ResourceID, in.Hours); err != nil {
			return err
		}
	}

	list := &job.Machinery
	if kind == model.ResourceKindOperator {
		list = &job.Operators
	}
	byID := make(map[uuid.UUID]model.Assignment, len(*list))
	for _, a := range *list {
		byID[a.ResourceID] = a
	}
	ordered := make([]model.Assignment, 0, len(inputs))
	for _, in := range inputs {
		ordered = append(ordered, byID[in.ResourceID])
	}
	*list = ordered
	return nil
}

func syncExpenses(job *model.Job, inputs []ExpenseInput) error {
	existing := make(map[uuid.UUID]bool, len(job.Expenses))
	for _, e := range job.Expenses {
		existing[e.ID] = true
	}

	expenses := make([]model.Expense, 0, len(inputs))
	for _, in := range inputs {
		expense, err := model.NewExpense(in.Category, in.Description, in.Amount)
		if err != nil {
			return err
		}
		if in.ID != nil {
			if !existing[*in.ID] {
				return model.NewReferenceError("expense", *in.ID)
			}
			expense.ID = *in.ID
			delete(existing, *in.ID)
		}
		expenses = append(expenses, *expense)
	}

	for _, e := range append([]model.Expense(nil), job.Expenses...) {
		if err := job.RemoveExpense(e.ID); err != nil {
			return err
		}
	}
	for _, e := range expenses {
		job.AddExpense(e)
	}
	return nil
}

func jobParams(input JobInput) (model.JobParams, error) {
	status, err := model.ParseJobStatus(input.Status)
	if err != nil {
		return model.JobParams{}, err
	}
	return model.JobParams{
		Description:  input.Description,
		ClientID:     input.ClientID,
		LocationID:   input.LocationID,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		TotalCharged: input.TotalCharged,
		Status:       status,
	}, nil
}
