package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/agrojobs/internal/costing"
	"github.com/nurpe/agrojobs/internal/model"
)

type jobFixture struct {
	svc       *JobService
	jobs      *memoryJobs
	resources *memoryResources
	client    *model.Client
	location  *model.Location
	tractor   *model.Resource
	operator  *model.Resource
}

func newJobFixture(t *testing.T) jobFixture {
	t.Helper()
	client, err := model.NewClient("Juan Pérez", model.ClientTypeIndividual)
	require.NoError(t, err)
	location, err := model.NewLocation(client, "Rancho La Esperanza", "Km 10")
	require.NoError(t, err)
	tractor, err := model.NewResource(model.ResourceKindMachinery, "Tractor", decimal.NewFromInt(50), true)
	require.NoError(t, err)
	operator, err := model.NewResource(model.ResourceKindOperator, "Pedro", decimal.NewFromInt(20), true)
	require.NoError(t, err)

	jobs := newMemoryJobs()
	resources := newMemoryResources(*tractor, *operator)
	return jobFixture{
		svc:       NewJobService(jobs, newMemoryClients(*client), resources, nil),
		jobs:      jobs,
		resources: resources,
		client:    client,
		location:  location,
		tractor:   tractor,
		operator:  operator,
	}
}

func (f jobFixture) input() JobInput {
	return JobInput{
		Description:  "Siembra de maíz",
		ClientID:     f.client.ID,
		LocationID:   f.location.ID,
		StartDate:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		TotalCharged: decimal.NewFromInt(600),
	}
}

func requireValidationField(t *testing.T, err error, field string) {
	t.Helper()
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	assert.Equal(t, field, verr.Field)
}

func requireReference(t *testing.T, err error, entity string) {
	t.Helper()
	var rerr *model.ReferenceError
	require.True(t, errors.As(err, &rerr), "expected reference error, got %v", err)
	assert.Equal(t, entity, rerr.Entity)
}

func TestJobService_RegisterComputesCost(t *testing.T) {
	f := newJobFixture(t)
	in := f.input()
	in.Machinery = []AssignmentInput{{ResourceID: f.tractor.ID, Hours: decimal.NewFromInt(4)}}
	in.Operators = []AssignmentInput{{ResourceID: f.operator.ID, Hours: decimal.NewFromInt(8)}}
	in.Expenses = []ExpenseInput{{Category: "Combustible", Amount: decimal.NewFromInt(30)}}

	job, err := f.svc.RegisterJob(context.Background(), editor, in)
	require.NoError(t, err)

	assert.Equal(t, model.JobStatusPending, job.Status)
	assert.Equal(t, "Juan Pérez", job.ClientName)
	assert.Equal(t, "Rancho La Esperanza", job.LocationName)
	assert.True(t, decimal.NewFromInt(390).Equal(job.TotalCost), job.TotalCost.String())
	assert.True(t, decimal.NewFromInt(210).Equal(costing.Profit(*job)))

	stored, err := f.svc.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(390).Equal(stored.TotalCost))
	assert.False(t, costing.IsStale(*stored))
}

func TestJobService_RegisterRequiresEditor(t *testing.T) {
	f := newJobFixture(t)

	_, err := f.svc.RegisterJob(context.Background(), viewer, f.input())
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Empty(t, f.jobs.jobs)
}

func TestJobService_RegisterValidation(t *testing.T) {
	f := newJobFixture(t)

	in := f.input()
	in.ClientID = uuid.Nil
	_, err := f.svc.RegisterJob(context.Background(), editor, in)
	requireValidationField(t, err, "client_id")

	in = f.input()
	in.ClientID = uuid.New()
	_, err = f.svc.RegisterJob(context.Background(), editor, in)
	assert.ErrorIs(t, err, ErrNotFound)
	requireReference(t, err, "client")

	in = f.input()
	in.EndDate = in.StartDate.AddDate(0, 0, -1)
	_, err = f.svc.RegisterJob(context.Background(), editor, in)
	requireValidationField(t, err, "end_date")

	in = f.input()
	in.Status = "ARCHIVED"
	_, err = f.svc.RegisterJob(context.Background(), editor, in)
	requireValidationField(t, err, "status")

	in = f.input()
	in.Machinery = []AssignmentInput{{ResourceID: f.operator.ID}}
	_, err = f.svc.RegisterJob(context.Background(), editor, in)
	requireReference(t, err, "resource")

	assert.Empty(t, f.jobs.jobs)
}

func TestJobService_RejectsDuplicateAssignments(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	in := f.input()
	in.Machinery = []AssignmentInput{
		{ResourceID: f.tractor.ID, Hours: decimal.NewFromInt(4)},
		{ResourceID: f.tractor.ID, Hours: decimal.NewFromInt(6)},
	}
	_, err := f.svc.RegisterJob(ctx, editor, in)
	requireValidationField(t, err, "resource_id")
	assert.Empty(t, f.jobs.jobs)

	in.Machinery = []AssignmentInput{{ResourceID: f.tractor.ID, Hours: decimal.NewFromInt(4)}}
	job, err := f.svc.RegisterJob(ctx, editor, in)
	require.NoError(t, err)

	in.Operators = []AssignmentInput{
		{ResourceID: f.operator.ID, Hours: decimal.NewFromInt(2)},
		{ResourceID: f.operator.ID, Hours: decimal.NewFromInt(3)},
	}
	_, err = f.svc.UpdateJob(ctx, editor, job.ID, in)
	requireValidationField(t, err, "resource_id")

	stored, err := f.svc.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Operators)
	require.Len(t, stored.Machinery, 1)
	assert.True(t, decimal.NewFromInt(4).Equal(stored.Machinery[0].Hours))
}

func TestJobService_UpdateKeepsAssignmentInputOrder(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	plow, err := model.NewResource(model.ResourceKindMachinery, "Arado", decimal.NewFromInt(30), true)
	require.NoError(t, err)
	require.NoError(t, f.resources.CreateResource(ctx, *plow))

	in := f.input()
	in.Machinery = []AssignmentInput{{ResourceID: f.tractor.ID, Hours: decimal.NewFromInt(1)}}
	job, err := f.svc.RegisterJob(ctx, editor, in)
	require.NoError(t, err)

	in.Machinery = []AssignmentInput{
		{ResourceID: plow.ID, Hours: decimal.NewFromInt(2)},
		{ResourceID: f.tractor.ID, Hours: decimal.NewFromInt(3)},
	}
	job, err = f.svc.UpdateJob(ctx, editor, job.ID, in)
	require.NoError(t, err)

	require.Len(t, job.Machinery, 2)
	assert.Equal(t, plow.ID, job.Machinery[0].ResourceID)
	assert.Equal(t, f.tractor.ID, job.Machinery[1].ResourceID)
	assert.True(t, decimal.NewFromInt(210).Equal(job.TotalCost), job.TotalCost.String())
}

func TestJobService_GranularEditsLeaveCostStale(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	job, err := f.svc.RegisterJob(ctx, editor, f.input())
	require.NoError(t, err)
	assert.True(t, job.TotalCost.IsZero())

	_, err = f.svc.AssignResource(ctx, editor, job.ID, model.ResourceKindMachinery, f.tractor.ID)
	require.NoError(t, err)
	job, err = f.svc.SetAssignmentHours(ctx, editor, job.ID, model.ResourceKindMachinery, f.tractor.ID, decimal.NewFromInt(4))
	require.NoError(t, err)
	job, err = f.svc.AddExpense(ctx, editor, job.ID, ExpenseInput{Category: "Otro", Amount: decimal.NewFromInt(30)})
	require.NoError(t, err)

	assert.True(t, job.TotalCost.IsZero())
	assert.True(t, costing.IsStale(*job))

	job, err = f.svc.FinalizeCosts(ctx, editor, job.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(230).Equal(job.TotalCost))

	stored, err := f.svc.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(230).Equal(stored.TotalCost))
	assert.False(t, costing.IsStale(*stored))
}

func TestJobService_AssignRules(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	job, err := f.svc.RegisterJob(ctx, editor, f.input())
	require.NoError(t, err)

	_, err = f.svc.AssignResource(ctx, editor, job.ID, model.ResourceKindOperator, f.operator.ID)
	require.NoError(t, err)
	_, err = f.svc.AssignResource(ctx, editor, job.ID, model.ResourceKindOperator, f.operator.ID)
	requireValidationField(t, err, "resource_id")

	f.tractor.Active = false
	require.NoError(t, f.resources.UpdateResource(ctx, *f.tractor))
	_, err = f.svc.AssignResource(ctx, editor, job.ID, model.ResourceKindMachinery, f.tractor.ID)
	requireValidationField(t, err, "resource_id")

	_, err = f.svc.SetAssignmentHours(ctx, editor, job.ID, model.ResourceKindOperator, f.operator.ID, decimal.NewFromInt(-1))
	requireValidationField(t, err, "hours")

	_, err = f.svc.RemoveAssignment(ctx, editor, job.ID, model.ResourceKindMachinery, f.tractor.ID)
	requireReference(t, err, "assignment")

	job, err = f.svc.RemoveAssignment(ctx, editor, job.ID, model.ResourceKindOperator, f.operator.ID)
	require.NoError(t, err)
	assert.Empty(t, job.Operators)
}

func TestJobService_RateSnapshotSurvivesRegistryEdits(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()
	resources := NewResourceService(f.resources)

	in := f.input()
	in.Machinery = []AssignmentInput{{ResourceID: f.tractor.ID, Hours: decimal.NewFromInt(4)}}
	job, err := f.svc.RegisterJob(ctx, editor, in)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(200).Equal(job.TotalCost))

	_, err = resources.UpdateResource(ctx, editor, model.ResourceKindMachinery, f.tractor.ID, ResourceInput{
		Name:       "Tractor",
		HourlyRate: decimal.NewFromInt(80),
	})
	require.NoError(t, err)

	job, err = f.svc.FinalizeCosts(ctx, editor, job.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(200).Equal(job.TotalCost))

	in.Machinery = []AssignmentInput{{ResourceID: f.tractor.ID, Hours: decimal.NewFromInt(6)}}
	job, err = f.svc.UpdateJob(ctx, editor, job.ID, in)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(300).Equal(job.TotalCost), job.TotalCost.String())
	assert.True(t, decimal.NewFromInt(50).Equal(job.Machinery[0].HourlyRate))
}

func TestJobService_UpdateReplacesExpenses(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	in := f.input()
	in.Expenses = []ExpenseInput{
		{Category: "Combustible", Amount: decimal.NewFromInt(30)},
		{Category: "Transporte", Amount: decimal.NewFromInt(15)},
	}
	job, err := f.svc.RegisterJob(ctx, editor, in)
	require.NoError(t, err)
	keep := job.Expenses[1].ID

	in.Expenses = []ExpenseInput{{ID: &keep, Category: "Transporte", Amount: decimal.NewFromInt(25)}}
	in.Description = "Siembra y fertilización"
	job, err = f.svc.UpdateJob(ctx, editor, job.ID, in)
	require.NoError(t, err)

	require.Len(t, job.Expenses, 1)
	assert.Equal(t, keep, job.Expenses[0].ID)
	assert.Equal(t, "Siembra y fertilización", job.Description)
	assert.True(t, decimal.NewFromInt(25).Equal(job.TotalCost))

	missing := uuid.New()
	in.Expenses = []ExpenseInput{{ID: &missing, Category: "Otro"}}
	_, err = f.svc.UpdateJob(ctx, editor, job.ID, in)
	requireReference(t, err, "expense")
}

func TestJobService_RemoveAndDelete(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	job, err := f.svc.RegisterJob(ctx, editor, f.input())
	require.NoError(t, err)

	_, err = f.svc.RemoveExpense(ctx, editor, job.ID, uuid.New())
	requireReference(t, err, "expense")

	require.NoError(t, f.svc.DeleteJob(ctx, editor, job.ID))
	err = f.svc.DeleteJob(ctx, editor, job.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	requireReference(t, err, "job")
}

func TestJobService_Dashboard(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	var last uuid.UUID
	for i := 0; i < 6; i++ {
		in := f.input()
		in.TotalCharged = decimal.NewFromInt(100)
		job, err := f.svc.RegisterJob(ctx, editor, in)
		require.NoError(t, err)
		last = job.ID
	}

	dashboard, err := f.svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, dashboard.JobCount)
	assert.True(t, decimal.NewFromInt(600).Equal(dashboard.Totals.TotalRevenue))
	assert.True(t, decimal.NewFromInt(600).Equal(dashboard.Totals.NetProfit))
	require.Len(t, dashboard.RecentJobs, recentJobsLimit)
	assert.Equal(t, last, dashboard.RecentJobs[0].ID)
}

func TestJobService_ExpenseCategories(t *testing.T) {
	f := newJobFixture(t)
	assert.Equal(t, model.DefaultExpenseCategories, f.svc.ExpenseCategories())

	custom := NewJobService(f.jobs, nil, nil, []string{"Semillas"})
	assert.Equal(t, []string{"Semillas"}, custom.ExpenseCategories())
}
