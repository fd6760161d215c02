package costing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/agrojobs/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "expected %s, got %s", want, got.String())
}

func assignment(rate, hours string) model.Assignment {
	return model.Assignment{
		ResourceID: uuid.New(),
		Name:       "res",
		HourlyRate: dec(rate),
		Hours:      dec(hours),
	}
}

func expense(amount string) model.Expense {
	return model.Expense{ID: uuid.New(), Category: "Combustible", Amount: dec(amount)}
}

func scenarioJob() model.Job {
	return model.Job{
		ID:           uuid.New(),
		Description:  "Barbecho",
		Machinery:    []model.Assignment{assignment("50", "4")},
		Operators:    []model.Assignment{assignment("20", "8")},
		Expenses:     []model.Expense{expense("30")},
		TotalCharged: dec("600"),
	}
}

func TestComputeTotalCost_Scenario(t *testing.T) {
	job := scenarioJob()

	breakdown := ComputeBreakdown(job)
	assertDecimal(t, "200", breakdown.Machinery)
	assertDecimal(t, "160", breakdown.Operators)
	assertDecimal(t, "30", breakdown.Expenses)
	assertDecimal(t, "390", ComputeTotalCost(job))

	Finalize(&job)
	assertDecimal(t, "390", job.TotalCost)
	assertDecimal(t, "210", Profit(job))
}

func TestComputeTotalCost_EmptyCollections(t *testing.T) {
	assertDecimal(t, "0", ComputeTotalCost(model.Job{}))
}

func TestComputeTotalCost_PermutationInvariant(t *testing.T) {
	job := model.Job{
		Machinery: []model.Assignment{assignment("50", "4"), assignment("12.5", "3.2"), assignment("0", "9")},
		Operators: []model.Assignment{assignment("20", "8"), assignment("17.75", "1.5")},
		Expenses:  []model.Expense{expense("30"), expense("0.1"), expense("0.2")},
	}
	want := ComputeTotalCost(job)

	reversed := model.Job{
		Machinery: []model.Assignment{job.Machinery[2], job.Machinery[0], job.Machinery[1]},
		Operators: []model.Assignment{job.Operators[1], job.Operators[0]},
		Expenses:  []model.Expense{job.Expenses[2], job.Expenses[1], job.Expenses[0]},
	}
	assert.True(t, want.Equal(ComputeTotalCost(reversed)))
	assertDecimal(t, "456.925", want)
}

func TestComputeTotalCost_IdempotentAndPure(t *testing.T) {
	job := scenarioJob()
	job.TotalCost = dec("1")

	first := ComputeTotalCost(job)
	second := ComputeTotalCost(job)

	assert.True(t, first.Equal(second))
	assertDecimal(t, "1", job.TotalCost)
}

func TestComputeTotalCost_PropagatesNegativeInputs(t *testing.T) {
	job := model.Job{
		Machinery: []model.Assignment{assignment("10", "-2")},
		Expenses:  []model.Expense{expense("-5")},
	}
	assertDecimal(t, "-25", ComputeTotalCost(job))
}

func TestRateSnapshot(t *testing.T) {
	resource, err := model.NewResource(model.ResourceKindMachinery, "Tractor", dec("50"), true)
	require.NoError(t, err)

	job := model.Job{}
	_, err = job.AssignResource(*resource)
	require.NoError(t, err)
	require.NoError(t, job.SetAssignmentHours(model.ResourceKindMachinery, resource.ID, dec("4")))
	Finalize(&job)

	resource.HourlyRate = dec("80")

	assertDecimal(t, "200", Finalize(&job))
	assert.False(t, IsStale(job))
}

func TestIsStale(t *testing.T) {
	job := scenarioJob()
	assert.True(t, IsStale(job))

	Finalize(&job)
	assert.False(t, IsStale(job))

	job.Expenses = append(job.Expenses, expense("10"))
	assert.True(t, IsStale(job))
	assertDecimal(t, "390", job.TotalCost)
}

func TestProfit_AllowsLoss(t *testing.T) {
	job := model.Job{TotalCharged: dec("100"), TotalCost: dec("250")}
	assertDecimal(t, "-150", Profit(job))
}

func TestAggregate(t *testing.T) {
	jobs := []model.Job{
		{TotalCharged: dec("1000"), TotalCost: dec("400")},
		{TotalCharged: dec("500"), TotalCost: dec("500")},
	}

	totals := Aggregate(jobs)

	assertDecimal(t, "1500", totals.TotalRevenue)
	assertDecimal(t, "900", totals.TotalCost)
	assertDecimal(t, "600", totals.NetProfit)
	assertDecimal(t, "600", Profit(jobs[0]))
	assertDecimal(t, "0", Profit(jobs[1]))
}

func TestAggregate_Additivity(t *testing.T) {
	cases := map[string][]model.Job{
		"empty":  nil,
		"single": {{TotalCharged: dec("10.10"), TotalCost: dec("3.03")}},
		"mixed": {
			{TotalCharged: dec("0.1"), TotalCost: dec("0.2")},
			{TotalCharged: dec("999.99"), TotalCost: dec("12.34")},
			{TotalCharged: dec("0"), TotalCost: dec("77")},
		},
	}

	for name, jobs := range cases {
		t.Run(name, func(t *testing.T) {
			sum := decimal.Zero
			for _, job := range jobs {
				sum = sum.Add(Profit(job))
			}
			totals := Aggregate(jobs)
			assert.Truef(t, sum.Equal(totals.NetProfit), "sum %s != net %s", sum, totals.NetProfit)
		})
	}

	empty := Aggregate(nil)
	assert.True(t, empty.TotalRevenue.IsZero())
	assert.True(t, empty.TotalCost.IsZero())
	assert.True(t, empty.NetProfit.IsZero())
}
