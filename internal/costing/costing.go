// Package costing derives job cost and profit figures from assigned
// resources, expenses and the charged amount.
package costing

import (
	"github.com/shopspring/decimal"

	"github.com/nurpe/agrojobs/internal/model"
)

// Breakdown splits a job's cost by source.
type Breakdown struct {
	Machinery decimal.Decimal
	Operators decimal.Decimal
	Expenses  decimal.Decimal
}

func (b Breakdown) Total() decimal.Decimal {
	return b.Machinery.Add(b.Operators).Add(b.Expenses)
}

// ComputeBreakdown sums each cost source of job. Inputs are not validated:
// negative hours or amounts flow through arithmetically.
func ComputeBreakdown(job model.Job) Breakdown {
	return Breakdown{
		Machinery: sumAssignments(job.Machinery),
		Operators: sumAssignments(job.Operators),
		Expenses:  sumExpenses(job.Expenses),
	}
}

// ComputeTotalCost returns machinery + operator + expense cost for job.
func ComputeTotalCost(job model.Job) decimal.Decimal {
	return ComputeBreakdown(job).Total()
}

// IsStale reports whether the cached TotalCost no longer matches the
// job's assignments and expenses.
func IsStale(job model.Job) bool {
	return !job.TotalCost.Equal(ComputeTotalCost(job))
}

// Finalize stores the recomputed cost on job.
func Finalize(job *model.Job) decimal.Decimal {
	job.TotalCost = ComputeTotalCost(*job)
	return job.TotalCost
}

// Profit is the charged amount minus the cached cost. Negative values are
// loss-making jobs.
func Profit(job model.Job) decimal.Decimal {
	return job.TotalCharged.Sub(job.TotalCost)
}

// Aggregate sums revenue and cost across jobs. An empty slice yields zeros.
func Aggregate(jobs []model.Job) model.Totals {
	revenue := decimal.Zero
	cost := decimal.Zero
	for _, job := range jobs {
		revenue = revenue.Add(job.TotalCharged)
		cost = cost.Add(job.TotalCost)
	}
	return model.Totals{
		TotalRevenue: revenue,
		TotalCost:    cost,
		NetProfit:    revenue.Sub(cost),
	}
}

func sumAssignments(assignments []model.Assignment) decimal.Decimal {
	total := decimal.Zero
	for _, a := range assignments {
		total = total.Add(a.Cost())
	}
	return total
}

func sumExpenses(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}
