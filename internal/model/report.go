package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Totals is the revenue/cost/profit rollup over a set of jobs.
type Totals struct {
	TotalRevenue decimal.Decimal
	TotalCost    decimal.Decimal
	NetProfit    decimal.Decimal
}

// ReportRow is one line of the detailed job report.
type ReportRow struct {
	Description  string
	ClientName   string
	LocationName string
	StartDate    time.Time
	EndDate      time.Time
	TotalCharged decimal.Decimal
	TotalCost    decimal.Decimal
	Profit       decimal.Decimal
}

// JobReport is the export document handed to the excel and pdf generators.
type JobReport struct {
	FilterDescription string
	GeneratedAt       time.Time
	Totals            Totals
	Rows              []ReportRow
}
