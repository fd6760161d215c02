package http

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/agrojobs/internal/costing"
	"github.com/nurpe/agrojobs/internal/model"
)

const dateLayout = "2006-01-02"

type locationResponse struct {
	ID       uuid.UUID `json:"id"`
	ClientID uuid.UUID `json:"client_id"`
	Name     string    `json:"name"`
	Address  string    `json:"address"`
}

type clientResponse struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Type      model.ClientType   `json:"type"`
	Locations []locationResponse `json:"locations"`
	CreatedAt time.Time          `json:"created_at"`
}

type resourceResponse struct {
	ID         uuid.UUID          `json:"id"`
	Kind       model.ResourceKind `json:"kind"`
	Name       string             `json:"name"`
	HourlyRate decimal.Decimal    `json:"hourly_rate"`
	Active     bool               `json:"active"`
}

type assignmentResponse struct {
	ResourceID uuid.UUID       `json:"resource_id"`
	Name       string          `json:"name"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	Hours      decimal.Decimal `json:"hours"`
	Cost       decimal.Decimal `json:"cost"`
}

type expenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type breakdownResponse struct {
	Machinery decimal.Decimal `json:"machinery"`
	Operators decimal.Decimal `json:"operators"`
	Expenses  decimal.Decimal `json:"expenses"`
	Total     decimal.Decimal `json:"total"`
}

type jobResponse struct {
	ID            uuid.UUID            `json:"id"`
	Description   string               `json:"description"`
	ClientID      uuid.UUID            `json:"client_id"`
	ClientName    string               `json:"client_name"`
	LocationID    uuid.UUID            `json:"location_id"`
	LocationName  string               `json:"location_name"`
	StartDate     string               `json:"start_date"`
	EndDate       string               `json:"end_date"`
	Machinery     []assignmentResponse `json:"machinery"`
	Operators     []assignmentResponse `json:"operators"`
	Expenses      []expenseResponse    `json:"expenses"`
	TotalCharged  decimal.Decimal      `json:"total_charged"`
	TotalCost     decimal.Decimal      `json:"total_cost"`
	Profit        decimal.Decimal      `json:"profit"`
	CostBreakdown breakdownResponse    `json:"cost_breakdown"`
	CostStale     bool                 `json:"cost_stale"`
	Status        model.JobStatus      `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
}

type totalsResponse struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	NetProfit    decimal.Decimal `json:"net_profit"`
}

type reportRowResponse struct {
	Description  string          `json:"description"`
	ClientName   string          `json:"client_name"`
	LocationName string          `json:"location_name"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	TotalCharged decimal.Decimal `json:"total_charged"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Profit       decimal.Decimal `json:"profit"`
}

func toLocation(loc model.Location) locationResponse {
	return locationResponse{ID: loc.ID, ClientID: loc.ClientID, Name: loc.Name, Address: loc.Address}
}

func toClient(client model.Client) clientResponse {
	locations := make([]locationResponse, 0, len(client.Locations))
	for _, loc := range client.Locations {
		locations = append(locations, toLocation(loc))
	}
	return clientResponse{
		ID:        client.ID,
		Name:      client.Name,
		Type:      client.Type,
		Locations: locations,
		CreatedAt: client.CreatedAt,
	}
}

func toResource(resource model.Resource) resourceResponse {
	return resourceResponse{
		ID:         resource.ID,
		Kind:       resource.Kind,
		Name:       resource.Name,
		HourlyRate: resource.HourlyRate,
		Active:     resource.Active,
	}
}

func toAssignments(list []model.Assignment) []assignmentResponse {
	result := make([]assignmentResponse, 0, len(list))
	for _, a := range list {
		result = append(result, assignmentResponse{
			ResourceID: a.ResourceID,
			Name:       a.Name,
			HourlyRate: a.HourlyRate,
			Hours:      a.Hours,
			Cost:       a.Cost(),
		})
	}
	return result
}

func toJob(job model.Job) jobResponse {
	expenses := make([]expenseResponse, 0, len(job.Expenses))
	for _, e := range job.Expenses {
		expenses = append(expenses, expenseResponse{
			ID:          e.ID,
			Category:    e.Category,
			Description: e.Description,
			Amount:      e.Amount,
		})
	}
	breakdown := costing.ComputeBreakdown(job)

	return jobResponse{
		ID:           job.ID,
		Description:  job.Description,
		ClientID:     job.ClientID,
		ClientName:   job.ClientName,
		LocationID:   job.LocationID,
		LocationName: job.LocationName,
		StartDate:    job.StartDate.Format(dateLayout),
		EndDate:      job.EndDate.Format(dateLayout),
		Machinery:    toAssignments(job.Machinery),
		Operators:    toAssignments(job.Operators),
		Expenses:     expenses,
		TotalCharged: job.TotalCharged,
		TotalCost:    job.TotalCost,
		Profit:       costing.Profit(job),
		CostBreakdown: breakdownResponse{
			Machinery: breakdown.Machinery,
			Operators: breakdown.Operators,
			Expenses:  breakdown.Expenses,
			Total:     breakdown.Total(),
		},
		CostStale: costing.IsStale(job),
		Status:    job.Status,
		CreatedAt: job.CreatedAt,
	}
}

func toJobs(jobs []model.Job) []jobResponse {
	result := make([]jobResponse, 0, len(jobs))
	for _, job := range jobs {
		result = append(result, toJob(job))
	}
	return result
}

func toTotals(totals model.Totals) totalsResponse {
	return totalsResponse{
		TotalRevenue: totals.TotalRevenue,
		TotalCost:    totals.TotalCost,
		NetProfit:    totals.NetProfit,
	}
}

func toReportRows(rows []model.ReportRow) []reportRowResponse {
	result := make([]reportRowResponse, 0, len(rows))
	for _, r := range rows {
		result = append(result, reportRowResponse{
			Description:  r.Description,
			ClientName:   r.ClientName,
			LocationName: r.LocationName,
			StartDate:    r.StartDate.Format(dateLayout),
			EndDate:      r.EndDate.Format(dateLayout),
			TotalCharged: r.TotalCharged,
			TotalCost:    r.TotalCost,
			Profit:       r.Profit,
		})
	}
	return result
}
