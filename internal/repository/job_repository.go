package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nurpe/agrojobs/internal/model"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `
	j.id,
	j.description,
	j.client_id,
	c.name AS client_name,
	j.location_id,
	l.name AS location_name,
	j.start_date,
	j.end_date,
	j.total_charged,
	j.total_cost,
	j.status,
	j.created_at
`

const jobFrom = `
	FROM jobs j
	JOIN clients c ON c.id = j.client_id
	JOIN locations l ON l.id = j.location_id
`

type assignmentRow struct {
	JobID      uuid.UUID
	Kind       model.ResourceKind
	ResourceID uuid.UUID
	Name       string
	HourlyRate decimal.Decimal
	Hours      decimal.Decimal
}

type expenseRow struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	Category    string
	Description string
	Amount      decimal.Decimal
}

// ListJobs returns every job in registration order with assignments and
// expenses loaded.
func (r *JobRepository) ListJobs(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	if err := r.db.WithContext(ctx).Raw(
		"SELECT" + jobColumns + jobFrom + "ORDER BY j.created_at ASC, j.id ASC",
	).Scan(&jobs).Error; err != nil {
		return nil, err
	}
	return r.withDetails(ctx, jobs)
}

// ListRecentJobs returns the latest registered jobs, newest first.
func (r *JobRepository) ListRecentJobs(ctx context.Context, limit int) ([]model.Job, error) {
	var jobs []model.Job
	if err := r.db.WithContext(ctx).Raw(
		"SELECT"+jobColumns+jobFrom+"ORDER BY j.created_at DESC, j.id DESC LIMIT ?", limit,
	).Scan(&jobs).Error; err != nil {
		return nil, err
	}
	return r.withDetails(ctx, jobs)
}

func (r *JobRepository) GetJob(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	var job model.Job
	if err := r.db.WithContext(ctx).Raw(
		"SELECT"+jobColumns+jobFrom+"WHERE j.id = ? LIMIT 1", id,
	).Scan(&job).Error; err != nil {
		return nil, err
	}
	if job.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	jobs, err := r.withDetails(ctx, []model.Job{job})
	if err != nil {
		return nil, err
	}
	return &jobs[0], nil
}

func (r *JobRepository) withDetails(ctx context.Context, jobs []model.Job) ([]model.Job, error) {
	if len(jobs) == 0 {
		return []model.Job{}, nil
	}

	ids := make([]uuid.UUID, len(jobs))
	index := make(map[uuid.UUID]int, len(jobs))
	for i := range jobs {
		ids[i] = jobs[i].ID
		index[jobs[i].ID] = i
		jobs[i].Machinery = []model.Assignment{}
		jobs[i].Operators = []model.Assignment{}
		jobs[i].Expenses = []model.Expense{}
	}

	var assignments []assignmentRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT job_id, kind, resource_id, name, hourly_rate, hours
		FROM job_assignments
		WHERE job_id IN ?
		ORDER BY position ASC
	`, ids).Scan(&assignments).Error; err != nil {
		return nil, err
	}
	for _, row := range assignments {
		pos, ok := index[row.JobID]
		if !ok {
			continue
		}
		a := model.Assignment{
			ResourceID: row.ResourceID,
			Name:       row.Name,
			HourlyRate: row.HourlyRate,
			Hours:      row.Hours,
		}
		switch row.Kind {
		case model.ResourceKindMachinery:
			jobs[pos].Machinery = append(jobs[pos].Machinery, a)
		case model.ResourceKindOperator:
			jobs[pos].Operators = append(jobs[pos].Operators, a)
		}
	}

	var expenses []expenseRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, job_id, category, description, amount
		FROM job_expenses
		WHERE job_id IN ?
		ORDER BY position ASC
	`, ids).Scan(&expenses).Error; err != nil {
		return nil, err
	}
	for _, row := range expenses {
		pos, ok := index[row.JobID]
		if !ok {
			continue
		}
		jobs[pos].Expenses = append(jobs[pos].Expenses, model.Expense{
			ID:          row.ID,
			Category:    row.Category,
			Description: row.Description,
			Amount:      row.Amount,
		})
	}
	return jobs, nil
}

func (r *JobRepository) CreateJob(ctx context.Context, job model.Job) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`
			INSERT INTO jobs (
				id,
				description,
				client_id,
				location_id,
				start_date,
				end_date,
				total_charged,
				total_cost,
				status
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			job.ID,
			job.Description,
			job.ClientID,
			job.LocationID,
			job.StartDate,
			job.EndDate,
			job.TotalCharged,
			job.TotalCost,
			string(job.Status),
		).Error; err != nil {
			return err
		}
		return insertJobDetails(tx, job)
	})
}

// SaveJob rewrites the job header and replaces its assignments and
// expenses with the ones held by job.
func (r *JobRepository) SaveJob(ctx context.Context, job model.Job) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Exec(`
			UPDATE jobs
			SET
				description = ?,
				client_id = ?,
				location_id = ?,
				start_date = ?,
				end_date = ?,
				total_charged = ?,
				total_cost = ?,
				status = ?
			WHERE id = ?
		`,
			job.Description,
			job.ClientID,
			job.LocationID,
			job.StartDate,
			job.EndDate,
			job.TotalCharged,
			job.TotalCost,
			string(job.Status),
			job.ID,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Exec(`DELETE FROM job_assignments WHERE job_id = ?`, job.ID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM job_expenses WHERE job_id = ?`, job.ID).Error; err != nil {
			return err
		}
		return insertJobDetails(tx, job)
	})
}

func (r *JobRepository) UpdateTotalCost(ctx context.Context, id uuid.UUID, totalCost decimal.Decimal) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE jobs SET total_cost = ? WHERE id = ?
	`, totalCost, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *JobRepository) DeleteJob(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM jobs WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func insertJobDetails(tx *gorm.DB, job model.Job) error {
	position := 0
	insertAssignments := func(kind model.ResourceKind, list []model.Assignment) error {
		for _, a := range list {
			if err := tx.Exec(`
				INSERT INTO job_assignments (job_id, kind, resource_id, name, hourly_rate, hours, position)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, job.ID, string(kind), a.ResourceID, a.Name, a.HourlyRate, a.Hours, position).Error; err != nil {
				return err
			}
			position++
		}
		return nil
	}
	if err := insertAssignments(model.ResourceKindMachinery, job.Machinery); err != nil {
		return err
	}
	if err := insertAssignments(model.ResourceKindOperator, job.Operators); err != nil {
		return err
	}

	for i, e := range job.Expenses {
		if err := tx.Exec(`
			INSERT INTO job_expenses (id, job_id, category, description, amount, position)
			VALUES (?, ?, ?, ?, ?, ?)
		`, e.ID, job.ID, e.Category, e.Description, e.Amount, i).Error; err != nil {
			return err
		}
	}
	return nil
}
