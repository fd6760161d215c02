package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nurpe/agrojobs/internal/model"
)

var (
	editor = model.Principal{UserID: uuid.New(), Role: model.RoleManager}
	viewer = model.Principal{UserID: uuid.New(), Role: model.RoleViewer}
)

type memoryClients struct {
	clients map[uuid.UUID]model.Client
	order   []uuid.UUID
}

func newMemoryClients(clients ...model.Client) *memoryClients {
	m := &memoryClients{clients: map[uuid.UUID]model.Client{}}
	for _, c := range clients {
		_ = m.CreateClient(context.Background(), c)
	}
	return m
}

func (m *memoryClients) ListClients(context.Context) ([]model.Client, error) {
	result := make([]model.Client, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.clients[id])
	}
	return result, nil
}

func (m *memoryClients) GetClient(_ context.Context, id uuid.UUID) (*model.Client, error) {
	c, ok := m.clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c.Locations = append([]model.Location{}, c.Locations...)
	return &c, nil
}

func (m *memoryClients) CreateClient(_ context.Context, client model.Client) error {
	client.Locations = append([]model.Location{}, client.Locations...)
	m.clients[client.ID] = client
	m.order = append(m.order, client.ID)
	return nil
}

func (m *memoryClients) UpdateClient(_ context.Context, client model.Client) error {
	current, ok := m.clients[client.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	current.Name = client.Name
	current.Type = client.Type
	m.clients[client.ID] = current
	return nil
}

func (m *memoryClients) DeleteClient(_ context.Context, id uuid.UUID) error {
	if _, ok := m.clients[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.clients, id)
	return nil
}

func (m *memoryClients) AddLocation(_ context.Context, loc model.Location, _ int) error {
	c, ok := m.clients[loc.ClientID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Locations = append(c.Locations, loc)
	m.clients[loc.ClientID] = c
	return nil
}

func (m *memoryClients) DeleteLocation(_ context.Context, clientID, locationID uuid.UUID) error {
	c, ok := m.clients[clientID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i, loc := range c.Locations {
		if loc.ID == locationID {
			c.Locations = append(c.Locations[:i:i], c.Locations[i+1:]...)
			m.clients[clientID] = c
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type memoryResources struct {
	resources map[uuid.UUID]model.Resource
}

func newMemoryResources(resources ...model.Resource) *memoryResources {
	m := &memoryResources{resources: map[uuid.UUID]model.Resource{}}
	for _, r := range resources {
		m.resources[r.ID] = r
	}
	return m
}

func (m *memoryResources) ListResources(_ context.Context, kind model.ResourceKind) ([]model.Resource, error) {
	result := []model.Resource{}
	for _, r := range m.resources {
		if r.Kind == kind {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *memoryResources) GetResource(_ context.Context, kind model.ResourceKind, id uuid.UUID) (*model.Resource, error) {
	r, ok := m.resources[id]
	if !ok || r.Kind != kind {
		return nil, gorm.ErrRecordNotFound
	}
	return &r, nil
}

func (m *memoryResources) CreateResource(_ context.Context, resource model.Resource) error {
	m.resources[resource.ID] = resource
	return nil
}

func (m *memoryResources) UpdateResource(_ context.Context, resource model.Resource) error {
	current, ok := m.resources[resource.ID]
	if !ok || current.Kind != resource.Kind {
		return gorm.ErrRecordNotFound
	}
	m.resources[resource.ID] = resource
	return nil
}

func (m *memoryResources) DeleteResource(_ context.Context, kind model.ResourceKind, id uuid.UUID) error {
	r, ok := m.resources[id]
	if !ok || r.Kind != kind {
		return gorm.ErrRecordNotFound
	}
	delete(m.resources, id)
	return nil
}

type memoryJobs struct {
	jobs  map[uuid.UUID]model.Job
	order []uuid.UUID
	saves int
}

func newMemoryJobs(jobs ...model.Job) *memoryJobs {
	m := &memoryJobs{jobs: map[uuid.UUID]model.Job{}}
	for _, j := range jobs {
		_ = m.CreateJob(context.Background(), j)
	}
	return m
}

func cloneJob(job model.Job) model.Job {
	job.Machinery = append([]model.Assignment{}, job.Machinery...)
	job.Operators = append([]model.Assignment{}, job.Operators...)
	job.Expenses = append([]model.Expense{}, job.Expenses...)
	return job
}

func (m *memoryJobs) ListJobs(context.Context) ([]model.Job, error) {
	result := []model.Job{}
	for _, id := range m.order {
		if job, ok := m.jobs[id]; ok {
			result = append(result, cloneJob(job))
		}
	}
	return result, nil
}

func (m *memoryJobs) ListRecentJobs(ctx context.Context, limit int) ([]model.Job, error) {
	all, _ := m.ListJobs(ctx)
	result := []model.Job{}
	for i := len(all) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, all[i])
	}
	return result, nil
}

func (m *memoryJobs) GetJob(_ context.Context, id uuid.UUID) (*model.Job, error) {
	job, ok := m.jobs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	job = cloneJob(job)
	return &job, nil
}

func (m *memoryJobs) CreateJob(_ context.Context, job model.Job) error {
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	m.jobs[job.ID] = cloneJob(job)
	m.order = append(m.order, job.ID)
	return nil
}

func (m *memoryJobs) SaveJob(_ context.Context, job model.Job) error {
	if _, ok := m.jobs[job.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.jobs[job.ID] = cloneJob(job)
	m.saves++
	return nil
}

func (m *memoryJobs) UpdateTotalCost(_ context.Context, id uuid.UUID, totalCost decimal.Decimal) error {
	job, ok := m.jobs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	job.TotalCost = totalCost
	m.jobs[id] = job
	return nil
}

func (m *memoryJobs) DeleteJob(_ context.Context, id uuid.UUID) error {
	if _, ok := m.jobs[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.jobs, id)
	return nil
}

type stubGenerator struct {
	content []byte
	last    model.JobReport
}

func (g *stubGenerator) Generate(report model.JobReport) ([]byte, error) {
	g.last = report
	return g.content, nil
}
