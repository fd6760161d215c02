package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/agrojobs/internal/model"
)

// Stores are satisfied by the gorm repositories. Missing rows are reported
// as gorm.ErrRecordNotFound.

type ClientStore interface {
	ListClients(ctx context.Context) ([]model.Client, error)
	GetClient(ctx context.Context, id uuid.UUID) (*model.Client, error)
	CreateClient(ctx context.Context, client model.Client) error
	UpdateClient(ctx context.Context, client model.Client) error
	DeleteClient(ctx context.Context, id uuid.UUID) error
	AddLocation(ctx context.Context, loc model.Location, position int) error
	DeleteLocation(ctx context.Context, clientID, locationID uuid.UUID) error
}

type ResourceStore interface {
	ListResources(ctx context.Context, kind model.ResourceKind) ([]model.Resource, error)
	GetResource(ctx context.Context, kind model.ResourceKind, id uuid.UUID) (*model.Resource, error)
	CreateResource(ctx context.Context, resource model.Resource) error
	UpdateResource(ctx context.Context, resource model.Resource) error
	DeleteResource(ctx context.Context, kind model.ResourceKind, id uuid.UUID) error
}

type JobStore interface {
	ListJobs(ctx context.Context) ([]model.Job, error)
	ListRecentJobs(ctx context.Context, limit int) ([]model.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*model.Job, error)
	CreateJob(ctx context.Context, job model.Job) error
	SaveJob(ctx context.Context, job model.Job) error
	UpdateTotalCost(ctx context.Context, id uuid.UUID, totalCost decimal.Decimal) error
	DeleteJob(ctx context.Context, id uuid.UUID) error
}
