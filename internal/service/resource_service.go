package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/agrojobs/internal/model"
)

type ResourceService struct {
	resources ResourceStore
}

type ResourceInput struct {
	Name       string
	HourlyRate decimal.Decimal
	// Active defaults to true when nil.
	Active *bool
}

func NewResourceService(resources ResourceStore) *ResourceService {
	return &ResourceService{resources: resources}
}

func (s *ResourceService) ListResources(ctx context.Context, kind model.ResourceKind) ([]model.Resource, error) {
	return s.resources.ListResources(ctx, kind)
}

func (s *ResourceService) CreateResource(ctx context.Context, principal model.Principal, kind model.ResourceKind, input ResourceInput) (*model.Resource, error) {
	if err := requireEditor(principal); err != nil {
		return nil, err
	}
	active := true
	if input.Active != nil {
		active = *input.Active
	}
	resource, err := model.NewResource(kind, input.Name, input.HourlyRate, active)
	if err != nil {
		return nil, err
	}
	if err := s.resources.CreateResource(ctx, *resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// UpdateResource edits the registry entry. Jobs that already hold an
// assignment of the resource keep their captured rate.
func (s *ResourceService) UpdateResource(ctx context.Context, principal model.Principal, kind model.ResourceKind, id uuid.UUID, input ResourceInput) (*model.Resource, error) {
	if err := requireEditor(principal); err != nil {
		return nil, err
	}
	current, err := s.resources.GetResource(ctx, kind, id)
	if err != nil {
		return nil, notFound(err, "resource", id)
	}
	active := current.Active
	if input.Active != nil {
		active = *input.Active
	}
	updated, err := model.NewResource(kind, input.Name, input.HourlyRate, active)
	if err != nil {
		return nil, err
	}
	updated.ID = current.ID

	if err := s.resources.UpdateResource(ctx, *updated); err != nil {
		return nil, notFound(err, "resource", id)
	}
	return updated, nil
}

func (s *ResourceService) ToggleResource(ctx context.Context, principal model.Principal, kind model.ResourceKind, id uuid.UUID) (*model.Resource, error) {
	if err := requireEditor(principal); err != nil {
		return nil, err
	}
	resource, err := s.resources.GetResource(ctx, kind, id)
	if err != nil {
		return nil, notFound(err, "resource", id)
	}
	resource.Active = !resource.Active
	if err := s.resources.UpdateResource(ctx, *resource); err != nil {
		return nil, notFound(err, "resource", id)
	}
	return resource, nil
}

func (s *ResourceService) DeleteResource(ctx context.Context, principal model.Principal, kind model.ResourceKind, id uuid.UUID) error {
	if err := requireEditor(principal); err != nil {
		return err
	}
	return notFound(s.resources.DeleteResource(ctx, kind, id), "resource", id)
}
