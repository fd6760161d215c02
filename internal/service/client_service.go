package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nurpe/agrojobs/internal/model"
)

type ClientService struct {
	clients ClientStore
}

type LocationInput struct {
	Name    string
	Address string
}

type CreateClientInput struct {
	Name      string
	Type      string
	Locations []LocationInput
}

type UpdateClientInput struct {
	Name string
	Type string
}

type GeocodeInput struct {
	Latitude  float64
	Longitude float64
	Name      string
}

func NewClientService(clients ClientStore) *ClientService {
	return &ClientService{clients: clients}
}

func (s *ClientService) ListClients(ctx context.Context) ([]model.Client, error) {
	return s.clients.ListClients(ctx)
}

func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	client, err := s.clients.GetClient(ctx, id)
	if err != nil {
		return nil, notFound(err, "client", id)
	}
	return client, nil
}

func (s *ClientService) CreateClient(ctx context.Context, principal model.Principal, input CreateClientInput) (*model.Client, error) {
	if err := requireEditor(principal); err != nil {
		return nil, err
	}
	clientType, err := model.ParseClientType(input.Type)
	if err != nil {
		return nil, err
	}
	client, err := model.NewClient(input.Name, clientType)
	if err != nil {
		return nil, err
	}
	for _, loc := range input.Locations {
		if _, err := model.NewLocation(client, loc.Name, loc.Address); err != nil {
			return nil, err
		}
	}

	if err := s.clients.CreateClient(ctx, *client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) UpdateClient(ctx context.Context, principal model.Principal, id uuid.UUID, input UpdateClientInput) (*model.Client, error) {
	if err := requireEditor(principal); err != nil {
		return nil, err
	}
	client, err := s.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	clientType, err := model.ParseClientType(input.Type)
	if err != nil {
		return nil, err
	}
	updated, err := model.NewClient(input.Name, clientType)
	if err != nil {
		return nil, err
	}
	client.Name = updated.Name
	client.Type = updated.Type

	if err := s.clients.UpdateClient(ctx, *client); err != nil {
		return nil, notFound(err, "client", id)
	}
	return client, nil
}

// DeleteClient removes the client together with its locations and jobs.
func (s *ClientService) DeleteClient(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if err := requireEditor(principal); err != nil {
		return err
	}
	return notFound(s.clients.DeleteClient(ctx, id), "client", id)
}

func (s *ClientService) AddLocation(ctx context.Context, principal model.Principal, clientID uuid.UUID, input LocationInput) (*model.Location, error) {
	if err := requireEditor(principal); err != nil {
		return nil, err
	}
	client, err := s.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	position := len(client.Locations)
	loc, err := model.NewLocation(client, input.Name, input.Address)
	if err != nil {
		return nil, err
	}
	if err := s.clients.AddLocation(ctx, *loc, position); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *ClientService) DeleteLocation(ctx context.Context, principal model.Principal, clientID, locationID uuid.UUID) error {
	if err := requireEditor(principal); err != nil {
		return err
	}
	return notFound(s.clients.DeleteLocation(ctx, clientID, locationID), "location", locationID)
}

// Geocode builds the location fields prefilled from device coordinates.
func (s *ClientService) Geocode(input GeocodeInput) (LocationInput, error) {
	if input.Latitude < -90 || input.Latitude > 90 {
		return LocationInput{}, fmt.Errorf("%w: latitude must be between -90 and 90", ErrInvalidInput)
	}
	if input.Longitude < -180 || input.Longitude > 180 {
		return LocationInput{}, fmt.Errorf("%w: longitude must be between -180 and 180", ErrInvalidInput)
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = model.DefaultGPSLocationName
	}
	coords := model.Coordinates{Latitude: input.Latitude, Longitude: input.Longitude}
	return LocationInput{Name: name, Address: coords.Address()}, nil
}
