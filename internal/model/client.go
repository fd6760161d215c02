package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ClientType string

const (
	ClientTypeIndividual ClientType = "INDIVIDUAL"
	ClientTypeCompany    ClientType = "COMPANY"
)

// ParseClientType accepts the enum value in any case.
func ParseClientType(raw string) (ClientType, error) {
	switch ClientType(strings.ToUpper(strings.TrimSpace(raw))) {
	case ClientTypeIndividual:
		return ClientTypeIndividual, nil
	case ClientTypeCompany:
		return ClientTypeCompany, nil
	default:
		return "", newValidationError("type", fmt.Sprintf("unknown client type %q", raw))
	}
}

type Client struct {
	ID        uuid.UUID
	Name      string
	Type      ClientType
	Locations []Location `gorm:"-"`
	CreatedAt time.Time
}

type Location struct {
	ID       uuid.UUID
	ClientID uuid.UUID
	Name     string
	Address  string
}

func NewClient(name string, clientType ClientType) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newValidationError("name", "is required")
	}
	parsed, err := ParseClientType(string(clientType))
	if err != nil {
		return nil, err
	}
	return &Client{
		ID:        uuid.New(),
		Name:      name,
		Type:      parsed,
		Locations: []Location{},
	}, nil
}

// NewLocation creates a location owned by client and appends it to the
// client's locations.
func NewLocation(client *Client, name, address string) (*Location, error) {
	if client == nil || client.ID == uuid.Nil {
		return nil, newValidationError("client_id", "location requires an existing client")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newValidationError("name", "is required")
	}
	loc := Location{
		ID:       uuid.New(),
		ClientID: client.ID,
		Name:     name,
		Address:  strings.TrimSpace(address),
	}
	client.Locations = append(client.Locations, loc)
	return &loc, nil
}

func (c *Client) Location(id uuid.UUID) (Location, bool) {
	for _, loc := range c.Locations {
		if loc.ID == id {
			return loc, true
		}
	}
	return Location{}, false
}

// Coordinates is a geolocation reading used to prefill a location address.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

const DefaultGPSLocationName = "Ubicación GPS"

// Address renders the coordinates as free address text. The result is
// stored as-is and never parsed back.
func (c Coordinates) Address() string {
	return fmt.Sprintf("Lat: %v, Lon: %v (Ubicación actual)", c.Latitude, c.Longitude)
}
